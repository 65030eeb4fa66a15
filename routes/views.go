/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"github.com/google/uuid"

	"github.com/humaidq/nourishnav/growth"
	"github.com/humaidq/nourishnav/store"
)

// recordPayload is the wire form of a growth record; dates are YYYY-MM-DD.
type recordPayload struct {
	ID                  uuid.UUID `json:"id,omitempty"`
	Date                string    `json:"date"`
	AgeMonths           int       `json:"age_months"`
	Sex                 string    `json:"sex"`
	WeightKg            float64   `json:"weight_kg"`
	HeightCm            float64   `json:"height_cm"`
	HeadCircumferenceCm float64   `json:"head_circumference_cm"`
}

func (p recordPayload) toRecord() (growth.Record, error) {
	date, err := parseDate(p.Date)
	if err != nil {
		return growth.Record{}, err
	}

	sex, err := growth.ParseSex(p.Sex)
	if err != nil {
		return growth.Record{}, err
	}

	return growth.Record{
		Date:                date,
		AgeMonths:           p.AgeMonths,
		Sex:                 sex,
		WeightKg:            p.WeightKg,
		HeightCm:            p.HeightCm,
		HeadCircumferenceCm: p.HeadCircumferenceCm,
	}, nil
}

func recordView(rec growth.Record) recordPayload {
	return recordPayload{
		ID:                  rec.ID,
		Date:                rec.Date.Format(dateLayout),
		AgeMonths:           rec.AgeMonths,
		Sex:                 string(rec.Sex),
		WeightKg:            rec.WeightKg,
		HeightCm:            rec.HeightCm,
		HeadCircumferenceCm: rec.HeadCircumferenceCm,
	}
}

func recordViews(records []growth.Record) []recordPayload {
	views := make([]recordPayload, 0, len(records))
	for _, rec := range records {
		views = append(views, recordView(rec))
	}

	return views
}

type reportView struct {
	Profile         string                  `json:"profile,omitempty"`
	Record          recordPayload           `json:"record"`
	Classifications []growth.Classification `json:"classifications"`
}

func newReportView(r *growth.Report) reportView {
	return reportView{
		Profile:         r.Profile,
		Record:          recordView(r.Record),
		Classifications: r.Classifications,
	}
}

type feedingPayload struct {
	ID     uuid.UUID `json:"id,omitempty"`
	Date   string    `json:"date"`
	Type   string    `json:"type"`
	Food   string    `json:"food"`
	Amount string    `json:"amount"`
}

func feedingViews(feedings []store.Feeding) []feedingPayload {
	views := make([]feedingPayload, 0, len(feedings))
	for _, f := range feedings {
		views = append(views, feedingPayload{
			ID:     f.ID,
			Date:   f.Date.Format(dateLayout),
			Type:   string(f.Type),
			Food:   f.Food,
			Amount: f.Amount,
		})
	}

	return views
}

type milestonePayload struct {
	ID          uuid.UUID `json:"id,omitempty"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
}

func milestoneViews(milestones []store.Milestone) []milestonePayload {
	views := make([]milestonePayload, 0, len(milestones))
	for _, m := range milestones {
		views = append(views, milestonePayload{
			ID:          m.ID,
			Date:        m.Date.Format(dateLayout),
			Description: m.Description,
		})
	}

	return views
}

type nameRequest struct {
	Name string `json:"name"`
}
