/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/humaidq/nourishnav/growth"
)

// AddRecord validates rec and inserts it into the profile, keeping records
// sorted by date. The date is truncated to the calendar day and an ID is
// assigned if missing. A rejected record leaves the profile unchanged.
func (s *ProfileStore) AddRecord(ctx context.Context, name string, rec growth.Record) (growth.Record, error) {
	rec.Date = growth.Day(rec.Date)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	if err := rec.Validate(); err != nil {
		logger.Warn("record rejected", "profile", name, "reason", err)
		return growth.Record{}, err
	}

	err := s.mutate(name, func(e *entry) error {
		key := rec.Key()
		for _, existing := range e.profile.Records {
			if existing.Key() == key {
				return fmt.Errorf("%w: %s at %d months", growth.ErrDuplicateRecord,
					key.Date.Format("2006-01-02"), key.AgeMonths)
			}
		}

		if s.persister != nil {
			if err := s.persister.SaveRecord(ctx, e.profile.ID, rec); err != nil {
				return fmt.Errorf("failed to persist record: %w", err)
			}
		}

		e.profile.Records = append(e.profile.Records, rec)
		sort.SliceStable(e.profile.Records, func(i, j int) bool {
			return e.profile.Records[i].Date.Before(e.profile.Records[j].Date)
		})

		return nil
	})
	if err != nil {
		logger.Warn("record rejected", "profile", name, "reason", err)
		return growth.Record{}, err
	}

	logger.Info("record added", "profile", name, "date", rec.Date.Format("2006-01-02"), "age_months", rec.AgeMonths)

	return rec, nil
}

// Records returns the profile's records sorted by date.
func (s *ProfileStore) Records(name string) ([]growth.Record, error) {
	p, err := s.Profile(name)
	if err != nil {
		return nil, err
	}

	return p.Records, nil
}

// LatestRecord returns the record with the greatest date. Among records on
// the same day the last inserted wins. It returns growth.ErrNoData when the
// profile has no records.
func (s *ProfileStore) LatestRecord(name string) (growth.Record, error) {
	e, err := s.lookup(name)
	if err != nil {
		return growth.Record{}, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.deleted {
		return growth.Record{}, fmt.Errorf("%w: %q", growth.ErrProfileNotFound, name)
	}

	if len(e.profile.Records) == 0 {
		return growth.Record{}, growth.ErrNoData
	}

	return e.profile.Records[len(e.profile.Records)-1], nil
}

// AddFeeding appends an entry to the profile's feeding log.
func (s *ProfileStore) AddFeeding(ctx context.Context, name string, f Feeding) (Feeding, error) {
	if f.Date.IsZero() {
		return Feeding{}, errMissingDate
	}

	if !f.Type.Valid() {
		return Feeding{}, fmt.Errorf("%w: %q", errUnknownFeedingType, f.Type)
	}

	f.Date = growth.Day(f.Date)
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}

	err := s.mutate(name, func(e *entry) error {
		if s.persister != nil {
			if err := s.persister.SaveFeeding(ctx, e.profile.ID, f); err != nil {
				return fmt.Errorf("failed to persist feeding: %w", err)
			}
		}

		e.profile.Feedings = append(e.profile.Feedings, f)
		sort.SliceStable(e.profile.Feedings, func(i, j int) bool {
			return e.profile.Feedings[i].Date.Before(e.profile.Feedings[j].Date)
		})

		return nil
	})
	if err != nil {
		return Feeding{}, err
	}

	return f, nil
}

// Feedings returns the profile's feeding log sorted by date.
func (s *ProfileStore) Feedings(name string) ([]Feeding, error) {
	p, err := s.Profile(name)
	if err != nil {
		return nil, err
	}

	return p.Feedings, nil
}

// AddMilestone records a developmental milestone.
func (s *ProfileStore) AddMilestone(ctx context.Context, name string, m Milestone) (Milestone, error) {
	if m.Date.IsZero() {
		return Milestone{}, errMissingDate
	}

	if strings.TrimSpace(m.Description) == "" {
		return Milestone{}, errEmptyMilestone
	}

	m.Date = growth.Day(m.Date)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	err := s.mutate(name, func(e *entry) error {
		if s.persister != nil {
			if err := s.persister.SaveMilestone(ctx, e.profile.ID, m); err != nil {
				return fmt.Errorf("failed to persist milestone: %w", err)
			}
		}

		e.profile.Milestones = append(e.profile.Milestones, m)
		sort.SliceStable(e.profile.Milestones, func(i, j int) bool {
			return e.profile.Milestones[i].Date.Before(e.profile.Milestones[j].Date)
		})

		return nil
	})
	if err != nil {
		return Milestone{}, err
	}

	return m, nil
}

// Milestones returns the profile's milestones sorted by date.
func (s *ProfileStore) Milestones(name string) ([]Milestone, error) {
	p, err := s.Profile(name)
	if err != nil {
		return nil, err
	}

	return p.Milestones, nil
}
