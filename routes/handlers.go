/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/flamego/flamego"

	"github.com/humaidq/nourishnav/growth"
	"github.com/humaidq/nourishnav/logging"
	"github.com/humaidq/nourishnav/metrics"
	"github.com/humaidq/nourishnav/reference"
	"github.com/humaidq/nourishnav/store"
)

var (
	logger       = logging.Logger(logging.SourceWebRequest)
	reportLogger = logging.Logger(logging.SourceReport)
)

// Handlers serves the profile store over HTTP.
type Handlers struct {
	Store      *store.ProfileStore
	References *reference.Cache
	Metrics    *metrics.Manager
}

func (h *Handlers) rejected(c flamego.Context, operation string, err error) {
	if statusFor(err) != http.StatusInternalServerError {
		h.Metrics.Rejected(operation)
	}

	writeError(c, err)
}

// Healthz reports liveness and whether reference data is usable.
func (h *Handlers) Healthz(c flamego.Context) {
	if _, err := h.References.Get(); err != nil {
		writeJSON(c, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}

	writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

// ListProfiles returns every profile and the active one.
func (h *Handlers) ListProfiles(c flamego.Context) {
	profiles := h.Store.Profiles()
	h.Metrics.SetProfiles(len(profiles))

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"active":   h.Store.Active(),
		"profiles": profiles,
	})
}

// CreateProfile adds a profile and makes it active.
func (h *Handlers) CreateProfile(c flamego.Context) {
	var req nameRequest
	if err := decodeJSON(c, &req); err != nil {
		h.rejected(c, "create_profile", err)
		return
	}

	p, err := h.Store.CreateProfile(c.Request().Context(), req.Name)
	if err != nil {
		h.rejected(c, "create_profile", err)
		return
	}

	h.Metrics.SetProfiles(len(h.Store.Profiles()))
	writeJSON(c, http.StatusCreated, map[string]interface{}{"id": p.ID, "name": p.Name})
}

// DeleteProfile removes a profile and its data.
func (h *Handlers) DeleteProfile(c flamego.Context) {
	if err := h.Store.DeleteProfile(c.Request().Context(), c.Param("name")); err != nil {
		h.rejected(c, "delete_profile", err)
		return
	}

	h.Metrics.SetProfiles(len(h.Store.Profiles()))
	c.ResponseWriter().WriteHeader(http.StatusNoContent)
}

// RenameProfile renames a profile. Renaming the placeholder creates a profile.
func (h *Handlers) RenameProfile(c flamego.Context) {
	var req nameRequest
	if err := decodeJSON(c, &req); err != nil {
		h.rejected(c, "rename_profile", err)
		return
	}

	p, err := h.Store.RenameProfile(c.Request().Context(), c.Param("name"), req.Name)
	if err != nil {
		h.rejected(c, "rename_profile", err)
		return
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{"id": p.ID, "name": p.Name})
}

// ActivateProfile selects the active profile.
func (h *Handlers) ActivateProfile(c flamego.Context) {
	if err := h.Store.SetActive(c.Param("name")); err != nil {
		writeError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, map[string]string{"active": h.Store.Active()})
}

// ListRecords returns a profile's records in date order.
func (h *Handlers) ListRecords(c flamego.Context) {
	records, err := h.Store.Records(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{"records": recordViews(records)})
}

// AddRecord validates and stores a growth record.
func (h *Handlers) AddRecord(c flamego.Context) {
	var req recordPayload
	if err := decodeJSON(c, &req); err != nil {
		h.rejected(c, "add_record", err)
		return
	}

	rec, err := req.toRecord()
	if err != nil {
		h.rejected(c, "add_record", err)
		return
	}

	added, err := h.Store.AddRecord(c.Request().Context(), c.Param("name"), rec)
	if err != nil {
		h.rejected(c, "add_record", err)
		return
	}

	h.Metrics.RecordAdded()
	writeJSON(c, http.StatusCreated, recordView(added))
}

// Report classifies the profile's latest record. A profile without records
// yields {"no_data": true}.
func (h *Handlers) Report(c flamego.Context) {
	name := c.Param("name")

	refs, err := h.References.Get()
	if err != nil {
		h.Metrics.ObserveReportOutcome("error")
		writeError(c, err)

		return
	}

	start := time.Now()

	report, err := growth.BuildReport(h.Store, name, refs)
	switch {
	case errors.Is(err, growth.ErrNoData):
		h.Metrics.ObserveReportOutcome("no_data")
		writeJSON(c, http.StatusOK, map[string]interface{}{"profile": name, "no_data": true})

		return
	case err != nil:
		h.Metrics.ObserveReportOutcome("error")
		reportLogger.Warn("Report failed", "profile", name, "error", err)
		writeError(c, err)

		return
	}

	h.Metrics.ObserveReport(report, time.Since(start))

	for _, cl := range report.Classifications {
		if cl.Category != growth.CategoryNormal {
			reportLogger.Info("Growth concern", "profile", name, "indicator", cl.Indicator,
				"category", cl.Category, "severity", cl.Severity, "z", cl.ZScore)
		}
	}

	writeJSON(c, http.StatusOK, newReportView(report))
}

// ListFeedings returns the profile's feeding log.
func (h *Handlers) ListFeedings(c flamego.Context) {
	feedings, err := h.Store.Feedings(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{"feedings": feedingViews(feedings)})
}

// AddFeeding appends to the profile's feeding log.
func (h *Handlers) AddFeeding(c flamego.Context) {
	var req feedingPayload
	if err := decodeJSON(c, &req); err != nil {
		h.rejected(c, "add_feeding", err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.rejected(c, "add_feeding", err)
		return
	}

	f, err := h.Store.AddFeeding(c.Request().Context(), c.Param("name"), store.Feeding{
		Date:   date,
		Type:   store.FeedingType(req.Type),
		Food:   req.Food,
		Amount: req.Amount,
	})
	if err != nil {
		h.rejected(c, "add_feeding", err)
		return
	}

	writeJSON(c, http.StatusCreated, feedingViews([]store.Feeding{f})[0])
}

// ListMilestones returns the profile's milestones.
func (h *Handlers) ListMilestones(c flamego.Context) {
	milestones, err := h.Store.Milestones(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{"milestones": milestoneViews(milestones)})
}

// AddMilestone records a milestone for the profile.
func (h *Handlers) AddMilestone(c flamego.Context) {
	var req milestonePayload
	if err := decodeJSON(c, &req); err != nil {
		h.rejected(c, "add_milestone", err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.rejected(c, "add_milestone", err)
		return
	}

	m, err := h.Store.AddMilestone(c.Request().Context(), c.Param("name"), store.Milestone{
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		h.rejected(c, "add_milestone", err)
		return
	}

	writeJSON(c, http.StatusCreated, milestoneViews([]store.Milestone{m})[0])
}
