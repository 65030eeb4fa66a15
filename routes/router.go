/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"github.com/flamego/flamego"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every endpoint onto a fresh flamego instance. A nil
// gatherer disables /metrics.
func NewRouter(h *Handlers, gatherer prometheus.Gatherer) *flamego.Flame {
	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(RequestLogger(h.Metrics))
	f.Use(NoCacheHeaders())
	configureNotFoundHandler(f)

	f.Get("/healthz", h.Healthz)

	f.Get("/profiles", h.ListProfiles)
	f.Post("/profiles", h.CreateProfile)
	f.Delete("/profiles/{name}", h.DeleteProfile)
	f.Post("/profiles/{name}/rename", h.RenameProfile)
	f.Post("/profiles/{name}/activate", h.ActivateProfile)
	f.Get("/profiles/{name}/records", h.ListRecords)
	f.Post("/profiles/{name}/records", h.AddRecord)
	f.Get("/profiles/{name}/report", h.Report)
	f.Get("/profiles/{name}/chart", h.Chart)
	f.Get("/profiles/{name}/feedings", h.ListFeedings)
	f.Post("/profiles/{name}/feedings", h.AddFeeding)
	f.Get("/profiles/{name}/milestones", h.ListMilestones)
	f.Post("/profiles/{name}/milestones", h.AddMilestone)

	if gatherer != nil {
		metricsHandler := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
		f.Get("/metrics", func(c flamego.Context) {
			metricsHandler.ServeHTTP(c.ResponseWriter(), c.Request().Request)
		})
	}

	return f
}
