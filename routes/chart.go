/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"html"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/nourishnav/growth"
)

// renderGrowthChart draws weight and height over record dates. Weight uses the
// left axis and height the right one. The profile name is HTML-escaped because
// the chart options are written unescaped into an inline script.
func renderGrowthChart(profile string, records []growth.Record) (string, error) {
	xAxis := make([]string, 0, len(records))
	weights := make([]opts.LineData, 0, len(records))
	heights := make([]opts.LineData, 0, len(records))

	for _, rec := range records {
		xAxis = append(xAxis, rec.Date.Format("Jan 2, 2006"))
		weights = append(weights, opts.LineData{Value: rec.WeightKg})
		heights = append(heights, opts.LineData{Value: rec.HeightCm})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    html.EscapeString(profile),
			Subtitle: "Weight and height history",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "kg",
		}),
	)

	line.ExtendYAxis(opts.YAxis{
		Name: "cm",
	})

	line.SetXAxis(xAxis).
		AddSeries("Weight (kg)", weights, charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
		})).
		AddSeries("Height (cm)", heights, charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
			YAxisIndex: 1,
		}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Chart renders the profile's growth history as an HTML page.
func (h *Handlers) Chart(c flamego.Context) {
	name := c.Param("name")

	records, err := h.Store.Records(name)
	if err != nil {
		writeError(c, err)
		return
	}

	if len(records) == 0 {
		writeJSON(c, http.StatusOK, map[string]interface{}{"profile": name, "no_data": true})
		return
	}

	page, err := renderGrowthChart(name, records)
	if err != nil {
		writeError(c, err)
		return
	}

	c.ResponseWriter().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.ResponseWriter().WriteHeader(http.StatusOK)

	if _, err := c.ResponseWriter().Write([]byte(page)); err != nil {
		logger.Warn("Failed to write chart", "error", err)
	}
}
