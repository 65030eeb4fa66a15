/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package store

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/nourishnav/growth"
)

// PlaceholderProfile is the unassigned profile that exists from start-up. It
// cannot hold records until it is renamed into a real profile.
const PlaceholderProfile = "Unassigned"

// FeedingType is the kind of feeding recorded in the feeding log.
type FeedingType string

// FeedingType values.
const (
	FeedingBreastfeeding FeedingType = "Breastfeeding"
	FeedingFormula       FeedingType = "Formula"
	FeedingSolidFood     FeedingType = "Solid Food"
)

// Valid reports whether t is a known feeding type.
func (t FeedingType) Valid() bool {
	switch t {
	case FeedingBreastfeeding, FeedingFormula, FeedingSolidFood:
		return true
	default:
		return false
	}
}

// Feeding is one feeding log entry. Amount is free text (ml or g).
type Feeding struct {
	ID     uuid.UUID   `json:"id"`
	Date   time.Time   `json:"date"`
	Type   FeedingType `json:"type"`
	Food   string      `json:"food"`
	Amount string      `json:"amount"`
}

// Milestone is a developmental milestone such as first words or crawling.
type Milestone struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// Profile is a named child with its growth records sorted by date.
type Profile struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	CreatedAt  time.Time       `json:"created_at"`
	Records    []growth.Record `json:"records"`
	Feedings   []Feeding       `json:"feedings"`
	Milestones []Milestone     `json:"milestones"`
}

// IsPlaceholder reports whether p is the reserved unassigned profile.
func (p Profile) IsPlaceholder() bool {
	return p.Name == PlaceholderProfile
}

// Summary describes a profile without its data.
type Summary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	RecordCount int       `json:"record_count"`
	Active      bool      `json:"active"`
	Placeholder bool      `json:"placeholder"`
}

func (p Profile) clone() Profile {
	p.Records = slices.Clone(p.Records)
	p.Feedings = slices.Clone(p.Feedings)
	p.Milestones = slices.Clone(p.Milestones)

	return p
}
