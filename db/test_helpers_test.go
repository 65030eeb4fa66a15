// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/nourishnav/growth"
	"github.com/humaidq/nourishnav/store"
)

func testContext() context.Context {
	return context.Background()
}

func mustSaveProfile(t *testing.T, p *Persister, name string) store.Profile {
	t.Helper()

	profile := store.Profile{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := p.SaveProfile(testContext(), profile); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	return profile
}

func testGrowthRecord(date time.Time, age int) growth.Record {
	return growth.Record{
		ID:                  uuid.New(),
		Date:                date,
		AgeMonths:           age,
		Sex:                 growth.SexBoy,
		WeightKg:            7,
		HeightCm:            72,
		HeadCircumferenceCm: 45,
	}
}
