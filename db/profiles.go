/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/humaidq/nourishnav/growth"
	"github.com/humaidq/nourishnav/store"
)

// Persister writes profile mutations through to PostgreSQL. It implements
// store.Persister using the shared pool.
type Persister struct{}

var _ store.Persister = (*Persister)(nil)

// NewPersister returns a persister bound to the initialized pool.
func NewPersister() (*Persister, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	return &Persister{}, nil
}

// SaveProfile inserts a new profile row.
func (p *Persister) SaveProfile(ctx context.Context, profile store.Profile) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO profiles (id, name, created_at) VALUES ($1, $2, $3)`,
		profile.ID, profile.Name, profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

// RenameProfile updates the name of a stored profile.
func (p *Persister) RenameProfile(ctx context.Context, id uuid.UUID, name string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	tag, err := pool.Exec(ctx, `UPDATE profiles SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("failed to rename profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", growth.ErrProfileNotFound, id)
	}

	return nil
}

// DeleteProfile removes a profile; its records, feedings and milestones
// cascade.
func (p *Persister) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if _, err := pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return nil
}

// SaveRecord inserts a growth record for the profile.
func (p *Persister) SaveRecord(ctx context.Context, profileID uuid.UUID, rec growth.Record) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	query := `
		INSERT INTO growth_records (
			id, profile_id, record_date, age_months, sex,
			weight_kg, height_cm, head_circumference_cm
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pool.Exec(ctx, query,
		rec.ID,
		profileID,
		rec.Date,
		rec.AgeMonths,
		string(rec.Sex),
		rec.WeightKg,
		rec.HeightCm,
		rec.HeadCircumferenceCm,
	)
	if err != nil {
		return fmt.Errorf("failed to insert growth record: %w", err)
	}

	return nil
}

// SaveFeeding inserts a feeding log entry for the profile.
func (p *Persister) SaveFeeding(ctx context.Context, profileID uuid.UUID, f store.Feeding) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO feedings (id, profile_id, feeding_date, feeding_type, food, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, f.ID, profileID, f.Date, string(f.Type), f.Food, f.Amount)
	if err != nil {
		return fmt.Errorf("failed to insert feeding: %w", err)
	}

	return nil
}

// SaveMilestone inserts a milestone for the profile.
func (p *Persister) SaveMilestone(ctx context.Context, profileID uuid.UUID, m store.Milestone) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO milestones (id, profile_id, milestone_date, description)
		VALUES ($1, $2, $3, $4)
	`, m.ID, profileID, m.Date, m.Description)
	if err != nil {
		return fmt.Errorf("failed to insert milestone: %w", err)
	}

	return nil
}

// LoadProfiles reads every stored profile with its records, feedings and
// milestones, each in date then insertion order. It runs in a read-only
// transaction so the snapshot is consistent.
func LoadProfiles(ctx context.Context) ([]store.Profile, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("Failed to roll back profile load", "error", err)
		}
	}()

	profiles, index, err := loadProfileRows(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := loadRecords(ctx, tx, profiles, index); err != nil {
		return nil, err
	}

	if err := loadFeedings(ctx, tx, profiles, index); err != nil {
		return nil, err
	}

	if err := loadMilestones(ctx, tx, profiles, index); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit profile load: %w", err)
	}

	logger.Info("Loaded stored profiles", "count", len(profiles))

	return profiles, nil
}

func loadProfileRows(ctx context.Context, tx pgx.Tx) ([]store.Profile, map[uuid.UUID]int, error) {
	rows, err := tx.Query(ctx, `SELECT id, name, created_at FROM profiles ORDER BY name ASC`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []store.Profile

	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var p store.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan profile: %w", err)
		}

		index[p.ID] = len(profiles)
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, index, nil
}

func loadRecords(ctx context.Context, tx pgx.Tx, profiles []store.Profile, index map[uuid.UUID]int) error {
	query := `
		SELECT
			profile_id,
			id,
			record_date,
			age_months,
			sex,
			weight_kg,
			height_cm,
			head_circumference_cm
		FROM growth_records
		ORDER BY profile_id, record_date ASC, seq ASC
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query growth records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			profileID uuid.UUID
			rec       growth.Record
			sex       string
		)

		err := rows.Scan(
			&profileID,
			&rec.ID,
			&rec.Date,
			&rec.AgeMonths,
			&sex,
			&rec.WeightKg,
			&rec.HeightCm,
			&rec.HeadCircumferenceCm,
		)
		if err != nil {
			return fmt.Errorf("failed to scan growth record: %w", err)
		}

		rec.Sex = growth.Sex(sex)
		rec.Date = growth.Day(rec.Date)

		if i, ok := index[profileID]; ok {
			profiles[i].Records = append(profiles[i].Records, rec)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating growth records: %w", err)
	}

	return nil
}

func loadFeedings(ctx context.Context, tx pgx.Tx, profiles []store.Profile, index map[uuid.UUID]int) error {
	rows, err := tx.Query(ctx, `
		SELECT profile_id, id, feeding_date, feeding_type, food, amount
		FROM feedings
		ORDER BY profile_id, feeding_date ASC, seq ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to query feedings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			profileID   uuid.UUID
			f           store.Feeding
			feedingType string
		)

		if err := rows.Scan(&profileID, &f.ID, &f.Date, &feedingType, &f.Food, &f.Amount); err != nil {
			return fmt.Errorf("failed to scan feeding: %w", err)
		}

		f.Type = store.FeedingType(feedingType)
		f.Date = growth.Day(f.Date)

		if i, ok := index[profileID]; ok {
			profiles[i].Feedings = append(profiles[i].Feedings, f)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating feedings: %w", err)
	}

	return nil
}

func loadMilestones(ctx context.Context, tx pgx.Tx, profiles []store.Profile, index map[uuid.UUID]int) error {
	rows, err := tx.Query(ctx, `
		SELECT profile_id, id, milestone_date, description
		FROM milestones
		ORDER BY profile_id, milestone_date ASC, seq ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to query milestones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			profileID uuid.UUID
			m         store.Milestone
		)

		if err := rows.Scan(&profileID, &m.ID, &m.Date, &m.Description); err != nil {
			return fmt.Errorf("failed to scan milestone: %w", err)
		}

		m.Date = growth.Day(m.Date)

		if i, ok := index[profileID]; ok {
			profiles[i].Milestones = append(profiles[i].Milestones, m)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating milestones: %w", err)
	}

	return nil
}
