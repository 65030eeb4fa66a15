/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package store keeps child profiles and their growth records for the
// lifetime of a session.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/nourishnav/growth"
	"github.com/humaidq/nourishnav/logging"
)

var logger = logging.Logger(logging.SourceStore)

// Persister receives every accepted mutation before it becomes visible in
// memory. A persister error aborts the mutation.
type Persister interface {
	SaveProfile(ctx context.Context, p Profile) error
	RenameProfile(ctx context.Context, id uuid.UUID, name string) error
	DeleteProfile(ctx context.Context, id uuid.UUID) error
	SaveRecord(ctx context.Context, profileID uuid.UUID, rec growth.Record) error
	SaveFeeding(ctx context.Context, profileID uuid.UUID, f Feeding) error
	SaveMilestone(ctx context.Context, profileID uuid.UUID, m Milestone) error
}

// Option configures a ProfileStore.
type Option func(*ProfileStore)

// WithPersister writes accepted mutations through to p.
func WithPersister(p Persister) Option {
	return func(s *ProfileStore) {
		s.persister = p
	}
}

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *ProfileStore) {
		s.now = now
	}
}

type entry struct {
	mu      sync.RWMutex
	profile Profile
	deleted bool
}

// ProfileStore manages named profiles. Mutations of one profile are
// serialized by a per-profile lock; different profiles proceed independently.
//
// Creating, renaming, deleting and restoring profiles are serialized by
// structMu, which is held across persister calls. Only those operations write
// the profiles map. mu guards the map and the active name and is never held
// while a persister runs or while waiting for a profile lock, so the lock
// order is structMu, then profile, then mu.
type ProfileStore struct {
	structMu  sync.Mutex
	mu        sync.RWMutex
	profiles  map[string]*entry
	active    string
	persister Persister
	now       func() time.Time
}

// New returns a store holding only the placeholder profile, which is active.
func New(opts ...Option) *ProfileStore {
	s := &ProfileStore{
		profiles: make(map[string]*entry),
		active:   PlaceholderProfile,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.profiles[PlaceholderProfile] = &entry{profile: Profile{
		ID:        uuid.Nil,
		Name:      PlaceholderProfile,
		CreatedAt: s.now().UTC(),
	}}

	return s
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errEmptyName
	}

	return name, nil
}

// Restore loads previously persisted profiles. It does not write through to
// the persister and leaves the placeholder active.
func (s *ProfileStore) Restore(profiles []Profile) error {
	s.structMu.Lock()
	defer s.structMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	restored := make(map[string]*entry, len(profiles))

	for _, p := range profiles {
		name, err := normalizeName(p.Name)
		if err != nil {
			return err
		}

		if name == PlaceholderProfile {
			return fmt.Errorf("%w: %q", errReservedProfile, name)
		}

		if _, exists := s.profiles[name]; exists {
			return fmt.Errorf("%w: %q", errProfileExists, name)
		}

		if _, exists := restored[name]; exists {
			return fmt.Errorf("%w: %q", errProfileExists, name)
		}

		p = p.clone()
		p.Name = name

		seen := make(map[growth.RecordKey]struct{}, len(p.Records))
		for i := range p.Records {
			p.Records[i].Date = growth.Day(p.Records[i].Date)

			key := p.Records[i].Key()
			if _, dup := seen[key]; dup {
				return fmt.Errorf("%w: profile %q", growth.ErrDuplicateRecord, name)
			}

			seen[key] = struct{}{}
		}

		sortProfile(&p)
		restored[name] = &entry{profile: p}
	}

	for name, e := range restored {
		s.profiles[name] = e
	}

	logger.Info("profiles restored", "count", len(restored))

	return nil
}

// CreateProfile adds an empty profile and makes it active. Names are trimmed
// and must be unique (case-sensitive).
func (s *ProfileStore) CreateProfile(ctx context.Context, name string) (Profile, error) {
	name, err := normalizeName(name)
	if err != nil {
		logger.Warn("profile rejected", "reason", err)
		return Profile{}, err
	}

	s.structMu.Lock()
	defer s.structMu.Unlock()

	if s.exists(name) {
		logger.Warn("profile rejected", "name", name, "reason", "exists")
		return Profile{}, fmt.Errorf("%w: %q", errProfileExists, name)
	}

	p := Profile{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: s.now().UTC(),
	}

	if s.persister != nil {
		if err := s.persister.SaveProfile(ctx, p); err != nil {
			return Profile{}, fmt.Errorf("failed to persist profile: %w", err)
		}
	}

	s.mu.Lock()
	s.profiles[name] = &entry{profile: p}
	s.active = name
	s.mu.Unlock()

	logger.Info("profile created", "name", name, "id", p.ID)

	return p.clone(), nil
}

// DeleteProfile removes a profile and all of its data. The placeholder cannot
// be deleted. If the deleted profile was active, the placeholder becomes active.
func (s *ProfileStore) DeleteProfile(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == PlaceholderProfile {
		return errReservedProfile
	}

	s.structMu.Lock()
	defer s.structMu.Unlock()

	e, err := s.lookup(name)
	if err != nil {
		return err
	}

	e.mu.Lock()

	if s.persister != nil {
		if err := s.persister.DeleteProfile(ctx, e.profile.ID); err != nil {
			e.mu.Unlock()
			return fmt.Errorf("failed to delete persisted profile: %w", err)
		}
	}

	e.deleted = true

	s.mu.Lock()
	delete(s.profiles, name)

	if s.active == name {
		s.active = PlaceholderProfile
	}
	s.mu.Unlock()

	logger.Info("profile deleted", "name", name, "records", len(e.profile.Records))
	e.mu.Unlock()

	return nil
}

// RenameProfile changes a profile's name. Renaming the placeholder creates a
// real profile under the new name and makes it active; the placeholder itself
// remains available.
func (s *ProfileStore) RenameProfile(ctx context.Context, oldName, newName string) (Profile, error) {
	newName, err := normalizeName(newName)
	if err != nil {
		return Profile{}, err
	}

	oldName = strings.TrimSpace(oldName)
	if oldName == PlaceholderProfile {
		return s.CreateProfile(ctx, newName)
	}

	s.structMu.Lock()
	defer s.structMu.Unlock()

	e, err := s.lookup(oldName)
	if err != nil {
		return Profile{}, err
	}

	if oldName == newName {
		e.mu.RLock()
		defer e.mu.RUnlock()

		return e.profile.clone(), nil
	}

	if s.exists(newName) {
		return Profile{}, fmt.Errorf("%w: %q", errProfileExists, newName)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.RenameProfile(ctx, e.profile.ID, newName); err != nil {
			return Profile{}, fmt.Errorf("failed to persist rename: %w", err)
		}
	}

	e.profile.Name = newName

	s.mu.Lock()
	delete(s.profiles, oldName)
	s.profiles[newName] = e

	if s.active == oldName {
		s.active = newName
	}
	s.mu.Unlock()

	logger.Info("profile renamed", "from", oldName, "to", newName)

	return e.profile.clone(), nil
}

func (s *ProfileStore) exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.profiles[name]

	return ok
}

// SetActive selects the active profile.
func (s *ProfileStore) SetActive(name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[name]; !ok {
		return fmt.Errorf("%w: %q", growth.ErrProfileNotFound, name)
	}

	s.active = name

	return nil
}

// Active returns the name of the active profile.
func (s *ProfileStore) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.active
}

// Profiles summarizes every profile, placeholder first and the rest by name.
func (s *ProfileStore) Profiles() []Summary {
	s.mu.RLock()
	entries := make(map[string]*entry, len(s.profiles))
	for name, e := range s.profiles {
		entries[name] = e
	}
	active := s.active
	s.mu.RUnlock()

	summaries := make([]Summary, 0, len(entries))

	for _, e := range entries {
		e.mu.RLock()
		if !e.deleted {
			summaries = append(summaries, Summary{
				ID:          e.profile.ID,
				Name:        e.profile.Name,
				RecordCount: len(e.profile.Records),
				Active:      e.profile.Name == active,
				Placeholder: e.profile.IsPlaceholder(),
			})
		}
		e.mu.RUnlock()
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Placeholder != summaries[j].Placeholder {
			return summaries[i].Placeholder
		}

		return summaries[i].Name < summaries[j].Name
	})

	return summaries
}

// Profile returns a copy of the named profile.
func (s *ProfileStore) Profile(name string) (Profile, error) {
	e, err := s.lookup(name)
	if err != nil {
		return Profile{}, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.deleted {
		return Profile{}, fmt.Errorf("%w: %q", growth.ErrProfileNotFound, name)
	}

	return e.profile.clone(), nil
}

func (s *ProfileStore) lookup(name string) (*entry, error) {
	name = strings.TrimSpace(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", growth.ErrProfileNotFound, name)
	}

	return e, nil
}

// mutate runs fn with the named profile locked for writing. The placeholder
// and deleted profiles are rejected before fn runs.
func (s *ProfileStore) mutate(name string, fn func(e *entry) error) error {
	e, err := s.lookup(name)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deleted {
		return fmt.Errorf("%w: %q", growth.ErrProfileNotFound, name)
	}

	if e.profile.IsPlaceholder() {
		return growth.ErrInactiveProfile
	}

	return fn(e)
}

func sortProfile(p *Profile) {
	sort.SliceStable(p.Records, func(i, j int) bool {
		return p.Records[i].Date.Before(p.Records[j].Date)
	})
	sort.SliceStable(p.Feedings, func(i, j int) bool {
		return p.Feedings[i].Date.Before(p.Feedings[j].Date)
	})
	sort.SliceStable(p.Milestones, func(i, j int) bool {
		return p.Milestones[i].Date.Before(p.Milestones[j].Date)
	})
}
