// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/nourishnav/growth"
)

func testContext() context.Context {
	return context.Background()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRecord(date time.Time, age int) growth.Record {
	return growth.Record{
		Date:                date,
		AgeMonths:           age,
		Sex:                 growth.SexGirl,
		WeightKg:            8.5,
		HeightCm:            72,
		HeadCircumferenceCm: 44,
	}
}

func mustCreateProfile(t *testing.T, s *ProfileStore, name string) Profile {
	t.Helper()

	p, err := s.CreateProfile(testContext(), name)
	if err != nil {
		t.Fatalf("failed to create profile %q: %v", name, err)
	}

	return p
}

func mustAddRecord(t *testing.T, s *ProfileStore, name string, rec growth.Record) growth.Record {
	t.Helper()

	added, err := s.AddRecord(testContext(), name, rec)
	if err != nil {
		t.Fatalf("failed to add record to %q: %v", name, err)
	}

	return added
}

func TestNewStoreHasActivePlaceholder(t *testing.T) {
	t.Parallel()

	s := New()

	if s.Active() != PlaceholderProfile {
		t.Fatalf("expected placeholder to be active, got %q", s.Active())
	}

	profiles := s.Profiles()
	if len(profiles) != 1 || !profiles[0].Placeholder || !profiles[0].Active {
		t.Fatalf("expected only the active placeholder, got %+v", profiles)
	}

	_, err := s.AddRecord(testContext(), PlaceholderProfile, testRecord(day(2025, 1, 1), 6))
	if !errors.Is(err, growth.ErrInactiveProfile) {
		t.Fatalf("expected ErrInactiveProfile, got %v", err)
	}

	if !errors.Is(err, growth.ErrValidation) {
		t.Fatalf("expected inactive profile error to be a validation error")
	}
}

func TestCreateProfile(t *testing.T) {
	t.Parallel()

	s := New()
	p := mustCreateProfile(t, s, "  Amal  ")

	if p.Name != "Amal" || p.ID == uuid.Nil {
		t.Fatalf("unexpected profile %+v", p)
	}

	if s.Active() != "Amal" {
		t.Fatalf("expected new profile to become active, got %q", s.Active())
	}

	for _, name := range []string{"", "   ", "Amal", PlaceholderProfile} {
		if _, err := s.CreateProfile(testContext(), name); !errors.Is(err, growth.ErrValidation) {
			t.Fatalf("CreateProfile(%q): expected ErrValidation, got %v", name, err)
		}
	}

	mustCreateProfile(t, s, "amal")

	if len(s.Profiles()) != 3 {
		t.Fatalf("expected case-sensitive names to coexist, got %+v", s.Profiles())
	}
}

func TestAddRecordKeepsDateOrder(t *testing.T) {
	t.Parallel()

	s := New()
	mustCreateProfile(t, s, "Noor")

	mustAddRecord(t, s, "Noor", testRecord(day(2025, 3, 1), 8))
	mustAddRecord(t, s, "Noor", testRecord(day(2025, 1, 1), 6))
	mustAddRecord(t, s, "Noor", testRecord(day(2025, 2, 1), 7))

	records, err := s.Records("Noor")
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}

	for i := 1; i < len(records); i++ {
		if records[i].Date.Before(records[i-1].Date) {
			t.Fatalf("records out of order: %+v", records)
		}
	}

	latest, err := s.LatestRecord("Noor")
	if err != nil {
		t.Fatalf("LatestRecord failed: %v", err)
	}

	if latest.AgeMonths != 8 {
		t.Fatalf("expected latest record at 8 months, got %d", latest.AgeMonths)
	}
}

func TestAddRecordRejectsDuplicate(t *testing.T) {
	t.Parallel()

	s := New()
	mustCreateProfile(t, s, "Noor")

	first := mustAddRecord(t, s, "Noor", testRecord(day(2025, 1, 1), 6))

	dup := testRecord(day(2025, 1, 1).Add(9*time.Hour), 6)
	dup.WeightKg = 9.9

	if _, err := s.AddRecord(testContext(), "Noor", dup); !errors.Is(err, growth.ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}

	records, _ := s.Records("Noor")
	if len(records) != 1 || records[0].ID != first.ID || records[0].WeightKg != 8.5 {
		t.Fatalf("expected stored data unchanged, got %+v", records)
	}

	// same date at a different age is a different record
	mustAddRecord(t, s, "Noor", testRecord(day(2025, 1, 1), 7))
}

func TestAddRecordValidation(t *testing.T) {
	t.Parallel()

	s := New()
	mustCreateProfile(t, s, "Noor")

	bad := testRecord(day(2025, 1, 1), 30)
	if _, err := s.AddRecord(testContext(), "Noor", bad); !errors.Is(err, growth.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	zeroWeight := testRecord(day(2025, 1, 2), 3)
	zeroWeight.WeightKg = 0

	if _, err := s.AddRecord(testContext(), "Noor", zeroWeight); !errors.Is(err, growth.ErrValidation) {
		t.Fatalf("expected ErrValidation for zero weight, got %v", err)
	}

	if _, err := s.AddRecord(testContext(), "Ghost", testRecord(day(2025, 1, 1), 3)); !errors.Is(err, growth.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	records, _ := s.Records("Noor")
	if len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}

func TestLatestRecordNoData(t *testing.T) {
	t.Parallel()

	s := New()
	mustCreateProfile(t, s, "Noor")

	if _, err := s.LatestRecord("Noor"); !errors.Is(err, growth.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}

	if _, err := s.LatestRecord(PlaceholderProfile); !errors.Is(err, growth.ErrNoData) {
		t.Fatalf("expected ErrNoData for placeholder, got %v", err)
	}
}

func TestDeleteProfile(t *testing.T) {
	t.Parallel()

	t.Run("non-active profile leaves active data untouched", func(t *testing.T) {
		t.Parallel()

		s := New()
		mustCreateProfile(t, s, "Old")
		mustAddRecord(t, s, "Old", testRecord(day(2025, 1, 1), 2))
		mustCreateProfile(t, s, "Current")
		mustAddRecord(t, s, "Current", testRecord(day(2025, 1, 1), 4))

		if err := s.DeleteProfile(testContext(), "Old"); err != nil {
			t.Fatalf("DeleteProfile failed: %v", err)
		}

		if s.Active() != "Current" {
			t.Fatalf("expected Current to stay active, got %q", s.Active())
		}

		records, err := s.Records("Current")
		if err != nil || len(records) != 1 || records[0].AgeMonths != 4 {
			t.Fatalf("expected Current records untouched, got %+v (%v)", records, err)
		}

		if _, err := s.Records("Old"); !errors.Is(err, growth.ErrProfileNotFound) {
			t.Fatalf("expected deleted profile to be gone, got %v", err)
		}
	})

	t.Run("active profile falls back to placeholder", func(t *testing.T) {
		t.Parallel()

		s := New()
		mustCreateProfile(t, s, "Current")

		if err := s.DeleteProfile(testContext(), "Current"); err != nil {
			t.Fatalf("DeleteProfile failed: %v", err)
		}

		if s.Active() != PlaceholderProfile {
			t.Fatalf("expected placeholder to be active, got %q", s.Active())
		}
	})

	t.Run("guards", func(t *testing.T) {
		t.Parallel()

		s := New()

		if err := s.DeleteProfile(testContext(), PlaceholderProfile); !errors.Is(err, growth.ErrValidation) {
			t.Fatalf("expected placeholder deletion to be rejected, got %v", err)
		}

		if err := s.DeleteProfile(testContext(), "Ghost"); !errors.Is(err, growth.ErrProfileNotFound) {
			t.Fatalf("expected ErrProfileNotFound, got %v", err)
		}
	})
}

func TestRenameProfile(t *testing.T) {
	t.Parallel()

	s := New()
	mustCreateProfile(t, s, "Baby")
	mustAddRecord(t, s, "Baby", testRecord(day(2025, 1, 1), 1))

	p, err := s.RenameProfile(testContext(), "Baby", "Layla")
	if err != nil {
		t.Fatalf("RenameProfile failed: %v", err)
	}

	if p.Name != "Layla" || len(p.Records) != 1 || s.Active() != "Layla" {
		t.Fatalf("unexpected rename result %+v active=%q", p, s.Active())
	}

	if _, err := s.Profile("Baby"); !errors.Is(err, growth.ErrProfileNotFound) {
		t.Fatalf("expected old name to be gone, got %v", err)
	}

	mustCreateProfile(t, s, "Omar")

	if _, err := s.RenameProfile(testContext(), "Omar", "Layla"); !errors.Is(err, growth.ErrValidation) {
		t.Fatalf("expected rename onto existing name to fail, got %v", err)
	}

	if _, err := s.RenameProfile(testContext(), "Ghost", "Zed"); !errors.Is(err, growth.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	if err := s.SetActive(PlaceholderProfile); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	named, err := s.RenameProfile(testContext(), PlaceholderProfile, "Sara")
	if err != nil {
		t.Fatalf("renaming placeholder failed: %v", err)
	}

	if named.Name != "Sara" || s.Active() != "Sara" {
		t.Fatalf("expected placeholder rename to create active Sara, got %+v active=%q", named, s.Active())
	}

	if _, err := s.Profile(PlaceholderProfile); err != nil {
		t.Fatalf("expected placeholder to remain, got %v", err)
	}

	mustAddRecord(t, s, "Sara", testRecord(day(2025, 2, 1), 3))
}

func TestSetActive(t *testing.T) {
	t.Parallel()

	s := New()
	mustCreateProfile(t, s, "A")
	mustCreateProfile(t, s, "B")

	if err := s.SetActive("A"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	if s.Active() != "A" {
		t.Fatalf("expected A active, got %q", s.Active())
	}

	if err := s.SetActive("C"); !errors.Is(err, growth.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestFeedingsAndMilestones(t *testing.T) {
	t.Parallel()

	s := New()
	mustCreateProfile(t, s, "Noor")

	if _, err := s.AddFeeding(testContext(), "Noor", Feeding{Date: day(2025, 1, 2), Type: FeedingFormula, Food: "Formula", Amount: "120 ml"}); err != nil {
		t.Fatalf("AddFeeding failed: %v", err)
	}

	if _, err := s.AddFeeding(testContext(), "Noor", Feeding{Date: day(2025, 1, 1), Type: FeedingSolidFood, Food: "Banana"}); err != nil {
		t.Fatalf("AddFeeding failed: %v", err)
	}

	if _, err := s.AddFeeding(testContext(), "Noor", Feeding{Date: day(2025, 1, 1), Type: "Juice"}); !errors.Is(err, growth.ErrValidation) {
		t.Fatalf("expected unknown feeding type to fail, got %v", err)
	}

	if _, err := s.AddFeeding(testContext(), PlaceholderProfile, Feeding{Date: day(2025, 1, 1), Type: FeedingFormula}); !errors.Is(err, growth.ErrInactiveProfile) {
		t.Fatalf("expected ErrInactiveProfile, got %v", err)
	}

	feedings, err := s.Feedings("Noor")
	if err != nil {
		t.Fatalf("Feedings failed: %v", err)
	}

	if len(feedings) != 2 || feedings[0].Food != "Banana" {
		t.Fatalf("expected feedings sorted by date, got %+v", feedings)
	}

	if _, err := s.AddMilestone(testContext(), "Noor", Milestone{Date: day(2025, 2, 1), Description: "Crawling"}); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}

	if _, err := s.AddMilestone(testContext(), "Noor", Milestone{Date: day(2025, 2, 1), Description: "  "}); !errors.Is(err, growth.ErrValidation) {
		t.Fatalf("expected empty milestone to fail, got %v", err)
	}

	milestones, err := s.Milestones("Noor")
	if err != nil || len(milestones) != 1 || milestones[0].Description != "Crawling" {
		t.Fatalf("unexpected milestones %+v (%v)", milestones, err)
	}
}

func TestRestore(t *testing.T) {
	t.Parallel()

	s := New()

	err := s.Restore([]Profile{{
		ID:   uuid.New(),
		Name: "Noor",
		Records: []growth.Record{
			testRecord(day(2025, 3, 1), 8),
			testRecord(day(2025, 1, 1), 6),
		},
	}})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if s.Active() != PlaceholderProfile {
		t.Fatalf("expected placeholder to stay active after restore")
	}

	latest, err := s.LatestRecord("Noor")
	if err != nil || latest.AgeMonths != 8 {
		t.Fatalf("expected restored records sorted, got %+v (%v)", latest, err)
	}

	dup := []Profile{{Name: "Dup", Records: []growth.Record{testRecord(day(2025, 1, 1), 6), testRecord(day(2025, 1, 1), 6)}}}
	if err := s.Restore(dup); !errors.Is(err, growth.ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}

	if err := s.Restore([]Profile{{Name: "Noor"}}); !errors.Is(err, growth.ErrValidation) {
		t.Fatalf("expected existing name to be rejected, got %v", err)
	}

	if _, err := s.Profile("Dup"); !errors.Is(err, growth.ErrProfileNotFound) {
		t.Fatalf("expected failed restore to add nothing, got %v", err)
	}
}

func TestConcurrentMutations(t *testing.T) {
	t.Parallel()

	s := New()
	names := []string{"A", "B", "C", "D"}

	for _, name := range names {
		mustCreateProfile(t, s, name)
	}

	var wg sync.WaitGroup

	for _, name := range names {
		for age := 0; age <= 24; age++ {
			wg.Add(1)

			go func(name string, age int) {
				defer wg.Done()

				if _, err := s.AddRecord(testContext(), name, testRecord(day(2025, 1, 1).AddDate(0, age, 0), age)); err != nil {
					t.Errorf("AddRecord(%s, %d) failed: %v", name, age, err)
				}

				if _, err := s.LatestRecord(name); err != nil {
					t.Errorf("LatestRecord(%s) failed: %v", name, err)
				}
			}(name, age)
		}
	}

	wg.Wait()

	for _, name := range names {
		records, err := s.Records(name)
		if err != nil {
			t.Fatalf("Records failed: %v", err)
		}

		if len(records) != 25 {
			t.Fatalf("expected 25 records for %s, got %d", name, len(records))
		}

		for i := 1; i < len(records); i++ {
			if records[i].Date.Before(records[i-1].Date) {
				t.Fatalf("records for %s out of order", name)
			}
		}
	}
}

type failingPersister struct {
	memoryPersister
	fail error
}

func (f *failingPersister) SaveRecord(ctx context.Context, id uuid.UUID, rec growth.Record) error {
	if f.fail != nil {
		return f.fail
	}

	return f.memoryPersister.SaveRecord(ctx, id, rec)
}

func (f *failingPersister) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if f.fail != nil {
		return f.fail
	}

	return f.memoryPersister.DeleteProfile(ctx, id)
}

type memoryPersister struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]string
	records  map[uuid.UUID]int
	events   []string
}

func (m *memoryPersister) log(format string, args ...interface{}) {
	m.events = append(m.events, fmt.Sprintf(format, args...))
}

func (m *memoryPersister) SaveProfile(_ context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profiles == nil {
		m.profiles = make(map[uuid.UUID]string)
		m.records = make(map[uuid.UUID]int)
	}

	m.profiles[p.ID] = p.Name
	m.log("save profile %s", p.Name)

	return nil
}

func (m *memoryPersister) RenameProfile(_ context.Context, id uuid.UUID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[id] = name
	m.log("rename profile %s", name)

	return nil
}

func (m *memoryPersister) DeleteProfile(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.profiles, id)
	delete(m.records, id)
	m.log("delete profile")

	return nil
}

func (m *memoryPersister) SaveRecord(_ context.Context, id uuid.UUID, _ growth.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[id]++
	m.log("save record")

	return nil
}

func (m *memoryPersister) SaveFeeding(context.Context, uuid.UUID, Feeding) error {
	return nil
}

func (m *memoryPersister) SaveMilestone(context.Context, uuid.UUID, Milestone) error {
	return nil
}

func TestPersisterWriteThrough(t *testing.T) {
	t.Parallel()

	p := &memoryPersister{}
	s := New(WithPersister(p))

	created := mustCreateProfile(t, s, "Noor")
	mustAddRecord(t, s, "Noor", testRecord(day(2025, 1, 1), 6))

	if _, err := s.RenameProfile(testContext(), "Noor", "Nora"); err != nil {
		t.Fatalf("RenameProfile failed: %v", err)
	}

	if p.profiles[created.ID] != "Nora" || p.records[created.ID] != 1 {
		t.Fatalf("expected persister to see profile and record, got %+v %+v", p.profiles, p.records)
	}

	if err := s.DeleteProfile(testContext(), "Nora"); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}

	if _, ok := p.profiles[created.ID]; ok {
		t.Fatalf("expected persister to drop the profile")
	}
}

func TestPersisterFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	p := &failingPersister{}
	s := New(WithPersister(p))

	mustCreateProfile(t, s, "Noor")
	p.fail = boom

	if _, err := s.AddRecord(testContext(), "Noor", testRecord(day(2025, 1, 1), 6)); !errors.Is(err, boom) {
		t.Fatalf("expected persister error, got %v", err)
	}

	if _, err := s.LatestRecord("Noor"); !errors.Is(err, growth.ErrNoData) {
		t.Fatalf("expected no records after failed persist, got %v", err)
	}

	if err := s.DeleteProfile(testContext(), "Noor"); !errors.Is(err, boom) {
		t.Fatalf("expected persister error, got %v", err)
	}

	if _, err := s.Profile("Noor"); err != nil {
		t.Fatalf("expected profile to survive failed delete, got %v", err)
	}
}

type blockingPersister struct {
	memoryPersister
	entered chan struct{}
	release chan struct{}
}

func (b *blockingPersister) SaveProfile(ctx context.Context, p Profile) error {
	if p.Name == "Slow" {
		close(b.entered)
		<-b.release
	}

	return b.memoryPersister.SaveProfile(ctx, p)
}

func TestSlowProfileWriteDoesNotBlockOtherProfiles(t *testing.T) {
	t.Parallel()

	p := &blockingPersister{entered: make(chan struct{}), release: make(chan struct{})}
	s := New(WithPersister(p))
	mustCreateProfile(t, s, "Noor")

	created := make(chan error, 1)

	go func() {
		_, err := s.CreateProfile(testContext(), "Slow")
		created <- err
	}()

	<-p.entered

	reads := make(chan error, 1)

	go func() {
		_ = s.Profiles()
		_ = s.Active()

		if _, err := s.Records("Noor"); err != nil {
			reads <- err
			return
		}

		_, err := s.AddRecord(testContext(), "Noor", testRecord(day(2025, 1, 1), 6))
		reads <- err
	}()

	select {
	case err := <-reads:
		if err != nil {
			close(p.release)
			t.Fatalf("expected reads and writes on other profiles to succeed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		close(p.release)
		t.Fatalf("other profiles were blocked while a profile write was pending")
	}

	if got := len(s.Profiles()); got != 2 {
		close(p.release)
		t.Fatalf("expected pending profile to stay hidden, got %d profiles", got)
	}

	close(p.release)

	if err := <-created; err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	if s.Active() != "Slow" {
		t.Fatalf("expected Slow to be active, got %q", s.Active())
	}
}
