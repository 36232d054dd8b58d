package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"fyyur/internal/store"
)

type recordingStore struct {
	populated bool
	err       error
	calls     int
	data      store.SeedData
}

func (s *recordingStore) Seed(_ context.Context, data store.SeedData) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	if s.populated {
		return false, nil
	}
	s.data = data
	s.populated = true
	return true, nil
}

func TestBootstrapDemoDataSeedsEmptyDatabase(t *testing.T) {
	st := &recordingStore{}
	if err := bootstrapDemoData(context.Background(), st, time.UTC); err != nil {
		t.Fatalf("bootstrapDemoData returned error: %v", err)
	}

	if len(st.data.Venues) != 3 || len(st.data.Artists) != 3 || len(st.data.Shows) != 5 {
		t.Fatalf("seeded %d venues, %d artists, %d shows", len(st.data.Venues), len(st.data.Artists), len(st.data.Shows))
	}

	last := st.data.Shows[4]
	if st.data.Venues[last.Venue].Name != "Park Square Live Music & Coffee" || st.data.Artists[last.Artist].Name != "The Wild Sax Band" {
		t.Fatalf("unexpected booking on last show: venue %d artist %d", last.Venue, last.Artist)
	}
	want := time.Date(2035, 4, 15, 20, 0, 0, 0, time.UTC)
	if !last.StartTime.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, last.StartTime)
	}
}

func TestBootstrapDemoDataUsesShowLocation(t *testing.T) {
	loc := time.FixedZone("PDT", -7*60*60)
	st := &recordingStore{}
	if err := bootstrapDemoData(context.Background(), st, loc); err != nil {
		t.Fatalf("bootstrapDemoData returned error: %v", err)
	}

	want := time.Date(2019, 5, 22, 4, 30, 0, 0, time.UTC)
	if got := st.data.Shows[0].StartTime; !got.Equal(want) {
		t.Fatalf("expected first show at %v, got %v", want, got.UTC())
	}
}

func TestBootstrapDemoDataSkipsPopulatedDatabase(t *testing.T) {
	st := &recordingStore{populated: true}
	if err := bootstrapDemoData(context.Background(), st, time.UTC); err != nil {
		t.Fatalf("bootstrapDemoData returned error: %v", err)
	}
	if st.calls != 1 || st.data.Venues != nil {
		t.Fatalf("expected nothing written, got %d venues", len(st.data.Venues))
	}
}

func TestBootstrapDemoDataRetriesAfterFailure(t *testing.T) {
	st := &recordingStore{err: errors.New("insert show: boom")}
	if err := bootstrapDemoData(context.Background(), st, time.UTC); err == nil {
		t.Fatal("expected error when the seed cannot be stored")
	}
	if st.populated {
		t.Fatal("a failed seed must leave the database empty")
	}

	st.err = nil
	if err := bootstrapDemoData(context.Background(), st, time.UTC); err != nil {
		t.Fatalf("second bootstrapDemoData returned error: %v", err)
	}
	if len(st.data.Shows) != 5 {
		t.Fatalf("expected the retry to seed every show, got %d", len(st.data.Shows))
	}
}
