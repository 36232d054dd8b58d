package models

import (
	"testing"
	"time"
)

func TestGroupByLocation(t *testing.T) {
	venues := []VenueSummary{
		{ID: 3, Name: "Hollywood Bowl", City: "LA", State: "CA"},
		{ID: 1, Name: "The Musical Hop", City: "Austin", State: "TX"},
		{ID: 2, Name: "Park Square Live Music & Coffee", City: "Austin", State: "TX"},
	}

	areas := GroupByLocation(venues)
	if len(areas) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(areas))
	}
	if areas[0].State != "CA" || areas[0].City != "LA" || len(areas[0].Venues) != 1 {
		t.Fatalf("unexpected first area: %+v", areas[0])
	}
	if areas[1].State != "TX" || areas[1].City != "Austin" || len(areas[1].Venues) != 2 {
		t.Fatalf("unexpected second area: %+v", areas[1])
	}
	if areas[1].Venues[0].ID != 1 || areas[1].Venues[1].ID != 2 {
		t.Fatalf("expected venue order preserved, got %+v", areas[1].Venues)
	}
}

func TestGroupByLocationOnlyMergesConsecutiveRows(t *testing.T) {
	venues := []VenueSummary{
		{ID: 1, City: "Austin", State: "TX"},
		{ID: 2, City: "LA", State: "CA"},
		{ID: 3, City: "Austin", State: "TX"},
	}

	areas := GroupByLocation(venues)
	if len(areas) != 3 {
		t.Fatalf("expected 3 areas for unsorted input, got %d", len(areas))
	}
}

func TestGroupByLocationEmpty(t *testing.T) {
	if areas := GroupByLocation(nil); len(areas) != 0 {
		t.Fatalf("expected no areas, got %+v", areas)
	}
}

func TestPartitionBoundary(t *testing.T) {
	now := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	tick := time.Nanosecond

	shows := []ShowWithDetails{
		{Show: Show{ID: 1, StartTime: now}},
		{Show: Show{ID: 2, StartTime: now.Add(-tick)}},
		{Show: Show{ID: 3, StartTime: now.Add(tick)}},
		{Show: Show{ID: 4, StartTime: now.Add(24 * time.Hour)}},
	}

	upcoming, past := Partition(shows, now)

	if len(upcoming) != 2 || upcoming[0].ID != 3 || upcoming[1].ID != 4 {
		t.Fatalf("unexpected upcoming: %+v", upcoming)
	}
	if len(past) != 2 || past[0].ID != 1 || past[1].ID != 2 {
		t.Fatalf("unexpected past: %+v", past)
	}
}

func TestPartitionFlipsAtStartTime(t *testing.T) {
	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	shows := []ShowWithDetails{{Show: Show{ID: 1, StartTime: start}}}

	upcoming, _ := Partition(shows, start.Add(-time.Nanosecond))
	if len(upcoming) != 1 {
		t.Fatalf("expected show to be upcoming before its start time")
	}

	_, past := Partition(shows, start)
	if len(past) != 1 {
		t.Fatalf("expected show to be past at its start time")
	}
}
