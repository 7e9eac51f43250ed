package stats

import (
	"testing"
	"time"

	"github.com/naijawatch/naijawatch/internal/classify"
)

func incident(daysAgo int, typ classify.Type, total, christians, muslims, churches, mosques int, now time.Time) classify.Incident {
	return classify.Incident{
		ID:         "incident-test",
		Type:       typ,
		Date:       now.AddDate(0, 0, -daysAgo),
		Casualties: classify.Casualties{Total: total, Christians: christians, Muslims: muslims},
		BuildingsDestroyed: classify.Buildings{
			Churches: churches,
			Mosques:  mosques,
		},
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil, time.Now())
	if s != (Statistics{}) {
		t.Fatalf("empty incident set produced %+v, want zero value", s)
	}
}

func TestAggregateWindows(t *testing.T) {
	// Mid-month reference so the week window stays inside August.
	now := time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC)

	incidents := []classify.Incident{
		incident(0, classify.TypeBanditAttack, 5, 5, 0, 1, 0, now),         // today
		incident(3, classify.TypeBokoHaram, 3, 0, 3, 0, 2, now),            // this week
		incident(40, classify.TypeFulaniHerdsmen, 100, 50, 50, 4, 0, now),  // outside every window
	}

	s := Aggregate(incidents, now)

	if s.TotalDeaths.Daily != 5 {
		t.Fatalf("daily = %d, want 5", s.TotalDeaths.Daily)
	}
	if s.TotalDeaths.Weekly != 8 {
		t.Fatalf("weekly = %d, want 8", s.TotalDeaths.Weekly)
	}
	// Monthly is calendar-month: both August incidents count, the
	// 40-day-old one (July) does not.
	if s.TotalDeaths.Monthly != 8 {
		t.Fatalf("monthly = %d, want 8", s.TotalDeaths.Monthly)
	}

	// Rolling 30-day breakdowns exclude the 40-day-old incident entirely.
	if s.Casualties.Christians != 5 || s.Casualties.Muslims != 3 {
		t.Fatalf("split = %d/%d, want 5/3", s.Casualties.Christians, s.Casualties.Muslims)
	}
	if s.BuildingsDestroyed.Churches != 1 || s.BuildingsDestroyed.Mosques != 2 {
		t.Fatalf("buildings = %d/%d, want 1/2", s.BuildingsDestroyed.Churches, s.BuildingsDestroyed.Mosques)
	}
	if s.Attacks.Bandits != 1 || s.Attacks.BokoHaram != 1 || s.Attacks.FulaniHerdsmen != 0 {
		t.Fatalf("attacks = %+v", s.Attacks)
	}
}

func TestAggregateSkipsFutureIncidents(t *testing.T) {
	now := time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC)
	incidents := []classify.Incident{
		incident(-2, classify.TypeBanditAttack, 50, 0, 0, 0, 0, now),
		incident(0, classify.TypeBanditAttack, 4, 0, 0, 0, 0, now),
	}

	s := Aggregate(incidents, now)
	if s.TotalDeaths.Daily != 4 || s.TotalDeaths.Weekly != 4 || s.TotalDeaths.Monthly != 4 {
		t.Fatalf("future incident leaked into totals: %+v", s.TotalDeaths)
	}
	if s.Attacks.Bandits != 1 {
		t.Fatalf("attacks.bandits = %d, want 1", s.Attacks.Bandits)
	}
}

func TestAggregateMonthBoundary(t *testing.T) {
	// First of the month: only same-day incidents belong to the month window.
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	incidents := []classify.Incident{
		incident(0, classify.TypeUnknown, 6, 0, 0, 0, 0, now),
		incident(1, classify.TypeUnknown, 9, 0, 0, 0, 0, now), // Aug 31
	}

	s := Aggregate(incidents, now)
	if s.TotalDeaths.Monthly != 6 {
		t.Fatalf("monthly = %d, want 6 (previous month excluded)", s.TotalDeaths.Monthly)
	}
	if s.TotalDeaths.Weekly != 15 {
		t.Fatalf("weekly = %d, want 15 (rolling week crosses the month)", s.TotalDeaths.Weekly)
	}
	// Unknown types land in Other.
	if s.Attacks.Other != 2 {
		t.Fatalf("attacks.other = %d, want 2", s.Attacks.Other)
	}
}

func TestAggregateOtherBucket(t *testing.T) {
	now := time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC)
	incidents := []classify.Incident{
		incident(1, classify.TypeCommunalClash, 0, 0, 0, 0, 0, now),
		incident(1, classify.TypeKidnapping, 0, 0, 0, 0, 0, now),
		incident(1, classify.TypeTerrorAttack, 0, 0, 0, 0, 0, now),
		incident(1, classify.TypeUnknown, 0, 0, 0, 0, 0, now),
	}

	s := Aggregate(incidents, now)
	if s.Attacks.Other != 4 {
		t.Fatalf("attacks.other = %d, want 4", s.Attacks.Other)
	}
}
