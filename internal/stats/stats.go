// Package stats rolls the current incident set up into time-windowed
// counters. Aggregate is a pure function of the incidents and the reference
// instant, so callers control the clock and results are reproducible.
package stats

import (
	"time"

	"github.com/naijawatch/naijawatch/internal/classify"
)

// recent30Days is the rolling window feeding the casualty, building, and
// attack-type breakdowns. Distinct from the calendar-month window used for
// the monthly death toll.
const recent30Days = 30

// DeathTolls are casualty sums per time window.
type DeathTolls struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`
}

// CasualtySplit is the religious breakdown over the rolling 30-day window.
type CasualtySplit struct {
	Christians int `json:"christians"`
	Muslims    int `json:"muslims"`
}

// BuildingTolls count destroyed worship buildings over the rolling window.
type BuildingTolls struct {
	Churches int `json:"churches"`
	Mosques  int `json:"mosques"`
}

// AttackCounts count rolling-window incidents per attacker category. Other
// collects everything without a named armed group: unknown, communal
// clashes, kidnappings, and unattributed terror attacks.
type AttackCounts struct {
	Bandits        int `json:"bandits"`
	FulaniHerdsmen int `json:"fulaniHerdsmen"`
	BokoHaram      int `json:"bokoHaram"`
	ISWAP          int `json:"iswap"`
	Other          int `json:"other"`
}

// Statistics is the aggregate view served to the presentation layer.
type Statistics struct {
	TotalDeaths        DeathTolls    `json:"totalDeaths"`
	Casualties         CasualtySplit `json:"casualties"`
	BuildingsDestroyed BuildingTolls `json:"buildingsDestroyed"`
	Attacks            AttackCounts  `json:"attacks"`
}

// Aggregate computes Statistics for the incident set at the given instant.
// All comparisons use calendar days in now's location. An empty incident set
// yields the zero value, not an error.
func Aggregate(incidents []classify.Incident, now time.Time) Statistics {
	var s Statistics
	if len(incidents) == 0 {
		return s
	}

	loc := now.Location()
	today := truncateDay(now, loc)
	weekAgo := today.AddDate(0, 0, -7)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	thirtyDaysAgo := today.AddDate(0, 0, -recent30Days)

	for _, inc := range incidents {
		day := truncateDay(inc.Date, loc)
		if day.After(today) {
			continue
		}

		if day.Equal(today) {
			s.TotalDeaths.Daily += inc.Casualties.Total
		}
		if !day.Before(weekAgo) {
			s.TotalDeaths.Weekly += inc.Casualties.Total
		}
		if !day.Before(monthStart) {
			s.TotalDeaths.Monthly += inc.Casualties.Total
		}

		if day.Before(thirtyDaysAgo) {
			continue
		}
		s.Casualties.Christians += inc.Casualties.Christians
		s.Casualties.Muslims += inc.Casualties.Muslims
		s.BuildingsDestroyed.Churches += inc.BuildingsDestroyed.Churches
		s.BuildingsDestroyed.Mosques += inc.BuildingsDestroyed.Mosques

		switch inc.Type {
		case classify.TypeBanditAttack:
			s.Attacks.Bandits++
		case classify.TypeFulaniHerdsmen:
			s.Attacks.FulaniHerdsmen++
		case classify.TypeBokoHaram:
			s.Attacks.BokoHaram++
		case classify.TypeISWAP:
			s.Attacks.ISWAP++
		default:
			s.Attacks.Other++
		}
	}

	return s
}

func truncateDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
