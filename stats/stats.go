// Package stats holds the pure calculators behind the player statistics,
// medal and trend views. Everything here is total: bad input yields a zero
// value, never an error.
package stats

import (
	"math"
	"sort"

	"github.com/lchou/hoopstats/models"
	"github.com/lchou/hoopstats/normalize"
)

// Medal accuracy thresholds, percent. Inclusive at the lower bound.
const (
	goldThreshold   = 60
	silverThreshold = 50
	bronzeThreshold = 35
)

type MedalCounts struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

type TrendPoint struct {
	Date        string  `json:"date"`
	AccuracyPct float64 `json:"accuracy_pct"`
}

// Accuracy returns made/attempted as a percentage rounded to two decimals
// (round half away from zero). Zero attempts yields 0 rather than dividing
// by zero.
func Accuracy(attempted, made int) float64 {
	if attempted <= 0 {
		return 0
	}
	pct := float64(made) / float64(attempted) * 100
	return math.Round(pct*100) / 100
}

// WinRate returns the percentage of records marked as won, rounded the
// same way as Accuracy. Records with an absent win indicator count as not
// won, matching how the record file treats them.
func WinRate(records []models.GameRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	wins := 0
	for _, r := range records {
		if r.Won == models.WinWon {
			wins++
		}
	}
	pct := float64(wins) / float64(len(records)) * 100
	return math.Round(pct*100) / 100
}

// MonthlyMedals groups one player's records by calendar month, computes a
// single accuracy over each month's summed attempts and makes, and awards
// at most one medal per month: >=60 gold, [50,60) silver, [35,50) bronze.
// Records whose date does not parse are excluded from grouping only.
func MonthlyMedals(records []models.GameRecord) MedalCounts {
	type monthTotals struct {
		attempted int
		made      int
	}
	months := make(map[string]*monthTotals)
	for _, r := range records {
		d, ok := normalize.Date(r.Date)
		if !ok {
			continue
		}
		key := d.Format("2006-01")
		mt, ok := months[key]
		if !ok {
			mt = &monthTotals{}
			months[key] = mt
		}
		mt.attempted += r.ShotsAttempted
		mt.made += r.ShotsMade
	}

	var medals MedalCounts
	for _, mt := range months {
		acc := Accuracy(mt.attempted, mt.made)
		switch {
		case acc >= goldThreshold:
			medals.Gold++
		case acc >= silverThreshold:
			medals.Silver++
		case acc >= bronzeThreshold:
			medals.Bronze++
		}
	}
	return medals
}

// TrendSeries returns the mean per-record accuracy for each date, sorted
// ascending. This is the data source for the single-player trend chart and
// the multi-player comparison chart.
func TrendSeries(records []models.GameRecord) []TrendPoint {
	type dayTotals struct {
		sum   float64
		count int
	}
	days := make(map[string]*dayTotals)
	for _, r := range records {
		if _, ok := normalize.Date(r.Date); !ok {
			continue
		}
		dt, ok := days[r.Date]
		if !ok {
			dt = &dayTotals{}
			days[r.Date] = dt
		}
		dt.sum += Accuracy(r.ShotsAttempted, r.ShotsMade)
		dt.count++
	}

	points := make([]TrendPoint, 0, len(days))
	for date, dt := range days {
		points = append(points, TrendPoint{
			Date:        date,
			AccuracyPct: math.Round(dt.sum/float64(dt.count)*100) / 100,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}
