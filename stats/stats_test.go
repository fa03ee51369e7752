package stats

import (
	"testing"

	"github.com/lchou/hoopstats/models"
)

func TestAccuracy(t *testing.T) {
	cases := []struct {
		attempted, made int
		want            float64
	}{
		{0, 0, 0},
		{10, 7, 70},
		{3, 1, 33.33},
		{3, 2, 66.67},
		{8, 8, 100},
	}
	for _, c := range cases {
		if got := Accuracy(c.attempted, c.made); got != c.want {
			t.Fatalf("Accuracy(%d, %d) = %v, want %v", c.attempted, c.made, got, c.want)
		}
	}
}

func TestAccuracyStaysInRange(t *testing.T) {
	for attempted := 0; attempted <= 40; attempted++ {
		for made := 0; made <= attempted; made++ {
			got := Accuracy(attempted, made)
			if got < 0 || got > 100 {
				t.Fatalf("Accuracy(%d, %d) = %v out of [0,100]", attempted, made, got)
			}
		}
	}
}

func TestWinRate(t *testing.T) {
	records := []models.GameRecord{
		{Won: models.WinWon},
		{Won: models.WinLost},
		{Won: models.WinWon},
		{Won: models.WinUnknown},
	}
	if got := WinRate(records); got != 50 {
		t.Fatalf("WinRate = %v, want 50", got)
	}
	if got := WinRate(nil); got != 0 {
		t.Fatalf("WinRate(nil) = %v, want 0", got)
	}
}

func TestMonthlyMedalsBronzeAtBoundary(t *testing.T) {
	// Two same-month games summing to 7/20 = 35% accuracy: exactly bronze.
	records := []models.GameRecord{
		{Date: "2025-06-03", ShotsAttempted: 10, ShotsMade: 7},
		{Date: "2025-06-17", ShotsAttempted: 10, ShotsMade: 0},
	}
	medals := MonthlyMedals(records)
	if medals.Bronze != 1 || medals.Gold != 0 || medals.Silver != 0 {
		t.Fatalf("unexpected medals: %+v", medals)
	}
}

func TestMonthlyMedalsPerMonthClassification(t *testing.T) {
	records := []models.GameRecord{
		{Date: "2025-01-05", ShotsAttempted: 10, ShotsMade: 6}, // 60% gold
		{Date: "2025-02-05", ShotsAttempted: 10, ShotsMade: 5}, // 50% silver
		{Date: "2025-03-05", ShotsAttempted: 10, ShotsMade: 3}, // 30% nothing
		{Date: "bad-date", ShotsAttempted: 10, ShotsMade: 10},  // excluded
	}
	medals := MonthlyMedals(records)
	want := MedalCounts{Gold: 1, Silver: 1, Bronze: 0}
	if medals != want {
		t.Fatalf("medals = %+v, want %+v", medals, want)
	}
}

func TestTrendSeriesAveragesPerDateAndSorts(t *testing.T) {
	records := []models.GameRecord{
		{Date: "2025-06-02", ShotsAttempted: 10, ShotsMade: 8}, // 80
		{Date: "2025-06-02", ShotsAttempted: 10, ShotsMade: 6}, // 60 -> mean 70
		{Date: "2025-06-01", ShotsAttempted: 10, ShotsMade: 5}, // 50
		{Date: "junk", ShotsAttempted: 10, ShotsMade: 10},
	}
	points := TrendSeries(records)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Date != "2025-06-01" || points[0].AccuracyPct != 50 {
		t.Fatalf("unexpected first point: %+v", points[0])
	}
	if points[1].Date != "2025-06-02" || points[1].AccuracyPct != 70 {
		t.Fatalf("unexpected second point: %+v", points[1])
	}
}
