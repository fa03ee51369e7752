package services

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lchou/hoopstats/models"
	"github.com/lchou/hoopstats/normalize"
	"github.com/lchou/hoopstats/repositories"
	"github.com/lchou/hoopstats/stats"
	"github.com/lchou/hoopstats/storage"
)

type StatsService interface {
	PlayerSummary(ctx context.Context, name string) (*PlayerSummary, error)
	PlayerTrend(ctx context.Context, name string) ([]stats.TrendPoint, error)
	// Compare returns per-date accuracy series for several players. The
	// names come from the record set, not the roster, so orphaned records
	// still show up in comparisons.
	Compare(ctx context.Context, names []string) (map[string][]stats.TrendPoint, error)
}

// PlayerSummary is the single-player statistics tile: roster details plus
// aggregates over all of the player's records.
type PlayerSummary struct {
	Player         models.Player     `json:"player"`
	Games          int               `json:"games"`
	TotalAttempted int               `json:"total_attempted"`
	TotalMade      int               `json:"total_made"`
	AccuracyPct    float64           `json:"accuracy_pct"`
	WinRatePct     float64           `json:"win_rate_pct"`
	Medals         stats.MedalCounts `json:"medals"`
	PhotoURL       string            `json:"photo_url,omitempty"`
}

type statsService struct {
	recordRepo repositories.RecordRepository
	playerRepo repositories.PlayerRepository
	photos     storage.PhotoStore
}

func NewStatsService(recordRepo repositories.RecordRepository, playerRepo repositories.PlayerRepository, photos storage.PhotoStore) StatsService {
	return &statsService{
		recordRepo: recordRepo,
		playerRepo: playerRepo,
		photos:     photos,
	}
}

func (s *statsService) PlayerSummary(ctx context.Context, name string) (*PlayerSummary, error) {
	player, err := s.getRosterPlayer(ctx, name)
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.GetByPlayer(ctx, player.Name)
	if err != nil {
		return nil, err
	}

	summary := PlayerSummary{
		Player:   *player,
		Games:    len(records),
		Medals:   stats.MonthlyMedals(records),
		PhotoURL: s.photos.PublicURL(photoKey(player.Name)),
	}
	for _, r := range records {
		summary.TotalAttempted += r.ShotsAttempted
		summary.TotalMade += r.ShotsMade
	}
	summary.AccuracyPct = stats.Accuracy(summary.TotalAttempted, summary.TotalMade)
	summary.WinRatePct = stats.WinRate(records)
	return &summary, nil
}

func (s *statsService) PlayerTrend(ctx context.Context, name string) ([]stats.TrendPoint, error) {
	canonical, ok := normalize.PlayerName(name)
	if !ok {
		return nil, ErrPlayerNameRequired
	}
	records, err := s.recordRepo.GetByPlayer(ctx, canonical)
	if err != nil {
		return nil, err
	}
	return stats.TrendSeries(records), nil
}

func (s *statsService) Compare(ctx context.Context, names []string) (map[string][]stats.TrendPoint, error) {
	canonical := make([]string, 0, len(names))
	for _, name := range names {
		if n, ok := normalize.PlayerName(name); ok {
			canonical = append(canonical, n)
		}
	}
	if len(canonical) == 0 {
		return nil, ErrNoPlayersSelected
	}

	var mu sync.Mutex
	series := make(map[string][]stats.TrendPoint, len(canonical))

	g, gCtx := errgroup.WithContext(ctx)
	for _, name := range canonical {
		g.Go(func() error {
			records, err := s.recordRepo.GetByPlayer(gCtx, name)
			if err != nil {
				return err
			}
			points := stats.TrendSeries(records)
			mu.Lock()
			series[name] = points
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *statsService) getRosterPlayer(ctx context.Context, name string) (*models.Player, error) {
	player, err := s.playerRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}
