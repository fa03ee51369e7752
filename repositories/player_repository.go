package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lchou/hoopstats/metrics"
	"github.com/lchou/hoopstats/models"
	"github.com/lchou/hoopstats/normalize"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name already registered")
	ErrRosterCorrupt      = errors.New("roster file is not readable")
)

// Canonical roster file columns, in canonical order.
var playerColumns = []string{
	"player",
	"birthday",
	"age",
	"height",
	"gender",
	"weight",
}

type PlayerRepository interface {
	GetAll(ctx context.Context) ([]models.Player, error)
	GetByName(ctx context.Context, name string) (*models.Player, error)
	Create(ctx context.Context, player *models.Player) error
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, names []string) error
}

type csvPlayerRepository struct {
	path string
	mu   sync.Mutex
}

// NewCSVPlayerRepository opens (creating if needed) the roster file at
// path and backfills any canonical columns an older file revision lacks.
func NewCSVPlayerRepository(path string) (PlayerRepository, error) {
	if err := ensureColumns(path, playerColumns); err != nil {
		return nil, err
	}
	return &csvPlayerRepository{path: path}, nil
}

func (r *csvPlayerRepository) GetAll(_ context.Context) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *csvPlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	canonical, ok := normalize.PlayerName(name)
	if !ok {
		return nil, ErrPlayerNotFound
	}
	players, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range players {
		if players[i].Name == canonical {
			return &players[i], nil
		}
	}
	return nil, ErrPlayerNotFound
}

func (r *csvPlayerRepository) Create(_ context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, err := r.loadLocked()
	if err != nil {
		return err
	}
	for _, p := range players {
		if p.Name == player.Name {
			return ErrPlayerNameConflict
		}
	}
	return r.saveLocked(append(players, *player))
}

func (r *csvPlayerRepository) Update(_ context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, err := r.loadLocked()
	if err != nil {
		return err
	}
	for i := range players {
		if players[i].Name == player.Name {
			players[i] = *player
			return r.saveLocked(players)
		}
	}
	return ErrPlayerNotFound
}

// Delete removes the roster rows for the given names. Names not present
// are skipped; deleting nobody is not an error. Game records referencing
// the deleted players are left untouched on purpose.
func (r *csvPlayerRepository) Delete(_ context.Context, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, err := r.loadLocked()
	if err != nil {
		return err
	}
	doomed := make(map[string]bool, len(names))
	for _, n := range names {
		if canonical, ok := normalize.PlayerName(n); ok {
			doomed[canonical] = true
		}
	}
	remaining := players[:0]
	for _, p := range players {
		if !doomed[p.Name] {
			remaining = append(remaining, p)
		}
	}
	return r.saveLocked(remaining)
}

func (r *csvPlayerRepository) loadLocked() ([]models.Player, error) {
	header, rows, err := readTable(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRosterCorrupt, err)
	}
	idx := columnIndex(header, playerColumns)

	players := make([]models.Player, 0, len(rows))
	for _, row := range rows {
		name, ok := normalize.PlayerName(cell(row, idx["player"]))
		if !ok {
			continue // a roster row without a name identifies nothing
		}
		players = append(players, models.Player{
			Name:     name,
			Birthday: cell(row, idx["birthday"]),
			Age:      cell(row, idx["age"]),
			Height:   cell(row, idx["height"]),
			Gender:   models.Gender(cell(row, idx["gender"])),
			Weight:   cell(row, idx["weight"]),
		})
	}
	metrics.StoreOps.WithLabelValues("roster", "load").Inc()
	return players, nil
}

func (r *csvPlayerRepository) saveLocked(players []models.Player) error {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{
			p.Name,
			p.Birthday,
			p.Age,
			p.Height,
			string(p.Gender),
			p.Weight,
		})
	}
	if err := writeTable(r.path, playerColumns, rows); err != nil {
		return err
	}
	metrics.StoreOps.WithLabelValues("roster", "save").Inc()
	return nil
}
