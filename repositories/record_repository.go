package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/lchou/hoopstats/metrics"
	"github.com/lchou/hoopstats/models"
	"github.com/lchou/hoopstats/normalize"
	"github.com/lchou/hoopstats/stats"
)

var ErrRecordStoreCorrupt = errors.New("record store file is not readable")

// Canonical record file columns, in canonical order. Every save rewrites
// the full file with exactly this header.
var recordColumns = []string{
	"record_id",
	"date",
	"player",
	"shots_attempted",
	"shots_made",
	"won",
	"accuracy_pct",
}

type RecordRepository interface {
	GetAll(ctx context.Context) ([]models.GameRecord, error)
	GetByPlayer(ctx context.Context, name string) ([]models.GameRecord, error)
	SaveAll(ctx context.Context, records []models.GameRecord) error
	// FilePath exposes the backing file for byte-for-byte export.
	FilePath() string
}

type csvRecordRepository struct {
	path string
	mu   sync.Mutex
}

// NewCSVRecordRepository opens (creating if needed) the record file at
// path and backfills any canonical columns an older file revision lacks.
func NewCSVRecordRepository(path string) (RecordRepository, error) {
	if err := ensureColumns(path, recordColumns); err != nil {
		return nil, err
	}
	return &csvRecordRepository{path: path}, nil
}

func (r *csvRecordRepository) GetAll(_ context.Context) ([]models.GameRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *csvRecordRepository) GetByPlayer(ctx context.Context, name string) ([]models.GameRecord, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	canonical, ok := normalize.PlayerName(name)
	if !ok {
		return []models.GameRecord{}, nil
	}
	filtered := make([]models.GameRecord, 0)
	for _, rec := range all {
		if rec.PlayerName == canonical {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// SaveAll rewrites the whole file. The win indicator is re-normalized and
// the accuracy recomputed for every row on the way out, so the persisted
// file converges toward the canonical representation.
func (r *csvRecordRepository) SaveAll(_ context.Context, records []models.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rec.Won = normalize.WinIndicator(string(rec.Won))
		rec.AccuracyPct = stats.Accuracy(rec.ShotsAttempted, rec.ShotsMade)
		rows = append(rows, []string{
			rec.ID,
			rec.Date,
			rec.PlayerName,
			strconv.Itoa(rec.ShotsAttempted),
			strconv.Itoa(rec.ShotsMade),
			string(rec.Won),
			strconv.FormatFloat(rec.AccuracyPct, 'f', 2, 64),
		})
	}
	if err := writeTable(r.path, recordColumns, rows); err != nil {
		return err
	}
	metrics.StoreOps.WithLabelValues("records", "save").Inc()
	return nil
}

func (r *csvRecordRepository) FilePath() string {
	return r.path
}

func (r *csvRecordRepository) loadLocked() ([]models.GameRecord, error) {
	header, rows, err := readTable(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecordStoreCorrupt, err)
	}
	idx := columnIndex(header, recordColumns)

	records := make([]models.GameRecord, 0, len(rows))
	for _, row := range rows {
		name, _ := normalize.PlayerName(cell(row, idx["player"]))
		rec := models.GameRecord{
			ID:             cell(row, idx["record_id"]),
			Date:           cell(row, idx["date"]),
			PlayerName:     name,
			ShotsAttempted: normalize.Count(cell(row, idx["shots_attempted"])),
			ShotsMade:      normalize.Count(cell(row, idx["shots_made"])),
			Won:            normalize.WinIndicator(cell(row, idx["won"])),
		}
		rec.AccuracyPct = stats.Accuracy(rec.ShotsAttempted, rec.ShotsMade)
		records = append(records, rec)
	}
	metrics.StoreOps.WithLabelValues("records", "load").Inc()
	return records, nil
}
