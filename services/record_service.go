package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lchou/hoopstats/metrics"
	"github.com/lchou/hoopstats/models"
	"github.com/lchou/hoopstats/normalize"
	"github.com/lchou/hoopstats/repositories"
	"github.com/lchou/hoopstats/stats"
)

type RecordService interface {
	Add(ctx context.Context, input CreateRecordInput) (*models.GameRecord, error)
	List(ctx context.Context) ([]models.GameRecord, error)
	// WorkingSet returns the editable subset for one player, or the whole
	// set when player is empty.
	WorkingSet(ctx context.Context, player string) ([]models.GameRecord, error)
	Reconcile(ctx context.Context, input ReconcileInput) (*ReconcileResult, error)
	// ExportFilePath exposes the record file for byte-for-byte download.
	ExportFilePath() string
}

type CreateRecordInput struct {
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Player         string `json:"player" validate:"required"`
	ShotsAttempted int    `json:"shots_attempted" validate:"min=0"`
	ShotsMade      int    `json:"shots_made" validate:"min=0"`
	Won            string `json:"won"`
}

func (in *CreateRecordInput) Validate() error {
	validate := validator.New()
	return validate.Struct(in)
}

// RecordEdit is one row of a submitted working set. Counts arrive as raw
// text from the spreadsheet surface and are coerced, never rejected.
type RecordEdit struct {
	ID             string `json:"record_id"`
	Date           string `json:"date"`
	Player         string `json:"player"`
	ShotsAttempted string `json:"shots_attempted"`
	ShotsMade      string `json:"shots_made"`
	Won            string `json:"won"`
}

// ReconcileInput carries an edited working set back to the store. Player
// set means the subset was filtered by that player and wholly replaces
// their records; empty means a whole-set edit keyed by surviving ids.
type ReconcileInput struct {
	Player  string       `json:"player,omitempty"`
	Records []RecordEdit `json:"records"`
}

type ReconcileResult struct {
	Kept     int `json:"kept"`
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

type recordService struct {
	recordRepo repositories.RecordRepository
	playerRepo repositories.PlayerRepository
}

func NewRecordService(recordRepo repositories.RecordRepository, playerRepo repositories.PlayerRepository) RecordService {
	return &recordService{
		recordRepo: recordRepo,
		playerRepo: playerRepo,
	}
}

func (s *recordService) Add(ctx context.Context, input CreateRecordInput) (*models.GameRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	name, ok := normalize.PlayerName(input.Player)
	if !ok {
		return nil, ErrPlayerNameRequired
	}
	if input.ShotsMade > input.ShotsAttempted {
		return nil, ErrMadeExceedsAttempts
	}

	// Records must reference a registered player at creation time. This is
	// not re-checked later: deleting a player leaves their records behind.
	if _, err := s.playerRepo.GetByName(ctx, name); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrUnknownPlayer
		}
		return nil, fmt.Errorf("failed to look up player %q: %w", name, err)
	}

	record := models.GameRecord{
		ID:             uuid.NewString(),
		Date:           input.Date,
		PlayerName:     name,
		ShotsAttempted: input.ShotsAttempted,
		ShotsMade:      input.ShotsMade,
		Won:            normalize.WinIndicator(input.Won),
	}
	record.AccuracyPct = stats.Accuracy(record.ShotsAttempted, record.ShotsMade)

	all, err := s.recordRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.recordRepo.SaveAll(ctx, append(all, record)); err != nil {
		return nil, fmt.Errorf("failed to save new record: %w", err)
	}
	return &record, nil
}

func (s *recordService) List(ctx context.Context) ([]models.GameRecord, error) {
	return s.recordRepo.GetAll(ctx)
}

func (s *recordService) WorkingSet(ctx context.Context, player string) ([]models.GameRecord, error) {
	if strings.TrimSpace(player) == "" {
		return s.recordRepo.GetAll(ctx)
	}
	return s.recordRepo.GetByPlayer(ctx, player)
}

// Reconcile merges an edited working set back into a fresh read of the
// full record set. The edited subset is authoritative for its filter
// criterion: rows missing from it are deleted, rows without an id are
// insertions and get one assigned, and derived fields are recomputed from
// the edited values rather than trusted.
func (s *recordService) Reconcile(ctx context.Context, input ReconcileInput) (*ReconcileResult, error) {
	full, err := s.recordRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var merged []models.GameRecord
	var result ReconcileResult
	mode := "whole-set"
	if player, ok := normalize.PlayerName(input.Player); ok {
		mode = "player"
		merged, result = reconcilePlayer(full, player, input.Records)
	} else {
		merged, result = reconcileWholeSet(full, input.Records)
	}

	if err := s.recordRepo.SaveAll(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to save reconciled records: %w", err)
	}
	metrics.ReconcileRows.WithLabelValues(mode, "kept").Add(float64(result.Kept))
	metrics.ReconcileRows.WithLabelValues(mode, "inserted").Add(float64(result.Inserted))
	metrics.ReconcileRows.WithLabelValues(mode, "deleted").Add(float64(result.Deleted))
	return &result, nil
}

func (s *recordService) ExportFilePath() string {
	return s.recordRepo.FilePath()
}

// reconcilePlayer replaces every record of one player with the edited
// subset. The player name on each edited row is force-set to the filter
// player, so an accidental edit of that column cannot move rows between
// players. Rows for all other players pass through untouched.
func reconcilePlayer(full []models.GameRecord, player string, edits []RecordEdit) ([]models.GameRecord, ReconcileResult) {
	var result ReconcileResult

	prior := 0
	merged := make([]models.GameRecord, 0, len(full)+len(edits))
	for _, rec := range full {
		if rec.PlayerName == player {
			prior++
			continue
		}
		merged = append(merged, rec)
	}

	for _, edit := range edits {
		rec := buildRecord(edit)
		rec.PlayerName = player
		if rec.ID == "" {
			rec.ID = uuid.NewString()
			result.Inserted++
		} else {
			result.Kept++
		}
		merged = append(merged, rec)
	}

	result.Deleted = prior - result.Kept
	if result.Deleted < 0 {
		// Edited rows carrying ids the fresh read no longer has; they are
		// still kept, so nothing was deleted.
		result.Deleted = 0
	}
	return merged, result
}

// reconcileWholeSet treats the ids present in the edited set as the
// surviving id set: on-disk rows with absent ids are deleted, present ids
// have their mutable fields overwritten. Rows without an id are
// insertions.
func reconcileWholeSet(full []models.GameRecord, edits []RecordEdit) ([]models.GameRecord, ReconcileResult) {
	var result ReconcileResult

	byID := make(map[string]RecordEdit, len(edits))
	for _, edit := range edits {
		if id := strings.TrimSpace(edit.ID); id != "" {
			byID[id] = edit
		}
	}

	merged := make([]models.GameRecord, 0, len(full)+len(edits))
	matched := make(map[string]bool, len(byID))
	for _, rec := range full {
		edit, ok := byID[rec.ID]
		if !ok {
			result.Deleted++
			continue
		}
		updated := buildRecord(edit)
		updated.ID = rec.ID // the id column is carried through opaquely
		merged = append(merged, updated)
		matched[rec.ID] = true
		result.Kept++
	}

	for _, edit := range edits {
		id := strings.TrimSpace(edit.ID)
		if id != "" && matched[id] {
			continue
		}
		rec := buildRecord(edit)
		if id == "" {
			rec.ID = uuid.NewString()
		} else {
			rec.ID = id
		}
		merged = append(merged, rec)
		result.Inserted++
	}
	return merged, result
}

// buildRecord converts one edited row into a record, coercing counts,
// re-normalizing the win indicator and recomputing the accuracy. The
// accuracy submitted by the editor is deliberately ignored.
func buildRecord(edit RecordEdit) models.GameRecord {
	name, _ := normalize.PlayerName(edit.Player)
	rec := models.GameRecord{
		ID:             strings.TrimSpace(edit.ID),
		Date:           strings.TrimSpace(edit.Date),
		PlayerName:     name,
		ShotsAttempted: normalize.Count(edit.ShotsAttempted),
		ShotsMade:      normalize.Count(edit.ShotsMade),
		Won:            normalize.WinIndicator(edit.Won),
	}
	rec.AccuracyPct = stats.Accuracy(rec.ShotsAttempted, rec.ShotsMade)
	return rec
}
