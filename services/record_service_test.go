package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lchou/hoopstats/models"
	"github.com/lchou/hoopstats/repositories"
)

func newTestStores(t *testing.T) (repositories.RecordRepository, repositories.PlayerRepository) {
	t.Helper()
	dir := t.TempDir()
	recordRepo, err := repositories.NewCSVRecordRepository(filepath.Join(dir, "data.csv"))
	require.NoError(t, err)
	playerRepo, err := repositories.NewCSVPlayerRepository(filepath.Join(dir, "players.csv"))
	require.NoError(t, err)
	return recordRepo, playerRepo
}

func TestAddRecordAssignsIDAndComputesAccuracy(t *testing.T) {
	recordRepo, playerRepo := newTestStores(t)
	ctx := context.Background()
	require.NoError(t, playerRepo.Create(ctx, &models.Player{Name: "Amy"}))

	svc := NewRecordService(recordRepo, playerRepo)
	record, err := svc.Add(ctx, CreateRecordInput{
		Date:           "2025-06-01",
		Player:         " Amy ",
		ShotsAttempted: 10,
		ShotsMade:      7,
		Won:            "yes",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "Amy", record.PlayerName)
	assert.Equal(t, models.WinWon, record.Won)
	assert.Equal(t, 70.0, record.AccuracyPct)

	saved, err := recordRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, record.ID, saved[0].ID)
}

func TestAddRecordRejectsMadeOverAttempts(t *testing.T) {
	recordRepo, playerRepo := newTestStores(t)
	ctx := context.Background()
	require.NoError(t, playerRepo.Create(ctx, &models.Player{Name: "Amy"}))

	svc := NewRecordService(recordRepo, playerRepo)
	_, err := svc.Add(ctx, CreateRecordInput{
		Date:           "2025-06-01",
		Player:         "Amy",
		ShotsAttempted: 3,
		ShotsMade:      5,
	})
	assert.ErrorIs(t, err, ErrMadeExceedsAttempts)

	saved, err := recordRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved, "rejected record must not be persisted")
}

func TestAddRecordRequiresRegisteredPlayer(t *testing.T) {
	recordRepo, playerRepo := newTestStores(t)
	svc := NewRecordService(recordRepo, playerRepo)

	_, err := svc.Add(context.Background(), CreateRecordInput{
		Date:           "2025-06-01",
		Player:         "Stranger",
		ShotsAttempted: 5,
		ShotsMade:      2,
	})
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestReconcilePlayerFilteredReplacesSubset(t *testing.T) {
	recordRepo, playerRepo := newTestStores(t)
	ctx := context.Background()
	svc := NewRecordService(recordRepo, playerRepo)

	require.NoError(t, recordRepo.SaveAll(ctx, []models.GameRecord{
		{ID: "1", Date: "2025-06-01", PlayerName: "A", ShotsAttempted: 10, ShotsMade: 5, Won: models.WinWon},
		{ID: "2", Date: "2025-06-01", PlayerName: "B", ShotsAttempted: 8, ShotsMade: 4, Won: models.WinLost},
	}))

	// The working set for A drops row 1 and adds a brand-new row.
	result, err := svc.Reconcile(ctx, ReconcileInput{
		Player: "A",
		Records: []RecordEdit{
			{Date: "2025-06-02", Player: "B", ShotsAttempted: "6", ShotsMade: "3", Won: "win"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, &ReconcileResult{Kept: 0, Inserted: 1, Deleted: 1}, result)

	saved, err := recordRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)

	// B's untouched record survives.
	assert.Equal(t, "2", saved[0].ID)
	assert.Equal(t, "B", saved[0].PlayerName)

	// The new row got a fresh id and its player force-set to A despite the
	// edited name saying B.
	assert.NotEmpty(t, saved[1].ID)
	assert.NotEqual(t, "1", saved[1].ID)
	assert.Equal(t, "A", saved[1].PlayerName)
	assert.Equal(t, 50.0, saved[1].AccuracyPct)
}

func TestReconcilePlayerFilteredKeepsEditedRows(t *testing.T) {
	recordRepo, playerRepo := newTestStores(t)
	ctx := context.Background()
	svc := NewRecordService(recordRepo, playerRepo)

	require.NoError(t, recordRepo.SaveAll(ctx, []models.GameRecord{
		{ID: "1", Date: "2025-06-01", PlayerName: "A", ShotsAttempted: 10, ShotsMade: 5},
		{ID: "2", Date: "2025-06-03", PlayerName: "A", ShotsAttempted: 4, ShotsMade: 1},
	}))

	result, err := svc.Reconcile(ctx, ReconcileInput{
		Player: "A",
		Records: []RecordEdit{
			{ID: "1", Date: "2025-06-01", Player: "A", ShotsAttempted: "12", ShotsMade: "9", Won: "L"},
			{ID: "2", Date: "2025-06-03", Player: "A", ShotsAttempted: "4", ShotsMade: "1"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, &ReconcileResult{Kept: 2, Inserted: 0, Deleted: 0}, result)

	saved, err := recordRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, 12, saved[0].ShotsAttempted)
	assert.Equal(t, 75.0, saved[0].AccuracyPct, "accuracy recomputed from edited counts")
}

func TestReconcileWholeSetDeletesAbsentIDs(t *testing.T) {
	recordRepo, playerRepo := newTestStores(t)
	ctx := context.Background()
	svc := NewRecordService(recordRepo, playerRepo)

	require.NoError(t, recordRepo.SaveAll(ctx, []models.GameRecord{
		{ID: "1", Date: "2025-06-01", PlayerName: "A", ShotsAttempted: 10, ShotsMade: 5},
		{ID: "2", Date: "2025-06-02", PlayerName: "B", ShotsAttempted: 8, ShotsMade: 4},
		{ID: "3", Date: "2025-06-03", PlayerName: "C", ShotsAttempted: 6, ShotsMade: 3},
	}))

	result, err := svc.Reconcile(ctx, ReconcileInput{
		Records: []RecordEdit{
			{ID: " 1 ", Date: "2025-06-01", Player: "A", ShotsAttempted: "10", ShotsMade: "8", Won: "W"},
			{ID: "3", Date: "2025-06-03", Player: "C", ShotsAttempted: "6", ShotsMade: "0", Won: "L"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, &ReconcileResult{Kept: 2, Inserted: 0, Deleted: 1}, result)

	saved, err := recordRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)

	assert.Equal(t, "1", saved[0].ID, "ids are matched after trimming")
	assert.Equal(t, 8, saved[0].ShotsMade)
	assert.Equal(t, 80.0, saved[0].AccuracyPct)
	assert.Equal(t, "3", saved[1].ID)
	assert.Equal(t, 0.0, saved[1].AccuracyPct)
}

func TestReconcileWholeSetInsertsRowsWithoutID(t *testing.T) {
	recordRepo, playerRepo := newTestStores(t)
	ctx := context.Background()
	svc := NewRecordService(recordRepo, playerRepo)

	require.NoError(t, recordRepo.SaveAll(ctx, []models.GameRecord{
		{ID: "1", Date: "2025-06-01", PlayerName: "A", ShotsAttempted: 10, ShotsMade: 5},
	}))

	result, err := svc.Reconcile(ctx, ReconcileInput{
		Records: []RecordEdit{
			{ID: "1", Date: "2025-06-01", Player: "A", ShotsAttempted: "10", ShotsMade: "5"},
			{Date: "2025-06-04", Player: "B", ShotsAttempted: "7", ShotsMade: "7", Won: "won"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, &ReconcileResult{Kept: 1, Inserted: 1, Deleted: 0}, result)

	saved, err := recordRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotEmpty(t, saved[1].ID)
	assert.Equal(t, "B", saved[1].PlayerName)
	assert.Equal(t, models.WinWon, saved[1].Won)
	assert.Equal(t, 100.0, saved[1].AccuracyPct)
}
