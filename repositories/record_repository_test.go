package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lchou/hoopstats/models"
)

func newRecordRepo(t *testing.T) (RecordRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	repo, err := NewCSVRecordRepository(path)
	require.NoError(t, err, "failed to open record store")
	return repo, path
}

func TestRecordRepositoryCreatesFileWithHeader(t *testing.T) {
	_, path := newRecordRepo(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "record_id,date,player,shots_attempted,shots_made,won,accuracy_pct\n", string(data))
}

func TestRecordRepositoryRoundTripConverges(t *testing.T) {
	repo, _ := newRecordRepo(t)
	ctx := context.Background()

	records := []models.GameRecord{
		{
			ID:             "r1",
			Date:           "2025-06-01",
			PlayerName:     "Amy",
			ShotsAttempted: 10,
			ShotsMade:      7,
			Won:            "✅ 是",  // historical spelling
			AccuracyPct:    12.34, // hand-edited garbage, must not survive
		},
	}
	require.NoError(t, repo.SaveAll(ctx, records))

	loaded, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, "2025-06-01", got.Date)
	assert.Equal(t, "Amy", got.PlayerName)
	assert.Equal(t, 10, got.ShotsAttempted)
	assert.Equal(t, 7, got.ShotsMade)
	assert.Equal(t, models.WinWon, got.Won, "win indicator should converge to canonical token")
	assert.Equal(t, 70.0, got.AccuracyPct, "accuracy should converge to the recomputed value")
}

func TestRecordRepositoryBlankWinStaysBlank(t *testing.T) {
	repo, path := newRecordRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []models.GameRecord{
		{ID: "r1", Date: "2025-06-01", PlayerName: "Amy", ShotsAttempted: 2, ShotsMade: 1},
	}))

	loaded, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, models.WinUnknown, loaded[0].Won)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "r1,2025-06-01,Amy,2,1,,50.00")
}

func TestRecordRepositoryToleratesDirtyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")

	// Extra unknown column, malformed counts, contaminated win field.
	dirty := "record_id,date,player,shots_attempted,shots_made,won,accuracy_pct,notes\n" +
		"r1,2025-06-01,  Amy ,10.0,abc,victory!!,999,irrelevant\n" +
		"r2,2025-06-02,nan,5,3,true,60,x\n"
	require.NoError(t, os.WriteFile(path, []byte(dirty), 0o644))

	repo, err := NewCSVRecordRepository(path)
	require.NoError(t, err)

	loaded, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "Amy", loaded[0].PlayerName)
	assert.Equal(t, 10, loaded[0].ShotsAttempted)
	assert.Equal(t, 0, loaded[0].ShotsMade, "malformed count coerces to 0")
	assert.Equal(t, models.WinLost, loaded[0].Won, "unknown win value coerces to lost")
	assert.Equal(t, 0.0, loaded[0].AccuracyPct)

	assert.Equal(t, "", loaded[1].PlayerName, "nan player reads as absent")
	assert.Equal(t, models.WinWon, loaded[1].Won)
}

func TestRecordRepositoryBackfillsMissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")

	// A pre-win-indicator file revision.
	old := "record_id,date,player,shots_attempted,shots_made\n" +
		"r1,2025-06-01,Amy,10,7\n"
	require.NoError(t, os.WriteFile(path, []byte(old), 0o644))

	repo, err := NewCSVRecordRepository(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "won")
	assert.Contains(t, string(data), "accuracy_pct")

	loaded, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, models.WinUnknown, loaded[0].Won)
	assert.Equal(t, 70.0, loaded[0].AccuracyPct)
}

func TestRecordRepositoryGetByPlayer(t *testing.T) {
	repo, _ := newRecordRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []models.GameRecord{
		{ID: "r1", Date: "2025-06-01", PlayerName: "Amy", ShotsAttempted: 10, ShotsMade: 7},
		{ID: "r2", Date: "2025-06-01", PlayerName: "Ben", ShotsAttempted: 8, ShotsMade: 4},
		{ID: "r3", Date: "2025-06-02", PlayerName: "Amy", ShotsAttempted: 6, ShotsMade: 3},
	}))

	amy, err := repo.GetByPlayer(ctx, " Amy ")
	require.NoError(t, err)
	require.Len(t, amy, 2)
	assert.Equal(t, "r1", amy[0].ID)
	assert.Equal(t, "r3", amy[1].ID)

	none, err := repo.GetByPlayer(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}
