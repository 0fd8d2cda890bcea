package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camuig/clac/internal/calculator"
)

func newTestRepository(t *testing.T, maxItems int) *Repository {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return NewRepository(db, maxItems)
}

func addAveraging(t *testing.T, repo *Repository, price float64) *HistoryEntry {
	t.Helper()
	in := calculator.AveragingDownInput{CurrentPrice: price, CurrentQuantity: 1, AdditionalPrice: price / 2, AdditionalQuantity: 1}
	res, err := calculator.AveragingDown(in)
	require.NoError(t, err)

	entry, err := repo.AddHistory(KindAveragingDown, in, res)
	require.NoError(t, err)
	return entry
}

func TestAddHistory_RoundTrip(t *testing.T) {
	repo := newTestRepository(t, 10)

	entry := addAveraging(t, repo, 10000)
	assert.NotEmpty(t, entry.EntryID)
	assert.False(t, entry.CreatedAt.IsZero())

	got, err := repo.GetHistory(entry.EntryID)
	require.NoError(t, err)
	assert.Equal(t, KindAveragingDown, got.Kind)

	var in calculator.AveragingDownInput
	require.NoError(t, got.DecodeInput(&in))
	assert.Equal(t, 10000.0, in.CurrentPrice)

	var res calculator.AveragingDownResult
	require.NoError(t, got.DecodeResult(&res))
	assert.Equal(t, 7500.0, res.AveragePrice)
}

func TestListHistory_NewestFirstAndCapped(t *testing.T) {
	repo := newTestRepository(t, 10)

	var ids []string
	for i := 1; i <= 12; i++ {
		ids = append(ids, addAveraging(t, repo, float64(i*1000)).EntryID)
	}

	entries, err := repo.ListHistory()
	require.NoError(t, err)
	require.Len(t, entries, 10)

	for i, e := range entries {
		assert.Equal(t, ids[11-i], e.EntryID, "position %d", i)
	}

	_, err = repo.GetHistory(ids[0])
	assert.ErrorIs(t, err, ErrNotFound, "oldest entry trimmed")
	_, err = repo.GetHistory(ids[1])
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListHistory_CustomCap(t *testing.T) {
	repo := newTestRepository(t, 3)
	for i := 1; i <= 5; i++ {
		addAveraging(t, repo, float64(i*100))
	}

	entries, err := repo.ListHistory()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRemoveHistory(t *testing.T) {
	repo := newTestRepository(t, 10)
	a := addAveraging(t, repo, 1000)
	b := addAveraging(t, repo, 2000)

	require.NoError(t, repo.RemoveHistory(a.EntryID))
	assert.ErrorIs(t, repo.RemoveHistory(a.EntryID), ErrNotFound)
	assert.ErrorIs(t, repo.RemoveHistory("no-such-id"), ErrNotFound)

	entries, err := repo.ListHistory()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, b.EntryID, entries[0].EntryID)
}

func TestClearHistory(t *testing.T) {
	repo := newTestRepository(t, 10)
	addAveraging(t, repo, 1000)
	addAveraging(t, repo, 2000)

	require.NoError(t, repo.ClearHistory())

	entries, err := repo.ListHistory()
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, repo.ClearHistory(), "clearing an empty history is fine")
}

func TestHistoryEntry_MarshalJSON(t *testing.T) {
	repo := newTestRepository(t, 10)

	in := calculator.TargetAverageInput{CurrentPrice: 9500, CurrentQuantity: 100, CurrentAveragePrice: 10000, TargetAveragePrice: 9000, NewPrice: 8000}
	res, err := calculator.TargetAverage(in)
	require.NoError(t, err)

	entry, err := repo.AddHistory(KindTargetAverage, in, res)
	require.NoError(t, err)

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded struct {
		ID        string                         `json:"id"`
		Timestamp int64                          `json:"timestamp"`
		Type      string                         `json:"type"`
		Input     calculator.TargetAverageInput  `json:"input"`
		Result    calculator.TargetAverageResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded), string(data))

	assert.Equal(t, entry.EntryID, decoded.ID)
	assert.Equal(t, entry.CreatedAt.UnixMilli(), decoded.Timestamp)
	assert.Equal(t, KindTargetAverage, decoded.Type)
	assert.Equal(t, in, decoded.Input)
	assert.Equal(t, 100.0, decoded.Result.RequiredQuantity)
	assert.Contains(t, string(data), fmt.Sprintf(`"id":%q`, entry.EntryID))
}
