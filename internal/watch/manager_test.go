package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentinel/internal/model"
)

func report(symbol string, sig model.SignalLabel, adx float64) *model.TrendReport {
	r := &model.TrendReport{
		Symbol:      symbol,
		LastClose:   123.4,
		GeneratedAt: time.Date(2025, 1, 6, 22, 30, 0, 0, time.UTC),
		Result: &model.DMIResult{
			Period:  14,
			Status:  model.StatusComputed,
			Records: []model.IndicatorRecord{{ADX: adx}},
		},
	}
	if sig != "" {
		r.Result.Signal = &model.TrendSignal{Trend: model.TrendModerate, Signal: sig}
	}
	return r
}

func TestManager_SeedAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "watch.json")
	m, err := NewManager(path, []string{"msft", "AAPL", "aapl", " "})
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, m.Symbols())

	reloaded, err := NewManager(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, reloaded.Symbols())
}

func TestManager_AddRemove(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "watch.json"), []string{"AAPL"})
	require.NoError(t, err)

	added, err := m.Add("nvda")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = m.Add("NVDA")
	require.NoError(t, err)
	assert.False(t, added)

	require.NoError(t, m.Remove("aapl"))
	assert.Equal(t, []string{"NVDA"}, m.Symbols())
	assert.ErrorIs(t, m.Remove("AAPL"), ErrUnknownSymbol)
}

func TestManager_UpdateDetectsSignalChange(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "watch.json"), []string{"AAPL"})
	require.NoError(t, err)

	first, err := m.Update(report("AAPL", model.SignalMildlyBullish, 22))
	require.NoError(t, err)
	assert.False(t, first.Changed, "first evaluation is not a change")
	assert.Equal(t, model.SignalMildlyBullish, first.Current.Signal)

	same, err := m.Update(report("AAPL", model.SignalMildlyBullish, 23))
	require.NoError(t, err)
	assert.False(t, same.Changed)

	flipped, err := m.Update(report("aapl", model.SignalBullish, 31))
	require.NoError(t, err)
	assert.True(t, flipped.Changed)
	assert.Equal(t, model.SignalMildlyBullish, flipped.Previous.Signal)
	assert.Equal(t, model.SignalBullish, flipped.Current.Signal)
	assert.Equal(t, 31.0, flipped.Current.ADX)

	entry, ok := m.Entry("AAPL")
	require.True(t, ok)
	assert.Equal(t, model.SignalBullish, entry.Signal)
	assert.Equal(t, 123.4, entry.LastClose)
}

func TestManager_UpdateWithoutSignalKeepsLast(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "watch.json"), []string{"AAPL"})
	require.NoError(t, err)

	_, err = m.Update(report("AAPL", model.SignalBearish, 40))
	require.NoError(t, err)

	change, err := m.Update(report("AAPL", "", 0))
	require.NoError(t, err)
	assert.False(t, change.Changed)
	assert.Equal(t, model.SignalBearish, change.Current.Signal)
}

func TestManager_UpdateUnknown(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "watch.json"), nil)
	require.NoError(t, err)
	_, err = m.Update(report("TSLA", model.SignalBullish, 30))
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

// unwritable swaps the state directory for a plain file so every save fails.
func unwritable(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0644))
}

func TestManager_FailedSaveRollsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	m, err := NewManager(filepath.Join(dir, "watch.json"), []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	_, err = m.Update(report("AAPL", model.SignalBullish, 30))
	require.NoError(t, err)
	before := m.GetState()

	unwritable(t, dir)

	added, err := m.Add("NVDA")
	require.Error(t, err)
	assert.False(t, added)

	require.Error(t, m.Remove("MSFT"))

	_, err = m.Update(report("AAPL", model.SignalBearish, 40))
	require.Error(t, err)
	_, err = m.Update(report("AAPL", "", 0))
	require.Error(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, m.Symbols())
	after := m.GetState()
	assert.Equal(t, before.Entries, after.Entries)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))

	// the retry after the disk recovers starts from the untouched state
	require.NoError(t, os.Remove(dir))
	change, err := m.Update(report("AAPL", model.SignalBearish, 40))
	require.NoError(t, err)
	assert.True(t, change.Changed)
	assert.Equal(t, model.SignalBullish, change.Previous.Signal)
}

func TestLoadState_Missing(t *testing.T) {
	st, err := LoadState(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Empty(t, st.Entries)
}
