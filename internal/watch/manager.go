package watch

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"TrendSentinel/internal/model"
)

// ErrUnknownSymbol is returned for symbols that are not on the watch list.
var ErrUnknownSymbol = errors.New("symbol is not watched")

// Change describes the outcome of recording a new report for a symbol.
type Change struct {
	Previous model.WatchEntry
	Current  model.WatchEntry
	// Changed is true when the signal label differs from the previous
	// evaluation. The first evaluation of a symbol is not a change.
	Changed bool
}

// Manager keeps the watch list and the last signal per symbol, persisted to disk.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchState
	filePath string
}

// NewManager creates a Manager, loading state from disk and adding any seed
// symbols that are not yet watched.
func NewManager(filePath string, seed []string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load watch state: %w", err)
	}

	m := &Manager{state: state, filePath: filePath}
	for _, s := range seed {
		m.add(s)
	}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Symbols returns the watched symbols in order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.state.Entries))
	for i, e := range m.state.Entries {
		out[i] = e.Symbol
	}
	return out
}

// GetState returns a copy of the current watch state.
func (m *Manager) GetState() model.WatchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Entry returns the last recorded entry for symbol.
func (m *Manager) Entry(symbol string) (model.WatchEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(normalize(symbol)); i >= 0 {
		return m.state.Entries[i], true
	}
	return model.WatchEntry{}, false
}

// Add puts symbol on the watch list. It reports false if it was already there.
func (m *Manager) Add(symbol string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.snapshot()
	if !m.add(symbol) {
		return false, nil
	}
	if err := m.save(); err != nil {
		m.restore(prev)
		return false, err
	}
	return true, nil
}

// Remove takes symbol off the watch list.
func (m *Manager) Remove(symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(normalize(symbol))
	if i < 0 {
		return ErrUnknownSymbol
	}
	prev := m.snapshot()
	m.state.Entries = append(m.state.Entries[:i], m.state.Entries[i+1:]...)
	if err := m.save(); err != nil {
		m.restore(prev)
		return err
	}
	return nil
}

// Update records report as the latest evaluation of its symbol.
// Reports without a signal leave the stored signal untouched.
func (m *Manager) Update(report *model.TrendReport) (Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(normalize(report.Symbol))
	if i < 0 {
		return Change{}, ErrUnknownSymbol
	}
	before := m.snapshot()
	prev := m.state.Entries[i]
	cur := prev
	cur.LastClose = report.LastClose
	cur.EvaluatedAt = report.GeneratedAt

	res := report.Result
	if res == nil || res.Signal == nil {
		m.state.Entries[i] = cur
		if err := m.save(); err != nil {
			m.restore(before)
			return Change{}, err
		}
		return Change{Previous: prev, Current: cur}, nil
	}
	last, _ := res.Last()
	cur.Trend = res.Signal.Trend
	cur.Signal = res.Signal.Signal
	cur.ADX = last.ADX
	m.state.Entries[i] = cur

	change := Change{
		Previous: prev,
		Current:  cur,
		Changed:  prev.Signal != "" && prev.Signal != cur.Signal,
	}
	if err := m.save(); err != nil {
		m.restore(before)
		return Change{}, err
	}
	if change.Changed {
		log.Infof("signal change on %s: %s -> %s", cur.Symbol, prev.Signal, cur.Signal)
	}
	return change, nil
}

func (m *Manager) add(symbol string) bool {
	symbol = normalize(symbol)
	if symbol == "" || m.index(symbol) >= 0 {
		return false
	}
	m.state.Entries = append(m.state.Entries, model.WatchEntry{Symbol: symbol})
	sort.SliceStable(m.state.Entries, func(a, b int) bool {
		return m.state.Entries[a].Symbol < m.state.Entries[b].Symbol
	})
	return true
}

func (m *Manager) index(symbol string) int {
	for i, e := range m.state.Entries {
		if e.Symbol == symbol {
			return i
		}
	}
	return -1
}

// snapshot copies the state so a failed save can be undone.
func (m *Manager) snapshot() model.WatchState {
	st := *m.state
	st.Entries = append([]model.WatchEntry(nil), m.state.Entries...)
	return st
}

func (m *Manager) restore(st model.WatchState) {
	*m.state = st
}

func (m *Manager) save() error {
	if err := SaveState(m.filePath, m.state); err != nil {
		log.Errorf("save watch state: %v", err)
		return fmt.Errorf("save watch state: %w", err)
	}
	return nil
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
