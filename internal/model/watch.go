package model

import "time"

// WatchEntry is the last observed state of a watched symbol.
type WatchEntry struct {
	Symbol      string      `json:"symbol"`
	Trend       TrendLabel  `json:"trend,omitempty"`
	Signal      SignalLabel `json:"signal,omitempty"`
	ADX         float64     `json:"adx"`
	LastClose   float64     `json:"last_close"`
	EvaluatedAt time.Time   `json:"evaluated_at"`
}

// WatchState is the persisted watch list.
type WatchState struct {
	Entries   []WatchEntry `json:"entries"`
	UpdatedAt time.Time    `json:"updated_at"`
}
