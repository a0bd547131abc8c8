package collector

import "TrendSentinel/internal/model"

// Fetcher defines the interface for fetching price history.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	FetchWeeklyBars(symbol string, weeks int) ([]model.OHLCV, error)
	Name() string
}
