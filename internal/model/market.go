package model

import "time"

// Timeframe selects the bar interval a series is built from.
type Timeframe string

const (
	TimeframeDaily  Timeframe = "daily"
	TimeframeWeekly Timeframe = "weekly"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PricePoint is one closing price observation.
type PricePoint struct {
	Time  time.Time `json:"timestamp"`
	Close float64   `json:"close"`
}

// PriceSeries holds the close series of a symbol for analysis. Bars keeps the
// full fetched history, Points only the closes inside the requested range.
type PriceSeries struct {
	Symbol    string
	Timeframe Timeframe
	Bars      []OHLCV
	Points    []PricePoint
	FetchedAt time.Time
}

// ClosePoints extracts the close of every bar, keeping bar order.
func ClosePoints(bars []OHLCV) []PricePoint {
	points := make([]PricePoint, len(bars))
	for i, b := range bars {
		points[i] = PricePoint{Time: b.Time, Close: b.Close}
	}
	return points
}

// Between returns the points whose time falls in [from, to]. A zero bound is open.
func Between(points []PricePoint, from, to time.Time) []PricePoint {
	if from.IsZero() && to.IsZero() {
		return points
	}
	out := make([]PricePoint, 0, len(points))
	for _, p := range points {
		if !from.IsZero() && p.Time.Before(from) {
			continue
		}
		if !to.IsZero() && p.Time.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out
}
