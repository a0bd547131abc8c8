package collector

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/metrics"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/strategy"
)

// ErrNoSymbol is returned when a query names no symbol.
var ErrNoSymbol = errors.New("symbol is required")

// Query selects the series to analyse. Zero fields take the collector defaults.
type Query struct {
	Symbol    string
	Timeframe model.Timeframe
	Period    int
	From, To  time.Time
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher   Fetcher
	Lookback  int
	Period    int
	Timeframe model.Timeframe
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookback, period int, tf model.Timeframe, m *metrics.Metrics) *Collector {
	return &Collector{
		Fetcher:   fetcher,
		Lookback:  lookback,
		Period:    period,
		Timeframe: tf,
		Metrics:   m,
		Now:       time.Now,
	}
}

// Series fetches the close series for q.
func (c *Collector) Series(q Query) (*model.PriceSeries, error) {
	q = c.withDefaults(q)
	if q.Symbol == "" {
		return nil, ErrNoSymbol
	}

	var (
		bars []model.OHLCV
		err  error
	)
	switch q.Timeframe {
	case model.TimeframeWeekly:
		bars, err = c.Fetcher.FetchWeeklyBars(q.Symbol, c.Lookback)
	default:
		bars, err = c.Fetcher.FetchDailyBars(q.Symbol, c.Lookback)
	}
	if err != nil {
		c.Metrics.FetchFailed(c.Fetcher.Name())
		return nil, fmt.Errorf("fetch %s bars for %s: %w", q.Timeframe, q.Symbol, err)
	}

	return &model.PriceSeries{
		Symbol:    q.Symbol,
		Timeframe: q.Timeframe,
		Bars:      bars,
		Points:    model.Between(model.ClosePoints(bars), q.From, q.To),
		FetchedAt: c.Now(),
	}, nil
}

// Collect fetches the series for q and runs the DMI/ADX analysis on it.
func (c *Collector) Collect(q Query) (*model.TrendReport, error) {
	q = c.withDefaults(q)
	series, err := c.Series(q)
	if err != nil {
		return nil, err
	}
	return c.Analyze(series, q.Period)
}

// Analyze runs the DMI/ADX analysis on an already fetched series.
func (c *Collector) Analyze(series *model.PriceSeries, period int) (*model.TrendReport, error) {
	if period <= 0 {
		period = c.Period
	}

	start := time.Now()
	res, err := strategy.Analyze(series.Points, period)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", series.Symbol, err)
	}
	c.Metrics.ObserveComputation(res.Status, time.Since(start))

	report := &model.TrendReport{
		Symbol:      series.Symbol,
		Timeframe:   series.Timeframe,
		Points:      len(series.Points),
		Result:      res,
		GeneratedAt: c.Now(),
	}
	if n := len(series.Points); n > 0 {
		report.LastClose = series.Points[n-1].Close
		report.AsOf = series.Points[n-1].Time
	}
	c.fillYearRange(report, series.Bars)

	entry := log.WithFields(log.Fields{
		"symbol": series.Symbol,
		"points": report.Points,
		"period": res.Period,
		"status": res.Status,
	})
	if last, ok := res.Last(); ok {
		entry.WithFields(log.Fields{
			"adx":    fmt.Sprintf("%.2f", last.ADX),
			"signal": res.Signal.Signal,
		}).Debug("dmi computed")
	} else {
		entry.Warn("not enough history for DMI")
	}
	return report, nil
}

func (c *Collector) fillYearRange(report *model.TrendReport, bars []model.OHLCV) {
	if len(bars) == 0 {
		return
	}
	high, low, err := calculator.YearRange(bars)
	if err != nil {
		return
	}
	pos, err := calculator.RangePosition(bars[len(bars)-1].Close, high, low)
	if err != nil {
		log.WithField("symbol", report.Symbol).Warnf("52-week position: %v", err)
		return
	}
	report.Week52High = high
	report.Week52Low = low
	report.Week52Position = pos
}

func (c *Collector) withDefaults(q Query) Query {
	q.Symbol = strings.ToUpper(strings.TrimSpace(q.Symbol))
	if q.Timeframe == "" {
		q.Timeframe = c.Timeframe
	}
	if q.Timeframe == "" {
		q.Timeframe = model.TimeframeDaily
	}
	if q.Period <= 0 {
		q.Period = c.Period
	}
	return q
}
