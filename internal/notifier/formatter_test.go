package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TrendSentinel/internal/model"
	"TrendSentinel/internal/recorder"
)

func computedReport() *model.TrendReport {
	sig := model.TrendSignal{
		Trend:       model.TrendStrongUp,
		Signal:      model.SignalBullish,
		Description: "ADX is above 25 and +DI is above -DI: buyers control a strong, established uptrend.",
		Severity:    model.SeveritySuccess,
	}
	return &model.TrendReport{
		Symbol:         "SPX500",
		Timeframe:      model.TimeframeDaily,
		Points:         40,
		LastClose:      5021.5,
		Week52High:     5100,
		Week52Low:      4100,
		Week52Position: 0.9215,
		AsOf:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Result: &model.DMIResult{
			Period: 14,
			Status: model.StatusComputed,
			Records: []model.IndicatorRecord{
				{DIPlus: 80.69, DIMinus: 19.30, DX: 61.39, ADX: 43.05},
			},
			Signal: &sig,
		},
	}
}

func TestFormatTrendReport(t *testing.T) {
	msg := FormatTrendReport(computedReport())
	assert.Contains(t, msg, "<b>SPX500</b> daily DMI(14) | 2024-03-01")
	assert.Contains(t, msg, "52W: 4100.00 - 5100.00 (at 92%)")
	assert.Contains(t, msg, "+DI: 80.69 | -DI: 19.30")
	assert.Contains(t, msg, "ADX: 43.05")
	assert.Contains(t, msg, "🟢 <b>Bullish</b> (Strong Uptrend)")
	assert.Contains(t, msg, "buyers control a strong, established uptrend")
}

func TestFormatTrendReport_NoYearRange(t *testing.T) {
	r := computedReport()
	r.Week52High, r.Week52Low, r.Week52Position = 0, 0, 0
	assert.NotContains(t, FormatTrendReport(r), "52W")
}

func TestFormatTrendReport_Insufficient(t *testing.T) {
	r := &model.TrendReport{
		Symbol:    "AAPL",
		Timeframe: model.TimeframeWeekly,
		Points:    5,
		Result:    &model.DMIResult{Period: 3, Status: model.StatusInsufficientData, Records: []model.IndicatorRecord{}},
	}
	msg := FormatTrendReport(r)
	assert.Equal(t, "⏳ <b>AAPL</b> weekly: 5 closes are not enough for DMI(3), need at least 6.\n", msg)
}

func TestFormatSignalChange(t *testing.T) {
	msg := FormatSignalChange(&recorder.SignalChangeEvent{
		Symbol:     "SPX500",
		FromSignal: model.SignalNeutral,
		ToSignal:   model.SignalBearish,
		FromTrend:  model.TrendNone,
		ToTrend:    model.TrendStrongDown,
		ADX:        27.5,
		Price:      4800,
		AsOf:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Contains(t, msg, "Signal change: SPX500</b> | 2024-03-01")
	assert.Contains(t, msg, "⚪ Neutral → 🔴 Bearish")
	assert.Contains(t, msg, "Trend: No Clear Trend → Strong Downtrend")
	assert.Contains(t, msg, "ADX: 27.50 | Close: 4800.00")
}

func TestFormatWatchlist(t *testing.T) {
	assert.Contains(t, FormatWatchlist(&model.WatchState{}), "No symbols are watched.")

	msg := FormatWatchlist(&model.WatchState{Entries: []model.WatchEntry{
		{Symbol: "AAPL"},
		{Symbol: "SPX500", Signal: model.SignalMildlyBullish, ADX: 22.04, LastClose: 5000},
	}})
	assert.Contains(t, msg, "• AAPL: not evaluated")
	assert.Contains(t, msg, "🟡 SPX500: Mildly Bullish, ADX 22.0, close 5000.00")
	assert.NotContains(t, msg, "Updated:")
}
