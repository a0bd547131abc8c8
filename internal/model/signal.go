package model

import "time"

// TrendLabel names the strength and direction of a trend.
type TrendLabel string

const (
	TrendStrongUp   TrendLabel = "Strong Uptrend"
	TrendStrongDown TrendLabel = "Strong Downtrend"
	TrendNone       TrendLabel = "No Clear Trend"
	TrendModerate   TrendLabel = "Moderate Trend"
)

// SignalLabel is the trading bias derived from the trend.
type SignalLabel string

const (
	SignalBullish       SignalLabel = "Bullish"
	SignalBearish       SignalLabel = "Bearish"
	SignalNeutral       SignalLabel = "Neutral"
	SignalMildlyBullish SignalLabel = "Mildly Bullish"
	SignalMildlyBearish SignalLabel = "Mildly Bearish"
)

// Severity is the display class a presentation layer attaches to a signal.
type Severity string

const (
	SeveritySuccess   Severity = "success"
	SeverityDanger    Severity = "danger"
	SeveritySecondary Severity = "secondary"
	SeverityInfo      Severity = "info"
	SeverityWarning   Severity = "warning"
)

// TrendSignal classifies the latest indicator record.
type TrendSignal struct {
	Trend       TrendLabel  `json:"trend"`
	Signal      SignalLabel `json:"signal"`
	Description string      `json:"description"`
	Severity    Severity    `json:"severity"`
}

// TrendReport is the result of analysing one symbol.
// The 52-week fields cover the year before the latest fetched bar and are
// zero when no bars were fetched.
type TrendReport struct {
	Symbol         string     `json:"symbol"`
	Timeframe      Timeframe  `json:"timeframe"`
	Points         int        `json:"points"`
	LastClose      float64    `json:"last_close"`
	AsOf           time.Time  `json:"as_of"`
	Week52High     float64    `json:"week52_high"`
	Week52Low      float64    `json:"week52_low"`
	Week52Position float64    `json:"week52_position"`
	Result         *DMIResult `json:"result"`
	GeneratedAt    time.Time  `json:"generated_at"`
}
