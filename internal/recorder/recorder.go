package recorder

import (
	"time"

	"TrendSentinel/internal/model"
)

// SignalChangeEvent records a signal transition on a watched symbol.
type SignalChangeEvent struct {
	Symbol     string
	FromSignal model.SignalLabel
	ToSignal   model.SignalLabel
	FromTrend  model.TrendLabel
	ToTrend    model.TrendLabel
	ADX        float64
	Price      float64
	AsOf       time.Time
}

// TrendRow is one stored trend snapshot.
type TrendRow struct {
	RecordedAt time.Time         `json:"recorded_at"`
	Symbol     string            `json:"symbol"`
	Timeframe  model.Timeframe   `json:"timeframe"`
	Period     int               `json:"period"`
	Status     model.DMIStatus   `json:"status"`
	AsOf       time.Time         `json:"as_of"`
	LastClose  float64           `json:"last_close"`
	DIPlus     float64           `json:"di_plus"`
	DIMinus    float64           `json:"di_minus"`
	DX         float64           `json:"dx"`
	ADX        float64           `json:"adx"`
	Trend      model.TrendLabel  `json:"trend,omitempty"`
	Signal     model.SignalLabel `json:"signal,omitempty"`
}

// Recorder persists evaluation history outside the engine.
type Recorder interface {
	RecordTrend(report *model.TrendReport) error
	RecordSignalChange(evt *SignalChangeEvent) error
	RecentTrends(symbol string, limit int) ([]TrendRow, error)
	Close() error
}
