package strategy

import "TrendSentinel/internal/model"

// ADX thresholds separating trend strength bands.
const (
	StrongTrendADX = 25.0
	WeakTrendADX   = 20.0
)

// Signals holds the fixed label/description pairs. Descriptions are rendered
// verbatim by clients and must not change.
var Signals = struct {
	StrongUp, StrongDown, NoTrend, ModerateUp, ModerateDown model.TrendSignal
}{
	StrongUp: model.TrendSignal{
		Trend:       model.TrendStrongUp,
		Signal:      model.SignalBullish,
		Description: "ADX is above 25 and +DI is above -DI: buyers control a strong, established uptrend.",
		Severity:    model.SeveritySuccess,
	},
	StrongDown: model.TrendSignal{
		Trend:       model.TrendStrongDown,
		Signal:      model.SignalBearish,
		Description: "ADX is above 25 and -DI is above +DI: sellers control a strong, established downtrend.",
		Severity:    model.SeverityDanger,
	},
	NoTrend: model.TrendSignal{
		Trend:       model.TrendNone,
		Signal:      model.SignalNeutral,
		Description: "ADX is below 20: price is moving sideways without directional strength.",
		Severity:    model.SeveritySecondary,
	},
	ModerateUp: model.TrendSignal{
		Trend:       model.TrendModerate,
		Signal:      model.SignalMildlyBullish,
		Description: "Trend strength is moderate with +DI above -DI: an uptrend may be developing.",
		Severity:    model.SeverityInfo,
	},
	ModerateDown: model.TrendSignal{
		Trend:       model.TrendModerate,
		Signal:      model.SignalMildlyBearish,
		Description: "Trend strength is moderate with -DI at or above +DI: a downtrend may be developing.",
		Severity:    model.SeverityWarning,
	},
}

// Classify maps the latest DI+/DI-/ADX values to a trend signal.
// An ADX above 25 with equal DIs has no direction to report and is treated as
// a moderate trend.
func Classify(rec model.IndicatorRecord) model.TrendSignal {
	switch {
	case rec.ADX > StrongTrendADX && rec.DIPlus > rec.DIMinus:
		return Signals.StrongUp
	case rec.ADX > StrongTrendADX && rec.DIMinus > rec.DIPlus:
		return Signals.StrongDown
	case rec.ADX < WeakTrendADX:
		return Signals.NoTrend
	case rec.DIPlus > rec.DIMinus:
		return Signals.ModerateUp
	default:
		return Signals.ModerateDown
	}
}
