package calculator

import (
	"errors"
	"math"

	"TrendSentinel/internal/model"
)

// YearRange scans the bars dated within one year of the last bar and returns
// the high and low. Missing highs or lows fall back to the close.
func YearRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	cutoff := bars[len(bars)-1].Time.AddDate(-1, 0, 0)

	high = math.Inf(-1)
	low = math.Inf(1)
	for i := len(bars) - 1; i >= 0 && bars[i].Time.After(cutoff); i-- {
		b := bars[i]
		hi, lo := b.High, b.Low
		if hi < b.Close {
			hi = b.Close
		}
		if lo <= 0 || lo > b.Close {
			lo = b.Close
		}
		high = math.Max(high, hi)
		low = math.Min(low, lo)
	}
	return high, low, nil
}

// RangePosition returns where price sits within [low, high], clamped to 0.0~1.0.
func RangePosition(price, high, low float64) (float64, error) {
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	if high == low {
		return 0.5, nil
	}
	pos := (price - low) / (high - low)
	return math.Min(math.Max(pos, 0), 1), nil
}
