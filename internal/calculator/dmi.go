package calculator

import (
	"fmt"
	"math"
	"time"

	"TrendSentinel/internal/model"
)

// DirectionalIndex is DI+, DI- and DX at one timestamp.
type DirectionalIndex struct {
	Time    time.Time
	DIPlus  float64
	DIMinus float64
	DX      float64
}

// ComposeDirectionalIndex turns smoothed +DM, -DM and TR into DI+, DI- and DX.
// The three series must have the same length and timestamps, and hold finite values.
func ComposeDirectionalIndex(plusDM, minusDM, trueRange []Point) ([]DirectionalIndex, error) {
	if len(plusDM) != len(trueRange) || len(minusDM) != len(trueRange) {
		return nil, fmt.Errorf("series length mismatch: +DM=%d -DM=%d TR=%d", len(plusDM), len(minusDM), len(trueRange))
	}

	out := make([]DirectionalIndex, len(trueRange))
	for k, tr := range trueRange {
		if !plusDM[k].Time.Equal(tr.Time) || !minusDM[k].Time.Equal(tr.Time) {
			return nil, fmt.Errorf("series misaligned at %s", tr.Time.Format(time.RFC3339))
		}
		if !finite(plusDM[k].Value) || !finite(minusDM[k].Value) || !finite(tr.Value) {
			return nil, fmt.Errorf("non-finite directional movement at %s", tr.Time.Format(time.RFC3339))
		}

		di := DirectionalIndex{Time: tr.Time}
		if tr.Value > 0 {
			di.DIPlus = 100 * plusDM[k].Value / tr.Value
			di.DIMinus = 100 * minusDM[k].Value / tr.Value
		}
		if sum := di.DIPlus + di.DIMinus; sum > 0 {
			di.DX = 100 * math.Abs(di.DIPlus-di.DIMinus) / sum
		}
		if !finite(di.DIPlus) || !finite(di.DIMinus) || !finite(di.DX) {
			return nil, fmt.Errorf("non-finite directional index at %s", tr.Time.Format(time.RFC3339))
		}
		out[k] = di
	}
	return out, nil
}

// AggregateADX Wilder-smooths DX into ADX and pairs adx[k] with index[period-1+k],
// the DI/DX value whose timestamp the ADX value carries. The first ADX is the
// mean of the first period DX values.
func AggregateADX(index []DirectionalIndex, period int) ([]model.IndicatorRecord, error) {
	dx := make([]Point, len(index))
	for i, di := range index {
		dx[i] = Point{Time: di.Time, Value: di.DX}
	}
	adx := WilderSmooth(dx, period, Mean)
	if len(adx) == 0 {
		return nil, nil
	}

	records := make([]model.IndicatorRecord, len(adx))
	for k, a := range adx {
		di := index[period-1+k]
		if !di.Time.Equal(a.Time) {
			return nil, fmt.Errorf("adx misaligned at %s", a.Time.Format(time.RFC3339))
		}
		records[k] = model.IndicatorRecord{
			Time:    a.Time,
			DIPlus:  di.DIPlus,
			DIMinus: di.DIMinus,
			DX:      di.DX,
			ADX:     a.Value,
		}
	}
	return records, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
