package calculator

import (
	"fmt"

	"TrendSentinel/internal/model"
)

// EffectivePeriod caps the requested period so that a series of n points can
// still seed both smoothing passes. Non-positive requests use DefaultDMIPeriod.
func EffectivePeriod(requested, n int) int {
	if requested <= 0 {
		requested = model.DefaultDMIPeriod
	}
	if limit := (n + 1) / 2; limit < requested {
		requested = limit
	}
	return requested
}

// CalculateDMI computes the DMI/ADX records of a close series.
//
// Points must be in chronological order with unique timestamps; the result is
// undefined otherwise. Closes whose differences overflow float64 are an error. The first record is emitted at index 2*period-1, once
// period differences have seeded the DM/TR smoothing and period DX values have
// seeded the ADX. When no record can be emitted the status is
// StatusInsufficientData and the record list is empty. The returned Signal is
// always nil; see strategy.Analyze.
func CalculateDMI(points []model.PricePoint, period int) (*model.DMIResult, error) {
	period = EffectivePeriod(period, len(points))
	result := &model.DMIResult{
		Period:  period,
		Status:  model.StatusInsufficientData,
		Records: []model.IndicatorRecord{},
	}
	if period <= 0 || len(points) < period+1 {
		return result, nil
	}

	mv := DirectionalMovement(points)
	plusDM := WilderSmooth(mv.PlusDM, period, Mean)
	minusDM := WilderSmooth(mv.MinusDM, period, Mean)
	trueRange := WilderSmooth(mv.TrueRange, period, Mean)

	index, err := ComposeDirectionalIndex(plusDM, minusDM, trueRange)
	if err != nil {
		return nil, fmt.Errorf("compose directional index: %w", err)
	}

	records, err := AggregateADX(index, period)
	if err != nil {
		return nil, fmt.Errorf("aggregate adx: %w", err)
	}
	if len(records) == 0 {
		return result, nil
	}
	result.Status = model.StatusComputed
	result.Records = records
	return result, nil
}
