package strategy

import (
	"TrendSentinel/internal/calculator"
	"TrendSentinel/internal/model"
)

// Analyze computes the DMI/ADX records of points and classifies the last one.
// The signal is nil when there are no records.
func Analyze(points []model.PricePoint, period int) (*model.DMIResult, error) {
	res, err := calculator.CalculateDMI(points, period)
	if err != nil {
		return nil, err
	}
	if last, ok := res.Last(); ok {
		sig := Classify(last)
		res.Signal = &sig
	}
	return res, nil
}
