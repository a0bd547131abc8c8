package calculator

import "time"

// Point is a value tagged with the price timestamp it was derived at.
type Point struct {
	Time  time.Time
	Value float64
}

// SeedFunc produces the first smoothed value from the first period raw values.
type SeedFunc func(window []float64) float64

// Mean is the simple-average seed.
func Mean(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}

// WilderSmooth applies Wilder's recurrence to raw:
//
//	s[0] = seed(raw[0..period-1])
//	s[k] = (s[k-1]*(period-1) + raw[period-1+k]) / period
//
// Each output carries the timestamp of the last raw value it consumed, so the
// result has len(raw)-period+1 points. It returns nil when raw is shorter than period.
func WilderSmooth(raw []Point, period int, seed SeedFunc) []Point {
	if period <= 0 || len(raw) < period {
		return nil
	}
	if seed == nil {
		seed = Mean
	}

	window := make([]float64, period)
	for i := 0; i < period; i++ {
		window[i] = raw[i].Value
	}

	out := make([]Point, 0, len(raw)-period+1)
	current := seed(window)
	out = append(out, Point{Time: raw[period-1].Time, Value: current})

	n := float64(period)
	for i := period; i < len(raw); i++ {
		current = (current*(n-1) + raw[i].Value) / n
		out = append(out, Point{Time: raw[i].Time, Value: current})
	}
	return out
}
