package calculator

import (
	"math"

	"TrendSentinel/internal/model"
)

// Movement holds the raw directional movement series of a close series.
type Movement struct {
	PlusDM    []Point
	MinusDM   []Point
	TrueRange []Point
}

// DirectionalMovement derives +DM, -DM and the close-to-close true range for
// every consecutive pair of points. Values are tagged with the later point's time.
// Fewer than two points yield an empty Movement.
func DirectionalMovement(points []model.PricePoint) Movement {
	if len(points) < 2 {
		return Movement{}
	}
	n := len(points) - 1
	mv := Movement{
		PlusDM:    make([]Point, n),
		MinusDM:   make([]Point, n),
		TrueRange: make([]Point, n),
	}
	for i := 1; i < len(points); i++ {
		diff := points[i].Close - points[i-1].Close
		t := points[i].Time
		mv.PlusDM[i-1] = Point{Time: t, Value: math.Max(diff, 0)}
		mv.MinusDM[i-1] = Point{Time: t, Value: math.Max(-diff, 0)}
		mv.TrueRange[i-1] = Point{Time: t, Value: math.Abs(diff)}
	}
	return mv
}
