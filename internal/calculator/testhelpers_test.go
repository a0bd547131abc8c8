package calculator

import (
	"time"

	"TrendSentinel/internal/model"
)

var testStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func day(i int) time.Time {
	return testStart.AddDate(0, 0, i)
}

func series(closes ...float64) []model.PricePoint {
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Time: day(i), Close: c}
	}
	return points
}

func rawPoints(vals ...float64) []Point {
	points := make([]Point, len(vals))
	for i, v := range vals {
		points[i] = Point{Time: day(i), Value: v}
	}
	return points
}

// fixtureCloses is a 20-session close series; the expected values below were
// computed independently with period 10 (the cap for 20 points when 14 is requested).
var fixtureCloses = []float64{
	44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42, 45.84, 46.08,
	45.89, 46.03, 45.61, 46.28, 46.28, 46.00, 46.03, 46.41, 46.22, 45.64,
}

// extendedCloses continues the fixture with a 20-session rally.
var extendedCloses = append(append([]float64{}, fixtureCloses...),
	45.20, 45.50, 46.10, 46.75, 47.20, 47.05, 47.60, 48.10, 47.90, 48.40,
	48.85, 49.10, 48.70, 49.30, 49.80, 50.15, 49.95, 50.60, 51.05, 51.40,
)
