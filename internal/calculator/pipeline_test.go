package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentinel/internal/model"
)

func TestEffectivePeriod(t *testing.T) {
	tests := []struct {
		requested, n, want int
	}{
		{14, 100, 14},
		{14, 28, 14},
		{14, 27, 14},
		{14, 20, 10},
		{14, 2, 1},
		{0, 100, 14},
		{-3, 100, 14},
		{5, 100, 5},
		{14, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EffectivePeriod(tt.requested, tt.n), "requested=%d n=%d", tt.requested, tt.n)
	}
}

func TestCalculateDMI_Fixture(t *testing.T) {
	res, err := CalculateDMI(series(fixtureCloses...), 14)
	require.NoError(t, err)

	require.Equal(t, 10, res.Period)
	require.Equal(t, model.StatusComputed, res.Status)
	require.Len(t, res.Records, 1)

	last, ok := res.Last()
	require.True(t, ok)
	assert.True(t, last.Time.Equal(day(19)))
	assert.InDelta(t, 53.2533375951, last.DIPlus, 1e-6)
	assert.InDelta(t, 46.7466624049, last.DIMinus, 1e-6)
	assert.InDelta(t, 6.5066751903, last.DX, 1e-6)
	assert.InDelta(t, 33.5677497336, last.ADX, 1e-6)
	assert.Nil(t, res.Signal)
}

func TestCalculateDMI_ExtendedFixture(t *testing.T) {
	points := series(extendedCloses...)
	res, err := CalculateDMI(points, 14)
	require.NoError(t, err)

	require.Equal(t, 14, res.Period)
	require.Len(t, res.Records, len(points)-2*14+1)
	assert.True(t, res.Records[0].Time.Equal(points[2*14-1].Time), "first record sits after the warm-up window")

	last, _ := res.Last()
	assert.True(t, last.Time.Equal(points[len(points)-1].Time))
	assert.InDelta(t, 80.6966127977, last.DIPlus, 1e-6)
	assert.InDelta(t, 19.3033872023, last.DIMinus, 1e-6)
	assert.InDelta(t, 61.3932255955, last.DX, 1e-6)
	assert.InDelta(t, 43.0531503716, last.ADX, 1e-6)
}

func TestCalculateDMI_Deterministic(t *testing.T) {
	points := series(extendedCloses...)
	a, err := CalculateDMI(points, 14)
	require.NoError(t, err)
	b, err := CalculateDMI(points, 14)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCalculateDMI_ConstantSeries(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 101.5
	}
	res, err := CalculateDMI(series(closes...), 14)
	require.NoError(t, err)
	require.Equal(t, model.StatusComputed, res.Status)
	require.NotEmpty(t, res.Records)

	for _, r := range res.Records {
		assert.Equal(t, 0.0, r.DIPlus)
		assert.Equal(t, 0.0, r.DIMinus)
		assert.Equal(t, 0.0, r.DX)
		assert.Equal(t, 0.0, r.ADX)
	}
}

func TestCalculateDMI_StrictlyIncreasing(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.75
	}
	res, err := CalculateDMI(series(closes...), 14)
	require.NoError(t, err)
	require.NotEmpty(t, res.Records)

	for _, r := range res.Records {
		assert.Equal(t, 0.0, r.DIMinus)
		assert.InDelta(t, 100.0, r.DIPlus, 1e-9)
		assert.InDelta(t, 100.0, r.DX, 1e-9)
	}
	last, _ := res.Last()
	assert.InDelta(t, 100.0, last.ADX, 1e-9)
}

func TestCalculateDMI_ExactWarmupBoundary(t *testing.T) {
	for _, period := range []int{1, 3, 5, 14} {
		closes := make([]float64, 2*period)
		for i := range closes {
			closes[i] = 50 + float64(i%3)
		}
		res, err := CalculateDMI(series(closes...), period)
		require.NoError(t, err)
		assert.Equal(t, period, res.Period)
		assert.Len(t, res.Records, 1, "period %d", period)
	}
}

func TestCalculateDMI_OneShortOfWarmup(t *testing.T) {
	closes := make([]float64, 27)
	for i := range closes {
		closes[i] = 10 + float64(i)
	}
	res, err := CalculateDMI(series(closes...), 14)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInsufficientData, res.Status)
	assert.Empty(t, res.Records)
}

func TestCalculateDMI_BelowThreshold(t *testing.T) {
	for _, closes := range [][]float64{nil, {42}} {
		res, err := CalculateDMI(series(closes...), 14)
		require.NoError(t, err)
		assert.Equal(t, model.StatusInsufficientData, res.Status)
		assert.NotNil(t, res.Records)
		assert.Empty(t, res.Records)
		assert.Nil(t, res.Signal)
		_, ok := res.Last()
		assert.False(t, ok)
	}
}

func TestCalculateDMI_Bounds(t *testing.T) {
	res, err := CalculateDMI(series(extendedCloses...), 5)
	require.NoError(t, err)
	for _, r := range res.Records {
		assert.GreaterOrEqual(t, r.DIPlus, 0.0)
		assert.GreaterOrEqual(t, r.DIMinus, 0.0)
		assert.GreaterOrEqual(t, r.DX, 0.0)
		assert.LessOrEqual(t, r.DX, 100.0)
		assert.GreaterOrEqual(t, r.ADX, 0.0)
		assert.LessOrEqual(t, r.ADX, 100.0)
	}
}

func TestCalculateDMI_OverflowingDifferences(t *testing.T) {
	res, err := CalculateDMI(series(1e308, -1e308, 1e308, -1e308, 1e308), 2)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "non-finite")
}
