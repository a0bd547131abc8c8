package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWilderSmooth_SeedAndRecurrence(t *testing.T) {
	// seed: (1+2+3)/3 = 2
	// next: (2*2+4)/3 = 8/3
	// next: (8/3*2+5)/3 = 31/9
	out := WilderSmooth(rawPoints(1, 2, 3, 4, 5), 3, Mean)
	require.Len(t, out, 3)

	assert.InDelta(t, 2.0, out[0].Value, 1e-12)
	assert.InDelta(t, 8.0/3.0, out[1].Value, 1e-12)
	assert.InDelta(t, 31.0/9.0, out[2].Value, 1e-12)

	assert.True(t, out[0].Time.Equal(day(2)))
	assert.True(t, out[2].Time.Equal(day(4)))
}

func TestWilderSmooth_CustomSeed(t *testing.T) {
	sum := func(w []float64) float64 {
		s := 0.0
		for _, v := range w {
			s += v
		}
		return s
	}
	out := WilderSmooth(rawPoints(1, 2, 3, 4), 3, sum)
	require.Len(t, out, 2)
	assert.InDelta(t, 6.0, out[0].Value, 1e-12)
	assert.InDelta(t, (6.0*2+4)/3, out[1].Value, 1e-12)
}

func TestWilderSmooth_NilSeedDefaultsToMean(t *testing.T) {
	out := WilderSmooth(rawPoints(2, 4), 2, nil)
	require.Len(t, out, 1)
	assert.InDelta(t, 3.0, out[0].Value, 1e-12)
}

func TestWilderSmooth_ShortInput(t *testing.T) {
	assert.Nil(t, WilderSmooth(rawPoints(1, 2), 3, Mean))
	assert.Nil(t, WilderSmooth(rawPoints(1, 2), 0, Mean))
	assert.Nil(t, WilderSmooth(nil, 1, Mean))
}

func TestWilderSmooth_PeriodOneIsIdentity(t *testing.T) {
	out := WilderSmooth(rawPoints(5, 7, 3), 1, Mean)
	require.Len(t, out, 3)
	for i, want := range []float64{5, 7, 3} {
		assert.InDelta(t, want, out[i].Value, 1e-12)
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
}
