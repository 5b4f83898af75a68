package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSymmetric(t *testing.T) {
	s, err := Compute([]int64{10, -10, 0, 20, -20}, 0.00006)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 0.0, s.Mean, 1e-12)
	assert.Equal(t, int64(0), s.Median)
	assert.InDelta(t, math.Sqrt(200), s.StdDev, 1e-9)
	assert.InDelta(t, 14.14, s.StdDev, 0.005)
	assert.Equal(t, int64(-20), s.Min)
	assert.Equal(t, int64(20), s.Max)
	assert.Equal(t, int64(40), s.Range)

	assert.Equal(t, Share{Count: 2, Percent: 40}, s.Positive)
	assert.Equal(t, Share{Count: 2, Percent: 40}, s.Negative)
	assert.Equal(t, Share{Count: 1, Percent: 20}, s.Zero)
}

func TestComputeLowMedian(t *testing.T) {
	s, err := Compute([]int64{4, 1, 3, 2}, 0)
	require.NoError(t, err)

	// sorted [1 2 3 4], index 4/2 = 2
	assert.Equal(t, int64(3), s.Median)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
}

func TestComputePopulationStdDev(t *testing.T) {
	s, err := Compute([]int64{2, 4, 4, 4, 5, 5, 7, 9}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, s.StdDev, 1e-12)
}

func TestComputeDoesNotReorderInput(t *testing.T) {
	samples := []int64{3, -1, 2}
	_, err := Compute(samples, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, -1, 2}, samples)
}

func TestComputeEmpty(t *testing.T) {
	s, err := Compute(nil, 0)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestReport(t *testing.T) {
	samples := make([]int64, 0, 2001)
	for i := 0; i < 1000; i++ {
		samples = append(samples, 300, -600)
	}
	samples = append(samples, 0)

	s, err := Compute(samples, 0.9)
	require.NoError(t, err)

	out, err := s.Report()
	require.NoError(t, err)

	assert.Contains(t, out, "RSSI Signal Statistics:")
	assert.Contains(t, out, "Total Data Points: 2,001")
	assert.Contains(t, out, "Duration: 0.900 seconds")
	assert.Contains(t, out, "Mean: -149.93")
	assert.Contains(t, out, "Median: 0.00")
	assert.Contains(t, out, "Min Value: -600")
	assert.Contains(t, out, "Max Value: 300")
	assert.Contains(t, out, "Range: 900")
	assert.Contains(t, out, "Positive Values: 1,000 (50.0%)")
	assert.Contains(t, out, "Negative Values: 1,000 (50.0%)")
	assert.Contains(t, out, "Zero Values: 1 (0.0%)")
}
