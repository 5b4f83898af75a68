package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestSampleIdentity(t *testing.T) {
	points := indices(100)

	assert.Equal(t, points, Sample(points, NoLimit()))
	assert.Equal(t, points, Sample(points, LimitOf(100)))
	assert.Equal(t, points, Sample(points, LimitOf(1000)))
	assert.Empty(t, Sample([]int{}, LimitOf(5)))
}

func TestSampleStride(t *testing.T) {
	tests := []struct {
		n, limit int
		want     []int
	}{
		{10, 3, []int{0, 3, 6, 9}},
		{10, 5, []int{0, 2, 4, 6, 8}},
		{7, 6, []int{0, 1, 2, 3, 4, 5, 6}},
		{9, 2, []int{0, 4, 8}},
	}

	for _, tt := range tests {
		got := Sample(indices(tt.n), LimitOf(tt.limit))
		assert.Equal(t, tt.want, got, "n=%d limit=%d", tt.n, tt.limit)
	}
}

func TestSampleBound(t *testing.T) {
	for n := 1; n <= 300; n += 7 {
		for limit := 1; limit < n; limit += 3 {
			points := indices(n)
			got := Sample(points, LimitOf(limit))

			stride := max(1, n/limit)
			maxLen := (n + stride - 1) / stride
			require.LessOrEqual(t, len(got), maxLen, "n=%d limit=%d", n, limit)

			for i := 1; i < len(got); i++ {
				require.Greater(t, got[i], got[i-1], "strictly increasing indices")
			}
			require.Equal(t, 0, got[0])
		}
	}
}

func TestParseLimit(t *testing.T) {
	for _, s := range []string{"ALL", "all", "", "  All "} {
		l, err := ParseLimit(s)
		require.NoError(t, err, s)
		assert.True(t, l.Unlimited(), s)
		assert.Equal(t, "ALL", l.String())
	}

	l, err := ParseLimit("10,000")
	require.NoError(t, err)
	n, ok := l.Value()
	assert.True(t, ok)
	assert.Equal(t, 10000, n)
	assert.Equal(t, "10,000", l.String())

	for _, s := range []string{"0", "-5", "many", "1.5"} {
		_, err := ParseLimit(s)
		assert.Error(t, err, s)
	}
}

func TestLimitOfNonPositive(t *testing.T) {
	assert.True(t, LimitOf(0).Unlimited())
	assert.True(t, LimitOf(-3).Unlimited())
	assert.Equal(t, 1, LimitOf(10).Stride(5))
	assert.Equal(t, 3, LimitOf(10).Stride(35))
}
