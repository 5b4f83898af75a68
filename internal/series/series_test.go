package series

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subghz-inspector/internal/subfile"
)

func TestDeriveTimeAxis(t *testing.T) {
	samples := []int64{350, -1200, 0, 700, -50}
	ts := Derive(samples)

	require.Equal(t, len(samples), ts.Len())
	times := ts.Times()
	require.Len(t, times, len(samples))
	assert.Equal(t, 0.0, times[0])
	for i := 1; i < len(samples); i++ {
		want := math.Abs(float64(samples[i-1])) / 1e6
		assert.InDelta(t, want, times[i]-times[i-1], 1e-12, "step %d", i)
	}

	assert.InDelta(t, 0.0023, ts.Duration(), 1e-12)
	assert.InDelta(t, 0.00225, ts.End(), 1e-12)
	assert.Equal(t, int64(-1200), ts.Min())
	assert.Equal(t, int64(700), ts.Max())
}

func TestDeriveCopiesInput(t *testing.T) {
	samples := []int64{1, 2, 3}
	ts := Derive(samples)
	samples[0] = 99

	assert.Equal(t, int64(1), ts.Sample(0))

	out := ts.Samples()
	out[1] = 42
	assert.Equal(t, int64(2), ts.Sample(1))

	times := ts.Times()
	times[2] = 7
	assert.NotEqual(t, 7.0, ts.Time(2))
}

func TestDeriveEmpty(t *testing.T) {
	ts := Derive(nil)
	assert.Zero(t, ts.Len())
	assert.Zero(t, ts.Duration())
	assert.Zero(t, ts.End())
	assert.Empty(t, ts.Points())
}

func TestPoints(t *testing.T) {
	ts := Derive([]int64{500000, -250000})
	assert.Equal(t, []Point{{Time: 0, Value: 500000}, {Time: 0.5, Value: -250000}}, ts.Points())
}

func TestTrimEvenSpacing(t *testing.T) {
	ts := Derive([]int64{100000, 100000, 100000, 100000, 100000})
	require.InDeltaSlice(t, []float64{0, 0.1, 0.2, 0.3, 0.4}, ts.Times(), 1e-9)

	trimmed, err := Trim(ts, 0.15, 0.35)
	require.NoError(t, err)

	assert.Equal(t, []int64{100000, 100000}, trimmed.Samples())
	assert.InDeltaSlice(t, []float64{0, 0.1}, trimmed.Times(), 1e-9)
	assert.Equal(t, 5, ts.Len(), "source series is untouched")
}

func TestTrimBounds(t *testing.T) {
	ts := Derive([]int64{100000, -100000, 100000, -100000, 100000})

	tests := []struct {
		name       string
		start, end float64
		want       []int64
	}{
		{"whole series", 0, 10, []int64{100000, -100000, 100000, -100000, 100000}},
		{"exact boundaries", 0.1, 0.3, []int64{-100000, 100000}},
		{"end past last start keeps tail", 0.25, 0.45, []int64{-100000, 100000}},
		{"start past every start falls back to 0", 0.5, 0.9, []int64{100000, -100000, 100000, -100000, 100000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trimmed, err := Trim(ts, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, trimmed.Samples())
			assert.Equal(t, 0.0, trimmed.Time(0))
		})
	}
}

func TestTrimInvalidRange(t *testing.T) {
	ts := Derive([]int64{100000, 100000})

	for _, r := range [][2]float64{{5.0, 2.0}, {1, 1}, {-1, 0.5}, {math.NaN(), 1}} {
		_, err := Trim(ts, r[0], r[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRange), "%v", r)

		var re *RangeError
		assert.True(t, errors.As(err, &re))
	}
}

func TestTrimEmptyRange(t *testing.T) {
	ts := Derive([]int64{100000, 100000, 100000})

	_, err := Trim(ts, 0.01, 0.05)
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestMetadata(t *testing.T) {
	h := subfile.Header{Filetype: "Flipper SubGHz RAW File", Version: "1", Frequency: "433920000", Preset: "P", Protocol: "RAW"}
	samples := make([]int64, 1500)
	for i := range samples {
		samples[i] = 1000
	}
	samples[3] = -420

	m := NewMetadata("garage.sub", h, Derive(samples))
	assert.Equal(t, "1,500", m.DataPoints)
	assert.Equal(t, "1.499 seconds", m.Duration)
	assert.Equal(t, "-420 to 1000", m.RSSIRange)

	fields := m.Fields()
	require.Len(t, fields, 9)
	assert.Equal(t, Field{FieldFile, "garage.sub"}, fields[0])
	assert.Equal(t, Field{FieldRSSIRange, "-420 to 1000"}, fields[8])

	mp := m.Map()
	assert.Equal(t, "433920000", mp[FieldFrequency])
	assert.Equal(t, "1,500", mp[FieldDataPoints])
}

func TestMetadataRefresh(t *testing.T) {
	m := NewMetadata("a.sub", subfile.DefaultHeader(), Derive([]int64{10, -20, 30}))
	trimmed := m.Refresh(Derive([]int64{-20}))

	assert.Equal(t, "1", trimmed.DataPoints)
	assert.Equal(t, "-20 to -20", trimmed.RSSIRange)
	assert.Equal(t, "3", m.DataPoints, "refresh returns a copy")
	assert.Equal(t, m.Header, trimmed.Header)
}
