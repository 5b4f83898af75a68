// Package series reconstructs the time axis of a pulse capture and derives
// the summary fields shown next to it.
package series

// MicrosPerSecond converts sample durations to seconds
const MicrosPerSecond = 1_000_000

// Point is one sample placed on the time axis
type Point struct {
	Time  float64 `json:"time"`
	Value int64   `json:"value"`
}

// TimeSeries pairs samples with their cumulative start times. It is never
// modified after Derive returns it.
type TimeSeries struct {
	samples  []int64
	times    []float64
	duration float64
	min      int64
	max      int64
}

// Derive builds a TimeSeries from samples. time[0] is 0 and every following
// start time adds the magnitude of the previous sample in seconds.
func Derive(samples []int64) *TimeSeries {
	ts := &TimeSeries{
		samples: make([]int64, len(samples)),
		times:   make([]float64, len(samples)),
	}
	copy(ts.samples, samples)

	var current float64
	for i, v := range ts.samples {
		ts.times[i] = current
		current += float64(abs(v)) / MicrosPerSecond

		if i == 0 || v < ts.min {
			ts.min = v
		}
		if i == 0 || v > ts.max {
			ts.max = v
		}
	}
	ts.duration = current

	return ts
}

// Len returns the number of samples
func (ts *TimeSeries) Len() int {
	return len(ts.samples)
}

// Samples returns a copy of the raw sample values
func (ts *TimeSeries) Samples() []int64 {
	out := make([]int64, len(ts.samples))
	copy(out, ts.samples)
	return out
}

// Times returns a copy of the start times in seconds
func (ts *TimeSeries) Times() []float64 {
	out := make([]float64, len(ts.times))
	copy(out, ts.times)
	return out
}

// Sample returns the i-th sample value
func (ts *TimeSeries) Sample(i int) int64 {
	return ts.samples[i]
}

// Time returns the start time of the i-th sample
func (ts *TimeSeries) Time(i int) float64 {
	return ts.times[i]
}

// Duration is the sum of all sample magnitudes in seconds
func (ts *TimeSeries) Duration() float64 {
	return ts.duration
}

// End is the start time of the last sample, or 0 for an empty series
func (ts *TimeSeries) End() float64 {
	if len(ts.times) == 0 {
		return 0
	}
	return ts.times[len(ts.times)-1]
}

// Min returns the smallest raw sample value (0 for an empty series)
func (ts *TimeSeries) Min() int64 {
	return ts.min
}

// Max returns the largest raw sample value (0 for an empty series)
func (ts *TimeSeries) Max() int64 {
	return ts.max
}

// Points returns every sample paired with its start time
func (ts *TimeSeries) Points() []Point {
	points := make([]Point, len(ts.samples))
	for i, v := range ts.samples {
		points[i] = Point{Time: ts.times[i], Value: v}
	}
	return points
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
