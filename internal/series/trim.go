package series

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrInvalidRange marks trim bounds that violate start < end, both >= 0
	ErrInvalidRange = errors.New("invalid trim range")

	// ErrEmptyRange is returned when valid bounds select no samples
	ErrEmptyRange = errors.New("selected range contains no samples")
)

// RangeError reports rejected trim bounds
type RangeError struct {
	Start  float64
	End    float64
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v %.3fs - %.3fs: %s", ErrInvalidRange, e.Start, e.End, e.Reason)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// ValidateRange checks trim bounds without touching any series
func ValidateRange(start, end float64) error {
	switch {
	case math.IsNaN(start) || math.IsNaN(end):
		return &RangeError{Start: start, End: end, Reason: "times must be numbers"}
	case start >= end:
		return &RangeError{Start: start, End: end, Reason: "start time must be less than end time"}
	case start < 0 || end < 0:
		return &RangeError{Start: start, End: end, Reason: "times must be positive"}
	}
	return nil
}

// Trim extracts the samples whose start times fall in [start, end) and
// re-derives their time axis so the result starts at 0. The input series
// is left untouched.
func Trim(ts *TimeSeries, start, end float64) (*TimeSeries, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}

	startIdx := firstAtOrAfter(ts.times, start)
	if startIdx == -1 {
		startIdx = 0
	}
	endIdx := firstAtOrAfter(ts.times, end)
	if endIdx == -1 {
		endIdx = len(ts.samples)
	}

	if endIdx <= startIdx {
		return nil, ErrEmptyRange
	}

	return Derive(ts.samples[startIdx:endIdx]), nil
}

// firstAtOrAfter returns the first index with times[i] >= t, or -1.
// Start times never decrease, so a binary search is enough.
func firstAtOrAfter(times []float64, t float64) int {
	i := sort.SearchFloat64s(times, t)
	if i == len(times) {
		return -1
	}
	return i
}
