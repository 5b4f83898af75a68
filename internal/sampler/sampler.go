// Package sampler bounds the number of points handed to a renderer by
// fixed-stride decimation.
package sampler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Limit is either "no limit" or a positive point budget
type Limit struct {
	n       int
	limited bool
}

// NoLimit keeps every point
func NoLimit() Limit {
	return Limit{}
}

// LimitOf caps output at n points. n <= 0 means no limit.
func LimitOf(n int) Limit {
	if n <= 0 {
		return NoLimit()
	}
	return Limit{n: n, limited: true}
}

// ParseLimit accepts "ALL" (any case) or a positive integer, optionally
// with thousands separators
func ParseLimit(s string) (Limit, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return NoLimit(), nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return Limit{}, fmt.Errorf("invalid point limit %q: must be ALL or a positive integer", s)
	}
	if n <= 0 {
		return Limit{}, fmt.Errorf("invalid point limit %q: must be positive", s)
	}
	return LimitOf(n), nil
}

// Value returns the budget and whether one is set
func (l Limit) Value() (int, bool) {
	return l.n, l.limited
}

// Unlimited reports whether every point is kept
func (l Limit) Unlimited() bool {
	return !l.limited
}

// String renders "ALL" or the budget with thousands separators
func (l Limit) String() string {
	if !l.limited {
		return "ALL"
	}
	return humanize.Comma(int64(l.n))
}

// Stride returns the decimation step for count points under l
func (l Limit) Stride(count int) int {
	if !l.limited || count <= l.n {
		return 1
	}
	return max(1, count/l.n)
}

// Sample returns points unchanged when there is no limit or the points fit.
// Otherwise it keeps indices 0, stride, 2*stride, ... in their original
// order, where stride = max(1, len/limit). Short spikes may be skipped.
func Sample[T any](points []T, limit Limit) []T {
	if !limit.limited || len(points) <= limit.n {
		return points
	}

	stride := limit.Stride(len(points))
	out := make([]T, 0, (len(points)+stride-1)/stride)
	for i := 0; i < len(points); i += stride {
		out = append(out, points[i])
	}
	return out
}
