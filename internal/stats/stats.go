// Package stats computes descriptive statistics over pulse samples
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cbroglie/mustache"
	"github.com/dustin/go-humanize"
)

// ErrEmptyInput is returned when statistics are requested for no samples
var ErrEmptyInput = errors.New("no samples to analyze")

// Statistics summarizes a sample set
type Statistics struct {
	Count    int     `json:"count" yaml:"count"`
	Duration float64 `json:"duration_s" yaml:"duration_s"`

	Mean   float64 `json:"mean" yaml:"mean"`
	Median int64   `json:"median" yaml:"median"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Min    int64   `json:"min" yaml:"min"`
	Max    int64   `json:"max" yaml:"max"`
	Range  int64   `json:"range" yaml:"range"`

	Positive Share `json:"positive" yaml:"positive"`
	Negative Share `json:"negative" yaml:"negative"`
	Zero     Share `json:"zero" yaml:"zero"`
}

// Share is a count and its percentage (0-100) of the whole set
type Share struct {
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Compute returns statistics for samples. The median is the value at
// index n/2 of the sorted copy (the lower median for even n) and the
// standard deviation divides by n.
func Compute(samples []int64, duration float64) (*Statistics, error) {
	n := len(samples)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	s := &Statistics{
		Count:    n,
		Duration: duration,
		Min:      samples[0],
		Max:      samples[0],
	}

	var sum float64
	var pos, neg, zero int
	for _, v := range samples {
		sum += float64(v)
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		switch {
		case v > 0:
			pos++
		case v < 0:
			neg++
		default:
			zero++
		}
	}
	s.Mean = sum / float64(n)

	var sq float64
	for _, v := range samples {
		d := float64(v) - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(n))

	sorted := make([]int64, n)
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	s.Median = sorted[n/2]

	s.Range = s.Max - s.Min
	s.Positive = share(pos, n)
	s.Negative = share(neg, n)
	s.Zero = share(zero, n)

	return s, nil
}

func share(count, total int) Share {
	return Share{Count: count, Percent: float64(count) / float64(total) * 100}
}

const reportTemplate = `RSSI Signal Statistics:

Total Data Points: {{count}}
Duration: {{duration}} seconds

RSSI Statistics:
  Mean: {{mean}}
  Median: {{median}}
  Standard Deviation: {{stddev}}
  Min Value: {{min}}
  Max Value: {{max}}
  Range: {{range}}

Value Distribution:
{{#shares}}
  {{label}} Values: {{count}} ({{percent}}%)
{{/shares}}
`

// Report renders the statistics as the plain-text block shown to users
func (s *Statistics) Report() (string, error) {
	shares := []map[string]string{
		s.Positive.view("Positive"),
		s.Negative.view("Negative"),
		s.Zero.view("Zero"),
	}

	out, err := mustache.Render(reportTemplate, map[string]interface{}{
		"count":    humanize.Comma(int64(s.Count)),
		"duration": fmt.Sprintf("%.3f", s.Duration),
		"mean":     fmt.Sprintf("%.2f", s.Mean),
		"median":   fmt.Sprintf("%.2f", float64(s.Median)),
		"stddev":   fmt.Sprintf("%.2f", s.StdDev),
		"min":      s.Min,
		"max":      s.Max,
		"range":    s.Range,
		"shares":   shares,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render statistics report: %w", err)
	}
	return out, nil
}

func (sh Share) view(label string) map[string]string {
	return map[string]string{
		"label":   label,
		"count":   humanize.Comma(int64(sh.Count)),
		"percent": fmt.Sprintf("%.1f", sh.Percent),
	}
}
