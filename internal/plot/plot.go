// Package plot turns a time series into bounded, renderable point sets split
// by polarity, and renders them for a terminal or as a PNG image.
package plot

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"subghz-inspector/internal/sampler"
	"subghz-inspector/internal/series"
)

// Polarity classifies a sample for display
type Polarity int

const (
	Positive Polarity = iota // value >= 0
	Negative                 // value < 0
)

// Classify returns the display polarity of a sample value. Zero is shown
// with the positive class.
func Classify(v int64) Polarity {
	if v < 0 {
		return Negative
	}
	return Positive
}

func (p Polarity) String() string {
	if p == Negative {
		return "negative"
	}
	return "positive"
}

// Label is the legend text of the class
func (p Polarity) Label() string {
	if p == Negative {
		return "Negative values"
	}
	return "Positive values"
}

// Color is the hex color used for the class
func (p Polarity) Color() string {
	if p == Negative {
		return "#ff6b6b"
	}
	return "#00d4aa"
}

// Options are the user's display choices
type Options struct {
	ShowPositive bool
	ShowNegative bool
	AutoScale    bool
	Limit        sampler.Limit
}

// DefaultOptions shows both classes with auto-scaling and a 10,000 point limit
func DefaultOptions() Options {
	return Options{
		ShowPositive: true,
		ShowNegative: true,
		AutoScale:    true,
		Limit:        sampler.LimitOf(10000),
	}
}

// Dataset is the sampled point set of one polarity class
type Dataset struct {
	Label    string         `json:"label" yaml:"label"`
	Polarity Polarity       `json:"-" yaml:"-"`
	Color    string         `json:"color" yaml:"color"`
	Total    int            `json:"total" yaml:"total"` // points in the class before sampling
	Points   []series.Point `json:"points" yaml:"points"`
}

// Range is a value-axis range
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Plot is what a renderer needs to draw the current series
type Plot struct {
	Datasets []Dataset     `json:"datasets" yaml:"datasets"`
	YRange   *Range        `json:"y_range,omitempty" yaml:"y_range,omitempty"`
	Limit    sampler.Limit `json:"-" yaml:"-"`
	Total    int           `json:"total" yaml:"total"`   // samples in the series
	Hidden   bool          `json:"hidden" yaml:"hidden"` // both classes switched off
}

// Build splits ts into the requested polarity classes and samples each one
// independently against opts.Limit.
func Build(ts *series.TimeSeries, opts Options) Plot {
	p := Plot{Limit: opts.Limit, Total: ts.Len()}
	if !opts.ShowPositive && !opts.ShowNegative {
		p.Hidden = true
		return p
	}

	var positive, negative []series.Point
	for _, pt := range ts.Points() {
		if Classify(pt.Value) == Negative {
			if opts.ShowNegative {
				negative = append(negative, pt)
			}
		} else if opts.ShowPositive {
			positive = append(positive, pt)
		}
	}

	for _, class := range []struct {
		polarity Polarity
		points   []series.Point
	}{
		{Positive, positive},
		{Negative, negative},
	} {
		if len(class.points) == 0 {
			continue
		}
		p.Datasets = append(p.Datasets, Dataset{
			Label:    class.polarity.Label(),
			Polarity: class.polarity,
			Color:    class.polarity.Color(),
			Total:    len(class.points),
			Points:   sampler.Sample(class.points, opts.Limit),
		})
	}

	if opts.AutoScale {
		p.YRange = autoRange(p.Datasets)
	}
	return p
}

// autoRange pads the displayed value span by 5% (at least 1) on each side
func autoRange(datasets []Dataset) *Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ds := range datasets {
		for _, pt := range ds.Points {
			v := float64(pt.Value)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return nil
	}
	pad := math.Max(1, (hi-lo)*0.05)
	return &Range{Min: lo - pad, Max: hi + pad}
}

// Displayed returns the number of points across all datasets
func (p Plot) Displayed() int {
	n := 0
	for _, ds := range p.Datasets {
		n += len(ds.Points)
	}
	return n
}

// Status summarizes displayed points against the series size and limit
func (p Plot) Status() string {
	if p.Hidden {
		return "No values selected for display"
	}
	shown := humanize.Comma(int64(p.Displayed()))
	if p.Limit.Unlimited() {
		return fmt.Sprintf("Displaying ALL %s data points", shown)
	}
	if p.Total > p.Displayed() {
		return fmt.Sprintf("Displaying %s of %s points (Limit: %s)", shown, humanize.Comma(int64(p.Total)), p.Limit)
	}
	return fmt.Sprintf("Displaying %s data points (Limit: %s)", shown, p.Limit)
}

// ClampSelection orders a selected time span, clamps it to [0, maxTime] and
// reports false when nothing is left of it.
func ClampSelection(a, b, maxTime float64) (start, end float64, ok bool) {
	if b < a {
		a, b = b, a
	}
	start = math.Max(0, a)
	end = math.Min(maxTime, b)
	return start, end, end > start
}
