package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToPlot is returned when no dataset is visible
var ErrNothingToPlot = errors.New("nothing to plot")

// lineStyle returns a thin line without point markers
func lineStyle(hex string) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorFromHex(strings.TrimPrefix(hex, "#")),
		StrokeWidth: 1,
		DotWidth:    0,
	}
}

// RenderPNG draws p as a line chart and writes it to w as PNG
func RenderPNG(w io.Writer, p Plot, width, height int) error {
	if p.Hidden || len(p.Datasets) == 0 {
		return ErrNothingToPlot
	}

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	series := make([]chart.Series, 0, len(p.Datasets))
	for _, ds := range p.Datasets {
		xs := make([]float64, 0, len(ds.Points)+1)
		ys := make([]float64, 0, len(ds.Points)+1)
		for _, pt := range ds.Points {
			xs = append(xs, pt.Time)
			ys = append(ys, float64(pt.Value))
			xMin, xMax = math.Min(xMin, pt.Time), math.Max(xMax, pt.Time)
			yMin, yMax = math.Min(yMin, float64(pt.Value)), math.Max(yMax, float64(pt.Value))
		}
		// a single point cannot span a range; widen it to a short segment
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1e-6)
			ys = append(ys, ys[0])
			xMax = math.Max(xMax, xs[1])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(ds.Color),
		})
	}

	if xMax <= xMin {
		xMax = xMin + 1e-6
	}
	yRange := &chart.ContinuousRange{Min: yMin, Max: yMax}
	if p.YRange != nil {
		yRange = &chart.ContinuousRange{Min: p.YRange.Min, Max: p.YRange.Max}
	}
	if yRange.Max <= yRange.Min {
		yRange.Min, yRange.Max = yRange.Min-1, yRange.Max+1
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 12}},
		XAxis:      chart.XAxis{Name: "Time (seconds)", Range: &chart.ContinuousRange{Min: xMin, Max: xMax}},
		YAxis:      chart.YAxis{Name: "RSSI Value", Range: yRange},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
