package plot

import (
	"fmt"
	"math"
	"strings"
)

// Glyphs drawn by RenderASCII
const (
	GlyphPositive = 'o'
	GlyphNegative = 'x'
	GlyphOverlap  = '#'
)

// Painter decorates a run of plot glyphs, e.g. with terminal colors
type Painter func(p Polarity, s string) string

const labelWidth = 10

// RenderASCII draws p as a character scatter plot of width x height cells
// with value labels on the left and time labels underneath. paint may be nil.
func RenderASCII(p Plot, width, height int, paint Painter) string {
	var b strings.Builder

	if p.Hidden || len(p.Datasets) == 0 {
		b.WriteString("No data to display\n")
		return b.String()
	}
	width = max(width, 10)
	height = max(height, 3)

	xMax := 0.0
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, ds := range p.Datasets {
		for _, pt := range ds.Points {
			xMax = math.Max(xMax, pt.Time)
			yMin = math.Min(yMin, float64(pt.Value))
			yMax = math.Max(yMax, float64(pt.Value))
		}
	}
	if p.YRange != nil {
		yMin, yMax = p.YRange.Min, p.YRange.Max
	}
	if yMax == yMin {
		yMax = yMin + 1
	}
	if xMax == 0 {
		xMax = 1e-6
	}

	// -1 empty, otherwise the polarity drawn there; overlaps become GlyphOverlap
	grid := make([][]int, height)
	for i := range grid {
		grid[i] = make([]int, width)
		for j := range grid[i] {
			grid[i][j] = -1
		}
	}
	const overlap = 2

	for _, ds := range p.Datasets {
		for _, pt := range ds.Points {
			x := int(pt.Time / xMax * float64(width-1))
			x = min(max(x, 0), width-1)

			norm := (float64(pt.Value) - yMin) / (yMax - yMin)
			y := int(math.Round(float64(height-1) * (1.0 - norm)))
			y = min(max(y, 0), height-1)

			switch cell := grid[y][x]; {
			case cell == -1:
				grid[y][x] = int(ds.Polarity)
			case cell != int(ds.Polarity):
				grid[y][x] = overlap
			}
		}
	}

	for i, row := range grid {
		normY := float64(height-1-i) / float64(height-1)
		fmt.Fprintf(&b, "%*.1f |", labelWidth, yMin+normY*(yMax-yMin))
		writeRow(&b, row, paint)
		b.WriteString("|\n")
	}

	b.WriteString(strings.Repeat(" ", labelWidth+1))
	b.WriteString("+" + strings.Repeat("-", width) + "+\n")

	start := "0"
	mid := fmt.Sprintf("%.3fs", xMax/2)
	end := fmt.Sprintf("%.3fs", xMax)
	b.WriteString(strings.Repeat(" ", labelWidth+2))
	b.WriteString(start)
	midPos := width/2 - len(mid)/2
	b.WriteString(strings.Repeat(" ", max(1, midPos-len(start))))
	b.WriteString(mid)
	endPos := width - len(end)
	b.WriteString(strings.Repeat(" ", max(1, endPos-midPos-len(mid))))
	b.WriteString(end)
	b.WriteString("\n")

	return b.String()
}

func writeRow(b *strings.Builder, row []int, paint Painter) {
	var run strings.Builder
	runCell := -2

	emit := func() {
		if run.Len() == 0 {
			return
		}
		s := run.String()
		if paint != nil && (runCell == int(Positive) || runCell == int(Negative)) {
			s = paint(Polarity(runCell), s)
		}
		b.WriteString(s)
		run.Reset()
	}

	for _, cell := range row {
		if cell != runCell {
			emit()
			runCell = cell
		}
		switch cell {
		case -1:
			run.WriteByte(' ')
		case int(Positive):
			run.WriteByte(GlyphPositive)
		case int(Negative):
			run.WriteByte(GlyphNegative)
		default:
			run.WriteByte(GlyphOverlap)
		}
	}
	emit()
}

// Legend returns a one-line legend for the datasets in p
func Legend(p Plot, paint Painter) string {
	parts := make([]string, 0, len(p.Datasets)+1)
	for _, ds := range p.Datasets {
		glyph := string(GlyphPositive)
		if ds.Polarity == Negative {
			glyph = string(GlyphNegative)
		}
		if paint != nil {
			glyph = paint(ds.Polarity, glyph)
		}
		parts = append(parts, fmt.Sprintf("%s = %s", glyph, strings.ToLower(ds.Label)))
	}
	parts = append(parts, fmt.Sprintf("%c = both", GlyphOverlap))
	return "Legend: " + strings.Join(parts, ", ") + ", Time →"
}
