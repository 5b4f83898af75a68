package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"subghz-inspector/internal/plot"
)

// metaLines is the height reserved for the metadata panel
const metaLines = 11

// View renders the metadata panel, plot, prompt and status line, or the
// statistics pane
func (m Model) View() string {
	if m.mode == statsView {
		return m.viewStats()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("SubGHz RAW Inspector"))
	b.WriteString("\n\n")

	if m.sess.Loaded() {
		b.WriteString(m.viewMetadata())
		b.WriteString("\n")
		b.WriteString(m.viewControls())
		b.WriteString("\n\n")
		b.WriteString(plot.RenderASCII(m.plot, m.graphWidth, m.graphHeight, paintPolarity))
		if !m.plot.Hidden && len(m.plot.Datasets) > 0 {
			b.WriteString(helpStyle.Render(plot.Legend(m.plot, paintPolarity)))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render(m.plot.Status()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewPrompt())
	b.WriteString(m.viewStatus())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) viewMetadata() string {
	cur := m.sess.Current()
	lines := make([]string, 0, metaLines)
	for _, f := range cur.Meta.Fields() {
		lines = append(lines, metaKeyStyle.Render(f.Key+":")+" "+f.Value)
	}
	if m.sess.Trimmed() {
		lines = append(lines, metaKeyStyle.Render("Original:")+" "+m.sess.Original().Meta.DataPoints+" data points, "+m.sess.Original().Meta.Duration)
	}
	return metaBoxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewControls() string {
	toggle := func(k, label string, on bool) string {
		state := offStyle.Render("OFF")
		if on {
			state = onStyle.Render("ON")
		}
		return fmt.Sprintf("[%s] %s: %s", k, label, state)
	}

	return strings.Join([]string{
		toggle("p", "Positive", m.opts.ShowPositive),
		toggle("n", "Negative", m.opts.ShowNegative),
		toggle("a", "Auto-scale", m.opts.AutoScale),
		fmt.Sprintf("[l] Limit: %s", onStyle.Render(m.opts.Limit.String())),
	}, "   ")
}

func (m Model) viewPrompt() string {
	switch m.mode {
	case trimInputView:
		return promptStyle.Render("Trim range (start end, seconds): ") + m.input.View() + "\n" +
			helpStyle.Render("enter: continue | esc: cancel") + "\n"
	case trimConfirmView:
		return promptStyle.Render(fmt.Sprintf("Trim data to %.3fs - %.3fs? (y/n)", m.pendingStart, m.pendingEnd)) + "\n"
	case openInputView:
		return promptStyle.Render("Open file: ") + m.input.View() + "\n" +
			helpStyle.Render("enter: load | esc: cancel") + "\n"
	}
	return ""
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewStats() string {
	header := titleStyle.Render("Statistics: " + m.sess.Current().Meta.File)
	footer := helpStyle.Render("↑/↓ scroll | s/esc/q: back")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}
