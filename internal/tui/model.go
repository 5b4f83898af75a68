// Package tui is the interactive terminal inspector for sub-GHz RAW captures
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"

	"subghz-inspector/internal/logging"
	"subghz-inspector/internal/plot"
	"subghz-inspector/internal/sampler"
	"subghz-inspector/internal/series"
	"subghz-inspector/internal/session"
)

type viewMode int

const (
	mainView viewMode = iota
	trimInputView
	trimConfirmView
	openInputView
	statsView
)

// limitCycle is the order the point limit key steps through
var limitCycle = []sampler.Limit{
	sampler.LimitOf(1000),
	sampler.LimitOf(5000),
	sampler.LimitOf(10000),
	sampler.LimitOf(50000),
	sampler.NoLimit(),
}

// Options configure a Model
type Options struct {
	Path        string // capture to load on start, may be empty
	Plot        plot.Options
	OutputDir   string // where exports are written
	Watch       bool   // reload Path when it changes on disk
	GraphWidth  int    // used until the terminal size is known
	GraphHeight int
	Session     *session.Session
}

// Model is the bubbletea model of the inspector. It drives a session and
// caches the plot built from it.
type Model struct {
	sess *session.Session
	opts plot.Options
	plot plot.Plot

	mode     viewMode
	keys     keyMap
	help     help.Model
	input    textinput.Model
	viewport viewport.Model

	path      string
	outputDir string
	watch     bool
	watcher   *fsnotify.Watcher

	width       int
	height      int
	graphWidth  int
	graphHeight int

	status    string
	statusErr bool

	pendingStart float64
	pendingEnd   float64
}

// New creates a Model. The capture at opts.Path is loaded by Init.
func New(opts Options) Model {
	sess := opts.Session
	if sess == nil {
		sess = session.New()
	}

	ti := textinput.New()
	ti.CharLimit = 256

	m := Model{
		sess:        sess,
		opts:        opts.Plot,
		mode:        mainView,
		keys:        defaultKeyMap(),
		help:        help.New(),
		input:       ti,
		viewport:    viewport.New(80, 20),
		path:        opts.Path,
		outputDir:   opts.OutputDir,
		watch:       opts.Watch,
		graphWidth:  max(opts.GraphWidth, 20),
		graphHeight: max(opts.GraphHeight, 5),
	}
	if m.path != "" {
		if abs, err := filepath.Abs(m.path); err == nil {
			m.path = abs
		}
		m.status = fmt.Sprintf("Loading %s...", filepath.Base(m.path))
	} else {
		m.status = "No file loaded. Press o to open a .sub file"
	}
	if sess.Loaded() {
		m.refresh()
	}
	return m
}

// Init loads the initial capture and starts the file watcher when enabled
func (m Model) Init() tea.Cmd {
	if m.path == "" {
		return nil
	}
	cmds := []tea.Cmd{loadFile(m.path, false)}
	if m.watch {
		cmds = append(cmds, startWatch(m.path))
	}
	return tea.Batch(cmds...)
}

// Close releases the file watcher, if any
func (m Model) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// Session returns the session driven by the model
func (m Model) Session() *session.Session {
	return m.sess
}

// Update handles key presses, window resizes and file load results
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 5)
		m.graphWidth = max(msg.Width-16, 20)
		m.graphHeight = max(msg.Height-metaLines-10, 5)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Abort) {
			return m, tea.Quit
		}

		switch m.mode {
		case trimInputView:
			return m.updateTrimInput(msg)
		case trimConfirmView:
			return m.updateTrimConfirm(msg)
		case openInputView:
			return m.updateOpenInput(msg)
		case statsView:
			return m.updateStats(msg)
		}
		return m.updateMain(msg)

	case loadedMsg:
		if err := m.sess.Load(msg.path, msg.capture); err != nil {
			return m.fail(fmt.Errorf("failed to load %s: %w", filepath.Base(msg.path), err)), nil
		}
		m.path = msg.path
		m.refresh()
		verb := "Loaded"
		if msg.reload {
			verb = "Reloaded"
		}
		m.setStatus(fmt.Sprintf("%s: %s (%s data points)",
			verb, filepath.Base(msg.path), humanize.Comma(int64(m.sess.Current().Series.Len()))))
		if n := m.sess.Discarded(); n > 0 {
			m.status += fmt.Sprintf(", %d unparseable tokens skipped", n)
		}
		return m, nil

	case watchStartedMsg:
		m.watcher = msg.watcher
		logging.Infof("TUI: watching %s for changes", m.path)
		return m, waitForChange(m.watcher, m.path)

	case fileChangedMsg:
		logging.Debugf("TUI: %s changed on disk", m.path)
		return m, tea.Batch(loadFile(m.path, true), waitForChange(m.watcher, m.path))

	case watchErrMsg:
		logging.Warnf("TUI: watcher error: %v", msg.err)
		return m, waitForChange(m.watcher, m.path)

	case errMsg:
		return m.fail(msg.err), nil
	}

	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.mode = openInputView
		m.input.Placeholder = "path/to/capture.sub"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	}

	if !m.sess.Loaded() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.TogglePositive):
		m.opts.ShowPositive = !m.opts.ShowPositive
		m.refresh()
		m.setStatus(m.plot.Status())

	case key.Matches(msg, m.keys.ToggleNegative):
		m.opts.ShowNegative = !m.opts.ShowNegative
		m.refresh()
		m.setStatus(m.plot.Status())

	case key.Matches(msg, m.keys.AutoScale):
		m.opts.AutoScale = !m.opts.AutoScale
		m.refresh()
		m.setStatus(fmt.Sprintf("Auto-scale %s", onOff(m.opts.AutoScale)))

	case key.Matches(msg, m.keys.Limit):
		m.opts.Limit = nextLimit(m.opts.Limit)
		m.refresh()
		m.setStatus(m.plot.Status())

	case key.Matches(msg, m.keys.Trim):
		m.mode = trimInputView
		m.input.Placeholder = "start end (seconds)"
		m.input.SetValue(fmt.Sprintf("0 %.6f", m.sess.Current().Series.Duration()))
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Reset):
		if err := m.sess.Reset(); err != nil {
			return m.fail(err), nil
		}
		m.refresh()
		m.setStatus("Data reset to original")

	case key.Matches(msg, m.keys.Stats):
		st, err := m.sess.Statistics()
		if err != nil {
			return m.fail(err), nil
		}
		text, err := st.Report()
		if err != nil {
			return m.fail(err), nil
		}
		m.viewport.SetContent(text)
		m.viewport.GotoTop()
		m.mode = statsView

	case key.Matches(msg, m.keys.Export):
		path, err := m.sess.ExportFile(m.outputDir)
		if err != nil {
			return m.fail(err), nil
		}
		status := fmt.Sprintf("Data exported as .sub file: %s", path)
		if info, err := os.Stat(path); err == nil {
			status += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
		}
		m.setStatus(status)
	}

	return m, nil
}

func (m Model) updateTrimInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = mainView
		m.input.Blur()
		m.setStatus("Trim cancelled")
		return m, nil

	case tea.KeyEnter:
		a, b, err := parseBounds(m.input.Value())
		if err != nil {
			return m.fail(err), nil
		}
		if err := series.ValidateRange(a, b); err != nil {
			return m.fail(err), nil
		}
		// typed bounds past the end of the capture are cut back to its duration
		start, end, ok := plot.ClampSelection(a, b, m.sess.Current().Series.Duration())
		if !ok {
			return m.fail(fmt.Errorf("selection %.3fs - %.3fs contains no data", a, b)), nil
		}
		m.pendingStart, m.pendingEnd = start, end
		m.input.Blur()
		m.mode = trimConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateTrimConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = mainView
		if err := m.sess.TrimCurrent(m.pendingStart, m.pendingEnd); err != nil {
			return m.fail(fmt.Errorf("trim failed: %w", err)), nil
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("Data trimmed to %.3fs - %.3fs", m.pendingStart, m.pendingEnd))

	case key.Matches(msg, m.keys.Cancel):
		m.mode = mainView
		m.setStatus("Trim cancelled")
	}
	return m, nil
}

func (m Model) updateOpenInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = mainView
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			return m, nil
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		m.mode = mainView
		m.input.Blur()
		m.setStatus(fmt.Sprintf("Loading %s...", filepath.Base(path)))

		cmds := []tea.Cmd{loadFile(path, false)}
		if m.watch && path != m.path {
			if m.watcher != nil {
				m.watcher.Close()
				m.watcher = nil
			}
			m.path = path
			cmds = append(cmds, startWatch(path))
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateStats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Stats), msg.Type == tea.KeyEsc:
		m.mode = mainView
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refresh rebuilds the cached plot after the series or display options change
func (m *Model) refresh() {
	p, err := m.sess.Plot(m.opts)
	if err != nil {
		m.plot = plot.Plot{}
		return
	}
	m.plot = p
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m Model) fail(err error) Model {
	logging.Errorf("TUI: %v", err)
	m.status = "Error: " + err.Error()
	m.statusErr = true
	return m
}

// parseBounds reads "start end" in seconds; a comma may separate the two
func parseBounds(s string) (float64, float64, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("enter start and end times in seconds, e.g. \"0.5 1.25\"")
	}
	start, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start time %q", fields[0])
	}
	end, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end time %q", fields[1])
	}
	return start, end, nil
}

// nextLimit steps to the next entry of limitCycle after l. A limit that is
// not part of the cycle moves to the first larger entry.
func nextLimit(l sampler.Limit) sampler.Limit {
	for i, c := range limitCycle {
		if c == l {
			return limitCycle[(i+1)%len(limitCycle)]
		}
	}
	n, limited := l.Value()
	if !limited {
		return limitCycle[0]
	}
	for _, c := range limitCycle {
		if v, ok := c.Value(); !ok || v > n {
			return c
		}
	}
	return limitCycle[0]
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
