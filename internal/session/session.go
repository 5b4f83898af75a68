// Package session holds the capture being inspected: the pristine series as
// loaded and the current, possibly trimmed, series.
package session

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"subghz-inspector/internal/logging"
	"subghz-inspector/internal/plot"
	"subghz-inspector/internal/series"
	"subghz-inspector/internal/stats"
	"subghz-inspector/internal/subfile"
)

// ErrNotLoaded is returned by operations that need a loaded capture
var ErrNotLoaded = errors.New("no capture loaded")

// State is a series together with the metadata describing it. Series is
// immutable, so a State can be shared freely.
type State struct {
	Series *series.TimeSeries
	Meta   series.Metadata
}

// Option configures a Session
type Option func(*Session)

// WithLineWidth sets the RAW_Data line width used on export
func WithLineWidth(width int) Option {
	return func(s *Session) {
		s.lineWidth = width
	}
}

// WithSuffix sets the suffix of exported file names
func WithSuffix(suffix string) Option {
	return func(s *Session) {
		s.suffix = suffix
	}
}

// Session owns the original and current states of one capture
type Session struct {
	original  State
	current   State
	loaded    bool
	discarded int

	source    string
	lineWidth int
	suffix    string
}

// New creates an empty session
func New(opts ...Option) *Session {
	s := &Session{
		lineWidth: subfile.MaxLineWidth,
		suffix:    subfile.DefaultSuffix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces both the original and current states with the decoded
// capture. source is the path or name the capture came from.
func (s *Session) Load(source string, c *subfile.Capture) error {
	if c == nil || len(c.Samples) == 0 {
		return &subfile.ParseError{Err: subfile.ErrNoData}
	}

	name := ""
	if source != "" {
		name = filepath.Base(source)
	}

	ts := series.Derive(c.Samples)
	meta := series.NewMetadata(name, c.Header, ts)

	s.original = State{Series: ts, Meta: meta}
	s.current = s.original
	s.loaded = true
	s.discarded = c.Discarded
	s.source = source

	logging.Infof("Session: loaded %s (%d samples, %.3f s, %d discarded tokens)",
		meta.File, ts.Len(), ts.Duration(), c.Discarded)
	return nil
}

// LoadFile reads and loads a capture file. On failure the session keeps
// whatever it held before.
func (s *Session) LoadFile(path string) error {
	c, err := subfile.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}
	return s.Load(path, c)
}

// Loaded reports whether a capture has been loaded
func (s *Session) Loaded() bool {
	return s.loaded
}

// Source returns the path the capture was loaded from
func (s *Session) Source() string {
	return s.source
}

// Discarded returns the number of unparseable tokens in the loaded file
func (s *Session) Discarded() int {
	return s.discarded
}

// Current returns the active state
func (s *Session) Current() State {
	return s.current
}

// Original returns the state as loaded
func (s *Session) Original() State {
	return s.original
}

// Trimmed reports whether the current series differs from the original
func (s *Session) Trimmed() bool {
	return s.loaded && s.current.Series != s.original.Series
}

// TrimCurrent replaces the current series with the samples starting in
// [start, end), renormalized to start at 0. On error nothing changes.
func (s *Session) TrimCurrent(start, end float64) error {
	if !s.loaded {
		return ErrNotLoaded
	}

	trimmed, err := series.Trim(s.current.Series, start, end)
	if err != nil {
		logging.Warnf("Session: trim %.3fs - %.3fs rejected: %v", start, end, err)
		return err
	}

	s.current = State{Series: trimmed, Meta: s.current.Meta.Refresh(trimmed)}
	logging.Infof("Session: trimmed to %.3fs - %.3fs (%d samples)", start, end, trimmed.Len())
	return nil
}

// Reset makes the original state current again
func (s *Session) Reset() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	s.current = State{
		Series: s.original.Series,
		Meta:   s.original.Meta.Refresh(s.original.Series),
	}
	logging.Infof("Session: reset to original (%d samples)", s.current.Series.Len())
	return nil
}

// Statistics computes statistics over the current series. The reported
// duration is the start time of the last sample.
func (s *Session) Statistics() (*stats.Statistics, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	ts := s.current.Series
	return stats.Compute(ts.Samples(), ts.End())
}

// Plot builds the display datasets for the current series
func (s *Session) Plot(opts plot.Options) (plot.Plot, error) {
	if !s.loaded {
		return plot.Plot{}, ErrNotLoaded
	}
	return plot.Build(s.current.Series, opts), nil
}

// Export encodes the current series with the original header fields
func (s *Session) Export(w io.Writer) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	return subfile.EncodeWidth(w, s.current.Meta.Header, s.current.Series.Samples(), s.lineWidth)
}

// ExportName is the file name Export output should be saved under
func (s *Session) ExportName() string {
	return subfile.TrimmedName(s.source, s.suffix)
}

// ExportFile writes the current series into dir and returns the path
func (s *Session) ExportFile(dir string) (string, error) {
	if !s.loaded {
		return "", ErrNotLoaded
	}
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, s.ExportName())
	ts := s.current.Series
	if err := subfile.WriteFile(path, s.current.Meta.Header, ts.Samples(), s.lineWidth); err != nil {
		return "", fmt.Errorf("failed to export %s: %w", path, err)
	}

	logging.Infof("Session: exported %d samples to %s", ts.Len(), path)
	return path, nil
}
