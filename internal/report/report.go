// Package report renders a loaded capture as a table, JSON, CSV or YAML document
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"subghz-inspector/internal/plot"
	"subghz-inspector/internal/sampler"
	"subghz-inspector/internal/series"
	"subghz-inspector/internal/session"
	"subghz-inspector/internal/stats"
)

// Format selects a document encoding
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatCSV, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be table, json, csv or yaml)", s)
	}
}

// Sample is one row of the sample listing
type Sample struct {
	Index    int     `json:"index" yaml:"index"`
	Time     float64 `json:"time_s" yaml:"time_s"`
	Value    int64   `json:"value" yaml:"value"`
	Polarity string  `json:"polarity" yaml:"polarity"`
}

// Document is everything a report shows about the current series
type Document struct {
	Metadata   []series.Field    `json:"metadata" yaml:"metadata"`
	Discarded  int               `json:"discarded_tokens" yaml:"discarded_tokens"`
	Trimmed    bool              `json:"trimmed" yaml:"trimmed"`
	Statistics *stats.Statistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
	Samples    []Sample          `json:"samples,omitempty" yaml:"samples,omitempty"`
	Shown      string            `json:"samples_shown,omitempty" yaml:"samples_shown,omitempty"`
}

// Options choose the optional parts of a Document
type Options struct {
	Stats   bool
	Samples bool
	Limit   sampler.Limit // applied to the sample listing
}

// New builds a document for the current state of s
func New(s *session.Session, opts Options) (*Document, error) {
	if !s.Loaded() {
		return nil, session.ErrNotLoaded
	}
	cur := s.Current()

	doc := &Document{
		Metadata:  cur.Meta.Fields(),
		Discarded: s.Discarded(),
		Trimmed:   s.Trimmed(),
	}

	if opts.Stats {
		st, err := s.Statistics()
		if err != nil {
			return nil, fmt.Errorf("failed to compute statistics: %w", err)
		}
		doc.Statistics = st
	}

	if opts.Samples {
		points := cur.Series.Points()
		all := make([]Sample, len(points))
		for i, pt := range points {
			all[i] = Sample{
				Index:    i,
				Time:     pt.Time,
				Value:    pt.Value,
				Polarity: plot.Classify(pt.Value).String(),
			}
		}
		doc.Samples = sampler.Sample(all, opts.Limit)
		doc.Shown = fmt.Sprintf("%s of %s (limit %s)",
			humanize.Comma(int64(len(doc.Samples))), humanize.Comma(int64(len(all))), opts.Limit)
	}

	return doc, nil
}

// Write encodes doc to w in format f
func Write(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, doc)
	case FormatTable, "":
		return writeTable(w, doc)
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}

func writeCSV(w io.Writer, doc *Document) error {
	writer := csv.NewWriter(w)

	// Metadata section
	writer.Write([]string{"# Capture Metadata"})
	writer.Write([]string{"Field", "Value"})
	for _, f := range doc.Metadata {
		writer.Write([]string{f.Key, f.Value})
	}
	writer.Write([]string{"Discarded Tokens", strconv.Itoa(doc.Discarded)})
	writer.Write([]string{"Trimmed", strconv.FormatBool(doc.Trimmed)})

	if st := doc.Statistics; st != nil {
		writer.Write([]string{""})
		writer.Write([]string{"# RSSI Statistics"})
		writer.Write([]string{"Statistic", "Value"})
		writer.Write([]string{"Count", strconv.Itoa(st.Count)})
		writer.Write([]string{"Duration_s", fmt.Sprintf("%.6f", st.Duration)})
		writer.Write([]string{"Mean", fmt.Sprintf("%.2f", st.Mean)})
		writer.Write([]string{"Median", strconv.FormatInt(st.Median, 10)})
		writer.Write([]string{"StdDev", fmt.Sprintf("%.2f", st.StdDev)})
		writer.Write([]string{"Min", strconv.FormatInt(st.Min, 10)})
		writer.Write([]string{"Max", strconv.FormatInt(st.Max, 10)})
		writer.Write([]string{"Range", strconv.FormatInt(st.Range, 10)})
		writer.Write([]string{"Positive", fmt.Sprintf("%d (%.1f%%)", st.Positive.Count, st.Positive.Percent)})
		writer.Write([]string{"Negative", fmt.Sprintf("%d (%.1f%%)", st.Negative.Count, st.Negative.Percent)})
		writer.Write([]string{"Zero", fmt.Sprintf("%d (%.1f%%)", st.Zero.Count, st.Zero.Percent)})
	}

	if len(doc.Samples) > 0 {
		writer.Write([]string{""})
		writer.Write([]string{"# Samples"})
		writer.Write([]string{"Index", "Time_s", "Value", "Polarity"})
		for _, s := range doc.Samples {
			writer.Write([]string{
				strconv.Itoa(s.Index),
				fmt.Sprintf("%.6f", s.Time),
				strconv.FormatInt(s.Value, 10),
				s.Polarity,
			})
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, doc *Document) error {
	var b strings.Builder

	b.WriteString("📊 Capture Metadata:\n")
	for _, f := range doc.Metadata {
		fmt.Fprintf(&b, "%s: %s\n", f.Key, f.Value)
	}
	if doc.Discarded > 0 {
		fmt.Fprintf(&b, "⚠️  Discarded Tokens: %d\n", doc.Discarded)
	}
	if doc.Trimmed {
		b.WriteString("Trimmed: yes\n")
	}
	b.WriteString("\n")

	if doc.Statistics != nil {
		text, err := doc.Statistics.Report()
		if err != nil {
			return fmt.Errorf("failed to render statistics: %w", err)
		}
		b.WriteString("📈 ")
		b.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(doc.Samples) > 0 {
		fmt.Fprintf(&b, "📡 Sample Data (%s):\n", doc.Shown)
		fmt.Fprintf(&b, "%-8s %-14s %-10s %-10s\n", "#", "Time (s)", "Value", "Polarity")
		for _, s := range doc.Samples {
			fmt.Fprintf(&b, "%-8d %-14.6f %-10d %-10s\n", s.Index, s.Time, s.Value, s.Polarity)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
