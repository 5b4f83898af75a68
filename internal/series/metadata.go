package series

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"subghz-inspector/internal/subfile"
)

// Metadata field names, in display order
const (
	FieldFile       = "File"
	FieldFiletype   = "Filetype"
	FieldVersion    = "Version"
	FieldFrequency  = "Frequency"
	FieldPreset     = "Preset"
	FieldProtocol   = "Protocol"
	FieldDataPoints = "Data Points"
	FieldDuration   = "Duration"
	FieldRSSIRange  = "RSSI Range"
)

// Field is one key/value line of the metadata panel
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Metadata combines the passthrough header of a capture with fields derived
// from the active series. Only Header is ever written back to a file.
type Metadata struct {
	File   string
	Header subfile.Header

	DataPoints string
	Duration   string
	RSSIRange  string
}

// NewMetadata builds the metadata for ts loaded from file with header h
func NewMetadata(file string, h subfile.Header, ts *TimeSeries) Metadata {
	m := Metadata{File: file, Header: h}
	return m.Refresh(ts)
}

// Refresh returns a copy whose derived fields describe ts
func (m Metadata) Refresh(ts *TimeSeries) Metadata {
	m.DataPoints = humanize.Comma(int64(ts.Len()))
	m.Duration = fmt.Sprintf("%.3f seconds", ts.Duration())
	if ts.Len() > 0 {
		m.RSSIRange = fmt.Sprintf("%d to %d", ts.Min(), ts.Max())
	} else {
		m.RSSIRange = ""
	}
	return m
}

// Fields returns the non-empty metadata entries in display order
func (m Metadata) Fields() []Field {
	all := []Field{
		{FieldFile, m.File},
		{FieldFiletype, m.Header.Filetype},
		{FieldVersion, m.Header.Version},
		{FieldFrequency, m.Header.Frequency},
		{FieldPreset, m.Header.Preset},
		{FieldProtocol, m.Header.Protocol},
		{FieldDataPoints, m.DataPoints},
		{FieldDuration, m.Duration},
		{FieldRSSIRange, m.RSSIRange},
	}

	fields := all[:0]
	for _, f := range all {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// Map returns the non-empty metadata entries keyed by field name
func (m Metadata) Map() map[string]string {
	out := make(map[string]string, 9)
	for _, f := range m.Fields() {
		out[f.Key] = f.Value
	}
	return out
}
