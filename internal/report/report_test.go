package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"subghz-inspector/internal/logging"
	"subghz-inspector/internal/sampler"
	"subghz-inspector/internal/session"
	"subghz-inspector/internal/subfile"
)

func init() {
	logging.Discard()
}

func loadedSession(t *testing.T) *session.Session {
	t.Helper()
	c, err := subfile.DecodeString("Filetype: Flipper SubGhz RAW File\nFrequency: 433920000\nRAW_Data: 100 -200 300 -400 500 -600 0 bogus\n")
	require.NoError(t, err)

	s := session.New()
	require.NoError(t, s.Load("remote.sub", c))
	return s
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"table": FormatTable,
		"JSON":  FormatJSON,
		" csv ": FormatCSV,
		"yaml":  FormatYAML,
		"yml":   FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewNotLoaded(t *testing.T) {
	_, err := New(session.New(), Options{})
	assert.ErrorIs(t, err, session.ErrNotLoaded)
}

func TestNew(t *testing.T) {
	doc, err := New(loadedSession(t), Options{Stats: true, Samples: true, Limit: sampler.LimitOf(3)})
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Discarded)
	assert.False(t, doc.Trimmed)
	assert.Equal(t, "File", doc.Metadata[0].Key)
	assert.Equal(t, "remote.sub", doc.Metadata[0].Value)

	require.NotNil(t, doc.Statistics)
	assert.Equal(t, 7, doc.Statistics.Count)
	assert.Equal(t, 1, doc.Statistics.Zero.Count)

	require.Len(t, doc.Samples, 4)
	indices := make([]int, len(doc.Samples))
	for i, s := range doc.Samples {
		indices[i] = s.Index
	}
	assert.Equal(t, []int{0, 2, 4, 6}, indices)
	assert.Equal(t, "positive", doc.Samples[0].Polarity)
	assert.Equal(t, "4 of 7 (limit 3)", doc.Shown)
}

func TestNewOmitsOptionalParts(t *testing.T) {
	doc, err := New(loadedSession(t), Options{})
	require.NoError(t, err)
	assert.Nil(t, doc.Statistics)
	assert.Empty(t, doc.Samples)
}

func TestWriteJSON(t *testing.T) {
	doc, err := New(loadedSession(t), Options{Stats: true, Samples: true, Limit: sampler.NoLimit()})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc, FormatJSON))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.EqualValues(t, 1, got["discarded_tokens"])
	assert.Len(t, got["samples"], 7)
	assert.Contains(t, got, "statistics")
}

func TestWriteYAML(t *testing.T) {
	doc, err := New(loadedSession(t), Options{Stats: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc, FormatYAML))

	var got struct {
		Metadata []struct {
			Key   string `yaml:"key"`
			Value string `yaml:"value"`
		} `yaml:"metadata"`
		Statistics struct {
			Count int   `yaml:"count"`
			Min   int64 `yaml:"min"`
		} `yaml:"statistics"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 7, got.Statistics.Count)
	assert.Equal(t, int64(-600), got.Statistics.Min)
	assert.Equal(t, "Frequency", got.Metadata[3].Key)
	assert.Equal(t, "433920000", got.Metadata[3].Value)
}

func TestWriteCSV(t *testing.T) {
	doc, err := New(loadedSession(t), Options{Stats: true, Samples: true, Limit: sampler.NoLimit()})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc, FormatCSV))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"# Capture Metadata"}, rows[0])
	assert.Contains(t, rows, []string{"Discarded Tokens", "1"})
	assert.Contains(t, rows, []string{"Zero", "1 (14.3%)"})
	assert.Contains(t, rows, []string{"Index", "Time_s", "Value", "Polarity"})
	assert.Equal(t, []string{"6", "0.002100", "0", "positive"}, rows[len(rows)-1])
}

func TestWriteTable(t *testing.T) {
	doc, err := New(loadedSession(t), Options{Stats: true, Samples: true, Limit: sampler.LimitOf(2)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc, FormatTable))
	out := buf.String()

	assert.Contains(t, out, "Data Points: 7\n")
	assert.Contains(t, out, "Discarded Tokens: 1")
	assert.Contains(t, out, "RSSI Signal Statistics:")
	assert.Contains(t, out, "Sample Data (3 of 7 (limit 2))")
	assert.Equal(t, 2, strings.Count(out, "positive"))
}
