package subfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileFixture(t *testing.T) {
	c, err := ReadFile(filepath.Join("testdata", "garage.sub"))
	require.NoError(t, err)

	assert.Equal(t, "Flipper SubGHz RAW File", c.Header.Filetype)
	assert.Equal(t, "1", c.Header.Version)
	assert.Equal(t, "433920000", c.Header.Frequency)
	assert.Equal(t, "FuriHalSubGhzPresetOok650Async", c.Header.Preset)
	assert.Equal(t, "RAW", c.Header.Protocol)

	assert.Equal(t, 2, c.DataLines)
	assert.Equal(t, 1, c.Discarded, "junk has no leading integer")
	require.Len(t, c.Samples, 31)
	assert.Equal(t, int64(97), c.Samples[0])
	assert.Equal(t, int64(163), c.Samples[22])
	assert.Equal(t, int64(-98), c.Samples[23], "second line continues the same sequence")
	assert.Equal(t, []int64{12, 3233, -100}, c.Samples[28:], "12abc keeps its leading digits")
}

func TestDecodeHeaderDefaults(t *testing.T) {
	c, err := DecodeString("Frequency: 315000000\nRAW_Data: 1 -2 3\n")
	require.NoError(t, err)

	assert.Equal(t, "315000000", c.Header.Frequency)
	assert.Equal(t, "N/A", c.Header.Filetype)
	assert.Equal(t, "N/A", c.Header.Preset)
	assert.Equal(t, "N/A", c.Header.Protocol)
	assert.Equal(t, "1", c.Header.Version)
}

func TestDecodeHeaderParsing(t *testing.T) {
	input := strings.Join([]string{
		"   Preset:   Custom: 2FSK   ",
		"Unknown: ignored",
		"Protocol: Princeton",
		"Protocol: RAW",
		"no colon here",
		"RAW_Data: 5",
	}, "\r\n")

	c, err := DecodeString(input)
	require.NoError(t, err)

	assert.Equal(t, "Custom: 2FSK", c.Header.Preset, "value is everything after the first colon")
	assert.Equal(t, "RAW", c.Header.Protocol, "later header lines win")
	assert.Equal(t, []int64{5}, c.Samples)
}

func TestDecodeTokenTolerance(t *testing.T) {
	c, err := DecodeString("RAW_Data:\t100   -   -200\t\t0  +7 x\n")
	require.NoError(t, err)

	assert.Equal(t, []int64{100, -200, 0, 7}, c.Samples)
	assert.Equal(t, 1, c.Discarded, "lone dashes are not counted as discards")
}

func TestDecodeLeadingIntegers(t *testing.T) {
	c, err := DecodeString("RAW_Data: 100, -200; 300us 1.5 +42x -7- us -x\n")
	require.NoError(t, err)

	assert.Equal(t, []int64{100, -200, 300, 1, 42, -7}, c.Samples)
	assert.Equal(t, 2, c.Discarded, "us and -x have no digits")
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		tok  string
		want int64
		ok   bool
	}{
		{"97", 97, true},
		{"-264", -264, true},
		{"+7", 7, true},
		{"361,", 361, true},
		{"0x10", 0, true},
		{"-", 0, false},
		{"+", 0, false},
		{"abc", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := leadingInt(tt.tok)
		assert.Equal(t, tt.ok, ok, tt.tok)
		assert.Equal(t, tt.want, got, tt.tok)
	}
}

func TestDecodeNoData(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		dataLines int
		discarded int
	}{
		{"empty", "", 0, 0},
		{"headers only", "Filetype: Flipper SubGHz RAW File\nVersion: 1\nFrequency: 433920000\n", 0, 0},
		{"all tokens invalid", "RAW_Data: a b c\nRAW_Data: - -\n", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := DecodeString(tt.input)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, ErrNoData))

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.dataLines, pe.DataLines)
			assert.Equal(t, tt.discarded, pe.Discarded)
		})
	}
}

func TestDecodeLongLine(t *testing.T) {
	var b strings.Builder
	b.WriteString("RAW_Data:")
	for i := 0; i < 50000; i++ {
		b.WriteString(" 1234 -1234")
	}

	c, err := DecodeString(b.String())
	require.NoError(t, err)
	assert.Len(t, c.Samples, 100000)
}

func TestEncodeHeaderOrder(t *testing.T) {
	h := Header{Filetype: "F", Version: "2", Frequency: "433920000", Preset: "P", Protocol: "RAW"}
	out := EncodeString(h, []int64{1, -2})

	assert.Equal(t, "Filetype: F\nVersion: 2\nFrequency: 433920000\nPreset: P\nProtocol: RAW\nRAW_Data: 1 -2\n", out)
}

func TestEncodeWrapsLines(t *testing.T) {
	samples := make([]int64, 0, 500)
	for i := 0; i < 500; i++ {
		v := int64(i*37 + 1)
		if i%2 == 1 {
			v = -v
		}
		samples = append(samples, v)
	}

	out := EncodeString(DefaultHeader(), samples)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Greater(t, len(lines), 6)

	for _, line := range lines[5:] {
		require.True(t, strings.HasPrefix(line, DataPrefix+" "))
		content := strings.TrimPrefix(line, DataPrefix+" ")
		assert.LessOrEqual(t, len(content), MaxLineWidth)
	}
}

func TestEncodeWidthOversizedToken(t *testing.T) {
	var b strings.Builder
	require.NoError(t, EncodeWidth(&b, DefaultHeader(), []int64{123456, 1, 2}, 4))

	assert.Contains(t, b.String(), "RAW_Data: 123456\nRAW_Data: 1 2\n")
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]int64{
		{0},
		{1, -1, 0, 0, -0},
		{32700, -32700, 9223372036854775807, -9223372036854775808},
	}
	long := make([]int64, 2000)
	for i := range long {
		long[i] = int64((i%17)*113 - 900)
	}
	inputs = append(inputs, long)

	for _, samples := range inputs {
		c, err := DecodeString(EncodeString(DefaultHeader(), samples))
		require.NoError(t, err)
		assert.Equal(t, samples, c.Samples)
		assert.Zero(t, c.Discarded)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.sub")
	h := Header{Filetype: "Flipper SubGHz RAW File", Version: "1", Frequency: "868350000", Preset: "P", Protocol: "RAW"}

	require.NoError(t, WriteFile(path, h, []int64{400, -800, 400}, 0))

	c, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, h, c.Header)
	assert.Equal(t, []int64{400, -800, 400}, c.Samples)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.sub"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTrimmedName(t *testing.T) {
	tests := []struct {
		source string
		suffix string
		want   string
	}{
		{"garage.sub", "", "garage_trimmed.sub"},
		{"/captures/car.key.sub", "", "car.key_trimmed.sub"},
		{"noext", "", "noext_trimmed.sub"},
		{"", "", "rssi_data_trimmed.sub"},
		{"gate.sub", "_cut.sub", "gate_cut.sub"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimmedName(tt.source, tt.suffix), tt.source)
	}
}
