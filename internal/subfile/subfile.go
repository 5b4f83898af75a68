// Package subfile reads and writes the line-oriented sub-GHz RAW capture format
package subfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"subghz-inspector/internal/logging"
)

// Header keys recognized in a capture file
const (
	KeyFiletype  = "Filetype"
	KeyVersion   = "Version"
	KeyFrequency = "Frequency"
	KeyPreset    = "Preset"
	KeyProtocol  = "Protocol"
)

const (
	// DataPrefix starts every line carrying pulse durations
	DataPrefix = "RAW_Data:"

	// MaxLineWidth bounds the token content of an encoded RAW_Data line
	MaxLineWidth = 100

	// DefaultSuffix is appended to exported file names
	DefaultSuffix = "_trimmed.sub"

	defaultValue   = "N/A"
	defaultVersion = "1"
	fallbackName   = "rssi_data"
	maxScanLine    = 16 * 1024 * 1024
)

// ErrNoData is returned when a capture contains no usable samples
var ErrNoData = errors.New("no data")

// ParseError describes a capture that could not be turned into samples
type ParseError struct {
	DataLines int // RAW_Data lines seen
	Discarded int // tokens without a leading base-10 integer
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: no RAW_Data found in file or all values are invalid (%d data lines, %d discarded tokens)",
		e.Err, e.DataLines, e.Discarded)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Header holds the passthrough header fields of a capture
type Header struct {
	Filetype  string `json:"filetype" yaml:"filetype"`
	Version   string `json:"version" yaml:"version"`
	Frequency string `json:"frequency" yaml:"frequency"`
	Preset    string `json:"preset" yaml:"preset"`
	Protocol  string `json:"protocol" yaml:"protocol"`
}

// DefaultHeader returns the values used for keys missing from a file
func DefaultHeader() Header {
	return Header{
		Filetype:  defaultValue,
		Version:   defaultVersion,
		Frequency: defaultValue,
		Preset:    defaultValue,
		Protocol:  defaultValue,
	}
}

// set assigns a recognized key and reports whether the key was known
func (h *Header) set(key, value string) bool {
	switch key {
	case KeyFiletype:
		h.Filetype = value
	case KeyVersion:
		h.Version = value
	case KeyFrequency:
		h.Frequency = value
	case KeyPreset:
		h.Preset = value
	case KeyProtocol:
		h.Protocol = value
	default:
		return false
	}
	return true
}

// Capture is the decoded content of a capture file
type Capture struct {
	Header    Header
	Samples   []int64
	Discarded int // tokens dropped because they had no leading integer
	DataLines int // number of RAW_Data lines
}

// Decode parses a capture from r. All RAW_Data lines contribute to one flat
// sample sequence in file order.
func Decode(r io.Reader) (*Capture, error) {
	c := &Capture{Header: DefaultHeader()}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScanLine)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, DataPrefix) {
			c.DataLines++
			c.appendTokens(line[len(DataPrefix):])
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		c.Header.set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read capture: %w", err)
	}

	logging.Debugf("Codec: decoded %d samples from %d RAW_Data lines (%d discarded tokens)",
		len(c.Samples), c.DataLines, c.Discarded)

	if len(c.Samples) == 0 {
		return nil, &ParseError{DataLines: c.DataLines, Discarded: c.Discarded, Err: ErrNoData}
	}
	return c, nil
}

// DecodeString parses a capture held in memory
func DecodeString(s string) (*Capture, error) {
	return Decode(strings.NewReader(s))
}

func (c *Capture) appendTokens(data string) {
	for _, tok := range strings.Fields(data) {
		if tok == "-" {
			continue
		}
		v, ok := leadingInt(tok)
		if !ok {
			c.Discarded++
			continue
		}
		c.Samples = append(c.Samples, v)
	}
}

// leadingInt reads the optionally signed decimal integer at the start of
// tok and ignores whatever follows it, so "300us" is 300 and "1.5" is 1.
func leadingInt(tok string) (int64, bool) {
	end := 0
	if end < len(tok) && (tok[end] == '-' || tok[end] == '+') {
		end++
	}
	digits := end
	for end < len(tok) && tok[end] >= '0' && tok[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.ParseInt(tok[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Encode writes the header and samples using MaxLineWidth
func Encode(w io.Writer, h Header, samples []int64) error {
	return EncodeWidth(w, h, samples, MaxLineWidth)
}

// EncodeWidth writes the header lines followed by greedily wrapped RAW_Data
// lines whose token content stays within width characters.
func EncodeWidth(w io.Writer, h Header, samples []int64, width int) error {
	if width <= 0 {
		width = MaxLineWidth
	}

	bw := bufio.NewWriter(w)
	for _, kv := range [][2]string{
		{KeyFiletype, h.Filetype},
		{KeyVersion, h.Version},
		{KeyFrequency, h.Frequency},
		{KeyPreset, h.Preset},
		{KeyProtocol, h.Protocol},
	} {
		if _, err := fmt.Fprintf(bw, "%s: %s\n", kv[0], kv[1]); err != nil {
			return err
		}
	}

	var line strings.Builder
	flush := func() error {
		if line.Len() == 0 {
			return nil
		}
		_, err := fmt.Fprintf(bw, "%s %s\n", DataPrefix, line.String())
		line.Reset()
		return err
	}

	for _, s := range samples {
		tok := strconv.FormatInt(s, 10)
		if line.Len() > 0 && line.Len()+len(tok)+1 > width {
			if err := flush(); err != nil {
				return err
			}
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(tok)
	}
	if err := flush(); err != nil {
		return err
	}

	return bw.Flush()
}

// EncodeString returns the encoded capture as a string
func EncodeString(h Header, samples []int64) string {
	var b strings.Builder
	_ = Encode(&b, h, samples)
	return b.String()
}

// ReadFile decodes the capture stored in filename
func ReadFile(filename string) (*Capture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// WriteFile encodes a capture into filename. The data is written to a
// temporary file in the same directory and renamed into place.
func WriteFile(filename string, h Header, samples []int64, width int) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".subfile-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := EncodeWidth(tmp, h, samples, width); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// TrimmedName derives the export file name for a source file: the base name
// with its extension stripped, followed by suffix (DefaultSuffix when empty).
func TrimmedName(source, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	base := filepath.Base(source)
	if source == "" || base == "." || base == string(filepath.Separator) {
		return fallbackName + suffix
	}
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		base = fallbackName
	}
	return base + suffix
}
