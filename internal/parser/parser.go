package parser

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// Reader decodes a tabular byte stream into records, header row first.
type Reader interface {
	// Extensions lists the lower-case file extensions handled, including the dot.
	Extensions() []string
	Read(r io.Reader, opt Options) ([][]string, error)
}

// Options tunes record decoding.
type Options struct {
	// Delimiter for delimited text. If 0, chosen from the extension or sniffed
	// from the header line among ',', ';' and '\t'.
	Delimiter rune
	// Sheet selects a workbook sheet by name; empty means the first sheet.
	Sheet string
	// Name is the display name of the stream, used for extension-based choices.
	Name string
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// Extensions returns every extension a registered reader accepts.
func Extensions() []string {
	var out []string
	for _, r := range registry {
		out = append(out, r.Extensions()...)
	}
	return out
}

// For selects the reader for a file name.
func For(name string) (Reader, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, r := range registry {
		for _, e := range r.Extensions() {
			if e == ext {
				return r, true
			}
		}
	}
	return nil, false
}

// ReadRecords decodes r with the reader matching name. Names without a known
// extension (typical for uploads) are decoded as delimited text.
func ReadRecords(name string, r io.Reader, opt Options) ([][]string, error) {
	opt.Name = name
	rd, ok := For(name)
	if !ok {
		rd = csvReader{}
	}
	return rd.Read(r, opt)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported tabular format")

// ErrEmpty indicates a stream with no header row.
var ErrEmpty = errors.New("no header row")
