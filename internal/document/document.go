package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// DefaultSize is used for rows and cols when a document omits them.
const DefaultSize = 10

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCUE  Format = "cue"
)

// ErrUnsupportedFormat is returned for unknown file extensions or formats.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Document is the on-disk form of a sheet.
type Document struct {
	Rows  int               `yaml:"rows,omitempty" json:"rows,omitempty"`
	Cols  int               `yaml:"cols,omitempty" json:"cols,omitempty"`
	Cells map[string]string `yaml:"cells,omitempty" json:"cells,omitempty"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode parses data in the given format. name is used in CUE positions
// and may be empty.
func Decode(data []byte, format Format, name string) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to parse YAML: empty document")
			}
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatCUE:
		d, err := decodeCUE(data, name)
		if err != nil {
			return nil, err
		}
		doc = *d
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &doc, nil
}

// Encode renders doc in the given format. Map keys are emitted sorted.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatCUE:
		return encodeCUE(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Grid builds a fresh grid from the document. Every cell key must be a valid
// address inside the grid.
func (d *Document) Grid() (*sheet.Grid, error) {
	rows, cols := d.Rows, d.Cols
	if rows == 0 {
		rows = DefaultSize
	}
	if cols == 0 {
		cols = DefaultSize
	}

	g, err := sheet.New(rows, cols)
	if err != nil {
		return nil, err
	}
	for key, expr := range d.Cells {
		if _, _, err := sheet.ParseAddress(key); err != nil {
			return nil, fmt.Errorf("cell %q: %w", key, err)
		}
		if err := g.SetExpression(sheet.Address(key), norm.NFC.String(expr)); err != nil {
			return nil, fmt.Errorf("cell %q outside %dx%d grid: %w", key, rows, cols, err)
		}
	}
	return g, nil
}

// FromGrid captures the dimensions and non-empty expressions of g.
func FromGrid(g *sheet.Grid) *Document {
	doc := &Document{Rows: g.Rows(), Cols: g.Cols()}
	exprs := g.Expressions()
	if len(exprs) > 0 {
		doc.Cells = make(map[string]string, len(exprs))
		for addr, expr := range exprs {
			doc.Cells[string(addr)] = expr
		}
	}
	return doc
}

// Load reads a document file and builds its grid.
func Load(path string) (*sheet.Grid, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet file: %w", err)
	}
	doc, err := Decode(data, format, path)
	if err != nil {
		return nil, err
	}
	g, err := doc.Grid()
	if err != nil {
		return nil, fmt.Errorf("invalid sheet %s: %w", path, err)
	}
	return g, nil
}

// Save writes the expressions of g to path, in the format its extension names.
func Save(path string, g *sheet.Grid) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(FromGrid(g), format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sheet file: %w", err)
	}
	return nil
}
