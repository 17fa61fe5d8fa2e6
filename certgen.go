// Package certgen generates batches of certificates by compositing tabular
// data onto a template image.
//
// A Dataset (header row + data rows) supplies the values, a Template supplies
// the background, and a set of Placements describes where each column's value
// is drawn and how it is styled. The render and batch subpackages reproduce
// the same placement across every row and bundle the results into a zip
// archive, one file per row, as PNG, JPEG or single-page PDF.
package certgen

import (
	"fmt"
	"image"
	_ "image/jpeg" // template decoding
	_ "image/png"  // template decoding
	"io"
	"strings"
)

// Format identifies the output file format for a batch run.
// The format is uniform across all rows of one run.
type Format string

// Supported output formats.
const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatPDF Format = "pdf"
)

// ParseFormat parses a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatJPG:
		return FormatJPG, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the filename extension for the format, without the dot.
func (f Format) Ext() string { return string(f) }

// MIME returns the media type of files produced in this format.
func (f Format) MIME() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Point is a position in a pixel coordinate space. Which space (template or
// viewport) depends on context; canvas.Transform converts between the two.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in pixels.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RGB is an opaque RGB color with 0-255 components.
type RGB struct {
	R, G, B int
}

// Black is the default text color.
var Black = RGB{0, 0, 0}

// ParseHexColor parses a "#rrggbb" color string.
func ParseHexColor(s string) (RGB, error) {
	var c RGB
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("certgen: invalid color %q, want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("certgen: invalid color %q, want #rrggbb", s)
	}
	return c, nil
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// TextStyle describes how a placement's value is drawn.
type TextStyle struct {
	Size   float64 // font size in pixels for text, ignored for barcodes
	Family string  // font family name; unknown names fall back to the default face
	Color  RGB
}

// DefaultStyle is the style assigned to a freshly dropped placement.
func DefaultStyle() TextStyle {
	return TextStyle{Size: 20, Family: "", Color: Black}
}

// Kind selects what a placement renders from its column value.
type Kind string

// Placement kinds. The zero value renders plain text.
const (
	KindText    Kind = "text"
	KindQR      Kind = "qr"
	KindCode128 Kind = "code128"
	KindPDF417  Kind = "pdf417"
)

// Placement binds one dataset column to a position and style on the template.
// Position is in template pixel-space, anchored at the top-left of the drawn
// value. Box is only consulted for barcode kinds.
type Placement struct {
	ID       string
	Column   string
	Kind     Kind
	Position Point
	Style    TextStyle
	Box      Size
}

// Dataset is an immutable rectangular grid of strings: a header row naming
// the columns plus zero or more data rows. Every row has exactly one cell
// per header; absent data is an empty string, never a missing slot.
type Dataset struct {
	headers []string
	rows    [][]string
	index   map[string]int
}

// NewDataset validates and wraps fetched sheet data. Headers must be unique
// and non-empty as a set; every row must have exactly len(headers) cells.
func NewDataset(headers []string, rows [][]string) (*Dataset, error) {
	if len(headers) == 0 {
		return nil, ErrEmptyDataset
	}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := index[h]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHeader, h)
		}
		index[h] = i
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrRaggedDataset, i+1, len(row), len(headers))
		}
	}
	return &Dataset{
		headers: append([]string(nil), headers...),
		rows:    rows,
		index:   index,
	}, nil
}

// Headers returns a copy of the column names in sheet order.
func (d *Dataset) Headers() []string {
	return append([]string(nil), d.headers...)
}

// HasColumn reports whether the dataset has a column with the given name.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Len returns the number of data rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Record returns a by-name view of row i (0-based).
func (d *Dataset) Record(i int) Record {
	return Record{index: d.index, cells: d.rows[i]}
}

// Record is one dataset row with values resolved by column name, so a layout
// keeps working when column order drifts as long as the names still match.
type Record struct {
	index map[string]int
	cells []string
}

// Value returns the cell for the named column and whether the column exists.
func (r Record) Value(column string) (string, bool) {
	i, ok := r.index[column]
	if !ok {
		return "", false
	}
	return r.cells[i], true
}

// Template is the uploaded background image, decoded once and reused for
// every render. Decoding per row is deliberately impossible through this API.
type Template struct {
	img           image.Image
	width, height int
}

// DecodeTemplate decodes a PNG or JPEG template from r.
func DecodeTemplate(r io.Reader) (*Template, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateDecode, err)
	}
	b := img.Bounds()
	return &Template{img: img, width: b.Dx(), height: b.Dy()}, nil
}

// NewTemplate wraps an already decoded image.
func NewTemplate(img image.Image) *Template {
	b := img.Bounds()
	return &Template{img: img, width: b.Dx(), height: b.Dy()}
}

// Image returns the decoded template image.
func (t *Template) Image() image.Image { return t.img }

// Width returns the intrinsic pixel width.
func (t *Template) Width() int { return t.width }

// Height returns the intrinsic pixel height.
func (t *Template) Height() int { return t.height }

// OutputName returns the archive entry name for the given 1-based row
// ordinal, e.g. "certificate_3.pdf".
func OutputName(ordinal int, format Format) string {
	return fmt.Sprintf("certificate_%d.%s", ordinal, format.Ext())
}
