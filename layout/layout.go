package layout

import (
	"encoding/json"
	"fmt"

	"github.com/lvillar/certgen"
)

// Layout is the JSON document form of a placement set, as saved by the
// mapping step and consumed by the CLI.
//
// Example:
//
//	{
//	  "fields": [
//	    {"column": "Name", "x": 100, "y": 100, "fontSize": 20, "color": "#000000"},
//	    {"column": "Certificate ID", "kind": "qr", "x": 650, "y": 40, "width": 128, "height": 128}
//	  ]
//	}
type Layout struct {
	Fields []Field `json:"fields"`
}

// Field is one placement in its serialized form. Coordinates are in
// template pixel-space, top-left anchored.
type Field struct {
	Column     string  `json:"column"`
	Kind       string  `json:"kind,omitempty"` // text (default), qr, code128, pdf417
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	Color      string  `json:"color,omitempty"` // #rrggbb, default black
	Width      float64 `json:"width,omitempty"` // barcode kinds only
	Height     float64 `json:"height,omitempty"`
}

// Parse decodes a JSON layout document and validates its fields.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("layout: parsing document: %w", err)
	}
	if len(l.Fields) == 0 {
		return nil, fmt.Errorf("layout: document has no fields")
	}
	for i, f := range l.Fields {
		if f.Column == "" {
			return nil, fmt.Errorf("layout: field %d has no column", i+1)
		}
		switch certgen.Kind(f.Kind) {
		case "", certgen.KindText, certgen.KindQR, certgen.KindCode128, certgen.KindPDF417:
		default:
			return nil, fmt.Errorf("layout: field %d: unknown kind %q", i+1, f.Kind)
		}
		if f.Color != "" {
			if _, err := certgen.ParseHexColor(f.Color); err != nil {
				return nil, fmt.Errorf("layout: field %d: %w", i+1, err)
			}
		}
	}
	return &l, nil
}

// Store builds a placement store from the document, applying the default
// style (size 20, default family, black) to unset attributes. Field order is
// preserved; a repeated column keeps only its last field, matching the
// store's replace policy.
func (l *Layout) Store() *Store {
	s := NewStore()
	for _, f := range l.Fields {
		style := certgen.DefaultStyle()
		if f.FontSize > 0 {
			style.Size = f.FontSize
		}
		if f.FontFamily != "" {
			style.Family = f.FontFamily
		}
		if f.Color != "" {
			style.Color, _ = certgen.ParseHexColor(f.Color) // validated in Parse
		}
		kind := certgen.Kind(f.Kind)
		box := certgen.Size{W: f.Width, H: f.Height}
		s.AddKind(f.Column, kind, certgen.Point{X: f.X, Y: f.Y}, style, box)
	}
	return s
}

// FromPlacements converts a placement snapshot back into its document form.
func FromPlacements(placements []certgen.Placement) *Layout {
	l := &Layout{Fields: make([]Field, 0, len(placements))}
	for _, p := range placements {
		f := Field{
			Column:     p.Column,
			X:          p.Position.X,
			Y:          p.Position.Y,
			FontSize:   p.Style.Size,
			FontFamily: p.Style.Family,
			Color:      p.Style.Color.Hex(),
			Width:      p.Box.W,
			Height:     p.Box.H,
		}
		if p.Kind != certgen.KindText {
			f.Kind = string(p.Kind)
		}
		l.Fields = append(l.Fields, f)
	}
	return l
}

// Marshal encodes the document as indented JSON.
func (l *Layout) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("layout: encoding document: %w", err)
	}
	return data, nil
}
