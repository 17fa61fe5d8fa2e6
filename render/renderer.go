// Package render produces finished certificate files: one data row
// composited onto the template at the recorded placements, serialized as
// PNG, JPEG or a single-page PDF.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
	"github.com/fogleman/gg"
	"github.com/ruudk/golang-pdf417"

	"github.com/lvillar/certgen"
	"github.com/lvillar/certgen/canvas"
)

// Default barcode box sizes in template pixels, used when a placement's Box
// is zero.
var defaultBox = map[certgen.Kind]certgen.Size{
	certgen.KindQR:      {W: 128, H: 128},
	certgen.KindCode128: {W: 192, H: 64},
	certgen.KindPDF417:  {W: 192, H: 64},
}

// Renderer composites rows onto a template. A Renderer is safe to reuse
// across rows; each call owns its drawing surface for the duration of the
// call, so successive renders never share mutable surface state.
type Renderer struct {
	fonts       *FontSet
	jpegQuality int
}

// NewRenderer creates a renderer with the embedded Go fonts available.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := &config{
		jpegQuality: 95,
		fonts:       make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.jpegQuality < 1 || cfg.jpegQuality > 100 {
		return nil, fmt.Errorf("render: jpeg quality %d out of range 1-100", cfg.jpegQuality)
	}

	fonts, err := NewFontSet()
	if err != nil {
		return nil, err
	}
	for family, ttf := range cfg.fonts {
		if err := fonts.Register(family, ttf); err != nil {
			return nil, err
		}
	}
	if cfg.defaultFont != "" {
		if err := fonts.SetDefault(cfg.defaultFont); err != nil {
			return nil, err
		}
	}
	return &Renderer{fonts: fonts, jpegQuality: cfg.jpegQuality}, nil
}

// Render produces one finished certificate for one data row.
//
// The surface is always the template's native pixel size, regardless of any
// editor viewport the placements were authored in. A placement whose column
// is missing from the record is skipped; the remaining placements still
// render, so a layout survives minor header drift in the sheet.
func (r *Renderer) Render(tpl *certgen.Template, rec certgen.Record, placements []certgen.Placement, format certgen.Format) ([]byte, error) {
	dc := gg.NewContext(tpl.Width(), tpl.Height())
	dc.DrawImage(tpl.Image(), 0, 0)

	identity := canvas.Transform{Scale: 1}
	if err := r.drawPlacements(dc, rec, placements, identity); err != nil {
		return nil, err
	}
	return r.encode(dc.Image(), format)
}

// RenderPreview renders one row at editor-viewport scale, reproducing the
// exact fit-and-center transform the canvas uses, so what the user sees
// while editing matches the preview pixel for pixel. Output is always PNG.
func (r *Renderer) RenderPreview(tpl *certgen.Template, rec certgen.Record, placements []certgen.Placement, viewportW, viewportH int) ([]byte, error) {
	tf := canvas.Fit(float64(viewportW), float64(viewportH), float64(tpl.Width()), float64(tpl.Height()))

	dc := gg.NewContext(viewportW, viewportH)
	dc.Push()
	dc.Translate(tf.OffsetX, tf.OffsetY)
	dc.Scale(tf.Scale, tf.Scale)
	dc.DrawImage(tpl.Image(), 0, 0)
	dc.Pop()

	if err := r.drawPlacements(dc, rec, placements, tf); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("render: encoding preview: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPlacements draws every resolvable placement onto dc. Placement
// positions are template pixel-space and mapped through tf, so the same code
// serves native renders (identity transform) and viewport previews.
func (r *Renderer) drawPlacements(dc *gg.Context, rec certgen.Record, placements []certgen.Placement, tf canvas.Transform) error {
	for _, p := range placements {
		value, ok := rec.Value(p.Column)
		if !ok {
			continue // header drift: skip, render the rest
		}
		at := tf.ToViewport(p.Position)

		switch p.Kind {
		case certgen.KindQR, certgen.KindCode128, certgen.KindPDF417:
			if err := r.drawBarcode(dc, p, value, at, tf.Scale); err != nil {
				return err
			}
		default:
			if err := r.drawText(dc, p, value, at, tf.Scale); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) drawText(dc *gg.Context, p certgen.Placement, value string, at certgen.Point, scale float64) error {
	face, err := r.fonts.Face(p.Style.Family, p.Style.Size*scale)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetRGB255(p.Style.Color.R, p.Style.Color.G, p.Style.Color.B)
	// Anchor the top-left of the text at the placement position; no
	// wrapping, no truncation.
	dc.DrawStringAnchored(value, at.X, at.Y, 0, 1)
	return nil
}

func (r *Renderer) drawBarcode(dc *gg.Context, p certgen.Placement, value string, at certgen.Point, scale float64) error {
	if value == "" {
		return nil
	}
	var (
		code barcode.Barcode
		err  error
	)
	switch p.Kind {
	case certgen.KindQR:
		code, err = qr.Encode(value, qr.M, qr.Auto)
	case certgen.KindCode128:
		code, err = code128.Encode(value)
	case certgen.KindPDF417:
		code = pdf417.Encode(value, 4, 2)
	}
	if err != nil {
		return fmt.Errorf("render: encoding %s for column %q: %w", p.Kind, p.Column, err)
	}

	box := p.Box
	if box.W <= 0 || box.H <= 0 {
		box = defaultBox[p.Kind]
	}
	w := int(box.W*scale + 0.5)
	h := int(box.H*scale + 0.5)
	scaled, err := barcode.Scale(code, w, h)
	if err != nil {
		return fmt.Errorf("render: scaling %s to %dx%d: %w", p.Kind, w, h, err)
	}
	dc.DrawImage(scaled, int(at.X+0.5), int(at.Y+0.5))
	return nil
}

func (r *Renderer) encode(img image.Image, format certgen.Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case certgen.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("render: encoding png: %w", err)
		}
	case certgen.FormatJPG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.jpegQuality}); err != nil {
			return nil, fmt.Errorf("render: encoding jpg: %w", err)
		}
	case certgen.FormatPDF:
		return wrapPDF(img)
	default:
		return nil, fmt.Errorf("%w: %q", certgen.ErrUnknownFormat, format)
	}
	return buf.Bytes(), nil
}
