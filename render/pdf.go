package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

// wrapPDF wraps a rendered raster as the sole image on a single PDF page
// sized to the raster's pixel dimensions (1 px = 1 pt). One certificate is
// always one page.
func wrapPDF(img image.Image) ([]byte, error) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	var raster bytes.Buffer
	if err := png.Encode(&raster, img); err != nil {
		return nil, fmt.Errorf("render: encoding raster for pdf: %w", err)
	}

	// Orientation stays "P" so the custom size is taken verbatim; gofpdf
	// swaps width and height for landscape.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("certificate", opts, &raster)
	pdf.ImageOptions("certificate", 0, 0, w, h, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("render: writing pdf: %w", err)
	}
	return out.Bytes(), nil
}
