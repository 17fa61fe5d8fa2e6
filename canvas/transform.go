// Package canvas models the interactive mapping surface: the fit-and-center
// transform between the editor viewport and template pixel-space, and the
// controller that translates canvas gestures into placement store updates.
package canvas

import "github.com/lvillar/certgen"

// Default editor viewport dimensions.
const (
	DefaultViewportWidth  = 800
	DefaultViewportHeight = 600
)

// Transform maps between viewport coordinates and template pixel-space.
// It is the single, named coordinate transform threaded through placement
// editing and preview rendering; nothing else converts between the spaces.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Fit computes the transform that scales an image of the given intrinsic
// size to fit the viewport while preserving aspect ratio, centered:
//
//	scale = min(vw/iw, vh/ih)
//	offset = (viewport - image*scale) / 2
func Fit(viewportW, viewportH, imageW, imageH float64) Transform {
	scale := viewportW / imageW
	if s := viewportH / imageH; s < scale {
		scale = s
	}
	return Transform{
		Scale:   scale,
		OffsetX: (viewportW - imageW*scale) / 2,
		OffsetY: (viewportH - imageH*scale) / 2,
	}
}

// ToTemplate converts a viewport-relative point into template pixel-space.
func (t Transform) ToTemplate(p certgen.Point) certgen.Point {
	return certgen.Point{
		X: (p.X - t.OffsetX) / t.Scale,
		Y: (p.Y - t.OffsetY) / t.Scale,
	}
}

// ToViewport converts a template pixel-space point into viewport coordinates.
func (t Transform) ToViewport(p certgen.Point) certgen.Point {
	return certgen.Point{
		X: p.X*t.Scale + t.OffsetX,
		Y: p.Y*t.Scale + t.OffsetY,
	}
}
