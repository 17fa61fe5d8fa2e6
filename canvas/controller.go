package canvas

import (
	"fmt"

	"github.com/lvillar/certgen"
	"github.com/lvillar/certgen/layout"
)

// Controller synchronizes a visual editing surface with a placement store.
//
// The surface hands the controller opaque element ids for its visual text
// objects; the controller keeps an explicit bidirectional element<->placement
// index so edits are attributed by identity, never by matching displayed
// text (two placements may show the same value).
//
// All coordinates crossing the Controller API are viewport-relative; the
// controller converts them through its Transform before they reach the store.
type Controller struct {
	store     *layout.Store
	dataset   *certgen.Dataset
	tf        Transform
	toElement map[string]string // placement id -> element id
	toPlace   map[string]string // element id -> placement id
}

// NewController creates a controller for editing placements over the given
// template inside a viewportW x viewportH editor surface.
func NewController(ds *certgen.Dataset, tpl *certgen.Template, viewportW, viewportH float64) *Controller {
	return &Controller{
		store:     layout.NewStore(),
		dataset:   ds,
		tf:        Fit(viewportW, viewportH, float64(tpl.Width()), float64(tpl.Height())),
		toElement: make(map[string]string),
		toPlace:   make(map[string]string),
	}
}

// Transform returns the viewport<->template transform in effect.
func (c *Controller) Transform() Transform { return c.tf }

// Store returns the underlying placement store.
func (c *Controller) Store() *layout.Store { return c.store }

// Drop handles a column being dropped onto the surface at a viewport point.
// The column must be one of the dataset's headers. A column that already has
// a placement is rebound: the old placement and its element binding are
// replaced by the new ones.
func (c *Controller) Drop(elementID, column string, at certgen.Point) (certgen.Placement, error) {
	if !c.dataset.HasColumn(column) {
		return certgen.Placement{}, fmt.Errorf("%w: %q", certgen.ErrUnknownColumn, column)
	}
	if prev, ok := c.store.ByColumn(column); ok {
		c.unbind(prev.ID)
	}
	p := c.store.Add(column, c.tf.ToTemplate(at), certgen.DefaultStyle())
	c.toElement[p.ID] = elementID
	c.toPlace[elementID] = p.ID
	return p, nil
}

// Modified handles the completion of a move/resize/restyle gesture on a
// canvas element: the element's final viewport position and style are
// written back to its placement. Edits to an element the controller never
// bound are rejected with ErrUnboundElement and do not touch the model.
func (c *Controller) Modified(elementID string, at certgen.Point, style certgen.TextStyle) (certgen.Placement, error) {
	id, ok := c.toPlace[elementID]
	if !ok {
		return certgen.Placement{}, fmt.Errorf("%w: %s", certgen.ErrUnboundElement, elementID)
	}
	pos := c.tf.ToTemplate(at)
	return c.store.Update(id, layout.Patch{Position: &pos, Style: &style})
}

// Delete removes the placement bound to a canvas element.
func (c *Controller) Delete(elementID string) error {
	id, ok := c.toPlace[elementID]
	if !ok {
		return fmt.Errorf("%w: %s", certgen.ErrUnboundElement, elementID)
	}
	c.unbind(id)
	return c.store.Remove(id)
}

// ElementFor returns the canvas element bound to a placement id.
func (c *Controller) ElementFor(placementID string) (string, bool) {
	e, ok := c.toElement[placementID]
	return e, ok
}

func (c *Controller) unbind(placementID string) {
	if e, ok := c.toElement[placementID]; ok {
		delete(c.toPlace, e)
		delete(c.toElement, placementID)
	}
}
