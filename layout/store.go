// Package layout holds the set of field placements produced by the mapping
// step and its persisted JSON form.
//
// The Store is the single mutable collection of the pipeline: the canvas
// controller writes to it while the user edits, and the renderer and batch
// orchestrator read a snapshot of it. A JSON layout document (see Layout)
// round-trips the same information for use outside an interactive session.
package layout

import (
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/lvillar/certgen"
)

// Store is the ordered collection of field placements. It is not safe for
// concurrent use; the pipeline mutates it from a single goroutine.
type Store struct {
	placements []certgen.Placement
	byID       map[string]int
	newID      func() string
}

// NewStore creates an empty placement store.
func NewStore() *Store {
	return &Store{
		byID:  make(map[string]int),
		newID: func() string { return ulid.Make().String() },
	}
}

// Add creates a placement binding column to a position and style. Adding a
// column that already has a placement REPLACES the existing one: the old
// placement is removed and the new one is appended, so a column never has
// two placements.
func (s *Store) Add(column string, pos certgen.Point, style certgen.TextStyle) certgen.Placement {
	return s.AddKind(column, certgen.KindText, pos, style, certgen.Size{})
}

// AddKind is Add for non-text placements. Box sets the rendered barcode
// size; the zero Size lets the renderer pick a default for the kind.
func (s *Store) AddKind(column string, kind certgen.Kind, pos certgen.Point, style certgen.TextStyle, box certgen.Size) certgen.Placement {
	if prev, ok := s.ByColumn(column); ok {
		s.remove(prev.ID)
	}
	if kind == "" {
		kind = certgen.KindText
	}
	p := certgen.Placement{
		ID:       s.newID(),
		Column:   column,
		Kind:     kind,
		Position: pos,
		Style:    style,
		Box:      box,
	}
	s.byID[p.ID] = len(s.placements)
	s.placements = append(s.placements, p)
	return p
}

// Patch is a partial update applied by Update. Nil fields are left untouched.
type Patch struct {
	Position *certgen.Point
	Style    *certgen.TextStyle
	Box      *certgen.Size
}

// Update applies a partial update to the placement with the given id. The
// id and column binding never change. Returns ErrPlacementNotFound if the
// id is stale.
func (s *Store) Update(id string, patch Patch) (certgen.Placement, error) {
	i, ok := s.byID[id]
	if !ok {
		return certgen.Placement{}, fmt.Errorf("%w: %s", certgen.ErrPlacementNotFound, id)
	}
	p := &s.placements[i]
	if patch.Position != nil {
		p.Position = *patch.Position
	}
	if patch.Style != nil {
		p.Style = *patch.Style
	}
	if patch.Box != nil {
		p.Box = *patch.Box
	}
	return *p, nil
}

// Get returns the placement with the given id.
func (s *Store) Get(id string) (certgen.Placement, error) {
	i, ok := s.byID[id]
	if !ok {
		return certgen.Placement{}, fmt.Errorf("%w: %s", certgen.ErrPlacementNotFound, id)
	}
	return s.placements[i], nil
}

// ByColumn returns the placement bound to the named column, if any.
func (s *Store) ByColumn(column string) (certgen.Placement, bool) {
	for _, p := range s.placements {
		if p.Column == column {
			return p, true
		}
	}
	return certgen.Placement{}, false
}

// Remove deletes the placement with the given id. Removing an id that is
// already absent returns ErrPlacementNotFound rather than succeeding
// silently, so stale canvas state surfaces instead of hiding.
func (s *Store) Remove(id string) error {
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %s", certgen.ErrPlacementNotFound, id)
	}
	s.remove(id)
	return nil
}

func (s *Store) remove(id string) {
	i := s.byID[id]
	s.placements = append(s.placements[:i], s.placements[i+1:]...)
	delete(s.byID, id)
	for j := i; j < len(s.placements); j++ {
		s.byID[s.placements[j].ID] = j
	}
}

// Len returns the number of placements.
func (s *Store) Len() int { return len(s.placements) }

// List returns a snapshot of all placements in insertion order.
func (s *Store) List() []certgen.Placement {
	return append([]certgen.Placement(nil), s.placements...)
}
