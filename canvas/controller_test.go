package canvas

import (
	"errors"
	"image"
	"testing"

	"github.com/lvillar/certgen"
)

func newFixture(t *testing.T) (*certgen.Dataset, *certgen.Template) {
	t.Helper()
	ds, err := certgen.NewDataset(
		[]string{"Name", "Course"},
		[][]string{{"Ana", "Math"}, {"Ben", "Art"}},
	)
	if err != nil {
		t.Fatalf("NewDataset failed: %v", err)
	}
	tpl := certgen.NewTemplate(image.NewRGBA(image.Rect(0, 0, 1600, 600)))
	return ds, tpl
}

func TestDropConvertsToTemplateSpace(t *testing.T) {
	ds, tpl := newFixture(t)
	c := NewController(ds, tpl, DefaultViewportWidth, DefaultViewportHeight)

	// 1600x600 in 800x600 -> scale 0.5, offsetY 150.
	p, err := c.Drop("el-1", "Name", certgen.Point{X: 400, Y: 300})
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if p.Position.X != 800 || p.Position.Y != 300 {
		t.Fatalf("position = %+v, want (800, 300)", p.Position)
	}
	if p.Style != certgen.DefaultStyle() {
		t.Fatalf("style = %+v, want default", p.Style)
	}
}

func TestDropUnknownColumn(t *testing.T) {
	ds, tpl := newFixture(t)
	c := NewController(ds, tpl, DefaultViewportWidth, DefaultViewportHeight)

	_, err := c.Drop("el-1", "Grade", certgen.Point{X: 10, Y: 10})
	if !errors.Is(err, certgen.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
	if c.Store().Len() != 0 {
		t.Fatal("rejected drop mutated the store")
	}
}

func TestDropSameColumnRebinds(t *testing.T) {
	ds, tpl := newFixture(t)
	c := NewController(ds, tpl, DefaultViewportWidth, DefaultViewportHeight)

	first, err := c.Drop("el-1", "Name", certgen.Point{X: 100, Y: 200})
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	second, err := c.Drop("el-2", "Name", certgen.Point{X: 300, Y: 400})
	if err != nil {
		t.Fatalf("second Drop failed: %v", err)
	}

	if c.Store().Len() != 1 {
		t.Fatalf("expected 1 placement, got %d", c.Store().Len())
	}
	if _, ok := c.ElementFor(first.ID); ok {
		t.Fatal("stale element binding survived rebind")
	}
	if el, ok := c.ElementFor(second.ID); !ok || el != "el-2" {
		t.Fatalf("ElementFor = %q, %v", el, ok)
	}

	// The old element's edits must no longer reach the model.
	_, err = c.Modified("el-1", certgen.Point{X: 1, Y: 1}, certgen.DefaultStyle())
	if !errors.Is(err, certgen.ErrUnboundElement) {
		t.Fatalf("expected ErrUnboundElement for stale element, got %v", err)
	}
}

func TestModifiedWritesBackThroughBinding(t *testing.T) {
	ds, tpl := newFixture(t)
	c := NewController(ds, tpl, DefaultViewportWidth, DefaultViewportHeight)

	p, err := c.Drop("el-1", "Name", certgen.Point{X: 400, Y: 300})
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}

	style := certgen.TextStyle{Size: 32, Family: "Go Bold", Color: certgen.RGB{B: 255}}
	updated, err := c.Modified("el-1", certgen.Point{X: 500, Y: 400}, style)
	if err != nil {
		t.Fatalf("Modified failed: %v", err)
	}
	if updated.ID != p.ID || updated.Column != "Name" {
		t.Fatal("Modified changed identity")
	}
	if updated.Position.X != 1000 || updated.Position.Y != 500 {
		t.Fatalf("position = %+v, want (1000, 500)", updated.Position)
	}
	if updated.Style != style {
		t.Fatalf("style = %+v, want %+v", updated.Style, style)
	}
}

func TestModifiedUnboundElement(t *testing.T) {
	ds, tpl := newFixture(t)
	c := NewController(ds, tpl, DefaultViewportWidth, DefaultViewportHeight)

	_, err := c.Modified("ghost", certgen.Point{X: 1, Y: 1}, certgen.DefaultStyle())
	if !errors.Is(err, certgen.ErrUnboundElement) {
		t.Fatalf("expected ErrUnboundElement, got %v", err)
	}
}

func TestDeleteRemovesPlacementAndBinding(t *testing.T) {
	ds, tpl := newFixture(t)
	c := NewController(ds, tpl, DefaultViewportWidth, DefaultViewportHeight)

	if _, err := c.Drop("el-1", "Name", certgen.Point{X: 100, Y: 200}); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if err := c.Delete("el-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if c.Store().Len() != 0 {
		t.Fatal("placement survived Delete")
	}
	if err := c.Delete("el-1"); !errors.Is(err, certgen.ErrUnboundElement) {
		t.Fatalf("second Delete: expected ErrUnboundElement, got %v", err)
	}
}
