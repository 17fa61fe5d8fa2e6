package layout_test

import (
	"fmt"

	"github.com/lvillar/certgen"
	"github.com/lvillar/certgen/layout"
)

func ExampleParse() {
	doc := `{
		"fields": [
			{"column": "Name", "x": 320, "y": 280, "fontSize": 42, "fontFamily": "Go Bold"},
			{"column": "Course", "x": 320, "y": 360, "fontSize": 24},
			{"column": "Certificate ID", "kind": "qr", "x": 880, "y": 40, "width": 120, "height": 120}
		]
	}`

	l, err := layout.Parse([]byte(doc))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	for _, p := range l.Store().List() {
		fmt.Printf("%s -> %s at (%g, %g)\n", p.Column, p.Kind, p.Position.X, p.Position.Y)
	}
	// Output:
	// Name -> text at (320, 280)
	// Course -> text at (320, 360)
	// Certificate ID -> qr at (880, 40)
}

func ExampleStore_Add() {
	s := layout.NewStore()
	s.Add("Name", certgen.Point{X: 100, Y: 100}, certgen.DefaultStyle())

	// Dropping the same column again replaces the first placement.
	s.Add("Name", certgen.Point{X: 250, Y: 180}, certgen.DefaultStyle())

	for _, p := range s.List() {
		fmt.Printf("%s at (%g, %g)\n", p.Column, p.Position.X, p.Position.Y)
	}
	// Output:
	// Name at (250, 180)
}
