package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/layout"
	"github.com/matzehuels/boxwire/pkg/route"
)

type document struct {
	Name   string  `json:"name,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Boxes  []box   `json:"boxes"`
	Wires  []wire  `json:"wires,omitempty"`
}

type rect struct {
	Left   layout.Length `json:"left"`
	Top    layout.Length `json:"top"`
	Width  layout.Length `json:"width"`
	Height layout.Length `json:"height"`
}

type box struct {
	ID       string       `json:"id,omitempty"`
	Label    string       `json:"label,omitempty"`
	Rect     rect         `json:"rect"`
	Grow     layout.Edges `json:"grow,omitempty"`
	Borders  []border     `json:"borders,omitempty"`
	Corners  []corner     `json:"corners,omitempty"`
	Children []box        `json:"children,omitempty"`
}

type border struct {
	ID    string      `json:"id,omitempty"`
	Name  string      `json:"name,omitempty"`
	Side  layout.Side `json:"side"`
	Order int         `json:"order,omitempty"`
	Ports []port      `json:"ports,omitempty"`
}

type port struct {
	ID     string        `json:"id,omitempty"`
	Name   string        `json:"name,omitempty"`
	Offset layout.Length `json:"offset"`
}

type corner struct {
	ID     string       `json:"id,omitempty"`
	Name   string       `json:"name,omitempty"`
	Corner layout.Edges `json:"corner"`
}

type wire struct {
	ID   string     `json:"id,omitempty"`
	From string     `json:"from"`
	To   string     `json:"to"`
	Path route.Path `json:"path,omitempty"`
}

// WriteJSON encodes a diagram as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(d *diagram.Diagram, w io.Writer) error {
	out := document{
		Name:   d.Name,
		Width:  d.Size.Width,
		Height: d.Size.Height,
		Boxes:  make([]box, 0, len(d.Roots())),
	}
	for _, b := range d.Roots() {
		out.Boxes = append(out.Boxes, fromBox(b))
	}
	for _, wr := range d.Wires() {
		wd := wire{ID: wr.ID, From: wr.From.ID, To: wr.To.ID}
		if wr.Custom() {
			wd.Path = wr.Path()
		}
		out.Wires = append(out.Wires, wd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode diagram")
	}
	return nil
}

// Marshal returns the JSON encoding of d.
func Marshal(d *diagram.Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes a diagram to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *diagram.Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

func fromBox(b *diagram.Box) box {
	out := box{
		ID:    b.ID,
		Label: b.Label,
		Rect:  rect{Left: b.Rect.Left, Top: b.Rect.Top, Width: b.Rect.Width, Height: b.Rect.Height},
		Grow:  b.Grow,
	}
	for _, br := range b.Borders {
		bd := border{ID: br.ID, Name: br.Name, Side: br.Side, Order: br.Order}
		for _, p := range br.Ports {
			bd.Ports = append(bd.Ports, port{ID: p.ID, Name: p.Name, Offset: p.Offset})
		}
		out.Borders = append(out.Borders, bd)
	}
	for _, p := range b.Corners {
		out.Corners = append(out.Corners, corner{ID: p.ID, Name: p.Name, Corner: p.Corner})
	}
	for _, c := range b.Children {
		out.Children = append(out.Children, fromBox(c))
	}
	return out
}
