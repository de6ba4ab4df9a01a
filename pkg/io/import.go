package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/layout"
	"github.com/matzehuels/boxwire/pkg/route"
)

// ReadJSON decodes a JSON diagram from r. opts configure the new diagram,
// for example its border spacing or wire stub.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or a length, side or path cannot be parsed
//   - The canvas size is negative
//   - An id is used twice
//   - A wire references an unknown port
//   - A wire path does not fit the sides of its ports
//
// The returned diagram is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader, opts ...diagram.Option) (*diagram.Diagram, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "decode diagram")
	}
	if doc.Width < 0 || doc.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "negative canvas size %vx%v", doc.Width, doc.Height)
	}

	d := diagram.New(layout.Size{Width: doc.Width, Height: doc.Height}, opts...)
	d.Name = doc.Name
	for _, b := range doc.Boxes {
		if err := addBox(d, nil, b); err != nil {
			return nil, err
		}
	}
	for _, w := range doc.Wires {
		wr, err := d.AddWire(w.ID, w.From, w.To)
		if err != nil {
			return nil, err
		}
		if len(w.Path) > 0 && !wr.SetPath(w.Path) {
			ends := wr.Ends()
			return nil, errors.New(errors.ErrCodeInvalidDiagram,
				"wire %q: path has %d segments, want %d for %s to %s",
				wr.ID, len(w.Path), len(route.Default(ends.From, ends.To)), ends.From, ends.To)
		}
	}
	return d, nil
}

// Unmarshal decodes a diagram from data.
func Unmarshal(data []byte, opts ...diagram.Option) (*diagram.Diagram, error) {
	return ReadJSON(bytes.NewReader(data), opts...)
}

// ImportJSON reads a JSON file at path and returns the decoded diagram.
func ImportJSON(path string, opts ...diagram.Option) (*diagram.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f, opts...)
}

func addBox(d *diagram.Diagram, parent *diagram.Box, doc box) error {
	r := layout.Rect{Left: doc.Rect.Left, Top: doc.Rect.Top, Width: doc.Rect.Width, Height: doc.Rect.Height}
	b, err := d.AddBox(parent, doc.ID, r)
	if err != nil {
		return err
	}
	b.Label = doc.Label
	b.Grow = doc.Grow

	// Borders are added innermost last so their orders come out dense.
	borders := append([]border(nil), doc.Borders...)
	sort.SliceStable(borders, func(i, j int) bool { return borders[i].Order < borders[j].Order })
	for _, bd := range borders {
		br, err := d.AddBorder(b, bd.ID, bd.Side)
		if err != nil {
			return err
		}
		br.Name = bd.Name
		for _, pd := range bd.Ports {
			p, err := d.AddPort(br, pd.ID, pd.Offset)
			if err != nil {
				return err
			}
			p.Name = pd.Name
		}
	}
	for _, cd := range doc.Corners {
		p, err := d.AddCornerPort(b, cd.ID, cd.Corner)
		if err != nil {
			return err
		}
		p.Name = cd.Name
	}
	for _, c := range doc.Children {
		if err := addBox(d, b, c); err != nil {
			return err
		}
	}
	return nil
}
