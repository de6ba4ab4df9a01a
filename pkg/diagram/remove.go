package diagram

import (
	"slices"

	"github.com/matzehuels/boxwire/pkg/errors"
)

// Removed elements are detached: their Attached method reports false and
// any gesture still holding them finishes without touching the diagram.

// RemoveWire deletes a wire.
func (d *Diagram) RemoveWire(id string) error {
	w, ok := d.wires[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "wire %q not found", id)
	}
	d.dropWire(w)
	return nil
}

// RemovePort deletes a port together with every wire touching it.
func (d *Diagram) RemovePort(id string) error {
	p, ok := d.ports[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "port %q not found", id)
	}
	d.dropPort(p)
	return nil
}

// RemoveBorder deletes a border and its ports. The remaining borders on the
// side close the gap.
func (d *Diagram) RemoveBorder(id string) error {
	br, ok := d.borders[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "border %q not found", id)
	}
	box := br.box
	d.dropBorder(br)
	densify(box, br.Side)
	d.refreshWiresIn(box)
	return nil
}

// RemoveBox deletes a box with its whole subtree.
func (d *Diagram) RemoveBox(id string) error {
	b, ok := d.boxes[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "box %q not found", id)
	}
	if b.parent == nil {
		d.roots = slices.DeleteFunc(d.roots, func(x *Box) bool { return x == b })
	} else {
		b.parent.Children = slices.DeleteFunc(b.parent.Children, func(x *Box) bool { return x == b })
	}
	d.dropBox(b)
	d.logger.Debug("box removed", "box", id)
	return nil
}

func (d *Diagram) dropBox(b *Box) {
	for _, c := range b.Children {
		d.dropBox(c)
	}
	for _, br := range slices.Clone(b.Borders) {
		d.dropBorder(br)
	}
	for _, p := range slices.Clone(b.Corners) {
		d.dropPort(p)
	}
	b.Borders, b.Corners, b.Children = nil, nil, nil
	delete(d.boxes, b.ID)
	b.diagram = nil
}

func (d *Diagram) dropBorder(br *Border) {
	for _, p := range slices.Clone(br.Ports) {
		d.dropPort(p)
	}
	br.box.Borders = slices.DeleteFunc(br.box.Borders, func(x *Border) bool { return x == br })
	delete(d.borders, br.ID)
	br.diagram = nil
}

func (d *Diagram) dropPort(p *Port) {
	for _, w := range slices.Clone(d.order) {
		if w.From == p || w.To == p {
			d.dropWire(w)
		}
	}
	if p.border != nil {
		p.border.Ports = slices.DeleteFunc(p.border.Ports, func(x *Port) bool { return x == p })
	} else {
		p.box.Corners = slices.DeleteFunc(p.box.Corners, func(x *Port) bool { return x == p })
	}
	delete(d.ports, p.ID)
	p.diagram = nil
}

func (d *Diagram) dropWire(w *Wire) {
	w.From.Wires = slices.DeleteFunc(w.From.Wires, func(x *Wire) bool { return x == w })
	d.order = slices.DeleteFunc(d.order, func(x *Wire) bool { return x == w })
	delete(d.wires, w.ID)
	w.diagram = nil
}
