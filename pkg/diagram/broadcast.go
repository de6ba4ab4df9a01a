package diagram

import (
	"github.com/matzehuels/boxwire/pkg/gesture"
	"github.com/matzehuels/boxwire/pkg/layout"
)

// Broadcast offers a registration request to the owners of the target,
// innermost first. It implements [gesture.Broadcaster].
func (d *Diagram) Broadcast(req *gesture.Request) {
	d.Chain(req.Target()).Broadcast(req)
}

// Chain returns the owners that see a request for t: the element's own
// owner, then its host box and that box's ancestors. Unknown targets yield
// an empty chain.
func (d *Diagram) Chain(t gesture.Target) gesture.Chain {
	var (
		chain gesture.Chain
		host  *Box
	)
	switch t.Role {
	case gesture.RoleDot:
		p, ok := d.ports[t.ID]
		if !ok || p.border == nil {
			return nil
		}
		chain = append(chain, d.portOwner(p))
		host = p.box
	case gesture.RoleCorner:
		p, ok := d.ports[t.ID]
		if !ok {
			return nil
		}
		host = p.box
	case gesture.RoleLine:
		br, ok := d.borders[t.ID]
		if !ok {
			return nil
		}
		chain = append(chain, d.borderOwner(br))
		host = br.box
	case gesture.RoleEdge:
		if br, ok := d.borders[t.ID]; ok {
			host = br.box
		} else if b, ok := d.boxes[t.ID]; ok {
			host = b
		} else {
			return nil
		}
	case gesture.RoleInterior:
		b, ok := d.boxes[t.ID]
		if !ok {
			return nil
		}
		host = b
	case gesture.RoleSegment:
		w, ok := d.wires[t.ID]
		if !ok {
			return nil
		}
		return gesture.Chain{d.wireOwner(w)}
	default:
		return nil
	}
	for _, b := range host.ancestors() {
		chain = append(chain, d.boxOwner(b))
	}
	return chain
}

// portOwner slides a border port along its border.
func (d *Diagram) portOwner(p *Port) gesture.Owner {
	return gesture.OwnerFunc(func(req *gesture.Request) bool {
		if req.Target().Role != gesture.RoleDot {
			return false
		}
		req.Register(&offsetConsumer{d: d, port: p})
		return true
	})
}

// borderOwner reorders stacked borders. The outermost border stands for
// the box edge, so it passes the request on to the box.
func (d *Diagram) borderOwner(br *Border) gesture.Owner {
	return gesture.OwnerFunc(func(req *gesture.Request) bool {
		if req.Target().Role != gesture.RoleLine || br.Order == 0 {
			return false
		}
		req.Register(&reorderConsumer{d: d, border: br})
		return true
	})
}

// wireOwner drags interior segments. Stub segments are never movable.
func (d *Diagram) wireOwner(w *Wire) gesture.Owner {
	return gesture.OwnerFunc(func(req *gesture.Request) bool {
		t := req.Target()
		if t.Role != gesture.RoleSegment {
			return false
		}
		if t.Index >= 1 && t.Index <= len(w.Path())-2 {
			req.Register(&rearrangeConsumer{d: d, wire: w, index: t.Index})
		}
		return true
	})
}

// boxOwner resizes or moves b. Edges, lines and corners only act on their
// own box; a background press moves the innermost free box, so pressing an
// anchored box's interior drags whatever it is pinned to.
func (d *Diagram) boxOwner(b *Box) gesture.Owner {
	return gesture.OwnerFunc(func(req *gesture.Request) bool {
		t := req.Target()
		var mode layout.Edges
		switch t.Role {
		case gesture.RoleInterior:
			if b.Anchored() {
				return false
			}
			mode = layout.EdgesAll
		case gesture.RoleEdge, gesture.RoleLine:
			side, owner := d.edgeSide(t)
			if owner != b {
				return false
			}
			mode = side.Edge() & b.Movable()
		case gesture.RoleCorner:
			p, ok := d.ports[t.ID]
			if !ok || p.box != b {
				return false
			}
			mode = p.Corner & b.Movable()
		default:
			return false
		}
		if mode == layout.EdgesNone {
			d.logger.Debug("edge not movable", "box", b.ID, "role", t.Role)
			return true
		}
		req.Register(&resizeConsumer{d: d, box: b, mode: mode})
		return true
	})
}

// edgeSide resolves an edge or outermost-line target to its box and side.
// A bare edge target names the box and carries the side in Index.
func (d *Diagram) edgeSide(t gesture.Target) (layout.Side, *Box) {
	if br, ok := d.borders[t.ID]; ok {
		if br.Order != 0 {
			return layout.SideNone, nil
		}
		return br.Side, br.box
	}
	if b, ok := d.boxes[t.ID]; ok && t.Role == gesture.RoleEdge {
		side := layout.Side(t.Index)
		if side.Edge() == 0 {
			return layout.SideNone, nil
		}
		return side, b
	}
	return layout.SideNone, nil
}
