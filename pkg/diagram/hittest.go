package diagram

import (
	"math"

	"github.com/matzehuels/boxwire/pkg/gesture"
	"github.com/matzehuels/boxwire/pkg/layout"
)

// HitTest returns the element under pt. Dots win over wire segments, which
// win over border lines, bare box edges and finally box backgrounds. Within
// each class the last painted element wins. Nothing under pt gives a
// RoleNone target.
func (d *Diagram) HitTest(pt layout.Point) gesture.Target {
	boxes := d.paintOrder()
	slop := d.hitSlop

	for i := len(boxes) - 1; i >= 0; i-- {
		b := boxes[i]
		for j := len(b.Corners) - 1; j >= 0; j-- {
			if dist(pt, b.Corners[j].Position()) <= slop {
				return gesture.Target{Role: gesture.RoleCorner, ID: b.Corners[j].ID}
			}
		}
		for j := len(b.Borders) - 1; j >= 0; j-- {
			ports := b.Borders[j].Ports
			for k := len(ports) - 1; k >= 0; k-- {
				if dist(pt, ports[k].Position()) <= slop {
					return gesture.Target{Role: gesture.RoleDot, ID: ports[k].ID}
				}
			}
		}
	}

	for i := len(d.order) - 1; i >= 0; i-- {
		w := d.order[i]
		pts := w.Points()
		for s := 0; s+1 < len(pts); s++ {
			if segmentDist(pt, pts[s], pts[s+1]) <= slop {
				return gesture.Target{Role: gesture.RoleSegment, ID: w.ID, Index: s}
			}
		}
	}

	for i := len(boxes) - 1; i >= 0; i-- {
		b := boxes[i]
		for j := len(b.Borders) - 1; j >= 0; j-- {
			br := b.Borders[j]
			a, z := br.Line()
			if segmentDist(pt, a, z) > slop {
				continue
			}
			if br.Order == 0 {
				return gesture.Target{Role: gesture.RoleEdge, ID: br.ID}
			}
			return gesture.Target{Role: gesture.RoleLine, ID: br.ID}
		}
	}

	for i := len(boxes) - 1; i >= 0; i-- {
		b := boxes[i]
		for _, side := range layout.Sides {
			if _, ok := b.Edge(side); ok {
				continue
			}
			a, z := b.edgeLine(side)
			if segmentDist(pt, a, z) <= slop {
				return gesture.Target{Role: gesture.RoleEdge, ID: b.ID, Index: int(side)}
			}
		}
	}

	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].Bounds().Contains(pt) {
			return gesture.Target{Role: gesture.RoleInterior, ID: boxes[i].ID}
		}
	}
	return gesture.Target{}
}

func (d *Diagram) paintOrder() []*Box {
	out := make([]*Box, 0, len(d.boxes))
	d.Walk(func(b *Box, _ int) { out = append(out, b) })
	return out
}

func dist(p, q layout.Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// segmentDist returns the distance from p to the segment a-z.
func segmentDist(p, a, z layout.Point) float64 {
	vx, vy := z.X-a.X, z.Y-a.Y
	l2 := vx*vx + vy*vy
	if l2 == 0 {
		return dist(p, a)
	}
	t := ((p.X-a.X)*vx + (p.Y-a.Y)*vy) / l2
	t = math.Max(0, math.Min(1, t))
	return dist(p, layout.Point{X: a.X + t*vx, Y: a.Y + t*vy})
}
