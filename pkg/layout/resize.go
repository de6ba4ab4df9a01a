package layout

import "math"

// Resizer maps a cumulative pointer delta onto a new [Rect] by moving a set
// of edges. Moving both opposite edges of an axis translates the rect along
// it; moving one edge resizes it.
//
// The output is expressed in percent of the parent size captured at
// construction, so the rect keeps its relative placement when the parent is
// later resized. A parent dimension of zero leaves that axis untouched.
type Resizer struct {
	mode     Edges
	parent   Size
	original Rect
	pos      Box

	xmin, xmax float64
	ymin, ymax float64
}

// NewResizer freezes the parent size and the rect's pixel position at drag
// start. pos must be relative to the parent's origin.
//
// Single-edge modes bound the delta so the size never goes negative: a drag
// of the right edge stops at dx = -width and a drag of the left edge stops
// at dx = width. The same holds vertically.
func NewResizer(mode Edges, parent Size, original Rect, pos Box) *Resizer {
	r := &Resizer{
		mode:     mode,
		parent:   parent,
		original: original,
		pos:      pos,
		xmin:     math.Inf(-1),
		xmax:     math.Inf(1),
		ymin:     math.Inf(-1),
		ymax:     math.Inf(1),
	}

	left, right := mode&EdgeLeft != 0, mode&EdgeRight != 0
	top, bottom := mode&EdgeTop != 0, mode&EdgeBottom != 0
	if left && !right {
		r.xmax = pos.Width
	}
	if right && !left {
		r.xmin = -pos.Width
	}
	if top && !bottom {
		r.ymax = pos.Height
	}
	if bottom && !top {
		r.ymin = -pos.Height
	}
	return r
}

// Mode returns the edges this resizer moves.
func (r *Resizer) Mode() Edges { return r.mode }

// Original returns the rect captured at construction.
func (r *Resizer) Original() Rect { return r.original }

// At returns the rect after moving the edges by (dx, dy).
func (r *Resizer) At(dx, dy float64) Rect {
	out := r.original
	dx = clamp(dx, r.xmin, r.xmax)
	dy = clamp(dy, r.ymin, r.ymax)

	if pw := r.parent.Width; pw > 0 {
		left, right := r.mode&EdgeLeft != 0, r.mode&EdgeRight != 0
		switch {
		case left && right:
			out.Left = Pct(100 * (r.pos.Left + dx) / pw)
		case left:
			out.Left = Pct(100 * (r.pos.Left + dx) / pw)
			out.Width = Pct(100 * (r.pos.Width - dx) / pw)
		case right:
			out.Width = Pct(100 * (r.pos.Width + dx) / pw)
		}
	}

	if ph := r.parent.Height; ph > 0 {
		top, bottom := r.mode&EdgeTop != 0, r.mode&EdgeBottom != 0
		switch {
		case top && bottom:
			out.Top = Pct(100 * (r.pos.Top + dy) / ph)
		case top:
			out.Top = Pct(100 * (r.pos.Top + dy) / ph)
			out.Height = Pct(100 * (r.pos.Height - dy) / ph)
		case bottom:
			out.Height = Pct(100 * (r.pos.Height + dy) / ph)
		}
	}
	return out
}
