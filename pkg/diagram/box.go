package diagram

import (
	"math"

	"github.com/matzehuels/boxwire/pkg/layout"
)

// Box is a rectangle placed relative to its parent.
type Box struct {
	ID    string
	Label string
	Rect  layout.Rect

	// Grow anchors the box. When non-zero, Rect.Left and Rect.Top give the
	// anchor point and the box extends from it toward the Grow corner.
	Grow layout.Edges

	Borders  []*Border
	Corners  []*Port
	Children []*Box

	// Activity is set while a gesture edits the box.
	Activity Activity

	parent  *Box
	diagram *Diagram
}

// Parent returns the enclosing box, or nil for a top-level box.
func (b *Box) Parent() *Box { return b.parent }

// Attached reports whether the box is still part of a diagram.
func (b *Box) Attached() bool { return b.diagram != nil }

// Anchored reports whether the box is pinned at an anchor point.
func (b *Box) Anchored() bool { return b.Grow != 0 }

// Movable returns the edges a gesture may move. Free boxes move every edge;
// anchored boxes only their grow edges.
func (b *Box) Movable() layout.Edges {
	if b.Anchored() {
		return b.Grow
	}
	return layout.EdgesAll
}

// parentSize returns the pixel size the rect is relative to.
func (b *Box) parentSize() layout.Size {
	if b.parent != nil {
		return b.parent.Frame().Size()
	}
	if b.diagram != nil {
		return b.diagram.Size
	}
	return layout.Size{}
}

// Frame returns the box in pixels relative to its parent's origin.
func (b *Box) Frame() layout.Box {
	ps := b.parentSize()
	if !b.Anchored() {
		return b.Rect.Resolve(ps)
	}
	w := math.Max(0, b.Rect.Width.Resolve(ps.Width))
	h := math.Max(0, b.Rect.Height.Resolve(ps.Height))
	x := b.Rect.Left.Resolve(ps.Width)
	y := b.Rect.Top.Resolve(ps.Height)
	if b.Grow&layout.EdgeLeft != 0 {
		x -= w
	}
	if b.Grow&layout.EdgeTop != 0 {
		y -= h
	}
	return layout.Box{Left: x, Top: y, Width: w, Height: h}
}

// Bounds returns the box in canvas pixels.
func (b *Box) Bounds() layout.Box {
	f := b.Frame()
	if b.parent != nil {
		o := b.parent.Bounds()
		f = f.Translate(o.Left, o.Top)
	}
	return f
}

// BordersOn returns the borders on side sorted by order.
func (b *Box) BordersOn(side layout.Side) []*Border {
	var out []*Border
	for _, br := range b.Borders {
		if br.Side == side {
			out = append(out, br)
		}
	}
	sortByOrder(out)
	return out
}

// Edge returns the order-0 border on side, if any.
func (b *Box) Edge(side layout.Side) (*Border, bool) {
	for _, br := range b.Borders {
		if br.Side == side && br.Order == 0 {
			return br, true
		}
	}
	return nil, false
}

// CornerPort returns the port on the given corner, if any.
func (b *Box) CornerPort(corner layout.Edges) (*Port, bool) {
	for _, p := range b.Corners {
		if p.Corner == corner {
			return p, true
		}
	}
	return nil, false
}

// within reports whether b is root or one of its descendants.
func (b *Box) within(root *Box) bool {
	for cur := b; cur != nil; cur = cur.parent {
		if cur == root {
			return true
		}
	}
	return false
}

// ancestors returns b and its enclosing boxes, innermost first.
func (b *Box) ancestors() []*Box {
	var out []*Box
	for cur := b; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}

// edgeLine returns the canvas endpoints of a bare box edge.
func (b *Box) edgeLine(side layout.Side) (layout.Point, layout.Point) {
	r := b.Bounds()
	switch side {
	case layout.SideTop:
		return layout.Point{X: r.Left, Y: r.Top}, layout.Point{X: r.Right(), Y: r.Top}
	case layout.SideBottom:
		return layout.Point{X: r.Left, Y: r.Bottom()}, layout.Point{X: r.Right(), Y: r.Bottom()}
	case layout.SideLeft:
		return layout.Point{X: r.Left, Y: r.Top}, layout.Point{X: r.Left, Y: r.Bottom()}
	default:
		return layout.Point{X: r.Right(), Y: r.Top}, layout.Point{X: r.Right(), Y: r.Bottom()}
	}
}

// ============================================================================
// Borders
// ============================================================================

// Border is a line along one side of a box, stacked inward by Order.
type Border struct {
	ID    string
	Name  string
	Side  layout.Side
	Order int
	Ports []*Port

	Activity Activity

	box     *Box
	diagram *Diagram
}

// Box returns the box the border belongs to.
func (br *Border) Box() *Box { return br.box }

// Attached reports whether the border is still part of a diagram.
func (br *Border) Attached() bool { return br.diagram != nil }

// Length returns the pixel length of the border line.
func (br *Border) Length() float64 {
	f := br.box.Frame()
	if br.Side.Axis() == layout.AxisY {
		return f.Width
	}
	return f.Height
}

// Inset returns how far the line sits inside its edge: order times the
// diagram's border spacing, capped at the box extent.
func (br *Border) Inset() float64 {
	f := br.box.Frame()
	extent := f.Height
	if br.Side.Axis() == layout.AxisX {
		extent = f.Width
	}
	spacing := DefaultBorderSpacing
	if br.diagram != nil {
		spacing = br.diagram.borderSpacing
	}
	return math.Min(extent, float64(br.Order)*spacing)
}

// Line returns the canvas endpoints of the border line.
func (br *Border) Line() (layout.Point, layout.Point) {
	r := br.box.Bounds()
	in := br.Inset()
	switch br.Side {
	case layout.SideTop:
		return layout.Point{X: r.Left, Y: r.Top + in}, layout.Point{X: r.Right(), Y: r.Top + in}
	case layout.SideBottom:
		return layout.Point{X: r.Left, Y: r.Bottom() - in}, layout.Point{X: r.Right(), Y: r.Bottom() - in}
	case layout.SideLeft:
		return layout.Point{X: r.Left + in, Y: r.Top}, layout.Point{X: r.Left + in, Y: r.Bottom()}
	default:
		return layout.Point{X: r.Right() - in, Y: r.Top}, layout.Point{X: r.Right() - in, Y: r.Bottom()}
	}
}

// position returns the line's coordinate across its axis in box pixels,
// the value sibling spacing is measured on.
func (br *Border) position() float64 {
	f := br.box.Frame()
	in := br.Inset()
	switch br.Side {
	case layout.SideTop, layout.SideLeft:
		return in
	case layout.SideBottom:
		return f.Height - in
	default:
		return f.Width - in
	}
}
