package layout

import "math"

// Point is a position in pixels. Y grows downward.
type Point struct {
	X, Y float64
}

// Add returns the translated point.
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) (dx, dy float64) { return p.X - q.X, p.Y - q.Y }

// Size is a pixel extent.
type Size struct {
	Width, Height float64
}

// Box is a resolved rectangle in pixels, relative to some origin.
type Box struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the horizontal end of the box.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the vertical end of the box.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Size returns the extent of the box.
func (b Box) Size() Size { return Size{Width: b.Width, Height: b.Height} }

// Origin returns the top-left corner.
func (b Box) Origin() Point { return Point{X: b.Left, Y: b.Top} }

// Center returns the midpoint.
func (b Box) Center() Point {
	return Point{X: b.Left + b.Width/2, Y: b.Top + b.Height/2}
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	b.Left += dx
	b.Top += dy
	return b
}

// Contains reports whether p lies inside the box, borders included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right() && p.Y >= b.Top && p.Y <= b.Bottom()
}

// Rect is a rectangle expressed in lengths relative to its parent.
// Left and top may be negative. Width and height never are once clamped.
type Rect struct {
	Left, Top     Length
	Width, Height Length
}

// PctRect returns a rect made of pure percentages.
func PctRect(left, top, width, height float64) Rect {
	return Rect{Left: Pct(left), Top: Pct(top), Width: Pct(width), Height: Pct(height)}
}

// PxRect returns a rect made of pure pixel lengths.
func PxRect(left, top, width, height float64) Rect {
	return Rect{Left: Px(left), Top: Px(top), Width: Px(width), Height: Px(height)}
}

// Resolve converts r into pixels against the parent size. Horizontal
// lengths resolve against the parent width, vertical ones against its height.
// Negative sizes resolve to zero.
func (r Rect) Resolve(parent Size) Box {
	return Box{
		Left:   r.Left.Resolve(parent.Width),
		Top:    r.Top.Resolve(parent.Height),
		Width:  math.Max(0, r.Width.Resolve(parent.Width)),
		Height: math.Max(0, r.Height.Resolve(parent.Height)),
	}
}

// Equal reports whether both rects have identical lengths.
func (r Rect) Equal(o Rect) bool { return r == o }

// ============================================================================
// Sides
// ============================================================================

// Side names one edge of a box.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideLeft
	SideBottom
	SideRight
)

// Sides lists the four real sides in canonical order.
var Sides = []Side{SideTop, SideLeft, SideBottom, SideRight}

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideBottom:
		return "bottom"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Sign returns +1 for bottom and right, -1 for top and left and 0 for none.
// It is the direction a wire leaves a port on this side.
func (s Side) Sign() float64 {
	switch s {
	case SideBottom, SideRight:
		return 1
	case SideTop, SideLeft:
		return -1
	default:
		return 0
	}
}

// Axis returns the axis a wire leaving this side travels along.
func (s Side) Axis() Axis {
	switch s {
	case SideTop, SideBottom:
		return AxisY
	case SideLeft, SideRight:
		return AxisX
	default:
		return AxisNone
	}
}

// Opposite returns the facing side.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

// Edge returns the single-edge mask for the side.
func (s Side) Edge() Edges {
	switch s {
	case SideTop:
		return EdgeTop
	case SideLeft:
		return EdgeLeft
	case SideBottom:
		return EdgeBottom
	case SideRight:
		return EdgeRight
	default:
		return 0
	}
}

// Axis is a coordinate axis.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	switch a {
	case AxisX:
		return AxisY
	case AxisY:
		return AxisX
	default:
		return AxisNone
	}
}

// Pick returns x or y depending on the axis, 0 for AxisNone.
func (a Axis) Pick(x, y float64) float64 {
	switch a {
	case AxisX:
		return x
	case AxisY:
		return y
	default:
		return 0
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "none"
	}
}

// ============================================================================
// Edges
// ============================================================================

// Edges is a set of box edges. A [Resizer] moves every edge in its set.
type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeLeft
	EdgeBottom
	EdgeRight

	EdgesNone Edges = 0
	EdgesAll        = EdgeTop | EdgeLeft | EdgeBottom | EdgeRight
)

// Has reports whether every edge of o is in e.
func (e Edges) Has(o Edges) bool { return o != 0 && e&o == o }

// Corner returns the two-edge mask for a corner.
func Corner(vertical, horizontal Side) Edges {
	return vertical.Edge() | horizontal.Edge()
}

// String renders the set as sides joined by "-" in top, bottom, left, right
// order, e.g. "top-left". The empty set renders as "none".
func (e Edges) String() string {
	if e == 0 {
		return "none"
	}
	var out string
	for _, p := range []struct {
		edge Edges
		name string
	}{{EdgeTop, "top"}, {EdgeBottom, "bottom"}, {EdgeLeft, "left"}, {EdgeRight, "right"}} {
		if e&p.edge == 0 {
			continue
		}
		if out != "" {
			out += "-"
		}
		out += p.name
	}
	return out
}
