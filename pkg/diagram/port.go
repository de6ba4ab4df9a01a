package diagram

import (
	"math"

	"github.com/matzehuels/boxwire/pkg/layout"
	"github.com/matzehuels/boxwire/pkg/route"
)

// Port is a connection point. It sits either on a border, at Offset along
// the line, or on a box corner.
type Port struct {
	ID     string
	Name   string
	Offset layout.Length // along the border, clamped to [0%, 100%] when drawn
	Corner layout.Edges  // non-zero for corner ports
	Wires  []*Wire       // wires starting here

	Activity Activity

	border  *Border
	box     *Box
	diagram *Diagram
}

// Border returns the hosting border, or nil for a corner port.
func (p *Port) Border() *Border { return p.border }

// Box returns the box the port belongs to.
func (p *Port) Box() *Box { return p.box }

// Attached reports whether the port is still part of a diagram.
func (p *Port) Attached() bool { return p.diagram != nil }

// Side returns the side of the hosting border. Corner ports have no side.
func (p *Port) Side() layout.Side {
	if p.border == nil {
		return layout.SideNone
	}
	return p.border.Side
}

// along returns the clamped pixel offset along the border.
func (p *Port) along() float64 {
	length := p.border.Length()
	return math.Max(0, math.Min(length, p.Offset.Resolve(length)))
}

// Position returns the port's canvas position.
func (p *Port) Position() layout.Point {
	if p.border == nil {
		r := p.box.Bounds()
		pt := layout.Point{X: r.Left, Y: r.Top}
		if p.Corner&layout.EdgeRight != 0 {
			pt.X = r.Right()
		}
		if p.Corner&layout.EdgeBottom != 0 {
			pt.Y = r.Bottom()
		}
		return pt
	}

	a, _ := p.border.Line()
	if p.border.Side.Axis() == layout.AxisY {
		return a.Add(p.along(), 0)
	}
	return a.Add(0, p.along())
}

// ============================================================================
// Wires
// ============================================================================

// Wire is an orthogonal connection from one port to another.
type Wire struct {
	ID   string
	From *Port
	To   *Port

	Activity Activity

	router  *route.Router
	diagram *Diagram
}

// Attached reports whether the wire is still part of a diagram.
func (w *Wire) Attached() bool { return w.diagram != nil }

// Ends returns the port sides and stub.
func (w *Wire) Ends() route.Ends { return w.router.Ends() }

// Path returns the current path.
func (w *Wire) Path() route.Path { return w.router.Path() }

// Custom reports whether the path is a stored edit.
func (w *Wire) Custom() bool { return w.router.Custom() }

// SetPath stores a custom path. It reports false, leaving the path alone,
// when p does not fit the sides of the two ports (see [route.Fits]).
func (w *Wire) SetPath(p route.Path) bool { return w.router.Set(p) }

// ResetPath drops any custom path.
func (w *Wire) ResetPath() { w.router.Reset() }

// Span returns the effective span between the two ports.
func (w *Wire) Span() route.Span {
	dx, dy := w.To.Position().Sub(w.From.Position())
	return w.router.Ends().Span(dx, dy)
}

// Refresh feeds the current endpoint delta to the router. A custom path is
// dropped when the delta changes sign on either axis.
func (w *Wire) Refresh() {
	stub := w.router.Ends().Stub
	w.router.SetEnds(route.Ends{From: w.From.Side(), To: w.To.Side(), Stub: stub})
	dx, dy := w.To.Position().Sub(w.From.Position())
	if w.router.Update(dx, dy) && w.diagram != nil {
		w.diagram.logger.Debug("wire path reset", "wire", w.ID)
	}
}

// Points returns the rendered vertices in canvas pixels.
func (w *Wire) Points() []layout.Point {
	return w.router.Points(w.From.Position(), w.To.Position())
}
