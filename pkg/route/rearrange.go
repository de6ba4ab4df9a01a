package route

import (
	"math"

	"github.com/matzehuels/boxwire/pkg/layout"
)

// Rearranger drags one interior segment of a path sideways. The segments
// before and after it share the perpendicular axis; one grows by the drag
// distance and the other shrinks by the same amount, so both endpoints stay
// where they are.
type Rearranger struct {
	original Path
	ends     Ends
	span     Span
	index    int
	basis    []float64
	axis     layout.Axis

	lo, hi float64
}

// NewRearranger freezes the rendered lengths of path at drag start. index
// must name an interior segment (neither first nor last); otherwise, or when
// the span on the neighbours' axis is zero, every drag returns the original
// path.
func NewRearranger(path Path, ends Ends, span Span, index int) *Rearranger {
	r := &Rearranger{
		original: path.Clone(),
		ends:     ends,
		span:     span,
		index:    index,
		basis:    path.Resolve(ends, span),
		lo:       math.Inf(-1),
		hi:       math.Inf(1),
	}
	if !r.Interior() {
		return r
	}
	r.axis = ends.AxisOf(index - 1)

	n := len(path)
	if index-1 == 0 {
		// First segment may not turn back into its port.
		v := r.basis[0] - ends.headStub()
		switch sign := ends.From.Sign(); {
		case sign > 0:
			r.lo = math.Max(r.lo, -v)
		case sign < 0:
			r.hi = math.Min(r.hi, -v)
		}
	}
	if index+1 == n-1 {
		// Last segment must still arrive against its port's side.
		v := r.basis[n-1] - ends.tailStub()
		switch sign := -ends.To.Sign(); {
		case sign > 0:
			r.hi = math.Min(r.hi, v)
		case sign < 0:
			r.lo = math.Max(r.lo, v)
		}
	}
	return r
}

// Within keeps the dragged segment inside bounds. start is the rendered
// position of the path's first point. A segment that already lies outside
// bounds may move back toward them but no further out.
func (r *Rearranger) Within(start layout.Point, bounds layout.Box) *Rearranger {
	if !r.Interior() {
		return r
	}
	c := r.axis.Pick(start.X, start.Y)
	for i := 0; i < r.index; i++ {
		if r.ends.AxisOf(i) == r.axis {
			c += r.basis[i]
		}
	}
	lo := r.axis.Pick(bounds.Left, bounds.Top) - c
	hi := r.axis.Pick(bounds.Right(), bounds.Bottom()) - c
	r.lo = math.Max(r.lo, math.Min(lo, 0))
	r.hi = math.Min(r.hi, math.Max(hi, 0))
	return r
}

// Interior reports whether the dragged index has a segment on each side.
func (r *Rearranger) Interior() bool {
	return r.index >= 1 && r.index <= len(r.original)-2
}

// Original returns the path captured at construction.
func (r *Rearranger) Original() Path { return r.original.Clone() }

// Axis returns the axis the dragged segment moves along.
func (r *Rearranger) Axis() layout.Axis { return r.axis }

// At returns the path after dragging the segment by (dx, dy). Only the
// component along the neighbours' axis is used.
func (r *Rearranger) At(dx, dy float64) Path {
	if !r.Interior() {
		return r.Original()
	}
	span := r.span.On(r.axis)
	if span == 0 || r.lo > r.hi {
		return r.Original()
	}

	d := r.axis.Pick(dx, dy)
	d = math.Max(r.lo, math.Min(r.hi, d))

	out := r.Original()
	before, after := r.index-1, r.index+1
	out[before] = r.segmentAt(before, r.basis[before]+d, span)
	out[after] = r.segmentAt(after, r.basis[after]-d, span)
	return out
}

// segmentAt re-expresses a rendered length as a percentage of span. The
// first and last segment store their length without the stub.
func (r *Rearranger) segmentAt(i int, rendered, span float64) Segment {
	v := rendered
	if i == 0 {
		v -= r.ends.headStub()
	}
	if i == len(r.original)-1 {
		v -= r.ends.tailStub()
	}
	return Seg(layout.Pct(100 * v / span))
}
