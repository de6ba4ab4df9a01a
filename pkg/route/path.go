package route

import (
	"strings"

	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/layout"
)

// DefaultStub is the length in pixels of the straight piece a wire always
// spends leaving its start port and entering its end port.
const DefaultStub = 10.0

// Segment is one orthogonal piece of a wire: a length relative to the span
// on its axis, optionally restricted in sign.
type Segment struct {
	Length layout.Length
	Clamp  layout.Clamp
}

// Seg is shorthand for an unclamped segment.
func Seg(l layout.Length) Segment { return Segment{Length: l} }

// Max returns max(0px, l).
func Max(l layout.Length) Segment { return Segment{Length: l, Clamp: layout.ClampAtLeastZero} }

// Min returns min(0px, l).
func Min(l layout.Length) Segment { return Segment{Length: l, Clamp: layout.ClampAtMostZero} }

// Resolve returns the pixel length of the segment against a span.
func (s Segment) Resolve(span float64) float64 {
	return s.Clamp.Apply(s.Length.Resolve(span))
}

// Neg returns the segment as seen from the other end of the wire.
func (s Segment) Neg() Segment {
	return Segment{Length: s.Length.Neg(), Clamp: s.Clamp.Flip()}
}

func (s Segment) String() string { return s.Clamp.Wrap(s.Length.String()) }

// Path is the ordered list of segments from the start port to the end port.
type Path []Segment

// ParsePath parses a whitespace separated segment list, for example
// "max(0px, 50%) 50% min(0px, 100%)".
func ParsePath(s string) (Path, error) {
	exprs, err := layout.ParseExprList(s)
	if err != nil {
		return nil, err
	}
	if len(exprs) == 0 {
		return nil, nil
	}
	p := make(Path, len(exprs))
	for i, e := range exprs {
		p[i] = Segment{Length: e.Length, Clamp: e.Clamp}
	}
	return p, nil
}

// MustParsePath is like [ParsePath] but panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	v, err := ParsePath(string(text))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "invalid wire path")
	}
	*p = v
	return nil
}

// Clone returns an independent copy.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

// Reverse returns the path as walked from the end port: the order is
// reversed and every segment negated.
func (p Path) Reverse() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	for i, s := range p {
		out[len(p)-1-i] = s.Neg()
	}
	return out
}

// Equal reports whether both paths hold the same segments.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// ============================================================================
// Ends and Spans
// ============================================================================

// Ends describes the two ports of a wire: the sides they sit on and the stub
// length spent leaving and entering them.
type Ends struct {
	From, To layout.Side
	Stub     float64
}

// NewEnds returns ends with the default stub.
func NewEnds(from, to layout.Side) Ends {
	return Ends{From: from, To: to, Stub: DefaultStub}
}

// Reverse swaps the two ends.
func (e Ends) Reverse() Ends {
	return Ends{From: e.To, To: e.From, Stub: e.Stub}
}

// AxisOf returns the axis of segment i: the start side's axis for even i and
// the other axis for odd i.
func (e Ends) AxisOf(i int) layout.Axis {
	a := e.From.Axis()
	if i%2 == 1 {
		return a.Other()
	}
	return a
}

// Span is the distance the percentage parts of a path cover on each axis.
type Span struct {
	X, Y float64
}

// On returns the span on the given axis.
func (s Span) On(a layout.Axis) float64 { return a.Pick(s.X, s.Y) }

// Span returns the effective span for an endpoint delta (dx, dy) measured
// from the start port to the end port.
func (e Ends) Span(dx, dy float64) Span {
	s := Span{X: dx, Y: dy}
	s.add(e.From.Axis(), -e.From.Sign()*e.Stub)
	s.add(e.To.Axis(), e.To.Sign()*e.Stub)
	return s
}

func (s *Span) add(a layout.Axis, v float64) {
	switch a {
	case layout.AxisX:
		s.X += v
	case layout.AxisY:
		s.Y += v
	}
}

// headStub returns the fixed part of the first segment.
func (e Ends) headStub() float64 { return e.From.Sign() * e.Stub }

// tailStub returns the fixed part of the last segment.
func (e Ends) tailStub() float64 { return -e.To.Sign() * e.Stub }

// Resolve returns the rendered pixel length of every segment. The lengths
// on each axis sum to the endpoint delta the span was computed from.
func (p Path) Resolve(e Ends, span Span) []float64 {
	out := make([]float64, len(p))
	for i, s := range p {
		out[i] = s.Resolve(span.On(e.AxisOf(i)))
	}
	if n := len(out); n > 0 {
		out[0] += e.headStub()
		out[n-1] += e.tailStub()
	}
	return out
}

// Points returns the vertices of the path starting at start. An empty path
// renders as a straight line to end.
func (p Path) Points(e Ends, start, end layout.Point) []layout.Point {
	if len(p) == 0 {
		return []layout.Point{start, end}
	}
	dx, dy := end.Sub(start)
	lengths := p.Resolve(e, e.Span(dx, dy))

	pts := make([]layout.Point, 0, len(p)+1)
	cur := start
	pts = append(pts, cur)
	for i, l := range lengths {
		switch e.AxisOf(i) {
		case layout.AxisX:
			cur = cur.Add(l, 0)
		case layout.AxisY:
			cur = cur.Add(0, l)
		}
		pts = append(pts, cur)
	}
	return pts
}
