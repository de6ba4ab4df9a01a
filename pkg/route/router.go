package route

import "github.com/matzehuels/boxwire/pkg/layout"

// Router owns the path of one wire. It starts on the default template for
// its pair of sides and keeps any user edit until the span between the ports
// changes sign on either axis.
type Router struct {
	ends   Ends
	path   Path
	custom bool

	primed       bool
	signX, signY bool // true when the last span was >= 0
	span         Span
}

// NewRouter returns a router on the default template for ends.
func NewRouter(ends Ends) *Router {
	return &Router{ends: ends, path: Default(ends.From, ends.To)}
}

// Ends returns the port sides and stub.
func (r *Router) Ends() Ends { return r.ends }

// SetEnds replaces the port sides. A change of sides invalidates any stored
// edit since the template no longer matches.
func (r *Router) SetEnds(ends Ends) {
	if ends == r.ends {
		return
	}
	sidesChanged := ends.From != r.ends.From || ends.To != r.ends.To
	r.ends = ends
	if sidesChanged {
		r.Reset()
	}
}

// Path returns a copy of the current path.
func (r *Router) Path() Path { return r.path.Clone() }

// Custom reports whether the current path is a stored edit.
func (r *Router) Custom() bool { return r.custom }

// Span returns the span seen by the last [Router.Update].
func (r *Router) Span() Span { return r.span }

// Set stores a custom path. A path that does not fit the template for the
// current sides is refused and Set reports false.
func (r *Router) Set(p Path) bool {
	if !Fits(p, r.ends.From, r.ends.To) {
		return false
	}
	r.path = p.Clone()
	r.custom = true
	return true
}

// Reset drops any stored edit and returns to the default template.
func (r *Router) Reset() {
	r.path = Default(r.ends.From, r.ends.To)
	r.custom = false
}

// Update records the current endpoint delta. It reports whether a stored
// edit was dropped because the span changed sign. The first update only
// records the signs.
func (r *Router) Update(dx, dy float64) bool {
	r.span = r.ends.Span(dx, dy)
	sx, sy := r.span.X >= 0, r.span.Y >= 0

	if !r.primed {
		r.primed = true
		r.signX, r.signY = sx, sy
		return false
	}

	flipped := sx != r.signX || sy != r.signY
	r.signX, r.signY = sx, sy
	if !flipped || !r.custom {
		return false
	}
	r.Reset()
	return true
}

// Points returns the rendered vertices from start to end using the current
// path.
func (r *Router) Points(start, end layout.Point) []layout.Point {
	return r.path.Points(r.ends, start, end)
}
