// Package route computes orthogonal wire paths between two ports.
//
// # Overview
//
// A wire leaves its start port perpendicular to the port's side, runs as a
// chain of alternating horizontal and vertical segments, and enters the end
// port perpendicular to that port's side. A [Path] stores the segments as
// length expressions relative to the distance between the two ports, so a
// path keeps its shape while the boxes it connects are moved or resized.
//
// # Axes and Spans
//
// Segment i runs along the axis of the start side when i is even and along
// the other axis when i is odd. Percentages are taken of the [Span]: the
// endpoint delta on that axis minus the fixed stubs that the first and last
// segment always spend leaving and entering their ports:
//
//	span.Y = (to.Y - from.Y) - sign(from)*stub + sign(to)*stub   // vertical sides
//
// where sign is +1 for bottom and right and -1 for top and left, and each
// stub term only applies on the axis of its side.
//
// # Default Templates
//
// [Default] returns one of eight templates selected by the ordered pair of
// sides. For example a bottom port wired to a top port gets
//
//	max(0px, 50%) 50% min(0px, 100%) 50% max(0px, 50%)
//
// which drops down half way and crosses over when the target lies below,
// and loops around through the full height when it lies above. Every
// template sums to exactly 100% of the span on each axis whatever the
// span's sign, so [Path.Resolve] always lands on the end port.
//
// # Routing and Rearranging
//
// A [Router] holds a wire's current path. A user edit stored with
// [Router.Set] survives endpoint movement until the span changes sign on
// either axis, at which point the template no longer fits and the router
// falls back to [Default].
//
// A [Rearranger] drags one interior segment sideways by lengthening one of
// its neighbours and shortening the other, keeping both endpoints fixed.
package route
