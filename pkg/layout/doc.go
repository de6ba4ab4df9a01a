// Package layout provides the length arithmetic and drag transforms behind
// boxwire's geometry.
//
// # Overview
//
// Every position in a diagram is stored relative to its container so that it
// survives container resizes. A [Length] is a calc-style expression made of a
// fixed pixel part and a percentage part:
//
//	calc(10px + 25%)
//
// and a [Rect] carries four of them (left, top, width, height). Resolving a
// rect against its parent's pixel [Size] yields a pixel [Box].
//
// # Parsing
//
// [ParseLength] reads the textual form back into a [Length]. [ParseExpr]
// additionally accepts a single clamp wrapper, as used by wire paths:
//
//	max(0px, 50%)      // never negative
//	min(0px, 100%)     // never positive
//
// Clamp bounds other than zero are rejected with an INVALID_LENGTH error.
//
// # Drag Transforms
//
// Three pure transforms turn a cumulative pointer delta into a new value.
// Each is built once when a drag begins, freezing the pixel denominators of
// that moment, and evaluated on every pointer step:
//
//   - [Resizer]: moves or resizes a [Rect] through a set of [Edges]
//   - [Sorter]: moves one item of an ordered list by whole slots
//   - [Shifter]: slides an offset along a fixed length, clamped to [0%, 100%]
//
// Transforms never fail. Deltas outside the valid range are clamped and
// degenerate denominators (a zero-sized parent, a single sibling) leave the
// value untouched.
//
// # Sides and Edges
//
// [Side] names one edge of a box and carries the orientation used by wire
// routing: [Side.Sign] is +1 for bottom and right and -1 for top and left.
// [Edges] is a bit set of sides used as the mode of a [Resizer].
package layout
