// Package diagram holds an editable box-and-wire diagram and reacts to
// pointer gestures on it.
//
// # Model
//
// A [Diagram] is a tree of [Box] values on a canvas. Each box is placed by
// a [layout.Rect] relative to its parent (the canvas for top-level boxes)
// and may carry:
//
//   - Borders: named lines along one side, stacked inward by their Order
//   - Ports: dots on a border, placed by an offset along it
//   - Corner ports: dots fixed on the box corners
//   - Children: nested boxes
//
// A [Wire] runs from one port to another and is owned by its start port. Its
// shape is kept by a [route.Router].
//
// An anchored box (non-zero Grow) is pinned at its Left/Top point and grows
// toward the Grow corner. Only its grow edges can be dragged.
//
// # Gestures
//
// [Diagram] implements [gesture.Broadcaster]. On pointer down it walks the
// owners of the hit element innermost first:
//
//   - a border port dot slides along its border
//   - a border line with Order > 0 moves between its siblings
//   - a border line with Order 0, a bare box edge, a corner dot or the box
//     background resizes or moves the box
//   - an interior wire segment is dragged sideways
//
// The background of an anchored box belongs to the innermost free box around
// it, so pressing a pinned label drags what it is pinned to.
//
// Every step writes the new value immediately, refreshes the wires that
// depend on it, and notifies observers with a [Change]. Cancelling restores
// the value captured when the drag began.
//
// [Diagram.HitTest] maps a canvas point to the [gesture.Target] under it.
package diagram
