// Package pkg provides the libraries behind boxwire, an editor core for
// box-and-wire diagrams driven by pointer gestures.
//
// # Overview
//
// A diagram is a tree of boxes with borders, ports and orthogonal wires
// between ports. Pressing and dragging any of them changes the geometry:
// boxes move and resize, borders reorder, ports slide and wire segments
// shift sideways. Every change is announced while it happens and can be
// cancelled back to where it started.
//
// # Architecture
//
// The flow of a single drag:
//
//	pointer events (terminal mouse, script step, HTTP replay)
//	         ↓
//	    [gesture] package (capture, threshold, modifiers, cancel)
//	         ↓
//	    [diagram] package (pick the element, start a drag, apply steps)
//	         ↓
//	    [layout] and [route] packages (lengths, resizes, sorting, wire paths)
//	         ↓
//	    observers, [io] documents, [export] renderings
//
// # Quick Start
//
// Build a diagram and drag a box with a session:
//
//	import (
//	    "github.com/matzehuels/boxwire/pkg/diagram"
//	    "github.com/matzehuels/boxwire/pkg/gesture"
//	    "github.com/matzehuels/boxwire/pkg/layout"
//	)
//
//	d := diagram.New(layout.Size{Width: 400, Height: 200})
//	d.AddBox(nil, "box", layout.PctRect(10, 10, 25, 50))
//
//	s := gesture.NewSession(d)
//	pt := layout.Point{X: 90, Y: 70}
//	s.PointerDown(gesture.PointerEvent{PointerID: 1, Buttons: gesture.ButtonPrimary,
//	    X: pt.X, Y: pt.Y, Target: d.HitTest(pt)})
//	s.PointerMove(gesture.PointerEvent{PointerID: 1, Buttons: gesture.ButtonPrimary, X: 130, Y: 90})
//	s.PointerUp(gesture.PointerEvent{PointerID: 1, X: 130, Y: 90})
//
// # Main Packages
//
// [layout] - Lengths as percent plus pixels, rectangles, sides, the edge
// resizer, the one-dimensional shifter and the order sorter.
//
// [route] - Wire paths as alternating segment lengths, default templates per
// side pair and the router that keeps custom paths valid as ends move.
//
// [gesture] - The pointer protocol: pointer capture, the drag threshold,
// required modifiers and cancellation.
//
// [diagram] - The element tree, hit testing and the drags for each element.
//
// [io] - The JSON document format.
//
// [script] - TOML gesture scripts and their replay.
//
// [export] - Text, DOT, SVG, PNG and JSON renderings.
//
// [store] - Named diagram storage in files or Redis.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for store, gesture and export events.
//
// # Testing
//
// Run tests:
//
//	go test ./...                  # All tests
//	go test ./pkg/gesture/...      # Specific package
//	go test -run Example ./pkg/... # Examples only
//	go test -short ./...           # Skip graphviz renders
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/boxwire/pkg/layout
// [route]: https://pkg.go.dev/github.com/matzehuels/boxwire/pkg/route
// [gesture]: https://pkg.go.dev/github.com/matzehuels/boxwire/pkg/gesture
// [diagram]: https://pkg.go.dev/github.com/matzehuels/boxwire/pkg/diagram
// [io]: https://pkg.go.dev/github.com/matzehuels/boxwire/pkg/io
// [script]: https://pkg.go.dev/github.com/matzehuels/boxwire/pkg/script
// [export]: https://pkg.go.dev/github.com/matzehuels/boxwire/pkg/export
// [store]: https://pkg.go.dev/github.com/matzehuels/boxwire/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/boxwire/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/boxwire/pkg/observability
package pkg
