// Package io provides JSON import and export for diagrams.
//
// # Overview
//
// A diagram document holds the canvas size, the box tree and the wires.
// The format is designed for:
//
//   - Storing diagrams between editing sessions
//   - Feeding gesture scripts and renderers from files or HTTP bodies
//   - Round-trip preservation: import, edit, export, and re-import identically
//
// # JSON Format
//
//	{
//	  "name": "demo",
//	  "width": 400,
//	  "height": 200,
//	  "boxes": [
//	    {
//	      "id": "a",
//	      "rect": {"left": "10%", "top": "10%", "width": "25%", "height": "50%"},
//	      "borders": [
//	        {"id": "a.out", "side": "bottom", "ports": [{"id": "a.p", "offset": "50%"}]}
//	      ]
//	    }
//	  ],
//	  "wires": [{"id": "w", "from": "a.p", "to": "b.p"}]
//	}
//
// Lengths are CSS-like strings: "12px", "25%" or "calc(10px + 25%)".
//
// # Box Fields
//
// Required:
//   - rect: left, top, width and height lengths relative to the parent
//
// Optional:
//   - id: unique identifier (generated if omitted)
//   - label: display text
//   - grow: anchor direction such as "bottom-right" for anchored boxes
//   - borders: lines with a side, an order and ports
//   - corners: ports fixed on corners, e.g. {"id": "c", "corner": "top-left"}
//   - children: nested boxes
//
// Border orders are renumbered 0..n-1 per side on import, keeping their
// relative order.
//
// # Wire Fields
//
// A wire names its start and end port. A "path" field holds a custom route
// as space-separated segments, e.g. "max(0px, 30%) 50% min(0px, 100%)";
// without it the wire follows the default template for its sides.
//
// # Import
//
// Use [ImportJSON] to read a diagram from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	d, err := io.ImportJSON("demo.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate ids and references. Errors carry the
// INVALID_DIAGRAM code and name the element that caused the problem.
//
// # Export
//
// Use [ExportJSON] to write a diagram to a file, or [WriteJSON] to write to
// any io.Writer. Only custom wire paths are written, so a re-imported wire
// keeps following its template until it is edited.
package io
