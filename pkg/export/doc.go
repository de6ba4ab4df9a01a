// Package export renders diagrams for viewing outside the editor.
//
// # Formats
//
//   - text: an ASCII grid, one cell per [Options.CellWidth] x
//     [Options.CellHeight] pixels. The terminal editor draws the same grid.
//   - dot: Graphviz source with every box, port and wire bend pinned at its
//     canvas position
//   - svg, png: the DOT source laid out by the neato engine
//   - json: the diagram document from package io
//
// # Usage
//
//	out, err := export.Render(ctx, d, export.FormatSVG, export.Options{})
//
// [RenderAll] produces several formats at once. The diagram is read once up
// front; the Graphviz renders then run in parallel.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering. No external Graphviz installation is needed.
package export
