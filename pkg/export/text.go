package export

import (
	"math"
	"strings"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/layout"
)

// Grid glyphs.
const (
	GlyphCorner     = '+'
	GlyphHorizontal = '-'
	GlyphVertical   = '|'
	GlyphBorderH    = '='
	GlyphBorderV    = ':'
	GlyphWire       = '.'
	GlyphPort       = 'o'
	GlyphCornerPort = '*'
)

// Grid is a character raster of a diagram.
type Grid struct {
	cells  [][]rune
	cw, ch float64
}

// Rasterize draws d onto a grid. Boxes are painted parents first, so a
// child's background hides what its parent drew underneath. Wires and then
// ports are drawn on top.
func Rasterize(d *diagram.Diagram, opts Options) *Grid {
	opts = opts.withDefaults()
	g := newGrid(d.Size, opts.CellWidth, opts.CellHeight)

	d.Walk(func(b *diagram.Box, _ int) {
		r := b.Bounds()
		g.fill(r)
		g.outline(r)
		for _, br := range b.Borders {
			a, z := br.Line()
			glyph := GlyphBorderH
			if br.Side.Axis() == layout.AxisX {
				glyph = GlyphBorderV
			}
			g.line(a, z, glyph)
		}
		if opts.Labels && b.Label != "" {
			g.text(r, b.Label)
		}
	})

	for _, w := range d.Wires() {
		pts := w.Points()
		for i := 0; i+1 < len(pts); i++ {
			g.line(pts[i], pts[i+1], GlyphWire)
		}
	}

	d.Walk(func(b *diagram.Box, _ int) {
		for _, br := range b.Borders {
			for _, p := range br.Ports {
				g.set(p.Position(), GlyphPort)
			}
		}
		for _, p := range b.Corners {
			g.set(p.Position(), GlyphCornerPort)
		}
	})
	return g
}

func newGrid(size layout.Size, cw, ch float64) *Grid {
	cols := int(math.Ceil(size.Width/cw)) + 1
	rows := int(math.Ceil(size.Height/ch)) + 1
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return &Grid{cells: cells, cw: cw, ch: ch}
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int) {
	if len(g.cells) == 0 {
		return 0, 0
	}
	return len(g.cells[0]), len(g.cells)
}

// At returns the rune at a cell, or a space outside the grid.
func (g *Grid) At(col, row int) rune {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return ' '
	}
	return g.cells[row][col]
}

// Point returns the canvas point a cell stands for.
func (g *Grid) Point(col, row int) layout.Point {
	return layout.Point{X: float64(col) * g.cw, Y: float64(row) * g.ch}
}

// Cell returns the cell a canvas point falls in.
func (g *Grid) Cell(p layout.Point) (col, row int) {
	return int(math.Round(p.X / g.cw)), int(math.Round(p.Y / g.ch))
}

// Lines returns the rows with trailing spaces removed.
func (g *Grid) Lines() []string {
	out := make([]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}

func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n") + "\n"
}

func (g *Grid) set(p layout.Point, r rune) {
	col, row := g.Cell(p)
	g.put(col, row, r)
}

func (g *Grid) put(col, row int, r rune) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	g.cells[row][col] = r
}

func (g *Grid) fill(b layout.Box) {
	c0, r0 := g.Cell(b.Origin())
	c1, r1 := g.Cell(layout.Point{X: b.Right(), Y: b.Bottom()})
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			g.put(col, row, ' ')
		}
	}
}

func (g *Grid) outline(b layout.Box) {
	c0, r0 := g.Cell(b.Origin())
	c1, r1 := g.Cell(layout.Point{X: b.Right(), Y: b.Bottom()})
	for col := c0; col <= c1; col++ {
		g.put(col, r0, GlyphHorizontal)
		g.put(col, r1, GlyphHorizontal)
	}
	for row := r0; row <= r1; row++ {
		g.put(c0, row, GlyphVertical)
		g.put(c1, row, GlyphVertical)
	}
	for _, c := range [][2]int{{c0, r0}, {c1, r0}, {c0, r1}, {c1, r1}} {
		g.put(c[0], c[1], GlyphCorner)
	}
}

// line draws from a to z, stepping one cell at a time along the longer axis.
func (g *Grid) line(a, z layout.Point, r rune) {
	c0, r0 := g.Cell(a)
	c1, r1 := g.Cell(z)
	n := max(abs(c1-c0), abs(r1-r0))
	if n == 0 {
		g.put(c0, r0, r)
		return
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		col := c0 + int(math.Round(t*float64(c1-c0)))
		row := r0 + int(math.Round(t*float64(r1-r0)))
		g.put(col, row, r)
	}
}

// text writes s inside b's top-left corner, cut at the right edge.
func (g *Grid) text(b layout.Box, s string) {
	c0, r0 := g.Cell(b.Origin())
	c1, r1 := g.Cell(layout.Point{X: b.Right(), Y: b.Bottom()})
	if r1-r0 < 2 {
		return
	}
	for i, r := range []rune(s) {
		col := c0 + 1 + i
		if col >= c1 {
			break
		}
		g.put(col, r0+1, r)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
