package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/layout"
)

// ToDOT converts a diagram to Graphviz DOT. Every node is pinned, so the
// neato engine only draws it. Canvas pixels map to points with the y axis
// flipped.
func ToDOT(d *diagram.Diagram, opts Options) string {
	opts = opts.withDefaults()
	h := d.Size.Height

	var buf bytes.Buffer
	buf.WriteString("digraph boxwire {\n")
	buf.WriteString("  graph [bgcolor=\"transparent\", splines=line, inputscale=72, outputorder=edgesfirst];\n")
	buf.WriteString("  node [fixedsize=true, fontsize=10, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [arrowsize=0.5];\n")
	buf.WriteString("\n")

	d.Walk(func(b *diagram.Box, _ int) {
		r := b.Bounds()
		c := r.Center()
		label := ""
		if opts.Labels {
			label = b.Label
		}
		fmt.Fprintf(&buf, "  %q [shape=box, style=filled, fillcolor=white, label=%q, pos=%q, width=%s, height=%s];\n",
			"box:"+b.ID, label, pos(c, h), inches(r.Width), inches(r.Height))
		for _, br := range b.Borders {
			a, z := br.Line()
			fmt.Fprintf(&buf, "  %q [shape=point, width=0, pos=%q];\n", "border:"+br.ID+":a", pos(a, h))
			fmt.Fprintf(&buf, "  %q [shape=point, width=0, pos=%q];\n", "border:"+br.ID+":z", pos(z, h))
			fmt.Fprintf(&buf, "  %q -> %q [arrowhead=none, penwidth=2];\n", "border:"+br.ID+":a", "border:"+br.ID+":z")
		}
	})

	buf.WriteString("\n")
	radius := inches(2 * opts.DotRadius)
	for _, id := range portIDs(d) {
		p, _ := d.Port(id)
		fmt.Fprintf(&buf, "  %q [shape=circle, style=filled, fillcolor=black, label=\"\", width=%s, pos=%q];\n",
			"port:"+p.ID, radius, pos(p.Position(), h))
	}

	buf.WriteString("\n")
	for _, w := range d.Wires() {
		pts := w.Points()
		names := make([]string, len(pts))
		names[0] = "port:" + w.From.ID
		names[len(pts)-1] = "port:" + w.To.ID
		for i := 1; i < len(pts)-1; i++ {
			names[i] = "wire:" + w.ID + ":" + strconv.Itoa(i)
			fmt.Fprintf(&buf, "  %q [shape=point, width=0, pos=%q];\n", names[i], pos(pts[i], h))
		}
		for i := 0; i+1 < len(names); i++ {
			head := "none"
			if i+2 == len(names) {
				head = "normal"
			}
			fmt.Fprintf(&buf, "  %q -> %q [arrowhead=%s];\n", names[i], names[i+1], head)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// portIDs lists every port in paint order.
func portIDs(d *diagram.Diagram) []string {
	var ids []string
	d.Walk(func(b *diagram.Box, _ int) {
		for _, br := range b.Borders {
			for _, p := range br.Ports {
				ids = append(ids, p.ID)
			}
		}
		for _, p := range b.Corners {
			ids = append(ids, p.ID)
		}
	})
	return ids
}

func pos(p layout.Point, height float64) string {
	return num(p.X) + "," + num(height-p.Y) + "!"
}

func inches(px float64) string { return num(px / 72) }

func num(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ============================================================================
// Graphviz
// ============================================================================

// RenderSVG lays out DOT source with neato and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderGraphviz(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out DOT source with neato and returns PNG bytes.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraphviz(ctx, dot, graphviz.PNG)
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag with one that scales.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
