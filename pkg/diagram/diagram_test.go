package diagram

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/gesture"
	"github.com/matzehuels/boxwire/pkg/layout"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func newTestDiagram(t *testing.T, w, h float64) *Diagram {
	t.Helper()
	return New(layout.Size{Width: w, Height: h}, WithLogger(quietLogger()))
}

func mustBox(t *testing.T, d *Diagram, parent *Box, id string, r layout.Rect) *Box {
	t.Helper()
	b, err := d.AddBox(parent, id, r)
	if err != nil {
		t.Fatalf("AddBox(%q) error: %v", id, err)
	}
	return b
}

func mustBorder(t *testing.T, d *Diagram, b *Box, id string, side layout.Side) *Border {
	t.Helper()
	br, err := d.AddBorder(b, id, side)
	if err != nil {
		t.Fatalf("AddBorder(%q) error: %v", id, err)
	}
	return br
}

func mustPort(t *testing.T, d *Diagram, br *Border, id string, offset layout.Length) *Port {
	t.Helper()
	p, err := d.AddPort(br, id, offset)
	if err != nil {
		t.Fatalf("AddPort(%q) error: %v", id, err)
	}
	return p
}

func TestAddBorderOrder(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	b := mustBox(t, d, nil, "b", layout.PxRect(0, 0, 200, 100))
	t0 := mustBorder(t, d, b, "t0", layout.SideTop)
	l0 := mustBorder(t, d, b, "l0", layout.SideLeft)
	t1 := mustBorder(t, d, b, "t1", layout.SideTop)

	for _, tt := range []struct {
		br   *Border
		want int
	}{{t0, 0}, {l0, 0}, {t1, 1}} {
		if tt.br.Order != tt.want {
			t.Errorf("%s.Order = %d, want %d", tt.br.ID, tt.br.Order, tt.want)
		}
	}
	if got := t1.Inset(); got != 8 {
		t.Errorf("t1.Inset() = %v, want 8", got)
	}
	if e, ok := b.Edge(layout.SideTop); !ok || e != t0 {
		t.Errorf("Edge(top) = %v, want t0", e)
	}
}

func TestBorderInsetCapped(t *testing.T) {
	d := New(layout.Size{Width: 400, Height: 200}, WithBorderSpacing(30), WithLogger(quietLogger()))
	b := mustBox(t, d, nil, "b", layout.PxRect(0, 0, 200, 50))
	var last *Border
	for _, id := range []string{"t0", "t1", "t2"} {
		last = mustBorder(t, d, b, id, layout.SideTop)
	}
	if got := last.Inset(); got != 50 {
		t.Errorf("Inset() = %v, want 50 (box height)", got)
	}
}

func TestAddErrors(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	b := mustBox(t, d, nil, "b", layout.PxRect(0, 0, 200, 100))
	br := mustBorder(t, d, b, "t0", layout.SideTop)
	mustPort(t, d, br, "p", layout.Pct(50))

	tests := []struct {
		name string
		err  error
		code errors.Code
	}{
		{"duplicate id", func() error { _, err := d.AddBox(nil, "b", layout.Rect{}); return err }(), errors.ErrCodeInvalidDiagram},
		{"border without side", func() error { _, err := d.AddBorder(b, "x", layout.SideNone); return err }(), errors.ErrCodeInvalidSide},
		{"corner not a corner", func() error { _, err := d.AddCornerPort(b, "c", layout.EdgeTop); return err }(), errors.ErrCodeInvalidSide},
		{"wire to unknown port", func() error { _, err := d.AddWire("w", "p", "nope"); return err }(), errors.ErrCodeInvalidDiagram},
		{"wire to itself", func() error { _, err := d.AddWire("w", "p", "p"); return err }(), errors.ErrCodeInvalidDiagram},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.code) {
				t.Errorf("error = %v, want code %s", tt.err, tt.code)
			}
		})
	}
}

func TestGeneratedIDs(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	a := mustBox(t, d, nil, "", layout.Rect{})
	b := mustBox(t, d, nil, "", layout.Rect{})
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("generated ids %q and %q, want distinct non-empty", a.ID, b.ID)
	}
}

func TestAnchoredFrame(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	tests := []struct {
		grow layout.Edges
		want layout.Box
	}{
		{layout.EdgeRight | layout.EdgeBottom, layout.Box{Left: 200, Top: 100, Width: 50, Height: 20}},
		{layout.EdgeLeft | layout.EdgeBottom, layout.Box{Left: 150, Top: 100, Width: 50, Height: 20}},
		{layout.EdgeLeft | layout.EdgeTop, layout.Box{Left: 150, Top: 80, Width: 50, Height: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.grow.String(), func(t *testing.T) {
			b := mustBox(t, d, nil, "", layout.PxRect(200, 100, 50, 20))
			b.Grow = tt.grow
			if got := b.Frame(); got != tt.want {
				t.Errorf("Frame() = %+v, want %+v", got, tt.want)
			}
			if got := b.Movable(); got != tt.grow {
				t.Errorf("Movable() = %v, want %v", got, tt.grow)
			}
		})
	}
}

func TestPortPosition(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	outer := mustBox(t, d, nil, "outer", layout.PxRect(50, 20, 300, 160))
	b := mustBox(t, d, outer, "b", layout.PxRect(10, 10, 200, 100))
	bottom := mustBorder(t, d, b, "bottom", layout.SideBottom)
	inner := mustBorder(t, d, b, "inner", layout.SideBottom)
	right := mustBorder(t, d, b, "right", layout.SideRight)
	corner, err := d.AddCornerPort(b, "c", layout.EdgeTop|layout.EdgeRight)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		port *Port
		want layout.Point
	}{
		{"half along bottom", mustPort(t, d, bottom, "p1", layout.Pct(50)), layout.Point{X: 160, Y: 130}},
		{"stacked border", mustPort(t, d, inner, "p2", layout.Px(20)), layout.Point{X: 80, Y: 122}},
		{"calc on right", mustPort(t, d, right, "p3", layout.Calc(10, 50)), layout.Point{X: 260, Y: 90}},
		{"clamped past end", mustPort(t, d, bottom, "p4", layout.Pct(150)), layout.Point{X: 260, Y: 130}},
		{"clamped before start", mustPort(t, d, bottom, "p5", layout.Px(-30)), layout.Point{X: 60, Y: 130}},
		{"corner", corner, layout.Point{X: 260, Y: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.port.Position(); got != tt.want {
				t.Errorf("Position() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHitTest(t *testing.T) {
	d := newTestDiagram(t, 400, 300)
	outer := mustBox(t, d, nil, "outer", layout.PxRect(0, 0, 300, 200))
	mustBorder(t, d, outer, "l0", layout.SideLeft)
	l1 := mustBorder(t, d, outer, "l1", layout.SideLeft)
	mustPort(t, d, l1, "lp", layout.Pct(50))
	if _, err := d.AddCornerPort(outer, "c", layout.EdgeTop|layout.EdgeRight); err != nil {
		t.Fatal(err)
	}
	mustBox(t, d, outer, "inner", layout.PxRect(100, 50, 100, 100))

	tests := []struct {
		name string
		pt   layout.Point
		want gesture.Target
	}{
		{"corner dot", layout.Point{X: 300, Y: 0}, gesture.Target{Role: gesture.RoleCorner, ID: "c"}},
		{"border dot", layout.Point{X: 9, Y: 101}, gesture.Target{Role: gesture.RoleDot, ID: "lp"}},
		{"stacked line", layout.Point{X: 8, Y: 30}, gesture.Target{Role: gesture.RoleLine, ID: "l1"}},
		{"outermost line", layout.Point{X: 1, Y: 30}, gesture.Target{Role: gesture.RoleEdge, ID: "l0"}},
		{"bare edge", layout.Point{X: 150, Y: 2}, gesture.Target{Role: gesture.RoleEdge, ID: "outer", Index: int(layout.SideTop)}},
		{"child edge", layout.Point{X: 100, Y: 100}, gesture.Target{Role: gesture.RoleEdge, ID: "inner", Index: int(layout.SideLeft)}},
		{"child background", layout.Point{X: 150, Y: 100}, gesture.Target{Role: gesture.RoleInterior, ID: "inner"}},
		{"parent background", layout.Point{X: 250, Y: 180}, gesture.Target{Role: gesture.RoleInterior, ID: "outer"}},
		{"nothing", layout.Point{X: 350, Y: 250}, gesture.Target{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.HitTest(tt.pt); got != tt.want {
				t.Errorf("HitTest(%v) = %+v, want %+v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestRemoveBorderDensifies(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	b := mustBox(t, d, nil, "b", layout.PxRect(0, 0, 200, 100))
	mustBorder(t, d, b, "t0", layout.SideTop)
	t1 := mustBorder(t, d, b, "t1", layout.SideTop)
	t2 := mustBorder(t, d, b, "t2", layout.SideTop)
	mustPort(t, d, t1, "p", layout.Pct(10))

	if err := d.RemoveBorder("t1"); err != nil {
		t.Fatalf("RemoveBorder() error: %v", err)
	}
	if t2.Order != 1 {
		t.Errorf("t2.Order = %d, want 1", t2.Order)
	}
	if t1.Attached() {
		t.Error("removed border still attached")
	}
	if _, ok := d.Port("p"); ok {
		t.Error("port of removed border still present")
	}
	if got := len(b.Borders); got != 2 {
		t.Errorf("len(Borders) = %d, want 2", got)
	}
}

func TestRemoveCascades(t *testing.T) {
	d, w := wiredDiagram(t)
	a, _ := d.Box("a")

	if err := d.RemoveBox("a"); err != nil {
		t.Fatalf("RemoveBox() error: %v", err)
	}
	if w.Attached() || a.Attached() {
		t.Error("removed elements still attached")
	}
	boxes, borders, ports, wires := d.Counts()
	if boxes != 1 || borders != 1 || ports != 1 || wires != 0 {
		t.Errorf("Counts() = %d, %d, %d, %d, want 1, 1, 1, 0", boxes, borders, ports, wires)
	}
	if got := len(d.Roots()); got != 1 {
		t.Errorf("len(Roots()) = %d, want 1", got)
	}
}

func TestRemovePortDropsWires(t *testing.T) {
	d, w := wiredDiagram(t)
	if err := d.RemovePort("bp"); err != nil {
		t.Fatalf("RemovePort() error: %v", err)
	}
	if w.Attached() || len(d.Wires()) != 0 {
		t.Error("wire to removed port survived")
	}
	ap, _ := d.Port("ap")
	if len(ap.Wires) != 0 {
		t.Errorf("start port still lists %d wires", len(ap.Wires))
	}
}

func TestRemoveNotFound(t *testing.T) {
	d := newTestDiagram(t, 100, 100)
	for name, fn := range map[string]func(string) error{
		"box":    d.RemoveBox,
		"border": d.RemoveBorder,
		"port":   d.RemovePort,
		"wire":   d.RemoveWire,
	} {
		if err := fn("missing"); !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("remove %s: error = %v, want NOT_FOUND", name, err)
		}
	}
}
