package diagram

import (
	"reflect"
	"testing"

	"github.com/matzehuels/boxwire/pkg/gesture"
	"github.com/matzehuels/boxwire/pkg/layout"
	"github.com/matzehuels/boxwire/pkg/route"
)

// changeLog records every change a diagram emits.
type changeLog struct {
	changes []Change
}

func (l *changeLog) OnChange(c Change) { l.changes = append(l.changes, c) }

func (l *changeLog) last() Change {
	if len(l.changes) == 0 {
		return Change{}
	}
	return l.changes[len(l.changes)-1]
}

// driver replays a pointer drag on a diagram the way an input layer would.
type driver struct {
	t *testing.T
	d *Diagram
	s *gesture.Session
}

func newDriver(t *testing.T, d *Diagram) *driver {
	return &driver{t: t, d: d, s: gesture.NewSession(d, gesture.WithLogger(quietLogger()))}
}

func (dr *driver) down(x, y float64) bool {
	dr.t.Helper()
	pt := layout.Point{X: x, Y: y}
	return dr.s.PointerDown(gesture.PointerEvent{
		PointerID: 1,
		Buttons:   gesture.ButtonPrimary,
		X:         x,
		Y:         y,
		Target:    dr.d.HitTest(pt),
	})
}

func (dr *driver) move(x, y float64) {
	dr.s.PointerMove(gesture.PointerEvent{PointerID: 1, Buttons: gesture.ButtonPrimary, X: x, Y: y})
}

func (dr *driver) up(x, y float64) {
	dr.s.PointerUp(gesture.PointerEvent{PointerID: 1, X: x, Y: y})
}

func (dr *driver) cancel() {
	dr.s.PointerCancel(gesture.PointerEvent{PointerID: 1})
}

// wiredDiagram builds two boxes joined by a bottom-to-top wire from (50, 50)
// to (250, 150).
func wiredDiagram(t *testing.T) (*Diagram, *Wire) {
	t.Helper()
	d := newTestDiagram(t, 400, 300)
	a := mustBox(t, d, nil, "a", layout.PxRect(0, 0, 100, 50))
	b := mustBox(t, d, nil, "b", layout.PxRect(200, 150, 100, 50))
	mustPort(t, d, mustBorder(t, d, a, "ab", layout.SideBottom), "ap", layout.Pct(50))
	mustPort(t, d, mustBorder(t, d, b, "bt", layout.SideTop), "bp", layout.Pct(50))
	w, err := d.AddWire("w", "ap", "bp")
	if err != nil {
		t.Fatalf("AddWire() error: %v", err)
	}
	return d, w
}

func TestResizeEdge(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	a := mustBox(t, d, nil, "a", layout.PctRect(10, 10, 25, 50))
	var log changeLog
	d.Observe(&log)
	dr := newDriver(t, d)

	if !dr.down(140, 70) {
		t.Fatal("down on right edge did not arm")
	}
	dr.move(200, 70)
	if got := a.Rect.Width; got != layout.Pct(40) {
		t.Errorf("Width = %v, want 40%%", got)
	}
	if a.Activity&ActResizing == 0 {
		t.Error("resizing flag not set during drag")
	}
	if got := a.Rect.Left; got != layout.Pct(10) {
		t.Errorf("Left = %v, want unchanged 10%%", got)
	}
	dr.up(200, 70)

	if a.Activity != 0 {
		t.Errorf("Activity = %v after commit, want none", a.Activity)
	}
	phases := make([]Phase, len(log.changes))
	for i, c := range log.changes {
		phases[i] = c.Phase
	}
	if want := []Phase{PhaseStep, PhaseCommit}; !reflect.DeepEqual(phases, want) {
		t.Errorf("phases = %v, want %v", phases, want)
	}
	if c := log.last(); c.Kind != KindResize || c.ID != "a" || c.Rect != a.Rect {
		t.Errorf("last change = %+v", c)
	}
}

func TestResizeCancelRestores(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	orig := layout.PctRect(10, 10, 25, 50)
	a := mustBox(t, d, nil, "a", orig)
	var log changeLog
	d.Observe(&log)
	dr := newDriver(t, d)

	dr.down(140, 70)
	dr.move(200, 100)
	dr.cancel()

	if a.Rect != orig {
		t.Errorf("Rect = %+v after cancel, want %+v", a.Rect, orig)
	}
	if c := log.last(); c.Phase != PhaseCancel || c.Rect != orig {
		t.Errorf("last change = %+v, want cancel with original rect", c)
	}
}

func TestMoveInterior(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	a := mustBox(t, d, nil, "a", layout.PctRect(10, 10, 25, 50))
	dr := newDriver(t, d)

	dr.down(90, 70)
	dr.move(130, 90)
	dr.up(130, 90)

	want := layout.PctRect(20, 20, 25, 50)
	if a.Rect != want {
		t.Errorf("Rect = %+v, want %+v", a.Rect, want)
	}
}

func TestAnchoredGestures(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	outer := mustBox(t, d, nil, "outer", layout.PxRect(0, 0, 200, 100))
	pin := mustBox(t, d, outer, "pin", layout.PxRect(10, 10, 20, 20))
	pin.Grow = layout.EdgeRight | layout.EdgeBottom
	if _, err := d.AddCornerPort(pin, "tl", layout.EdgeTop|layout.EdgeLeft); err != nil {
		t.Fatal(err)
	}
	if _, err := d.AddCornerPort(pin, "br", layout.EdgeBottom|layout.EdgeRight); err != nil {
		t.Fatal(err)
	}

	t.Run("anchor corner is fixed", func(t *testing.T) {
		dr := newDriver(t, d)
		if dr.down(10, 10) {
			t.Error("down on anchor corner armed")
		}
	})

	t.Run("left edge is fixed", func(t *testing.T) {
		dr := newDriver(t, d)
		if dr.down(10, 25) {
			t.Error("down on non-grow edge armed")
		}
	})

	t.Run("grow corner resizes in place", func(t *testing.T) {
		dr := newDriver(t, d)
		if !dr.down(30, 30) {
			t.Fatal("down on grow corner did not arm")
		}
		dr.move(70, 50)
		dr.up(70, 50)
		if pin.Rect.Left != layout.Px(10) || pin.Rect.Top != layout.Px(10) {
			t.Errorf("anchor moved to %v, %v", pin.Rect.Left, pin.Rect.Top)
		}
		if got := pin.Frame(); got != (layout.Box{Left: 10, Top: 10, Width: 60, Height: 40}) {
			t.Errorf("Frame() = %+v, want 10,10 60x40", got)
		}
	})
}

func TestAnchoredBackgroundMovesParent(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	outer := mustBox(t, d, nil, "outer", layout.PxRect(0, 0, 200, 100))
	pin := mustBox(t, d, outer, "pin", layout.PxRect(10, 10, 20, 20))
	pin.Grow = layout.EdgeRight | layout.EdgeBottom
	dr := newDriver(t, d)

	dr.down(20, 20)
	dr.move(60, 20)
	dr.up(60, 20)

	if got := outer.Rect.Left; got != layout.Pct(10) {
		t.Errorf("outer Left = %v, want 10%%", got)
	}
	if got := pin.Rect; got != layout.PxRect(10, 10, 20, 20) {
		t.Errorf("pin Rect = %+v, want unchanged", got)
	}
}

func TestReorder(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	b := mustBox(t, d, nil, "b", layout.PxRect(0, 0, 200, 100))
	t0 := mustBorder(t, d, b, "t0", layout.SideTop)
	t1 := mustBorder(t, d, b, "t1", layout.SideTop)
	t2 := mustBorder(t, d, b, "t2", layout.SideTop)
	var log changeLog
	d.Observe(&log)
	dr := newDriver(t, d)

	if !dr.down(50, 16) {
		t.Fatal("down on stacked line did not arm")
	}
	dr.move(50, 0)
	if want := []string{"t2", "t0", "t1"}; !reflect.DeepEqual(log.last().Order, want) {
		t.Errorf("Order = %v, want %v", log.last().Order, want)
	}
	if t2.Order != 0 || t0.Order != 1 || t1.Order != 2 {
		t.Errorf("orders = %d %d %d, want 1 2 0", t0.Order, t1.Order, t2.Order)
	}

	dr.cancel()
	if t0.Order != 0 || t1.Order != 1 || t2.Order != 2 {
		t.Errorf("orders after cancel = %d %d %d, want 0 1 2", t0.Order, t1.Order, t2.Order)
	}
	if c := log.last(); c.Kind != KindReorder || c.Phase != PhaseCancel {
		t.Errorf("last change = %+v, want reorder cancel", c)
	}
}

func TestOutermostLineResizes(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	b := mustBox(t, d, nil, "b", layout.PxRect(0, 0, 200, 100))
	mustBorder(t, d, b, "t0", layout.SideTop)
	mustBorder(t, d, b, "t1", layout.SideTop)
	dr := newDriver(t, d)

	dr.down(50, 0)
	dr.move(50, 20)
	dr.up(50, 20)

	if b.Rect.Top != layout.Pct(10) || b.Rect.Height != layout.Pct(40) {
		t.Errorf("Top, Height = %v, %v, want 10%%, 40%%", b.Rect.Top, b.Rect.Height)
	}
}

func TestOffset(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	b := mustBox(t, d, nil, "b", layout.PxRect(0, 0, 200, 100))
	p := mustPort(t, d, mustBorder(t, d, b, "bot", layout.SideBottom), "p", layout.Pct(50))
	dr := newDriver(t, d)

	if !dr.down(100, 100) {
		t.Fatal("down on port did not arm")
	}
	dr.move(150, 130)
	if p.Offset != layout.Pct(75) {
		t.Errorf("Offset = %v, want 75%%", p.Offset)
	}
	if got := p.Position(); got != (layout.Point{X: 150, Y: 100}) {
		t.Errorf("Position() = %+v, want (150, 100)", got)
	}
	dr.move(900, 100)
	if p.Offset != layout.Pct(100) {
		t.Errorf("Offset = %v past the end, want 100%%", p.Offset)
	}
	dr.cancel()
	if p.Offset != layout.Pct(50) {
		t.Errorf("Offset = %v after cancel, want 50%%", p.Offset)
	}
}

func TestRearrange(t *testing.T) {
	d, w := wiredDiagram(t)
	var log changeLog
	d.Observe(&log)
	dr := newDriver(t, d)

	if !dr.down(100, 100) {
		t.Fatal("down on interior segment did not arm")
	}
	dr.move(100, 120)
	dr.up(100, 120)

	want := route.Default(layout.SideBottom, layout.SideTop)
	want[0] = route.Seg(layout.Pct(75))
	want[2] = route.Seg(layout.Pct(-25))
	if got := w.Path(); !got.Equal(want) {
		t.Errorf("Path() = %v, want %v", got, want)
	}
	if !w.Custom() {
		t.Error("Custom() = false after commit")
	}
	if got := w.Points()[1]; got != (layout.Point{X: 50, Y: 120}) {
		t.Errorf("first bend = %+v, want (50, 120)", got)
	}
	if c := log.last(); c.Kind != KindRearrange || c.Phase != PhaseCommit {
		t.Errorf("last change = %+v, want rearrange commit", c)
	}

	// Moving the end behind the start drops the edit.
	b, _ := d.Box("b")
	b.Rect = layout.PxRect(-100, 150, 100, 50)
	d.RefreshWires()
	if w.Custom() {
		t.Error("Custom() = true after span flipped")
	}
}

func TestRearrangeCancel(t *testing.T) {
	d, w := wiredDiagram(t)
	dr := newDriver(t, d)

	dr.down(100, 100)
	dr.move(100, 130)
	dr.cancel()

	if w.Custom() {
		t.Error("Custom() = true after cancelling the first edit")
	}
	if !w.Path().Equal(route.Default(layout.SideBottom, layout.SideTop)) {
		t.Errorf("Path() = %v, want default", w.Path())
	}
}

func TestStubSegmentIgnored(t *testing.T) {
	d, _ := wiredDiagram(t)
	dr := newDriver(t, d)
	if dr.down(50, 75) {
		t.Error("down on first segment armed")
	}
}

func TestStaleConsumer(t *testing.T) {
	d := newTestDiagram(t, 400, 200)
	mustBox(t, d, nil, "a", layout.PctRect(10, 10, 25, 50))
	var log changeLog
	d.Observe(&log)
	dr := newDriver(t, d)

	dr.down(140, 70)
	dr.move(200, 70)
	if err := d.RemoveBox("a"); err != nil {
		t.Fatal(err)
	}
	before := len(log.changes)
	dr.move(220, 70)
	dr.up(220, 70)

	if len(log.changes) != before {
		t.Errorf("%d changes after removal, want none", len(log.changes)-before)
	}
	if dr.s.Live() {
		t.Error("session still live after pointer up")
	}
}

func TestResizeRefreshesWires(t *testing.T) {
	d, w := wiredDiagram(t)
	dr := newDriver(t, d)

	// Drag box b's background 40px right.
	dr.down(280, 180)
	dr.move(320, 180)
	pts := w.Points()
	if got := pts[len(pts)-1]; got != (layout.Point{X: 290, Y: 150}) {
		t.Errorf("wire end = %+v, want (290, 150)", got)
	}
	dr.up(320, 180)
}

func TestRearrangeStaysOnCanvas(t *testing.T) {
	d, w := wiredDiagram(t)
	dr := newDriver(t, d)

	if !dr.down(100, 100) {
		t.Fatal("down on interior segment did not arm")
	}
	dr.move(100, 600)
	pts := w.Points()
	for _, p := range pts[1:3] {
		if p.Y != 300 {
			t.Errorf("bend = %+v, want y on the bottom edge (300)", p)
		}
	}
	dr.move(100, -600)
	if got := w.Points()[1]; got.Y != 60 {
		t.Errorf("bend = %+v, want y 60 at the first stub", got)
	}
	dr.up(100, -600)
	if last := w.Points()[len(w.Points())-1]; last != (layout.Point{X: 250, Y: 150}) {
		t.Errorf("last point = %+v, want the end port", last)
	}
}

// pairedDrag drags a box's right edge and its bottom port from one pointer
// down. Either consumer can be left out.
func pairedDrag(t *testing.T, resize, offset bool) (layout.Rect, layout.Length) {
	t.Helper()
	d := newTestDiagram(t, 400, 200)
	b := mustBox(t, d, nil, "b", layout.PxRect(0, 0, 200, 100))
	p := mustPort(t, d, mustBorder(t, d, b, "bot", layout.SideBottom), "p", layout.Pct(50))

	s := gesture.NewSession(gesture.BroadcastFunc(func(req *gesture.Request) {
		if resize {
			req.Register(&resizeConsumer{d: d, box: b, mode: layout.EdgeRight})
		}
		if offset {
			req.Register(&offsetConsumer{d: d, port: p})
		}
	}), gesture.WithLogger(quietLogger()))

	if !s.PointerDown(gesture.PointerEvent{PointerID: 1, Buttons: gesture.ButtonPrimary, X: 100, Y: 100}) {
		t.Fatal("PointerDown() did not arm")
	}
	for _, x := range []float64{120, 150, 180} {
		s.PointerMove(gesture.PointerEvent{PointerID: 1, Buttons: gesture.ButtonPrimary, X: x, Y: 130})
	}
	s.PointerUp(gesture.PointerEvent{PointerID: 1, X: 180, Y: 130})
	return b.Rect, p.Offset
}

func TestIndependentConsumers(t *testing.T) {
	rectBoth, offsetBoth := pairedDrag(t, true, true)
	rectAlone, _ := pairedDrag(t, true, false)
	_, offsetAlone := pairedDrag(t, false, true)

	if rectBoth != rectAlone {
		t.Errorf("Rect = %v with both consumers, want %v as alone", rectBoth, rectAlone)
	}
	if offsetBoth != offsetAlone {
		t.Errorf("Offset = %v with both consumers, want %v as alone", offsetBoth, offsetAlone)
	}
	if rectBoth.Width != layout.Pct(70) || offsetBoth != layout.Pct(90) {
		t.Errorf("Width, Offset = %v, %v, want 70%%, 90%%", rectBoth.Width, offsetBoth)
	}
}
