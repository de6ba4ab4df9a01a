package layout_test

import (
	"fmt"

	"github.com/matzehuels/boxwire/pkg/layout"
)

func ExampleResizer() {
	parent := layout.Size{Width: 400, Height: 300}
	rect := layout.PctRect(10, 10, 25, 20)

	// Drag the right edge 60px outward.
	r := layout.NewResizer(layout.EdgeRight, parent, rect, rect.Resolve(parent))
	fmt.Println(r.At(60, 0).Width)
	// Output: 40%
}

func ExampleParseExpr() {
	l, c, _ := layout.ParseExpr("max(0px, calc(10px + 25%))")
	fmt.Println(l, c, l.Resolve(200))
	// Output: calc(10px + 25%) max 60
}

func ExampleSorter() {
	borders := []string{"frame", "inputs", "outputs"}
	s := layout.NewSorter(borders, 2, 8)
	fmt.Println(s.At(-8))
	// Output: [frame outputs inputs]
}
