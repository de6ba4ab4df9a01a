package route

import "github.com/matzehuels/boxwire/pkg/layout"

type sidePair struct {
	from, to layout.Side
}

// templates maps every ordered pair of real sides to its default path.
// Pairs that mirror each other across the diagonal share a template.
var templates = buildTemplates(map[string][]sidePair{
	// │ ┌─┐  ───┐
	// └─┘ │   ┌─┘
	//         └───
	"max(0px, 50%) 50% min(0px, 100%) 50% max(0px, 50%)": {
		{layout.SideBottom, layout.SideTop},
		{layout.SideRight, layout.SideLeft},
	},
	"min(0px, 50%) 50% max(0px, 100%) 50% min(0px, 50%)": {
		{layout.SideTop, layout.SideBottom},
		{layout.SideLeft, layout.SideRight},
	},

	// │ │    ───┐
	// └─┘    ───┘
	"max(0px, 100%) 100% min(0px, 100%)": {
		{layout.SideBottom, layout.SideBottom},
		{layout.SideRight, layout.SideRight},
	},
	"min(0px, 100%) 100% max(0px, 100%)": {
		{layout.SideTop, layout.SideTop},
		{layout.SideLeft, layout.SideLeft},
	},

	//    │        ┌──┐
	//  ┌─┘     ───┘  │
	//  └─────        │
	"max(0px, 50%) min(0px, 100%) max(0px, 50%) max(0px, 50%) min(0px, 100%) max(0px, 50%)": {
		{layout.SideBottom, layout.SideLeft},
		{layout.SideRight, layout.SideTop},
	},
	"min(0px, 50%) max(0px, 100%) min(0px, 50%) min(0px, 50%) max(0px, 100%) min(0px, 50%)": {
		{layout.SideTop, layout.SideRight},
		{layout.SideLeft, layout.SideBottom},
	},

	//    │
	//    └─┐
	//  ────┘
	"max(0px, 50%) max(0px, 100%) max(0px, 50%) min(0px, 50%) min(0px, 100%) min(0px, 50%)": {
		{layout.SideBottom, layout.SideRight},
		{layout.SideRight, layout.SideBottom},
	},

	//  ┌──┐
	//  │  └───
	//  │
	"min(0px, 50%) min(0px, 100%) min(0px, 50%) max(0px, 50%) max(0px, 100%) max(0px, 50%)": {
		{layout.SideTop, layout.SideLeft},
		{layout.SideLeft, layout.SideTop},
	},
})

func buildTemplates(src map[string][]sidePair) map[sidePair]Path {
	out := make(map[sidePair]Path, 16)
	for text, pairs := range src {
		p := MustParsePath(text)
		for _, pair := range pairs {
			out[pair] = p
		}
	}
	return out
}

// Default returns the template path for a wire from a port on side from to
// a port on side to. Pairs involving [layout.SideNone] have no template and
// yield an empty path, which renders as a straight line.
func Default(from, to layout.Side) Path {
	return templates[sidePair{from, to}].Clone()
}

// Fits reports whether p has as many segments as the default template for
// the pair of sides. A stored path of any other length would not end on the
// second port.
func Fits(p Path, from, to layout.Side) bool {
	return len(p) == len(templates[sidePair{from, to}])
}
