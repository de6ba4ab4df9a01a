package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/boxwire/pkg/errors"
)

var (
	lengthLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)(?:px|%)?`},
		{Name: "Ident", Pattern: `[A-Za-z]+`},
		{Name: "Symbol", Pattern: `[(),+\-]`},
	})

	exprParser = participle.MustBuild[exprNode](
		participle.Lexer(lengthLexer),
		participle.Elide("Whitespace"),
	)

	listParser = participle.MustBuild[listNode](
		participle.Lexer(lengthLexer),
		participle.Elide("Whitespace"),
	)
)

type listNode struct {
	Items []*exprNode `parser:"@@*"`
}

type exprNode struct {
	Clamp *clampNode `parser:"  @@"`
	Calc  *calcNode  `parser:"| 'calc' '(' @@ ')'"`
	Sum   *sumNode   `parser:"| @@"`
}

type clampNode struct {
	Fn    string     `parser:"@('max' | 'min') '('"`
	Bound string     `parser:"@Number ','"`
	Inner *innerNode `parser:"@@ ')'"`
}

type innerNode struct {
	Calc *calcNode `parser:"  'calc' '(' @@ ')'"`
	Sum  *sumNode  `parser:"| @@"`
}

type sumNode struct {
	First string      `parser:"@Number"`
	Rest  []*termNode `parser:"@@*"`
}

type termNode struct {
	Op    string `parser:"@('+' | '-')"`
	Value string `parser:"@Number"`
}

// calcNode is the body of calc(). Unlike a bare sum it is closed by the
// parenthesis, so a signed number such as "-25%" after a term is read as
// the operator and its operand.
type calcNode struct {
	First string      `parser:"@Number"`
	Rest  []*calcTerm `parser:"@@*"`
}

type calcTerm struct {
	Op    string `parser:"@('+' | '-')?"`
	Value string `parser:"@Number"`
}

// ParseLength parses a length expression such as "10px", "25%", "-4" or
// "calc(10px + 25%)". Inside calc() the operator may also be attached to
// the operand, as in "calc(10px -25%)". Unitless numbers are pixels.
// Clamp wrappers are rejected; use [ParseExpr] for those.
func ParseLength(s string) (Length, error) {
	l, c, err := ParseExpr(s)
	if err != nil {
		return Length{}, err
	}
	if c != ClampNone {
		return Length{}, errors.New(errors.ErrCodeInvalidLength, "clamp not allowed in length %q", s)
	}
	return l, nil
}

// MustParseLength is like [ParseLength] but panics on error.
// Intended for literals in tests and static tables.
func MustParseLength(s string) Length {
	l, err := ParseLength(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Expr is a length optionally wrapped in a sign clamp.
type Expr struct {
	Length Length
	Clamp  Clamp
}

func (e Expr) String() string { return e.Clamp.Wrap(e.Length.String()) }

// ParseExpr parses a length expression optionally wrapped in a single
// max(0px, ...) or min(0px, ...) clamp.
func ParseExpr(s string) (Length, Clamp, error) {
	node, err := exprParser.ParseString("", s)
	if err != nil {
		return Length{}, ClampNone, errors.Wrap(errors.ErrCodeInvalidLength, err, "parse length %q", s)
	}
	e, err := node.eval()
	if err != nil {
		return Length{}, ClampNone, errors.Wrap(errors.ErrCodeInvalidLength, err, "parse length %q", s)
	}
	return e.Length, e.Clamp, nil
}

// ParseExprList parses a whitespace separated list of expressions such as
// "max(0px, 50%) 50% min(0px, 100%)". A sign directly attached to a number
// starts a new expression; "a - b" with spaces is a single difference.
func ParseExprList(s string) ([]Expr, error) {
	node, err := listParser.ParseString("", s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLength, err, "parse length list %q", s)
	}
	out := make([]Expr, 0, len(node.Items))
	for _, item := range node.Items {
		e, err := item.eval()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLength, err, "parse length list %q", s)
		}
		out = append(out, e)
	}
	return out, nil
}

func (n *exprNode) eval() (Expr, error) {
	switch {
	case n.Clamp != nil:
		bound, err := parseNumber(n.Clamp.Bound)
		if err != nil {
			return Expr{}, err
		}
		if !bound.IsZero() {
			return Expr{}, fmt.Errorf("clamp bound must be zero, got %s", bound)
		}
		var l Length
		if n.Clamp.Inner.Calc != nil {
			l, err = n.Clamp.Inner.Calc.eval()
		} else {
			l, err = n.Clamp.Inner.Sum.eval()
		}
		if err != nil {
			return Expr{}, err
		}
		c := ClampAtLeastZero
		if n.Clamp.Fn == "min" {
			c = ClampAtMostZero
		}
		return Expr{Length: l, Clamp: c}, nil

	case n.Calc != nil:
		l, err := n.Calc.eval()
		return Expr{Length: l}, err

	default:
		l, err := n.Sum.eval()
		return Expr{Length: l}, err
	}
}

func (n *sumNode) eval() (Length, error) {
	total, err := parseNumber(n.First)
	if err != nil {
		return Length{}, err
	}
	for _, t := range n.Rest {
		v, err := parseNumber(t.Value)
		if err != nil {
			return Length{}, err
		}
		if t.Op == "-" {
			v = v.Neg()
		}
		total = total.Add(v)
	}
	return total, nil
}

func (n *calcNode) eval() (Length, error) {
	total, err := parseNumber(n.First)
	if err != nil {
		return Length{}, err
	}
	for _, t := range n.Rest {
		if t.Op == "" && !strings.HasPrefix(t.Value, "-") && !strings.HasPrefix(t.Value, "+") {
			return Length{}, fmt.Errorf("missing operator before %s", t.Value)
		}
		v, err := parseNumber(t.Value)
		if err != nil {
			return Length{}, err
		}
		if t.Op == "-" {
			v = v.Neg()
		}
		total = total.Add(v)
	}
	return total, nil
}

// parseNumber reads a single signed number token with an optional unit.
func parseNumber(tok string) (Length, error) {
	switch {
	case strings.HasSuffix(tok, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
		if err != nil {
			return Length{}, err
		}
		return Pct(v), nil
	default:
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "px"), 64)
		if err != nil {
			return Length{}, err
		}
		return Px(v), nil
	}
}
