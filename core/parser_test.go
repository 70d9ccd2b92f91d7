package tyson

import (
	"strings"
	"testing"
)

// exprs returns the root's children without the anchor leaves.
func exprs(t *testing.T, input string) []*Node {
	t.Helper()
	root, err := Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	if root.Tag != TagRoot {
		t.Fatalf("expected root tag %q, got %q", TagRoot, root.Tag)
	}
	n := len(root.Children)
	if n < 2 || root.Children[0].Tag != TagRegex || root.Children[n-1].Tag != TagRegex {
		t.Fatalf("root should be wrapped in regex anchors, got %d children", n)
	}
	return root.Children[1 : n-1]
}

func TestParseNumber(t *testing.T) {
	ns := exprs(t, "42")
	if len(ns) != 1 || ns[0].Tag != TagNumber || ns[0].Contents != "42" {
		t.Fatalf("expected number 42, got %+v", ns)
	}
}

func TestParseNegativeNumber(t *testing.T) {
	ns := exprs(t, "-7")
	if ns[0].Tag != TagNumber || ns[0].Contents != "-7" {
		t.Fatalf("expected number -7, got %+v", ns[0])
	}
}

func TestParseSymbols(t *testing.T) {
	for _, sym := range []string{"+", "-", "*", "/", "head", "x_1", "<=", "\\", "!&"} {
		ns := exprs(t, sym)
		if len(ns) != 1 || ns[0].Tag != TagSymbol || ns[0].Contents != sym {
			t.Fatalf("expected symbol %s, got %+v", sym, ns)
		}
	}
}

func TestParseNumberBeforeSymbol(t *testing.T) {
	ns := exprs(t, "12ab")
	if len(ns) != 2 || ns[0].Contents != "12" || ns[1].Tag != TagSymbol || ns[1].Contents != "ab" {
		t.Fatalf("expected 12 then ab, got %+v", ns)
	}
}

func TestParseSExpr(t *testing.T) {
	ns := exprs(t, "(+ 1 2)")
	g := ns[0]
	if g.Tag != TagSExpr {
		t.Fatalf("expected sexpr, got %s", g.Tag)
	}
	if len(g.Children) != 5 {
		t.Fatalf("expected 5 children including parens, got %d", len(g.Children))
	}
	if g.Children[0].Contents != "(" || g.Children[4].Contents != ")" {
		t.Fatalf("expected paren leaves, got %q %q", g.Children[0].Contents, g.Children[4].Contents)
	}
}

func TestParseQExpr(t *testing.T) {
	ns := exprs(t, "{1 {2}}")
	g := ns[0]
	if g.Tag != TagQExpr {
		t.Fatalf("expected qexpr, got %s", g.Tag)
	}
	if g.Children[2].Tag != TagQExpr {
		t.Fatalf("expected nested qexpr, got %s", g.Children[2].Tag)
	}
}

func TestParseComment(t *testing.T) {
	ns := exprs(t, "; leading\n(+ 1 2) ; trailing")
	if len(ns) != 1 || ns[0].Tag != TagSExpr {
		t.Fatalf("expected a single sexpr, got %+v", ns)
	}
}

func TestParseEmpty(t *testing.T) {
	if ns := exprs(t, "   "); len(ns) != 0 {
		t.Fatalf("expected no expressions, got %d", len(ns))
	}
}

func TestParseUnclosedIsIncomplete(t *testing.T) {
	for _, input := range []string{"(+ 1", "{1 (2", "(\n"} {
		_, err := Parse(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}
		if !IsIncomplete(err) {
			t.Fatalf("expected incomplete error for %q, got %v", input, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{")", "(1 2}", "(+ 1 #)", "}"} {
		_, err := Parse(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}
		if IsIncomplete(err) {
			t.Fatalf("error for %q should not be incomplete: %v", input, err)
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("(+ 1\n  #)")
	if err == nil {
		t.Fatal("expected error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Line != 2 || pe.Col != 3 {
		t.Fatalf("expected 2:3, got %d:%d", pe.Line, pe.Col)
	}
	if !strings.HasPrefix(err.Error(), "<stdin>:2:3: error:") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestNodeCount(t *testing.T) {
	root, err := Parse("(+ 1 2)")
	if err != nil {
		t.Fatal(err)
	}
	// root, 2 anchors, sexpr, 2 parens, 3 atoms
	if got := root.Count(); got != 9 {
		t.Fatalf("expected 9 nodes, got %d", got)
	}
}

func TestNodePrint(t *testing.T) {
	root, err := Parse("{x}")
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	root.Print(&sb)
	want := ">\n" +
		"  regex ''\n" +
		"  expr|qexpr\n" +
		"    char '{'\n" +
		"    expr|symbol|regex 'x'\n" +
		"    char '}'\n" +
		"  regex ''\n"
	if sb.String() != want {
		t.Fatalf("unexpected dump:\n%s", sb.String())
	}
}
