package tyson

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Parse-tree tags. Leaves and groups carry the tag path of the grammar
// rules that produced them.
const (
	TagRoot   = ">"
	TagNumber = "expr|number|regex"
	TagSymbol = "expr|symbol|regex"
	TagSExpr  = "expr|sexpr"
	TagQExpr  = "expr|qexpr"
	TagChar   = "char"
	TagRegex  = "regex"
)

// Node is a generic parse-tree node: a tag naming the grammar rule, the
// matched text for leaves, and ordered children for groups.
type Node struct {
	Tag      string
	Contents string
	Children []*Node
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Print writes an indented dump of the tree.
func (n *Node) Print(w io.Writer) {
	n.print(w, 0)
}

func (n *Node) print(w io.Writer, depth int) {
	indent := strings.Repeat("  ", depth)
	if len(n.Children) == 0 {
		fmt.Fprintf(w, "%s%s '%s'\n", indent, n.Tag, n.Contents)
		return
	}
	fmt.Fprintf(w, "%s%s\n", indent, n.Tag)
	for _, c := range n.Children {
		c.print(w, depth+1)
	}
}

// ParseError reports a syntax error at a line and column of the input.
type ParseError struct {
	Filename   string
	Line       int
	Col        int
	Msg        string
	Incomplete bool // input ended inside an open group
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: error: %s", e.Filename, e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err is a parse error caused by input that
// ended before every group was closed.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Incomplete
}

type parser struct {
	filename string
	input    []rune
	pos      int
}

// Parse parses input as a sequence of expressions and returns the root node.
func Parse(input string) (*Node, error) {
	return ParseFile("<stdin>", input)
}

// ParseFile is Parse with a filename used in error positions.
func ParseFile(filename, input string) (*Node, error) {
	p := &parser{filename: filename, input: []rune(input)}
	root := &Node{Tag: TagRoot}
	root.Children = append(root.Children, &Node{Tag: TagRegex})
	for {
		p.skipWhitespace()
		if p.pos >= len(p.input) {
			break
		}
		ch := p.input[p.pos]
		if ch == ')' || ch == '}' {
			return nil, p.errorf(false, "unexpected '%c'", ch)
		}
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, node)
	}
	root.Children = append(root.Children, &Node{Tag: TagRegex})
	return root, nil
}

func (p *parser) parseExpr() (*Node, error) {
	ch := p.input[p.pos]
	switch {
	case ch == '(':
		return p.parseGroup(TagSExpr, '(', ')')
	case ch == '{':
		return p.parseGroup(TagQExpr, '{', '}')
	default:
		return p.parseAtom()
	}
}

func (p *parser) parseGroup(tag string, open, close rune) (*Node, error) {
	p.pos++ // skip open
	group := &Node{Tag: tag}
	group.Children = append(group.Children, &Node{Tag: TagChar, Contents: string(open)})
	for {
		p.skipWhitespace()
		if p.pos >= len(p.input) {
			return nil, p.errorf(true, "expected '%c' at end of input", close)
		}
		ch := p.input[p.pos]
		if ch == close {
			p.pos++ // skip close
			group.Children = append(group.Children, &Node{Tag: TagChar, Contents: string(close)})
			return group, nil
		}
		if ch == ')' || ch == '}' {
			return nil, p.errorf(false, "expected '%c' at '%c'", close, ch)
		}
		child, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		group.Children = append(group.Children, child)
	}
}

// parseAtom tries the number rule before the symbol rule, each matching
// greedily, so "12ab" reads as the number 12 followed by the symbol ab.
func (p *parser) parseAtom() (*Node, error) {
	if n := p.matchNumber(); n > 0 {
		tok := string(p.input[p.pos : p.pos+n])
		p.pos += n
		return &Node{Tag: TagNumber, Contents: tok}, nil
	}
	start := p.pos
	for p.pos < len(p.input) && isSymbolRune(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, p.errorf(false, "expected number, symbol, '(' or '{' at '%c'", p.input[p.pos])
	}
	return &Node{Tag: TagSymbol, Contents: string(p.input[start:p.pos])}, nil
}

// matchNumber returns the length of a /-?[0-9]+/ match at the cursor, or 0.
func (p *parser) matchNumber() int {
	i := p.pos
	if i < len(p.input) && p.input[i] == '-' {
		i++
	}
	digits := i
	for i < len(p.input) && p.input[i] >= '0' && p.input[i] <= '9' {
		i++
	}
	if i == digits {
		return 0
	}
	return i - p.pos
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == ';' {
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		if !unicode.IsSpace(ch) {
			break
		}
		p.pos++
	}
}

func (p *parser) errorf(incomplete bool, format string, args ...any) *ParseError {
	line, col := 1, 1
	for _, ch := range p.input[:p.pos] {
		if ch == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &ParseError{
		Filename:   p.filename,
		Line:       line,
		Col:        col,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: incomplete,
	}
}

func isSymbolRune(ch rune) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	}
	return strings.ContainsRune("_+-*/\\=<>!&", ch)
}
