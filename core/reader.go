package tyson

import (
	"strconv"
	"strings"
)

// Read converts a parse tree into a value tree. The root and every
// S-expression group become S-expressions, Q-expression groups become
// Q-expressions; punctuation and anchor leaves are skipped.
func Read(n *Node) *Value {
	if strings.Contains(n.Tag, "number") {
		return readNumber(n)
	}
	if strings.Contains(n.Tag, "symbol") {
		return SymVal(n.Contents)
	}

	var x *Value
	switch {
	case n.Tag == TagRoot, strings.Contains(n.Tag, "sexpr"):
		x = SExprVal()
	case strings.Contains(n.Tag, "qexpr"):
		x = QExprVal()
	default:
		x = SExprVal()
	}

	for _, c := range n.Children {
		switch c.Contents {
		case "(", ")", "{", "}":
			continue
		}
		if c.Tag == TagRegex {
			continue
		}
		x.Add(Read(c))
	}
	return x
}

func readNumber(n *Node) *Value {
	num, err := strconv.ParseInt(n.Contents, 10, 64)
	if err != nil {
		return errInvalidNumber()
	}
	return NumVal(num)
}
