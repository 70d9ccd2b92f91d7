package tyson

import (
	"fmt"
	"strconv"
	"strings"
)

type ValueKind int

const (
	ValErr ValueKind = iota
	ValNum
	ValSym
	ValFun
	ValSExpr
	ValQExpr
)

// Builtin is a native operation. It owns args (an S-expression of evaluated
// values) and must return exactly one result.
type Builtin func(e *Evaluator, args *Value) *Value

// Function describes one entry of the fixed builtin table. Values hold a
// pointer to it, so copying a Function copies only its identity.
type Function struct {
	Name string
	Call Builtin
}

// Value is a node of the value tree. Compound values own their Cells
// exclusively; a child lives in exactly one parent at a time.
type Value struct {
	Kind  ValueKind
	Num   int64
	Err   string
	Code  ErrCode
	Sym   string
	Fun   *Function
	Cells []*Value
}

func NumVal(n int64) *Value { return &Value{Kind: ValNum, Num: n} }
func SymVal(s string) *Value { return &Value{Kind: ValSym, Sym: s} }
func FunVal(f *Function) *Value { return &Value{Kind: ValFun, Fun: f} }
func SExprVal(cells ...*Value) *Value { return &Value{Kind: ValSExpr, Cells: cells} }
func QExprVal(cells ...*Value) *Value { return &Value{Kind: ValQExpr, Cells: cells} }

func ErrVal(code ErrCode, msg string) *Value {
	return &Value{Kind: ValErr, Code: code, Err: msg}
}

func (v *Value) Count() int { return len(v.Cells) }

// Add moves x into v as its last child and returns v.
func (v *Value) Add(x *Value) *Value {
	v.Cells = append(v.Cells, x)
	return v
}

// Pop removes and returns the child at i, shifting the rest left.
func (v *Value) Pop(i int) *Value {
	x := v.Cells[i]
	copy(v.Cells[i:], v.Cells[i+1:])
	v.Cells[len(v.Cells)-1] = nil
	v.Cells = v.Cells[:len(v.Cells)-1]
	return x
}

// Take pops the child at i and releases v along with its remaining children.
func (v *Value) Take(i int) *Value {
	x := v.Pop(i)
	v.Release()
	return x
}

// Join moves every child of y onto the end of v, then releases y.
func (v *Value) Join(y *Value) *Value {
	for y.Count() > 0 {
		v.Add(y.Pop(0))
	}
	y.Release()
	return v
}

// Copy returns an independently owned deep copy of v.
func (v *Value) Copy() *Value {
	x := &Value{Kind: v.Kind}
	switch v.Kind {
	case ValNum:
		x.Num = v.Num
	case ValErr:
		x.Err = v.Err
		x.Code = v.Code
	case ValSym:
		x.Sym = v.Sym
	case ValFun:
		x.Fun = v.Fun
	case ValSExpr, ValQExpr:
		if len(v.Cells) > 0 {
			x.Cells = make([]*Value, len(v.Cells))
			for i, c := range v.Cells {
				x.Cells[i] = c.Copy()
			}
		}
	}
	return x
}

// Release drops everything v owns. Children are released before the
// container is emptied.
func (v *Value) Release() {
	if v == nil {
		return
	}
	for i, c := range v.Cells {
		c.Release()
		v.Cells[i] = nil
	}
	v.Cells = nil
	v.Fun = nil
	v.Err = ""
	v.Sym = ""
}

func (v *Value) String() string {
	switch v.Kind {
	case ValNum:
		return strconv.FormatInt(v.Num, 10)
	case ValErr:
		return "Error: " + v.Err
	case ValSym:
		return v.Sym
	case ValFun:
		return "<function>"
	case ValSExpr:
		return v.exprString('(', ')')
	case ValQExpr:
		return v.exprString('{', '}')
	default:
		return fmt.Sprintf("<unknown:%d>", v.Kind)
	}
}

func (v *Value) exprString(open, close byte) string {
	parts := make([]string, len(v.Cells))
	for i, c := range v.Cells {
		parts[i] = c.String()
	}
	return string(open) + strings.Join(parts, " ") + string(close)
}

func (k ValueKind) String() string {
	switch k {
	case ValErr:
		return "Error"
	case ValNum:
		return "Number"
	case ValSym:
		return "Symbol"
	case ValFun:
		return "Function"
	case ValSExpr:
		return "S-Expression"
	case ValQExpr:
		return "Q-Expression"
	default:
		return "Unknown"
	}
}

func (v *Value) KindName() string { return v.Kind.String() }

// ValuesEqual compares two Values for structural equality.
func ValuesEqual(a, b *Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValNum:
		return a.Num == b.Num
	case ValErr:
		return a.Err == b.Err
	case ValSym:
		return a.Sym == b.Sym
	case ValFun:
		return a.Fun.Name == b.Fun.Name
	case ValSExpr, ValQExpr:
		if len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !ValuesEqual(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		return true
	}
	return false
}
