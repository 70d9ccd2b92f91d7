package tyson

import "fmt"

// ErrCode classifies an Error value.
type ErrCode int

const (
	ErrInvalidNumber ErrCode = iota + 1
	ErrUnboundSymbol
	ErrNotAFunction
	ErrType
	ErrArity
	ErrEmptyList
	ErrDivisionByZero
)

func (c ErrCode) String() string {
	switch c {
	case ErrInvalidNumber:
		return "InvalidNumber"
	case ErrUnboundSymbol:
		return "UnboundSymbol"
	case ErrNotAFunction:
		return "NotAFunction"
	case ErrType:
		return "TypeError"
	case ErrArity:
		return "ArityError"
	case ErrEmptyList:
		return "EmptyListError"
	case ErrDivisionByZero:
		return "DivisionByZero"
	default:
		return fmt.Sprintf("ErrCode(%d)", int(c))
	}
}

func errInvalidNumber() *Value {
	return ErrVal(ErrInvalidNumber, "invalid number")
}

func errUnbound(name string) *Value {
	return ErrVal(ErrUnboundSymbol, "unbound symbol: "+name)
}

func errNotAFunction(got *Value) *Value {
	return ErrVal(ErrNotAFunction, fmt.Sprintf("S-expression does not start with function, got %s!", got.KindName()))
}

func errNonNumber(fn string) *Value {
	return ErrVal(ErrType, fmt.Sprintf("Function '%s': cannot operate on non-number!", fn))
}

func errIncorrectType(fn string, want ValueKind, got *Value) *Value {
	return ErrVal(ErrType, fmt.Sprintf("Function '%s' passed incorrect type, expected %s, got %s!", fn, want, got.KindName()))
}

func errArity(fn string, want, got int) *Value {
	return ErrVal(ErrArity, fmt.Sprintf("Function '%s' passed incorrect number of arguments, expected %d, got %d!", fn, want, got))
}

func errNoArgs(fn string) *Value {
	return ErrVal(ErrArity, fmt.Sprintf("Function '%s' passed no arguments!", fn))
}

func errEmptyList(fn string) *Value {
	return ErrVal(ErrEmptyList, fmt.Sprintf("Function '%s' passed {}!", fn))
}

func errDivisionByZero() *Value {
	return ErrVal(ErrDivisionByZero, "Division by zero!")
}
