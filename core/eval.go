package tyson

import "time"

// Evaluator reduces value trees against a global Env.
type Evaluator struct {
	Env         *Env
	activeTrace *Trace // set by Run; def records bound names here
}

// NewEvaluator returns an evaluator over a freshly seeded environment.
func NewEvaluator() *Evaluator {
	return &Evaluator{Env: NewEnv()}
}

// Eval consumes v and returns its fully reduced value. Symbols resolve
// through the environment, S-expressions apply their head, and every other
// kind (including Q-expressions) evaluates to itself.
func (e *Evaluator) Eval(v *Value) *Value {
	switch v.Kind {
	case ValSym:
		x := e.Env.Get(v.Sym)
		v.Release()
		return x
	case ValSExpr:
		return e.evalSExpr(v)
	default:
		return v
	}
}

func (e *Evaluator) evalSExpr(v *Value) *Value {
	for i, c := range v.Cells {
		v.Cells[i] = e.Eval(c)
	}

	for i, c := range v.Cells {
		if c.Kind == ValErr {
			return v.Take(i)
		}
	}

	if v.Count() == 0 {
		return v
	}
	if v.Count() == 1 {
		return v.Take(0)
	}

	f := v.Pop(0)
	if f.Kind != ValFun {
		err := errNotAFunction(f)
		f.Release()
		v.Release()
		return err
	}

	result := f.Fun.Call(e, v)
	f.Release()
	return result
}

// EvalString parses, reads and evaluates input as one top-level expression.
func (e *Evaluator) EvalString(input string) (*Value, error) {
	tree, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return e.Eval(Read(tree)), nil
}

// Run evaluates one top-level input and returns its trace.
func (e *Evaluator) Run(input string) Trace {
	trace := Trace{
		Input:     input,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	e.activeTrace = &trace
	val, err := e.EvalString(input)
	e.activeTrace = nil

	if err != nil {
		trace.Error = err.Error()
		return trace
	}
	trace.Result = val.String()
	trace.Kind = val.KindName()
	if val.Kind == ValErr {
		trace.Error = val.Err
		trace.Code = val.Code.String()
	}
	val.Release()
	return trace
}
