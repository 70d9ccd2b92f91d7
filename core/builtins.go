package tyson

// builtinTable is the fixed set of native operations, in the order they
// are bound into a new environment.
var builtinTable = []*Function{
	{Name: "+", Call: builtinAdd},
	{Name: "-", Call: builtinSub},
	{Name: "*", Call: builtinMul},
	{Name: "/", Call: builtinDiv},
	{Name: "list", Call: builtinList},
	{Name: "head", Call: builtinHead},
	{Name: "tail", Call: builtinTail},
	{Name: "join", Call: builtinJoin},
	{Name: "eval", Call: builtinEval},
	{Name: "def", Call: builtinDef},
}

// Builtins returns the builtin descriptors in canonical order.
func Builtins() []*Function {
	fns := make([]*Function, len(builtinTable))
	copy(fns, builtinTable)
	return fns
}

// LookupBuiltin returns the builtin registered under name.
func LookupBuiltin(name string) (*Function, bool) {
	for _, f := range builtinTable {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// --- Arithmetic ---

func builtinAdd(e *Evaluator, a *Value) *Value { return builtinOp(a, "+") }
func builtinSub(e *Evaluator, a *Value) *Value { return builtinOp(a, "-") }
func builtinMul(e *Evaluator, a *Value) *Value { return builtinOp(a, "*") }
func builtinDiv(e *Evaluator, a *Value) *Value { return builtinOp(a, "/") }

// builtinOp folds the arguments left to right. A lone argument to "-" is
// negated.
func builtinOp(a *Value, op string) *Value {
	if a.Count() == 0 {
		a.Release()
		return errNoArgs(op)
	}
	for _, c := range a.Cells {
		if c.Kind != ValNum {
			a.Release()
			return errNonNumber(op)
		}
	}

	x := a.Pop(0)
	if op == "-" && a.Count() == 0 {
		x.Num = -x.Num
	}

	for a.Count() > 0 {
		y := a.Pop(0)
		switch op {
		case "+":
			x.Num += y.Num
		case "-":
			x.Num -= y.Num
		case "*":
			x.Num *= y.Num
		case "/":
			if y.Num == 0 {
				x.Release()
				y.Release()
				a.Release()
				return errDivisionByZero()
			}
			x.Num /= y.Num
		}
		y.Release()
	}
	a.Release()
	return x
}

// --- Lists ---

// builtinList turns the argument list itself into a Q-expression.
func builtinList(e *Evaluator, a *Value) *Value {
	a.Kind = ValQExpr
	return a
}

// checkSingleQExpr validates that a holds exactly one non-empty
// Q-expression. On failure it releases a and returns the error.
func checkSingleQExpr(fn string, a *Value, nonEmpty bool) *Value {
	if a.Count() != 1 {
		err := errArity(fn, 1, a.Count())
		a.Release()
		return err
	}
	if a.Cells[0].Kind != ValQExpr {
		err := errIncorrectType(fn, ValQExpr, a.Cells[0])
		a.Release()
		return err
	}
	if nonEmpty && a.Cells[0].Count() == 0 {
		a.Release()
		return errEmptyList(fn)
	}
	return nil
}

func builtinHead(e *Evaluator, a *Value) *Value {
	if err := checkSingleQExpr("head", a, true); err != nil {
		return err
	}
	v := a.Take(0)
	for v.Count() > 1 {
		v.Pop(1).Release()
	}
	return v
}

func builtinTail(e *Evaluator, a *Value) *Value {
	if err := checkSingleQExpr("tail", a, true); err != nil {
		return err
	}
	v := a.Take(0)
	v.Pop(0).Release()
	return v
}

func builtinJoin(e *Evaluator, a *Value) *Value {
	for _, c := range a.Cells {
		if c.Kind != ValQExpr {
			err := errIncorrectType("join", ValQExpr, c)
			a.Release()
			return err
		}
	}
	if a.Count() == 0 {
		a.Kind = ValQExpr
		return a
	}

	x := a.Pop(0)
	for a.Count() > 0 {
		x.Join(a.Pop(0))
	}
	a.Release()
	return x
}

// builtinEval evaluates a Q-expression as if it were an S-expression.
func builtinEval(e *Evaluator, a *Value) *Value {
	if err := checkSingleQExpr("eval", a, false); err != nil {
		return err
	}
	x := a.Take(0)
	x.Kind = ValSExpr
	return e.Eval(x)
}

// --- Definition ---

// builtinDef binds each symbol of the leading Q-expression to the value in
// the matching position. Nothing is bound unless every check passes.
func builtinDef(e *Evaluator, a *Value) *Value {
	if a.Count() == 0 {
		a.Release()
		return errNoArgs("def")
	}
	syms := a.Cells[0]
	if syms.Kind != ValQExpr {
		err := errIncorrectType("def", ValQExpr, syms)
		a.Release()
		return err
	}
	for _, s := range syms.Cells {
		if s.Kind != ValSym {
			err := ErrVal(ErrType, "Function 'def' cannot define non-symbol, got "+s.KindName()+"!")
			a.Release()
			return err
		}
	}
	if syms.Count() != a.Count()-1 {
		err := ErrVal(ErrArity, "Function 'def' cannot define incorrect number of values to symbols!")
		a.Release()
		return err
	}

	for i, s := range syms.Cells {
		e.Env.Put(s.Sym, a.Cells[i+1])
		e.recordDef(s.Sym)
	}
	a.Release()
	return SExprVal()
}
