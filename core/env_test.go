package tyson

import "testing"

func TestEnvSeededWithBuiltins(t *testing.T) {
	env := NewEnv()
	want := []string{"+", "-", "*", "/", "list", "head", "tail", "join", "eval", "def"}
	names := env.Names()
	if len(names) != len(want) {
		t.Fatalf("expected %d bindings, got %d", len(want), len(names))
	}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("binding %d: expected %s, got %s", i, n, names[i])
		}
		v := env.Get(n)
		if v.Kind != ValFun || v.Fun.Name != n {
			t.Fatalf("%s should be bound to its builtin, got %s", n, v.String())
		}
	}
}

func TestEnvGetMissing(t *testing.T) {
	env := NewEnv()
	v := env.Get("missing")
	if v.Kind != ValErr || v.Code != ErrUnboundSymbol {
		t.Fatalf("expected UnboundSymbol, got %s", v.String())
	}
	if v.Err != "unbound symbol: missing" {
		t.Fatalf("unexpected message: %s", v.Err)
	}
}

func TestEnvGetReturnsCopy(t *testing.T) {
	env := NewEnv()
	env.Put("xs", QExprVal(NumVal(1), NumVal(2)))
	a := env.Get("xs")
	a.Add(NumVal(3))
	a.Cells[0].Num = 100
	b := env.Get("xs")
	if b.String() != "{1 2}" {
		t.Fatalf("binding changed through an earlier lookup: %s", b.String())
	}
}

func TestEnvPutCopiesValue(t *testing.T) {
	env := NewEnv()
	v := QExprVal(NumVal(1))
	env.Put("v", v)
	v.Add(NumVal(2))
	v.Release()
	if got := env.Get("v").String(); got != "{1}" {
		t.Fatalf("binding should not alias the caller's value, got %s", got)
	}
}

func TestEnvPutLastWriteWins(t *testing.T) {
	env := NewEnv()
	before := env.Len()
	env.Put("x", NumVal(1))
	env.Put("x", NumVal(2))
	env.Put("x", QExprVal(SymVal("three")))
	if env.Len() != before+1 {
		t.Fatalf("expected one new binding, got %d", env.Len()-before)
	}
	if got := env.Get("x").String(); got != "{three}" {
		t.Fatalf("expected {three}, got %s", got)
	}
}

func TestEnvRelease(t *testing.T) {
	env := NewEnv()
	env.Release()
	if env.Len() != 0 {
		t.Fatalf("expected empty env, got %d bindings", env.Len())
	}
}
