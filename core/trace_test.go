package tyson

import (
	"testing"
)

func TestTraceToMap(t *testing.T) {
	tr := &Trace{
		Input:     "(def {x} 1)",
		Result:    "()",
		Kind:      "S-Expression",
		Defs:      []string{"x"},
		Timestamp: "2026-02-27T20:00:00Z",
	}

	m := tr.ToMap()
	if m["input"] != "(def {x} 1)" {
		t.Fatalf("input mismatch: %v", m["input"])
	}
	if m["result"] != "()" {
		t.Fatalf("result mismatch: %v", m["result"])
	}
	if m["timestamp"] != "2026-02-27T20:00:00Z" {
		t.Fatalf("timestamp mismatch: %v", m["timestamp"])
	}
	if m["error"] != nil {
		t.Fatalf("error should be nil, got %v", m["error"])
	}
	defs, ok := m["defs"].([]any)
	if !ok || len(defs) != 1 || defs[0] != "x" {
		t.Fatalf("defs mismatch: %v", m["defs"])
	}
	if _, exists := m["code"]; exists {
		t.Fatal("code should be absent for successful traces")
	}
}

func TestTraceToMapWithError(t *testing.T) {
	tr := &Trace{
		Input:  "(head {})",
		Result: "Error: Function 'head' passed {}!",
		Kind:   "Error",
		Error:  "Function 'head' passed {}!",
		Code:   "EmptyListError",
	}
	if !tr.Failed() {
		t.Fatal("expected failed trace")
	}
	m := tr.ToMap()
	if m["error"] != "Function 'head' passed {}!" {
		t.Fatalf("error mismatch: %v", m["error"])
	}
	if m["code"] != "EmptyListError" {
		t.Fatalf("code mismatch: %v", m["code"])
	}
}

func TestTraceDefsOnlyDuringRun(t *testing.T) {
	ev := NewEvaluator()
	// Evaluations outside Run have no active trace and must not panic.
	if _, err := ev.EvalString("(def {x} 1)"); err != nil {
		t.Fatal(err)
	}
	tr := ev.Run("(def {y z} x 2)")
	if len(tr.Defs) != 2 || tr.Defs[0] != "y" || tr.Defs[1] != "z" {
		t.Fatalf("expected defs [y z], got %v", tr.Defs)
	}
	if ev.activeTrace != nil {
		t.Fatal("active trace should be cleared after Run")
	}
}
