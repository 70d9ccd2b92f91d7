package tyson

// Trace captures the boundary points of a single top-level evaluation:
// the input text, the rendered result, and every name bound by def along
// the way. Parse failures leave Result empty and set Error.
type Trace struct {
	Input     string   // source text as entered
	Result    string   // canonical rendering of the result value
	Kind      string   // kind name of the result value
	Error     string   // non-empty on parse failure or Error result
	Code      string   // ErrCode name for Error results
	Defs      []string // names bound by def, in binding order
	Timestamp string   // ISO 8601
}

// Failed reports whether the evaluation produced no usable value.
func (t *Trace) Failed() bool {
	return t.Error != ""
}

// ToMap converts a Trace to a plain map for JSON responses.
func (t *Trace) ToMap() map[string]any {
	defs := make([]any, len(t.Defs))
	for i, d := range t.Defs {
		defs[i] = d
	}
	m := map[string]any{
		"input":     t.Input,
		"result":    t.Result,
		"kind":      t.Kind,
		"defs":      defs,
		"timestamp": t.Timestamp,
	}
	if t.Error != "" {
		m["error"] = t.Error
	} else {
		m["error"] = nil
	}
	if t.Code != "" {
		m["code"] = t.Code
	}
	return m
}

func (e *Evaluator) recordDef(name string) {
	if e.activeTrace != nil {
		e.activeTrace.Defs = append(e.activeTrace.Defs, name)
	}
}
