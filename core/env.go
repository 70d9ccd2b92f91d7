package tyson

// Env is the single global table of bindings. Every binding owns its value;
// lookups hand out copies so callers never alias a bound value.
type Env struct {
	syms []string
	vals []*Value
}

// NewEnv returns an environment seeded with one Function per builtin.
func NewEnv() *Env {
	env := &Env{}
	for _, f := range Builtins() {
		env.Put(f.Name, FunVal(f))
	}
	return env
}

// Get returns a copy of the value bound to name, or an UnboundSymbol error.
func (env *Env) Get(name string) *Value {
	for i, s := range env.syms {
		if s == name {
			return env.vals[i].Copy()
		}
	}
	return errUnbound(name)
}

// Put binds name to a copy of v, releasing any value previously bound.
// The caller keeps ownership of v.
func (env *Env) Put(name string, v *Value) {
	for i, s := range env.syms {
		if s == name {
			env.vals[i].Release()
			env.vals[i] = v.Copy()
			return
		}
	}
	env.syms = append(env.syms, name)
	env.vals = append(env.vals, v.Copy())
}

// Names returns the bound names in binding order.
func (env *Env) Names() []string {
	names := make([]string, len(env.syms))
	copy(names, env.syms)
	return names
}

func (env *Env) Len() int { return len(env.syms) }

// Release drops every binding.
func (env *Env) Release() {
	for _, v := range env.vals {
		v.Release()
	}
	env.syms = nil
	env.vals = nil
}
