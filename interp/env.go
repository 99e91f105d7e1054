package interp

// Environment is the flat binding set a snippet evaluates in. The
// language has no nested scopes, so a single table suffices. An
// Environment is built fresh for every execution and is not safe for
// concurrent use.
type Environment struct {
	names map[string]Value
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{names: make(map[string]Value)}
}

// Get looks up a bound name.
func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.names[name]
	return v, ok
}

// Set binds name to v, replacing any previous binding.
func (e *Environment) Set(name string, v Value) {
	e.names[name] = v
}
