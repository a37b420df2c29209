package object

import "sort"

// Environment maps names to values. Environments are shared by pointer:
// a closure keeps its defining environment alive and sees later writes to it.
type Environment struct {
	store map[string]Object
	outer *Environment
}

func NewEnvironment() *Environment {
	s := make(map[string]Object)
	return &Environment{store: s, outer: nil}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get looks name up here, then in each enclosing environment.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Define binds name in this environment, shadowing outer bindings.
func (e *Environment) Define(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Assign rebinds name in the nearest environment that already defines it.
// An unbound name is defined locally.
func (e *Environment) Assign(name string, val Object) Object {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = val
			return val
		}
	}

	return e.Define(name, val)
}

func (e *Environment) Outer() *Environment {
	return e.outer
}

// Names returns the locally bound names, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
