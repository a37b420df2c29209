package object

import "github.com/titivuk/simple-lang/ast"

// Equal compares two values structurally. Numbers compare by value across
// int and float. Closures are equal when parameters, body and captured
// environment are; an environment usually holds the closure that captured
// it, so environment pairs already under comparison are assumed equal.
func Equal(a, b Object) bool {
	return (&comparer{seen: map[[2]*Environment]bool{}}).objects(a, b)
}

type comparer struct {
	seen map[[2]*Environment]bool
}

func (c *comparer) objects(a, b Object) bool {
	if a == b {
		return true
	}

	switch a := a.(type) {
	case *Integer:
		switch b := b.(type) {
		case *Integer:
			return a.Value == b.Value
		case *Float:
			return float64(a.Value) == b.Value
		}
	case *Float:
		switch b := b.(type) {
		case *Integer:
			return a.Value == float64(b.Value)
		case *Float:
			return a.Value == b.Value
		}
	case *Boolean:
		b, ok := b.(*Boolean)
		return ok && a.Value == b.Value
	case *String:
		b, ok := b.(*String)
		return ok && a.Value == b.Value
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Builtin:
		b, ok := b.(*Builtin)
		return ok && a.Name == b.Name
	case *Closure:
		b, ok := b.(*Closure)
		return ok && a.Name == b.Name &&
			ast.EqualIdentifiers(a.Parameters, b.Parameters) &&
			ast.Equal(a.Body, b.Body) &&
			c.environments(a.Env, b.Env)
	}

	return false
}

func (c *comparer) environments(a, b *Environment) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	key := [2]*Environment{a, b}
	if c.seen[key] {
		return true
	}
	c.seen[key] = true

	if len(a.store) != len(b.store) {
		return false
	}
	for name, av := range a.store {
		bv, ok := b.store[name]
		if !ok || !c.objects(av, bv) {
			return false
		}
	}

	return c.environments(a.outer, b.outer)
}
