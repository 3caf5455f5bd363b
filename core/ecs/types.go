package ecs

import "reflect"

// ComponentType identifies a component type in queries and stats.
type ComponentType struct {
	t reflect.Type
}

// TypeOf returns the ComponentType token for T.
func TypeOf[T any]() ComponentType {
	return ComponentType{t: reflect.TypeFor[T]()}
}

func (c ComponentType) String() string {
	if c.t == nil {
		return "<nil>"
	}
	return c.t.String()
}

// IsZero reports whether c was never initialised by TypeOf.
func (c ComponentType) IsZero() bool { return c.t == nil }
