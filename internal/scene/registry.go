package scene

import (
	"github.com/l1jgo/ecscore/core/ecs"
	"gopkg.in/yaml.v3"
)

type addFunc func(w *ecs.World, e ecs.Entity, node *yaml.Node) error

// Registry maps scene component names to component types.
type Registry struct {
	kinds map[string]addFunc
}

func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]addFunc)}
}

// Register makes T spawnable under name. The YAML mapping is decoded into a
// zero T; an empty mapping adds the zero value.
func Register[T any](r *Registry, name string) {
	r.kinds[name] = func(w *ecs.World, e ecs.Entity, node *yaml.Node) error {
		var v T
		if node.Kind != 0 && node.Tag != "!!null" {
			if err := node.Decode(&v); err != nil {
				return err
			}
		}
		return ecs.Add(w, e, v)
	}
}

// Names returns the registered component names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	return names
}
