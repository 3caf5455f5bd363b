package scene

import (
	"fmt"
	"os"
	"sort"

	"github.com/l1jgo/ecscore/core/ecs"
	"gopkg.in/yaml.v3"
)

// Entry spawns Count entities carrying the listed components.
type Entry struct {
	Name       string
	Count      int
	Components map[string]yaml.Node
}

// entryFile is an entry as written. A missing count means one entity; an
// explicit zero disables the entry.
type entryFile struct {
	Name       string               `yaml:"name"`
	Count      *int                 `yaml:"count"`
	Components map[string]yaml.Node `yaml:"components"`
}

type sceneFile struct {
	Entities []entryFile `yaml:"entities"`
}

// Scene is a parsed scene file.
type Scene struct {
	Entries []Entry
}

// Count returns the number of entities the scene spawns.
func (s *Scene) Count() int {
	n := 0
	for _, e := range s.Entries {
		n += e.Count
	}
	return n
}

// Load parses a scene file.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Scene, error) {
	var f sceneFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	entries := make([]Entry, len(f.Entities))
	for i, ef := range f.Entities {
		count := 1
		if ef.Count != nil {
			count = *ef.Count
		}
		if count < 0 {
			return nil, fmt.Errorf("scene entry %d: negative count %d", i, count)
		}
		entries[i] = Entry{Name: ef.Name, Count: count, Components: ef.Components}
	}
	return &Scene{Entries: entries}, nil
}

// Spawn creates every entity of the scene in w. On error the entities
// created so far are destroyed again.
func (s *Scene) Spawn(w *ecs.World, r *Registry) ([]ecs.Entity, error) {
	spawned := make([]ecs.Entity, 0, s.Count())
	fail := func(err error) ([]ecs.Entity, error) {
		for _, e := range spawned {
			w.DestroyEntity(e)
		}
		return nil, err
	}
	for i, entry := range s.Entries {
		names := make([]string, 0, len(entry.Components))
		for name := range entry.Components {
			if _, ok := r.kinds[name]; !ok {
				return fail(fmt.Errorf("scene entry %d (%s): unknown component %q", i, entry.Name, name))
			}
			names = append(names, name)
		}
		sort.Strings(names)
		for n := 0; n < entry.Count; n++ {
			e := w.CreateEntity()
			spawned = append(spawned, e)
			for _, name := range names {
				node := entry.Components[name]
				if err := r.kinds[name](w, e, &node); err != nil {
					return fail(fmt.Errorf("scene entry %d (%s) component %s: %w", i, entry.Name, name, err))
				}
			}
		}
	}
	return spawned, nil
}
