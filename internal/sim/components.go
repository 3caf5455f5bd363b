package sim

// Demo components. Field tags name the keys used by scene files.

type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Velocity struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Health struct {
	Amount int `yaml:"amount"`
	Max    int `yaml:"max"`
}

// Lifetime counts down once per tick; at zero the entity expires.
type Lifetime struct {
	Ticks int `yaml:"ticks"`
}

// Dead tags an entity for the reaper.
type Dead struct{}
