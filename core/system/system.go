package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: deliver last tick's events
	PhaseUpdate                  // 1: behaviour
	PhasePostUpdate              // 2: derived state, reporting
	PhaseCleanup                 // 3: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post_update"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is one unit of per-tick work. The host decides when ticks happen;
// systems never schedule themselves.
type System interface {
	Name() string
	Phase() Phase
	Update(dt time.Duration) error
}

// Func adapts a function to System.
type Func struct {
	name  string
	phase Phase
	fn    func(dt time.Duration) error
}

func NewFunc(name string, phase Phase, fn func(dt time.Duration) error) *Func {
	return &Func{name: name, phase: phase, fn: fn}
}

func (f *Func) Name() string                  { return f.name }
func (f *Func) Phase() Phase                  { return f.phase }
func (f *Func) Update(dt time.Duration) error { return f.fn(dt) }
