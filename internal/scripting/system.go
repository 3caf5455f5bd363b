package scripting

import (
	"fmt"
	"time"

	"github.com/l1jgo/ecscore/core/system"
)

// System runs the engine's behaviours as one runner unit in the Update phase.
type System struct {
	engine *Engine
}

func NewSystem(e *Engine) *System { return &System{engine: e} }

func (s *System) Name() string        { return "scripts" }
func (s *System) Phase() system.Phase { return system.PhaseUpdate }

// Update reports an error when any behaviour failed. The others have
// already run by then.
func (s *System) Update(dt time.Duration) error {
	if n := s.engine.Tick(dt); n > 0 {
		return fmt.Errorf("%d lua behaviour(s) failed", n)
	}
	return nil
}
