package sim

import (
	"time"

	"github.com/l1jgo/ecscore/core/ecs"
	"github.com/l1jgo/ecscore/core/link"
	coresys "github.com/l1jgo/ecscore/core/system"
	"go.uber.org/zap"
)

// Track is the host-side record kept for every live entity.
type Track struct {
	Entity  ecs.Entity
	Born    int // tick the entity was first seen
	Samples int // ticks it has been seen alive
}

// TrackSystem keeps a link.Mirror of Track records in step with the world.
// Phase PostUpdate.
type TrackSystem struct {
	world  *ecs.World
	mirror *link.Mirror[*Track]
	tick   int
	log    *zap.Logger
}

func NewTrackSystem(world *ecs.World, log *zap.Logger) *TrackSystem {
	s := &TrackSystem{world: world, log: log}
	s.mirror = link.NewMirror(
		func(e ecs.Entity) (*Track, error) {
			return &Track{Entity: e, Born: s.tick}, nil
		},
		func(e ecs.Entity, t *Track) {
			s.log.Debug("track dropped",
				zap.Stringer("entity", e),
				zap.Int("born", t.Born),
				zap.Int("samples", t.Samples))
		},
	)
	return s
}

func (s *TrackSystem) Name() string         { return "track" }
func (s *TrackSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *TrackSystem) Update(_ time.Duration) error {
	s.tick++
	if _, _, err := s.mirror.Sync(s.world); err != nil {
		return err
	}
	s.world.EachEntity(func(e ecs.Entity) bool {
		if t, ok := s.mirror.Lookup(e); ok {
			t.Samples++
		}
		return true
	})
	return nil
}

// Lookup returns the record for e.
func (s *TrackSystem) Lookup(e ecs.Entity) (*Track, bool) { return s.mirror.Lookup(e) }

// Len returns the number of tracked entities.
func (s *TrackSystem) Len() int { return s.mirror.Len() }
