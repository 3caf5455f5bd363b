package sim

import (
	"fmt"
	"time"

	"github.com/l1jgo/ecscore/core/ecs"
	"github.com/l1jgo/ecscore/core/event"
	coresys "github.com/l1jgo/ecscore/core/system"
	"go.uber.org/zap"
)

// EventSystem rotates the event bus and delivers last tick's events.
// Phase PreUpdate.
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Name() string         { return "events" }
func (s *EventSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventSystem) Update(_ time.Duration) error {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	return nil
}

// MovementSystem integrates Velocity into Position. It writes through a
// View so entities may gain or lose components mid-pass.
// Phase Update.
type MovementSystem struct {
	world *ecs.World
}

func NewMovementSystem(world *ecs.World) *MovementSystem {
	return &MovementSystem{world: world}
}

func (s *MovementSystem) Name() string         { return "movement" }
func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) error {
	step := dt.Seconds()
	velocities := ecs.StorageOf[Velocity](s.world)
	return ecs.Mutate(s.world, func(v *ecs.View[Position]) error {
		for i := 0; i < v.Len(); i++ {
			vel, ok := velocities.TryGet(v.Entity(i))
			if !ok {
				continue
			}
			p := v.Ref(i)
			p.X += vel.X * step
			p.Y += vel.Y * step
		}
		return nil
	})
}

// LifetimeSystem counts lifetimes down, tags expired entities Dead and
// announces them on the bus.
// Phase Update.
type LifetimeSystem struct {
	world *ecs.World
	bus   *event.Bus
	query *ecs.Query
}

func NewLifetimeSystem(world *ecs.World, bus *event.Bus) *LifetimeSystem {
	return &LifetimeSystem{world: world, bus: bus, query: world.Query()}
}

func (s *LifetimeSystem) Name() string         { return "lifetime" }
func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *LifetimeSystem) Update(_ time.Duration) error {
	lifetimes := ecs.StorageOf[Lifetime](s.world)
	s.query.With(ecs.TypeOf[Lifetime]()).Without(ecs.TypeOf[Dead]())
	var err error
	s.query.Each(func(e ecs.Entity) bool {
		lt, _ := lifetimes.Ref(e)
		lt.Ticks--
		if lt.Ticks > 0 {
			return true
		}
		if aerr := ecs.Add(s.world, e, Dead{}); aerr != nil {
			err = fmt.Errorf("expire %s: %w", e, aerr)
			return false
		}
		event.Emit(s.bus, event.EntityExpired{Entity: e})
		return true
	})
	return err
}

// ReaperSystem destroys every entity tagged Dead.
// Phase Cleanup.
type ReaperSystem struct {
	world *ecs.World
	query *ecs.Query
	log   *zap.Logger
}

func NewReaperSystem(world *ecs.World, log *zap.Logger) *ReaperSystem {
	return &ReaperSystem{world: world, query: world.Query(), log: log}
}

func (s *ReaperSystem) Name() string         { return "reaper" }
func (s *ReaperSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *ReaperSystem) Update(_ time.Duration) error {
	s.query.With(ecs.TypeOf[Dead]()).Each(func(e ecs.Entity) bool {
		s.world.MarkForDestruction(e)
		return true
	})
	if n := s.world.FlushDestroyQueue(); n > 0 {
		s.log.Debug("reaped entities", zap.Int("count", n))
	}
	return nil
}

// StatsSystem logs world statistics every N ticks.
// Phase PostUpdate.
type StatsSystem struct {
	world *ecs.World
	every int
	ticks int
	last  ecs.WorldStats
	log   *zap.Logger
}

func NewStatsSystem(world *ecs.World, every int, log *zap.Logger) *StatsSystem {
	return &StatsSystem{world: world, every: every, log: log}
}

func (s *StatsSystem) Name() string         { return "stats" }
func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *StatsSystem) Update(_ time.Duration) error {
	s.ticks++
	if s.every <= 0 || s.ticks%s.every != 0 {
		return nil
	}
	s.last = s.world.Stats(&s.last)
	fields := make([]zap.Field, 0, 4+len(s.last.Tables))
	fields = append(fields,
		zap.Int("tick", s.ticks),
		zap.Int("entities", s.last.Entities),
		zap.Int("free_ids", s.last.FreeIDs),
		zap.Int("pool_free_arrays", s.last.Pool.FreeArrays),
	)
	for _, t := range s.last.Tables {
		fields = append(fields, zap.Int(t.Type, t.Count))
	}
	s.log.Info("world stats", fields...)
	return nil
}

// Last returns the most recent snapshot.
func (s *StatsSystem) Last() ecs.WorldStats { return s.last }
