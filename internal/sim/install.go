package sim

import (
	"github.com/l1jgo/ecscore/core/ecs"
	"github.com/l1jgo/ecscore/core/event"
	coresys "github.com/l1jgo/ecscore/core/system"
	"go.uber.org/zap"
)

// Systems groups the installed demo systems for callers that inspect them.
type Systems struct {
	Events   *EventSystem
	Movement *MovementSystem
	Lifetime *LifetimeSystem
	Reaper   *ReaperSystem
	Stats    *StatsSystem
	Track    *TrackSystem
}

// Install registers the demo systems on runner. log may be nil.
func Install(w *ecs.World, runner *coresys.Runner, bus *event.Bus, statsEvery int, log *zap.Logger) *Systems {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Systems{
		Events:   NewEventSystem(bus),
		Movement: NewMovementSystem(w),
		Lifetime: NewLifetimeSystem(w, bus),
		Reaper:   NewReaperSystem(w, log),
		Stats:    NewStatsSystem(w, statsEvery, log),
		Track:    NewTrackSystem(w, log),
	}
	runner.Register(s.Events)
	runner.Register(s.Movement)
	runner.Register(s.Lifetime)
	runner.Register(s.Reaper)
	runner.Register(s.Stats)
	runner.Register(s.Track)

	event.Subscribe(bus, func(ev event.EntityExpired) {
		log.Debug("entity expired", zap.Stringer("entity", ev.Entity))
	})
	return s
}
