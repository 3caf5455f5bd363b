package system

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Sample is the timing record of one system.
type Sample struct {
	Name     string
	Phase    Phase
	Last     time.Duration
	Total    time.Duration
	Runs     int
	Failures int
}

type entry struct {
	sys    System
	sample Sample
}

// Runner executes systems in phase order each tick. A system that returns an
// error or panics is logged and skipped for that tick; the remaining systems
// still run.
type Runner struct {
	entries []*entry
	sorted  bool
	log     *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		entries: make([]*entry, 0, 16),
		log:     log,
	}
}

func (r *Runner) Register(s System) {
	r.entries = append(r.entries, &entry{
		sys:    s,
		sample: Sample{Name: s.Name(), Phase: s.Phase()},
	})
	r.sorted = false
}

// Tick runs every registered system once and returns the number that failed.
func (r *Runner) Tick(dt time.Duration) int {
	r.ensureSorted()
	failed := 0
	for _, e := range r.entries {
		if !r.run(e, dt) {
			failed++
		}
	}
	return failed
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) int {
	r.ensureSorted()
	failed := 0
	for _, e := range r.entries {
		if e.sys.Phase() == phase && !r.run(e, dt) {
			failed++
		}
	}
	return failed
}

func (r *Runner) run(e *entry, dt time.Duration) (ok bool) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		e.sample.Last = elapsed
		e.sample.Total += elapsed
		e.sample.Runs++
		if p := recover(); p != nil {
			ok = false
			r.fail(e, fmt.Errorf("panic: %v", p))
		}
	}()
	if err := e.sys.Update(dt); err != nil {
		r.fail(e, err)
		return false
	}
	return true
}

func (r *Runner) fail(e *entry, err error) {
	e.sample.Failures++
	r.log.Error("system failed",
		zap.String("system", e.sample.Name),
		zap.Stringer("phase", e.sample.Phase),
		zap.Error(err))
}

// Samples returns timing records in execution order.
func (r *Runner) Samples() []Sample {
	r.ensureSorted()
	out := make([]Sample, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.sample
	}
	return out
}

func (r *Runner) Len() int { return len(r.entries) }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		slices.SortStableFunc(r.entries, func(a, b *entry) int {
			return int(a.sys.Phase()) - int(b.sys.Phase())
		})
		r.sorted = true
	}
}
