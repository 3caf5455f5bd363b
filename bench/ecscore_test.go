package bench

import (
	"testing"

	"github.com/l1jgo/ecscore/core/ecs"
)

const (
	nPos    = 9000
	nPosVel = 1000
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

type Frozen struct{}

func newWorld() *ecs.World {
	w := ecs.NewWorld(ecs.WithEntityCapacity(nPos+nPosVel), ecs.WithTableCapacity(nPos+nPosVel))
	for i := 0; i < nPosVel; i++ {
		e := w.CreateEntity()
		_ = ecs.Add(w, e, Position{})
		_ = ecs.Add(w, e, Velocity{X: 1, Y: 1})
	}
	for i := 0; i < nPos; i++ {
		_ = ecs.Add(w, w.CreateEntity(), Position{})
	}
	return w
}

func BenchmarkIterQuery(b *testing.B) {
	b.StopTimer()
	w := newWorld()
	positions := ecs.StorageOf[Position](w)
	velocities := ecs.StorageOf[Velocity](w)
	q := w.Query().With(ecs.TypeOf[Velocity](), ecs.TypeOf[Position]())
	b.ReportAllocs()
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		for _, e := range q.Execute() {
			pos, _ := positions.Ref(e)
			vel, _ := velocities.TryGet(e)
			pos.X += vel.X
			pos.Y += vel.Y
		}
		q.Release()
	}
}

func BenchmarkIterView(b *testing.B) {
	b.StopTimer()
	w := newWorld()
	velocities := ecs.StorageOf[Velocity](w)
	b.ReportAllocs()
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		v := ecs.OpenView[Position](w)
		for j := 0; j < v.Len(); j++ {
			vel, ok := velocities.TryGet(v.Entity(j))
			if !ok {
				continue
			}
			p := v.Ref(j)
			p.X += vel.X
			p.Y += vel.Y
		}
		v.Close()
	}
}

func BenchmarkQueryWithout(b *testing.B) {
	b.StopTimer()
	w := newWorld()
	for i := uint32(0); i < nPosVel; i += 2 {
		_ = ecs.Add(w, ecs.Entity{ID: i}, Frozen{})
	}
	q := w.Query()
	b.ReportAllocs()
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		q.With(ecs.TypeOf[Velocity]()).Without(ecs.TypeOf[Frozen]())
		_ = q.Count()
	}
}

func BenchmarkCreateDestroy(b *testing.B) {
	w := ecs.NewWorld()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e := w.CreateEntity()
		_ = ecs.Add(w, e, Position{})
		_ = ecs.Add(w, e, Velocity{})
		w.DestroyEntity(e)
	}
}
