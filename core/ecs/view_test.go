package ecs

import (
	"errors"
	"testing"
)

func TestViewWritesBackByEntity(t *testing.T) {
	w := NewWorld()
	var es []Entity
	for i := 0; i < 4; i++ {
		e := w.CreateEntity()
		es = append(es, e)
		_ = Add(w, e, health{i})
	}

	v := OpenView[health](w)
	for i := 0; i < v.Len(); i++ {
		v.Ref(i).HP += 100
		if v.Entity(i) == es[0] {
			// moves the last row into row 0 of the live table
			Remove[health](w, es[0])
		}
	}
	if n := v.Close(); n != 3 {
		t.Fatalf("Close wrote %d rows, want 3", n)
	}

	for _, e := range es[1:] {
		got, _ := TryGet[health](w, e)
		if got.HP != int(e.ID)+100 {
			t.Fatalf("%v = %d, want %d", e, got.HP, int(e.ID)+100)
		}
	}
	if Has[health](w, es[0]) {
		t.Fatal("removed entity resurrected by write-back")
	}
}

func TestViewUntouchedRowsNotWritten(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	_ = Add(w, e, health{1})

	v := OpenView[health](w)
	_ = v.At(0)
	_ = Set(w, e, health{7})
	if n := v.Close(); n != 0 {
		t.Fatalf("Close wrote %d rows", n)
	}
	if got, _ := TryGet[health](w, e); got.HP != 7 {
		t.Fatalf("untouched row overwritten: %d", got.HP)
	}
	if v.Close() != 0 {
		t.Fatal("second Close wrote rows")
	}
}

func TestViewAddsDuringIterationAreKept(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	_ = Add(w, e, health{1})

	err := Mutate(w, func(v *View[health]) error {
		for i := 0; i < v.Len(); i++ {
			v.Put(i, health{v.At(i).HP * 2})
			_ = Add(w, w.CreateEntity(), health{50})
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if StorageOf[health](w).Len() != 2 {
		t.Fatalf("Len = %d, want 2", StorageOf[health](w).Len())
	}
	if got, _ := TryGet[health](w, e); got.HP != 2 {
		t.Fatalf("HP = %d", got.HP)
	}
}

func TestMutateClosesOnError(t *testing.T) {
	w := NewWorld()
	_ = Add(w, w.CreateEntity(), health{1})
	sentinel := errors.New("stop")

	err := Mutate(w, func(v *View[health]) error {
		v.Ref(0).HP = 9
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v", err)
	}
	if v, _ := StorageOf[health](w).GetAt(0); v.HP != 9 {
		t.Fatalf("HP = %d, want 9", v.HP)
	}
	// a second view can be opened once the first is closed
	OpenView[health](w).Close()
}

func TestOpenViewTwicePanics(t *testing.T) {
	w := NewWorld()
	v := OpenView[health](w)
	defer v.Close()
	defer func() {
		if recover() == nil {
			t.Fatal("second OpenView did not panic")
		}
	}()
	OpenView[health](w)
}
