package ecs

type position struct{ X, Y float64 }

type velocity struct{ X, Y float64 }

type health struct{ HP int }

type frozen struct{}

func sameEntities(a, b []Entity) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
