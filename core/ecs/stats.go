package ecs

// TableStats describes one component table.
type TableStats struct {
	Type     string
	Count    int
	Capacity int
}

type PoolStats struct {
	FreeSets    int
	FreeArrays  int
	Outstanding int
}

// WorldStats is a read-only snapshot for observability tooling.
type WorldStats struct {
	Entities int
	FreeIDs  int
	Capacity int
	Tables   []TableStats
	Pool     PoolStats
}

// Stats fills a WorldStats. Passing the previous result reuses its Tables
// slice.
func (w *World) Stats(prev *WorldStats) WorldStats {
	var tables []TableStats
	if prev != nil {
		tables = prev.Tables[:0]
	}
	for _, t := range w.registry.tables {
		tables = append(tables, TableStats{
			Type:     t.Type().String(),
			Count:    t.Len(),
			Capacity: t.Cap(),
		})
	}
	return WorldStats{
		Entities: w.entities.Len(),
		FreeIDs:  w.entities.Free(),
		Capacity: w.entities.Cap(),
		Tables:   tables,
		Pool:     w.pool.Stats(),
	}
}

func (p *Pool) Stats() PoolStats {
	return PoolStats{
		FreeSets:    len(p.sets),
		FreeArrays:  len(p.arrays),
		Outstanding: p.outstanding,
	}
}
