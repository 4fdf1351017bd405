// Package snapshot caches the last polled view of the orchestrator and
// computes what changed between polls.
package snapshot

import (
	"cmp"
	"log/slog"
	"maps"
	"slices"

	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
)

// EdgeKey is an undirected planet pair stored as (min, max).
type EdgeKey struct {
	A, B uint32
}

// Key canonicalises an unordered pair.
func Key(a, b uint32) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// Has reports whether the edge touches planet id.
func (k EdgeKey) Has(id uint32) bool {
	return k.A == id || k.B == id
}

// Snapshot is an immutable view of the orchestrator at one tick.
type Snapshot struct {
	Edges        map[EdgeKey]struct{}
	PlanetCount  int
	PlanetStates map[uint32]orchestrator.PlanetStatus
	// Dropped holds reported edges that were rejected: self-loops and edges
	// naming a planet that is not live.
	Dropped []EdgeKey
}

// Empty returns a snapshot with no planets.
func Empty() Snapshot {
	return Snapshot{
		Edges:        map[EdgeKey]struct{}{},
		PlanetStates: map[uint32]orchestrator.PlanetStatus{},
	}
}

// Build assembles a snapshot from raw orchestrator output. Edges are
// canonicalised and deduplicated; self-loops and edges to unknown planets go
// to Dropped. Live planets are the reported non-destroyed ids, or
// 0..count-1 when no states were reported.
func Build(edges []orchestrator.Edge, count int, states []orchestrator.PlanetState) Snapshot {
	s := Empty()
	if len(states) == 0 {
		for i := 0; i < count; i++ {
			s.PlanetStates[uint32(i)] = orchestrator.StatusIdle
		}
	}
	for _, st := range states {
		if st.Status == orchestrator.StatusDestroyed {
			continue
		}
		s.PlanetStates[st.ID] = st.Status
	}
	s.PlanetCount = len(s.PlanetStates)

	for _, e := range edges {
		k := Key(e.A, e.B)
		if k.A == k.B || !s.Live(k.A) || !s.Live(k.B) {
			if !slices.Contains(s.Dropped, k) {
				s.Dropped = append(s.Dropped, k)
			}
			continue
		}
		if _, dup := s.Edges[k]; dup {
			slog.Debug("duplicate edge collapsed", "component", "snapshot", "a", k.A, "b", k.B)
			continue
		}
		s.Edges[k] = struct{}{}
	}
	return s
}

// Live reports whether planet id is present.
func (s Snapshot) Live(id uint32) bool {
	_, ok := s.PlanetStates[id]
	return ok
}

// PlanetIDs returns live planet ids in ascending order.
func (s Snapshot) PlanetIDs() []uint32 {
	return slices.Sorted(maps.Keys(s.PlanetStates))
}

// EdgeKeys returns edges in ascending order.
func (s Snapshot) EdgeKeys() []EdgeKey {
	keys := slices.Collect(maps.Keys(s.Edges))
	slices.SortFunc(keys, compareKeys)
	return keys
}

func compareKeys(x, y EdgeKey) int {
	if c := cmp.Compare(x.A, y.A); c != 0 {
		return c
	}
	return cmp.Compare(x.B, y.B)
}

// Diff lists what changed between two snapshots.
type Diff struct {
	Appeared []uint32
	Vanished []uint32
	Added    []EdgeKey
	Removed  []EdgeKey
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return len(d.Appeared) == 0 && len(d.Vanished) == 0 && len(d.Added) == 0 && len(d.Removed) == 0
}

// Compare computes the diff from prev to next. Output slices are sorted.
func Compare(prev, next Snapshot) Diff {
	var d Diff
	for _, id := range next.PlanetIDs() {
		if !prev.Live(id) {
			d.Appeared = append(d.Appeared, id)
		}
	}
	for _, id := range prev.PlanetIDs() {
		if !next.Live(id) {
			d.Vanished = append(d.Vanished, id)
		}
	}
	for _, k := range next.EdgeKeys() {
		if _, ok := prev.Edges[k]; !ok {
			d.Added = append(d.Added, k)
		}
	}
	for _, k := range prev.EdgeKeys() {
		if _, ok := next.Edges[k]; !ok {
			d.Removed = append(d.Removed, k)
		}
	}
	return d
}
