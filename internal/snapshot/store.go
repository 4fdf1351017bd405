package snapshot

import (
	"log/slog"
	"slices"
)

// PlanetDespawn is broadcast when a planet leaves the snapshot.
type PlanetDespawn struct {
	PlanetID uint32
}

// DespawnBus queues despawn events from the Store and hands them to
// subscribers when Dispatch runs. Handlers run in subscription order and
// events in publication order.
type DespawnBus struct {
	queue    []PlanetDespawn
	handlers []func(PlanetDespawn)
}

// Subscribe registers a handler for every future dispatch.
func (b *DespawnBus) Subscribe(h func(PlanetDespawn)) {
	b.handlers = append(b.handlers, h)
}

// Publish queues an event for the next Dispatch.
func (b *DespawnBus) Publish(ev PlanetDespawn) {
	b.queue = append(b.queue, ev)
}

// Pending returns the number of queued events.
func (b *DespawnBus) Pending() int {
	return len(b.queue)
}

// Dispatch delivers and clears every queued event.
func (b *DespawnBus) Dispatch() {
	events := b.queue
	b.queue = nil
	for _, ev := range events {
		for _, h := range b.handlers {
			h(ev)
		}
	}
}

// Store holds the latest snapshot. It has exactly one writer, the fixed
// tick, and is read by view code on the same goroutine.
type Store struct {
	current Snapshot
	changed bool
	bus     *DespawnBus
}

// NewStore creates an empty store publishing despawns to bus.
func NewStore(bus *DespawnBus) *Store {
	return &Store{current: Empty(), bus: bus}
}

// Current returns the latest snapshot. Callers must not mutate it.
func (s *Store) Current() Snapshot {
	return s.current
}

// Changed reports whether the snapshot mutated since ClearChanged.
func (s *Store) Changed() bool {
	return s.changed
}

// ClearChanged is called by the view after it has reconciled.
func (s *Store) ClearChanged() {
	s.changed = false
}

// Update replaces the snapshot, publishes vanished planets and returns the diff.
func (s *Store) Update(next Snapshot) Diff {
	for _, k := range next.Dropped {
		if !slices.Contains(s.current.Dropped, k) {
			slog.Warn("dropping edge with unknown endpoint", "component", "snapshot", "a", k.A, "b", k.B)
		}
	}
	d := Compare(s.current, next)
	s.current = next
	if !d.Empty() {
		s.changed = true
	}
	for _, id := range d.Vanished {
		s.bus.Publish(PlanetDespawn{PlanetID: id})
	}
	return d
}

// Clear empties the store; every planet it held is published as vanished.
func (s *Store) Clear() Diff {
	return s.Update(Empty())
}
