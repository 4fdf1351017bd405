package galaxy

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
)

// SyncExplorers spawns, moves and removes explorer visuals so they match the
// orchestrator's explorer list. Explorers on a planet without a visual are
// hidden until the planet exists.
func (v *View) SyncExplorers(states []orchestrator.ExplorerState) {
	crowd := map[uint32]int{}
	for _, st := range states {
		crowd[st.Planet]++
	}

	seen := make(map[uint32]bool, len(states))
	for _, st := range states {
		px, py, ok := v.PlanetPosition(st.Planet)
		if !ok {
			continue
		}
		seen[st.ID] = true
		x, y := px, py
		if crowd[st.Planet] > 1 {
			dx, dy := JitterOffset(st.ID)
			x, y = x+dx, y+dy
		}

		e, exists := v.explorers[st.ID]
		if !exists {
			v.explorers[st.ID] = v.explorerMap.NewEntity(
				&Explorer{ID: st.ID, Planet: st.Planet, Status: st.Status, Bag: FormatBag(st.Bag)},
				&Transform{X: x, Y: y, Z: ZExplorer},
				&Sprite{Asset: AssetExplorer, W: ExplorerSize, H: ExplorerSize, Color: white, Alpha: 1},
			)
			continue
		}
		ex, t, _ := v.explorerMap.Get(e)
		if ex.Planet != st.Planet {
			v.log.Debug("explorer moved", "explorer", st.ID, "from", ex.Planet, "to", st.Planet)
		}
		ex.Planet, ex.Status, ex.Bag = st.Planet, st.Status, FormatBag(st.Bag)
		t.X, t.Y = x, y
	}

	for id, e := range v.explorers {
		if !seen[id] {
			v.World.RemoveEntity(e)
			delete(v.explorers, id)
		}
	}
}

// FormatBag renders a resource bag as "key:count" pairs sorted by key.
func FormatBag(bag map[string]int) string {
	if len(bag) == 0 {
		return "empty"
	}
	parts := make([]string, 0, len(bag))
	for _, k := range slices.Sorted(maps.Keys(bag)) {
		parts = append(parts, fmt.Sprintf("%s:%d", k, bag[k]))
	}
	return strings.Join(parts, " ")
}

// ExplorerIDs lists explorer visuals, ascending.
func (v *View) ExplorerIDs() []uint32 {
	return slices.Sorted(maps.Keys(v.explorers))
}

// ExplorerPosition returns the world position of an explorer visual.
func (v *View) ExplorerPosition(id uint32) (x, y float64, ok bool) {
	e, found := v.explorers[id]
	if !found {
		return 0, 0, false
	}
	t := v.transforms.Get(e)
	return t.X, t.Y, true
}

// ExplorerInfo returns the panel fields of an explorer visual.
func (v *View) ExplorerInfo(id uint32) (Explorer, bool) {
	e, ok := v.explorers[id]
	if !ok {
		return Explorer{}, false
	}
	return *v.explorerComp.Get(e), true
}

// ExplorerAt returns the explorer under a world point.
func (v *View) ExplorerAt(x, y float64) (uint32, bool) {
	const r = ExplorerSize / 2
	for _, id := range v.ExplorerIDs() {
		ex, ey, _ := v.ExplorerPosition(id)
		if dist2(x, y, ex, ey) <= r*r {
			return id, true
		}
	}
	return 0, false
}

// SpawnCelestial starts a hazard animation on a planet. At most one hazard of
// each kind is active per planet; it reports whether a visual was spawned.
func (v *View) SpawnCelestial(kind orchestrator.CelestialKind, planetID uint32) bool {
	px, py, ok := v.PlanetPosition(planetID)
	if !ok {
		v.log.Warn("celestial targets unknown planet, dropped", "kind", kind, "planet", planetID)
		return false
	}
	key := celestialKey{kind: kind, planet: planetID}
	if _, dup := v.celestials[key]; dup {
		v.log.Info("celestial already active, dropped", "kind", kind, "planet", planetID)
		return false
	}

	fromX, fromY := px, py
	asset := AssetSunray
	if kind == orchestrator.Asteroid {
		asset = AssetAsteroid
		d := math.Hypot(px, py)
		if d == 0 {
			fromX, fromY = px+asteroidApproach, py
		} else {
			fromX, fromY = px+px/d*asteroidApproach, py+py/d*asteroidApproach
		}
	}
	v.celestials[key] = v.celestialMap.NewEntity(
		&Celestial{Kind: kind, PlanetID: planetID, FromX: fromX, FromY: fromY, Lifetime: CelestialLifetime, Remaining: CelestialLifetime},
		&Transform{X: fromX, Y: fromY, Z: ZCelestial},
		&Sprite{Asset: asset, W: 2 * CelestialRad, H: 2 * CelestialRad, Color: white, Alpha: 1},
	)
	return true
}

// CelestialCount returns the number of active hazards.
func (v *View) CelestialCount() int {
	return len(v.celestials)
}

// Animate advances hazard animations by dt seconds and removes expired ones.
func (v *View) Animate(dt float64) {
	v.clock += dt
	var expired []celestialKey

	q := v.celestialFilter.Query()
	for q.Next() {
		c, t := q.Get()
		c.Remaining -= dt
		if c.Remaining <= 0 {
			expired = append(expired, celestialKey{kind: c.Kind, planet: c.PlanetID})
			continue
		}
		progress := 1 - c.Remaining/c.Lifetime
		px, py, _ := v.PlanetPosition(c.PlanetID)
		switch c.Kind {
		case orchestrator.Asteroid:
			t.X = c.FromX + (px-c.FromX)*progress
			t.Y = c.FromY + (py-c.FromY)*progress
			t.Rotation += dt * 3
		case orchestrator.Sunray:
			shimmer := v.noise.Eval2(v.clock*3, float64(c.PlanetID))
			s := v.sprites.Get(q.Entity())
			s.Alpha = 0.5 + 0.5*shimmer
			s.W = 2 * CelestialRad * (1 + 0.3*shimmer)
			s.H = s.W
		}
	}

	for _, k := range expired {
		v.World.RemoveEntity(v.celestials[k])
		delete(v.celestials, k)
	}
}
