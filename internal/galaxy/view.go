package galaxy

import (
	"cmp"
	"log/slog"
	"maps"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"github.com/ojrac/opensimplex-go"

	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
	"github.com/omc-galaxy/galaxy_viewer/internal/snapshot"
)

type celestialKey struct {
	kind   orchestrator.CelestialKind
	planet uint32
}

// View owns every visual entity. The id maps are lookup indexes over the ECS
// world; the world itself is the source of truth for drawing.
type View struct {
	World *ecs.World
	log   *slog.Logger

	ringSize int
	camera   ecs.Entity
	sky      ecs.Entity

	planets    map[uint32]ecs.Entity
	edges      map[snapshot.EdgeKey]ecs.Entity
	explorers  map[uint32]ecs.Entity
	celestials map[celestialKey]ecs.Entity

	planetMap    *ecs.Map3[Planet, Transform, Sprite]
	edgeMap      *ecs.Map3[Edge, Transform, Sprite]
	explorerMap  *ecs.Map3[Explorer, Transform, Sprite]
	celestialMap *ecs.Map3[Celestial, Transform, Sprite]
	skyMap       *ecs.Map3[Background, Transform, Sprite]
	cameraMap    *ecs.Map[Camera]
	edgeComps    *ecs.Map[Edge]
	explorerComp *ecs.Map[Explorer]
	transforms   *ecs.Map[Transform]
	sprites      *ecs.Map[Sprite]

	drawFilter      *ecs.Filter2[Transform, Sprite]
	planetFilter    *ecs.Filter1[Planet]
	edgeFilter      *ecs.Filter1[Edge]
	celestialFilter *ecs.Filter2[Celestial, Transform]
	skyFilter       *ecs.Filter1[Background]
	cameraFilter    *ecs.Filter1[Camera]

	noise opensimplex.Noise
	clock float64
}

// NewView creates an empty view with its own ECS world.
func NewView(logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	w := ecs.NewWorld(256)
	return &View{
		World:      w,
		log:        logger.With("component", "galaxy"),
		planets:    map[uint32]ecs.Entity{},
		edges:      map[snapshot.EdgeKey]ecs.Entity{},
		explorers:  map[uint32]ecs.Entity{},
		celestials: map[celestialKey]ecs.Entity{},

		planetMap:    ecs.NewMap3[Planet, Transform, Sprite](w),
		edgeMap:      ecs.NewMap3[Edge, Transform, Sprite](w),
		explorerMap:  ecs.NewMap3[Explorer, Transform, Sprite](w),
		celestialMap: ecs.NewMap3[Celestial, Transform, Sprite](w),
		skyMap:       ecs.NewMap3[Background, Transform, Sprite](w),
		cameraMap:    ecs.NewMap[Camera](w),
		edgeComps:    ecs.NewMap[Edge](w),
		explorerComp: ecs.NewMap[Explorer](w),
		transforms:   ecs.NewMap[Transform](w),
		sprites:      ecs.NewMap[Sprite](w),

		drawFilter:      ecs.NewFilter2[Transform, Sprite](w),
		planetFilter:    ecs.NewFilter1[Planet](w),
		edgeFilter:      ecs.NewFilter1[Edge](w),
		celestialFilter: ecs.NewFilter2[Celestial, Transform](w),
		skyFilter:       ecs.NewFilter1[Background](w),
		cameraFilter:    ecs.NewFilter1[Camera](w),

		noise: opensimplex.NewNormalized(7),
	}
}

// Setup spawns the camera and the background. Calling it again is a no-op.
func (v *View) Setup() {
	if !v.camera.IsZero() {
		return
	}
	v.camera = v.cameraMap.NewEntity(&Camera{})
	v.sky = v.skyMap.NewEntity(
		&Background{},
		&Transform{Z: ZBackground},
		&Sprite{Asset: AssetSky, W: BackgroundW, H: BackgroundH, Color: white, Alpha: 1},
	)
	v.log.Debug("view ready")
}

// CameraPos returns where the camera looks.
func (v *View) CameraPos() (x, y float64) {
	if v.camera.IsZero() {
		return 0, 0
	}
	c := v.cameraMap.Get(v.camera)
	return c.X, c.Y
}

// RingSize is the N used for the current ring layout.
func (v *View) RingSize() int { return v.ringSize }

// HandleDespawn removes a planet visual together with everything anchored to
// it: incident edges, explorers standing on it and its celestials.
func (v *View) HandleDespawn(ev snapshot.PlanetDespawn) {
	v.despawnPlanet(ev.PlanetID)
}

func (v *View) despawnPlanet(id uint32) {
	e, ok := v.planets[id]
	if !ok {
		return
	}
	for k, edge := range v.edges {
		if k.Has(id) {
			v.World.RemoveEntity(edge)
			delete(v.edges, k)
		}
	}
	for eid, ex := range v.explorers {
		if v.explorerComp.Get(ex).Planet == id {
			v.World.RemoveEntity(ex)
			delete(v.explorers, eid)
		}
	}
	for ck, ce := range v.celestials {
		if ck.planet == id {
			v.World.RemoveEntity(ce)
			delete(v.celestials, ck)
		}
	}
	v.World.RemoveEntity(e)
	delete(v.planets, id)
	v.log.Debug("planet despawned", "planet", id)
}

// Reconcile converges the visuals onto the store's current snapshot. It is a
// no-op unless the store is marked changed and clears the mark when done.
func (v *View) Reconcile(store *snapshot.Store) {
	if !store.Changed() {
		return
	}
	snap := store.Current()

	if len(v.planets) == 0 && snap.PlanetCount > 0 {
		v.ringSize = ringSizeFor(snap)
		v.log.Info("galaxy ring built", "planets", snap.PlanetCount)
	}

	// Planets the despawn bus did not report still have to go.
	for _, id := range slices.Sorted(maps.Keys(v.planets)) {
		if !snap.Live(id) {
			v.despawnPlanet(id)
		}
	}
	for _, id := range snap.PlanetIDs() {
		if _, ok := v.planets[id]; !ok {
			v.spawnPlanet(id)
		}
	}

	for _, k := range slices.SortedFunc(maps.Keys(v.edges), compareEdges) {
		if _, ok := snap.Edges[k]; !ok {
			v.World.RemoveEntity(v.edges[k])
			delete(v.edges, k)
		}
	}

	// Every live planet has a visual by now and snapshot edges only join
	// live planets.
	for _, k := range snap.EdgeKeys() {
		if _, ok := v.edges[k]; !ok {
			v.spawnEdge(k)
		}
	}
	store.ClearChanged()
}

// ringSizeFor keeps slots unique even when live ids are not 0..count-1.
func ringSizeFor(s snapshot.Snapshot) int {
	n := s.PlanetCount
	ids := s.PlanetIDs()
	if last := int(ids[len(ids)-1]); last >= n {
		n = last + 1
	}
	return n
}

func (v *View) spawnPlanet(id uint32) {
	x, y := RingPosition(id, v.ringSize)
	v.planets[id] = v.planetMap.NewEntity(
		&Planet{ID: id, Radius: PlanetRadius},
		&Transform{X: x, Y: y, Z: ZPlanet},
		&Sprite{Asset: PlanetAsset(id), W: 2 * PlanetRadius, H: 2 * PlanetRadius, Color: white, Alpha: 1},
	)
}

func (v *View) spawnEdge(k snapshot.EdgeKey) {
	ax, ay, _ := v.PlanetPosition(k.A)
	bx, by, _ := v.PlanetPosition(k.B)
	mx, my, rot, length := Segment(ax, ay, bx, by)
	v.edges[k] = v.edgeMap.NewEntity(
		&Edge{Key: k, Length: length},
		&Transform{X: mx, Y: my, Rotation: rot, Z: ZEdge},
		&Sprite{W: length, H: 1, Color: white, Alpha: 1},
	)
}

// PlanetPosition returns the world position of a planet visual.
func (v *View) PlanetPosition(id uint32) (x, y float64, ok bool) {
	e, found := v.planets[id]
	if !found {
		return 0, 0, false
	}
	t := v.transforms.Get(e)
	return t.X, t.Y, true
}

// PlanetIDs lists planet visuals by querying the world, ascending.
func (v *View) PlanetIDs() []uint32 {
	var ids []uint32
	q := v.planetFilter.Query()
	for q.Next() {
		ids = append(ids, q.Get().ID)
	}
	slices.Sort(ids)
	return ids
}

// EdgeKeys lists edge visuals by querying the world, ascending.
func (v *View) EdgeKeys() []snapshot.EdgeKey {
	var keys []snapshot.EdgeKey
	q := v.edgeFilter.Query()
	for q.Next() {
		keys = append(keys, q.Get().Key)
	}
	slices.SortFunc(keys, compareEdges)
	return keys
}

// EdgeLength returns the sprite length of an edge visual.
func (v *View) EdgeLength(k snapshot.EdgeKey) (float64, bool) {
	e, ok := v.edges[k]
	if !ok {
		return 0, false
	}
	return v.edgeComps.Get(e).Length, true
}

// BackgroundCount and CameraCount count singleton entities in the world.
func (v *View) BackgroundCount() int {
	n := 0
	q := v.skyFilter.Query()
	for q.Next() {
		n++
	}
	return n
}

func (v *View) CameraCount() int {
	n := 0
	q := v.cameraFilter.Query()
	for q.Next() {
		n++
	}
	return n
}

// PlanetAt returns the planet under a world point.
func (v *View) PlanetAt(x, y float64) (uint32, bool) {
	for _, id := range slices.Sorted(maps.Keys(v.planets)) {
		px, py, _ := v.PlanetPosition(id)
		if dist2(x, y, px, py) <= PlanetRadius*PlanetRadius {
			return id, true
		}
	}
	return 0, false
}

// DrawItem is one sprite ready to draw.
type DrawItem struct {
	Transform Transform
	Sprite    Sprite
}

// DrawList returns every sprite in draw order: by layer, then by entity id so
// the order is stable between frames.
func (v *View) DrawList() []DrawItem {
	type keyed struct {
		id uint32
		it DrawItem
	}
	var items []keyed
	q := v.drawFilter.Query()
	for q.Next() {
		t, s := q.Get()
		items = append(items, keyed{id: q.Entity().ID(), it: DrawItem{Transform: *t, Sprite: *s}})
	}
	slices.SortFunc(items, func(a, b keyed) int {
		if c := cmp.Compare(a.it.Transform.Z, b.it.Transform.Z); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	out := make([]DrawItem, len(items))
	for i, k := range items {
		out[i] = k.it
	}
	return out
}

// SetEdgeAlpha sets the opacity of every edge sprite.
func (v *View) SetEdgeAlpha(alpha float64) {
	for _, e := range v.edges {
		v.sprites.Get(e).Alpha = alpha
	}
}

func compareEdges(x, y snapshot.EdgeKey) int {
	if c := cmp.Compare(x.A, y.A); c != 0 {
		return c
	}
	return cmp.Compare(x.B, y.B)
}

func dist2(x1, y1, x2, y2 float64) float64 {
	dx, dy := x1-x2, y1-y2
	return dx*dx + dy*dy
}
