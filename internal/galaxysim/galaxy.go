// Package galaxysim is an in-process orchestrator: a small galaxy of planets
// hit by sunrays and asteroids, walked by explorers.
package galaxysim

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
)

const (
	// BlindSteps is how long TriggerBlind keeps explorers in place.
	BlindSteps = 5

	sunrayChance   = 0.25
	asteroidChance = 0.06
)

var resources = []string{"carbon", "water", "oxygen", "silicon", "hydrogen"}

type planet struct {
	id        uint32
	name      string
	cells     []bool
	rocket    bool
	destroyed bool
}

func (p *planet) charged() int {
	n := 0
	for _, c := range p.cells {
		if c {
			n++
		}
	}
	return n
}

type explorer struct {
	id     uint32
	planet uint32
	bag    map[string]int
}

// Options configures a Galaxy.
type Options struct {
	Step   time.Duration
	Seed   uint64
	// Calm turns off random sunrays and asteroids.
	Calm   bool
	Logger *slog.Logger
}

// Galaxy implements orchestrator.Orchestrator and its optional capabilities.
// It is safe for concurrent use.
type Galaxy struct {
	step time.Duration
	calm bool
	log  *slog.Logger

	mu        sync.Mutex
	name      string
	ready     bool
	running   bool
	planets   map[uint32]*planet
	edges     []orchestrator.Edge
	explorers []*explorer
	events    []orchestrator.Event
	blind     int
	steps     uint64
	rng       *rand.Rand

	cancel context.CancelFunc
	eg     *errgroup.Group
}

var (
	_ orchestrator.Orchestrator    = (*Galaxy)(nil)
	_ orchestrator.ExplorerSource  = (*Galaxy)(nil)
	_ orchestrator.PlanetInspector = (*Galaxy)(nil)
	_ orchestrator.EventSource     = (*Galaxy)(nil)
)

// New creates an empty galaxy. A zero Seed picks one from the clock.
func New(opts Options) *Galaxy {
	if opts.Step <= 0 {
		opts.Step = 600 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Galaxy{
		step: opts.Step,
		calm: opts.Calm,
		log:  opts.Logger.With("component", "galaxysim"),
		rng:  rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// InitializeFromFile loads the galaxy once.
func (g *Galaxy) InitializeFromFile(path string) error {
	g.mu.Lock()
	ready := g.ready
	g.mu.Unlock()
	if ready {
		return orchestrator.ErrAlreadyInitialized
	}
	def, err := LoadGalaxyFile(path)
	if err != nil {
		return err
	}
	g.Load(def)
	return nil
}

// Load installs a parsed galaxy.
func (g *Galaxy) Load(def *GalaxyFile) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.name = def.Name
	g.planets = make(map[uint32]*planet, len(def.Planets))
	for _, p := range def.Planets {
		g.planets[p.ID] = &planet{id: p.ID, name: p.Name, cells: make([]bool, p.Cells)}
	}
	g.edges = g.edges[:0]
	for _, e := range def.Edges {
		g.edges = append(g.edges, orchestrator.Edge{A: e[0], B: e[1]})
	}
	g.explorers = g.explorers[:0]
	for _, x := range def.Explorers {
		g.explorers = append(g.explorers, &explorer{id: x.ID, planet: x.Planet, bag: map[string]int{}})
	}
	g.ready = true
	g.log.Info("galaxy loaded", "name", def.Name, "planets", len(def.Planets), "edges", len(def.Edges), "explorers", len(def.Explorers))
}

// StartAll starts the stepper goroutine.
func (g *Galaxy) StartAll() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.ready {
		return orchestrator.ErrNotInitialized
	}
	if g.running {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return g.loop(ctx)
	})
	g.cancel, g.eg, g.running = cancel, eg, true
	g.log.Info("planets started", "step", g.step)
	return nil
}

// StopAll stops the stepper and waits for it to exit.
func (g *Galaxy) StopAll() error {
	g.mu.Lock()
	if !g.ready {
		g.mu.Unlock()
		return orchestrator.ErrNotInitialized
	}
	if !g.running {
		g.mu.Unlock()
		return nil
	}
	cancel, eg := g.cancel, g.eg
	g.running = false
	g.mu.Unlock()

	cancel()
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("stop planets: %w", err)
	}
	g.log.Info("planets stopped")
	return nil
}

func (g *Galaxy) loop(ctx context.Context) error {
	ticker := time.NewTicker(g.step)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			g.Step()
		}
	}
}

// Topology returns edges between surviving planets and the total planet count.
func (g *Galaxy) Topology() ([]orchestrator.Edge, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]orchestrator.Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if g.alive(e.A) && g.alive(e.B) {
			out = append(out, e)
		}
	}
	return out, len(g.planets)
}

// PlanetStates reports every planet, destroyed ones included.
func (g *Galaxy) PlanetStates() []orchestrator.PlanetState {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]orchestrator.PlanetState, 0, len(g.planets))
	for _, id := range slices.Sorted(maps.Keys(g.planets)) {
		out = append(out, orchestrator.PlanetState{ID: id, Status: g.status(g.planets[id])})
	}
	return out
}

func (g *Galaxy) status(p *planet) orchestrator.PlanetStatus {
	switch {
	case p.destroyed:
		return orchestrator.StatusDestroyed
	case g.running:
		return orchestrator.StatusRunning
	case g.steps > 0:
		return orchestrator.StatusPaused
	default:
		return orchestrator.StatusIdle
	}
}

func (g *Galaxy) alive(id uint32) bool {
	p, ok := g.planets[id]
	return ok && !p.destroyed
}

// InjectCelestial applies a sunray or asteroid to a planet right away.
func (g *Galaxy) InjectCelestial(planetID uint32, kind orchestrator.CelestialKind) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.ready {
		return orchestrator.ErrNotInitialized
	}
	if !g.alive(planetID) {
		return fmt.Errorf("inject %s: planet %d is not alive", kind, planetID)
	}
	g.hit(planetID, kind)
	return nil
}

// TriggerBlind keeps explorers from moving for BlindSteps steps.
func (g *Galaxy) TriggerBlind() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.ready {
		return orchestrator.ErrNotInitialized
	}
	g.blind = BlindSteps
	g.log.Info("explorers blinded", "steps", BlindSteps)
	return nil
}

// TriggerNuke sends an asteroid at every surviving planet.
func (g *Galaxy) TriggerNuke() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.ready {
		return orchestrator.ErrNotInitialized
	}
	for _, id := range slices.Sorted(maps.Keys(g.planets)) {
		if g.alive(id) {
			g.hit(id, orchestrator.Asteroid)
		}
	}
	return nil
}

// hit applies a celestial. Callers hold mu.
func (g *Galaxy) hit(id uint32, kind orchestrator.CelestialKind) {
	p := g.planets[id]
	switch kind {
	case orchestrator.Sunray:
		for i, c := range p.cells {
			if !c {
				p.cells[i] = true
				break
			}
		}
	case orchestrator.Asteroid:
		if p.rocket {
			p.rocket = false
			g.log.Info("asteroid deflected", "planet", id)
			return
		}
		p.destroyed = true
		g.log.Info("planet destroyed", "planet", id, "name", p.name)
	}
}

// Step advances the simulation by one step. The stepper goroutine calls it;
// tests call it directly.
func (g *Galaxy) Step() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.steps++

	ids := slices.Sorted(maps.Keys(g.planets))
	for _, id := range ids {
		if g.calm || !g.alive(id) {
			continue
		}
		switch r := g.rng.Float64(); {
		case r < asteroidChance:
			g.events = append(g.events, orchestrator.Event{Kind: orchestrator.Asteroid, PlanetID: id})
			g.hit(id, orchestrator.Asteroid)
		case r < asteroidChance+sunrayChance:
			g.events = append(g.events, orchestrator.Event{Kind: orchestrator.Sunray, PlanetID: id})
			g.hit(id, orchestrator.Sunray)
		}
	}

	for _, id := range ids {
		p := g.planets[id]
		if p.destroyed || p.rocket {
			continue
		}
		for i, c := range p.cells {
			if c {
				p.cells[i] = false
				p.rocket = true
				g.log.Debug("rocket built", "planet", id)
				break
			}
		}
	}

	g.moveExplorers()
	if g.blind > 0 {
		g.blind--
	}
}

func (g *Galaxy) moveExplorers() {
	kept := g.explorers[:0]
	for _, x := range g.explorers {
		if !g.alive(x.planet) {
			g.log.Info("explorer lost", "explorer", x.id, "planet", x.planet)
			continue
		}
		kept = append(kept, x)
		if g.blind > 0 {
			continue
		}
		x.bag[resources[x.planet%uint32(len(resources))]]++
		if next := g.neighbours(x.planet); len(next) > 0 {
			x.planet = next[g.rng.IntN(len(next))]
		}
	}
	g.explorers = kept
}

func (g *Galaxy) neighbours(id uint32) []uint32 {
	var out []uint32
	for _, e := range g.edges {
		switch {
		case e.A == id && e.B != id && g.alive(e.B):
			out = append(out, e.B)
		case e.B == id && e.A != id && g.alive(e.A):
			out = append(out, e.A)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Explorers reports every explorer still alive.
func (g *Galaxy) Explorers() []orchestrator.ExplorerState {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]orchestrator.ExplorerState, 0, len(g.explorers))
	for _, x := range g.explorers {
		status := "exploring"
		switch {
		case g.blind > 0:
			status = "blinded"
		case !g.running:
			status = "waiting"
		}
		out = append(out, orchestrator.ExplorerState{ID: x.id, Planet: x.planet, Status: status, Bag: maps.Clone(x.bag)})
	}
	return out
}

// PlanetInfo describes one planet.
func (g *Galaxy) PlanetInfo(id uint32) (orchestrator.PlanetInfo, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.planets[id]
	if !ok {
		return orchestrator.PlanetInfo{}, false
	}
	return orchestrator.PlanetInfo{
		ID:            p.id,
		Name:          p.name,
		EnergyCharged: p.charged(),
		EnergyTotal:   len(p.cells),
		HasRocket:     p.rocket,
	}, true
}

// DrainEvents returns and forgets the celestial events since the last call.
func (g *Galaxy) DrainEvents() []orchestrator.Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.events
	g.events = nil
	return out
}
