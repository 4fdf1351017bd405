package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/omc-galaxy/galaxy_viewer/internal/galaxy"
	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
	"github.com/omc-galaxy/galaxy_viewer/internal/snapshot"
	"github.com/omc-galaxy/galaxy_viewer/internal/ui"
)

// Screen is the logical resolution everything is laid out in.
const (
	ScreenWidth  = 1920
	ScreenHeight = 1080
)

// Input is the pointer state sampled once per frame.
type Input struct {
	X, Y        float64
	Down        bool
	JustPressed bool
	Wheel       float64
}

// Session wires the façade, the snapshot store, the galaxy view and the menu
// into the fixed and variable pipelines.
type Session struct {
	Facade    *orchestrator.Facade
	Store     *snapshot.Store
	Bus       *snapshot.DespawnBus
	View      *galaxy.View
	Panel     *ui.Panel
	Machine   *Machine
	Log       *MessageLog
	Scheduler *Scheduler

	log   *slog.Logger
	rng   *rand.Rand
	input Input
}

// SessionOptions configures NewSession.
type SessionOptions struct {
	Clock  Clock
	Period time.Duration
	Log    *MessageLog
	Logger *slog.Logger
	Seed   uint64
}

// NewSession assembles a session around an initialized façade.
func NewSession(f *orchestrator.Facade, opts SessionOptions) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Log == nil {
		opts.Log = NewMessageLog(DefaultLogCapacity)
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	bus := &snapshot.DespawnBus{}
	s := &Session{
		Facade:    f,
		Store:     snapshot.NewStore(bus),
		Bus:       bus,
		View:      galaxy.NewView(opts.Logger),
		Panel:     ui.NewPanel(ScreenWidth, ScreenHeight, nil, opts.Logger),
		Machine:   NewMachine(f, opts.Logger),
		Log:       opts.Log,
		Scheduler: NewScheduler(opts.Clock, opts.Period, opts.Logger),
		log:       opts.Logger.With("component", "session"),
		rng:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
	bus.Subscribe(s.View.HandleDespawn)
	s.Machine.OnReset(s.reset)
	s.Scheduler.Fixed = s.FixedTick
	s.Scheduler.Variable = s.VariableFrame
	return s
}

// Start spawns the static scene and shows the initial galaxy before the
// first fixed tick.
func (s *Session) Start() {
	s.View.Setup()
	s.poll()
	s.Bus.Dispatch()
	s.View.Reconcile(s.Store)
	s.Log.Add("Galaxy loaded. Press Start Game.", MsgEvent)
}

// Frame runs one engine frame with the sampled input.
func (s *Session) Frame(in Input) {
	s.input = in
	s.Scheduler.Frame()
}

// ShutdownTimeout bounds how long Shutdown waits for stop_all.
const ShutdownTimeout = 2 * time.Second

// Shutdown ends the game on the orchestrator and runs one last fixed tick
// so the stop goes through the state machine. With an async façade it waits
// up to ShutdownTimeout for the stop to complete.
func (s *Session) Shutdown() {
	s.Panel.Queue().Push(ui.ActionEnd)
	s.FixedTick(0)
	deadline := time.Now().Add(ShutdownTimeout)
	for s.Machine.Held() {
		if time.Now().After(deadline) {
			s.log.Warn("orchestrator did not stop in time", "timeout", ShutdownTimeout)
			return
		}
		time.Sleep(10 * time.Millisecond)
		s.Machine.Tick(0)
	}
}

// FixedTick is the fixed pipeline: commands, state, poll, store, despawns,
// reconciliation, overlays.
func (s *Session) FixedTick(dt time.Duration) {
	for _, a := range s.Panel.Queue().Drain() {
		s.dispatch(a)
	}
	s.Machine.Tick(dt)

	// The orchestrator keeps running while Paused, so the view keeps
	// following it. Only a reset in flight suspends polling.
	live := !s.Machine.Resetting()
	if live {
		s.poll()
	}
	s.Bus.Dispatch()
	s.View.Reconcile(s.Store)

	if live {
		s.View.SyncExplorers(s.Facade.Explorers())
		for _, ev := range s.Facade.DrainEvents() {
			if s.View.SpawnCelestial(ev.Kind, ev.PlanetID) {
				s.Log.Add(fmt.Sprintf("%s strikes planet %d", ev.Kind, ev.PlanetID), MsgEvent)
			}
		}
	}
}

func (s *Session) poll() {
	edges, count := s.Facade.Topology()
	s.Store.Update(snapshot.Build(edges, count, s.Facade.PlanetStates()))
}

func (s *Session) reset() {
	s.Store.Clear()
	s.Panel.ClearSelection()
	s.Log.Add("Resetting galaxy.", MsgEvent)
}

func (s *Session) dispatch(a ui.Action) {
	switch a {
	case ui.ActionStart:
		s.Machine.Fire(StartGame)
	case ui.ActionStop:
		s.Machine.Fire(StopGame)
	case ui.ActionReset:
		s.Machine.Fire(ResetGame)
	case ui.ActionEnd:
		s.Machine.Fire(EndGame)
	default:
		s.manual(a)
	}
}

// manual handles the hazard buttons. They only act on a running galaxy.
func (s *Session) manual(a ui.Action) {
	if st := s.Machine.State(); st != Running || s.Machine.Held() {
		s.log.Info("command ignored", "action", a, "state", st)
		return
	}
	switch a {
	case ui.ActionAsteroid, ui.ActionSunray:
		kind := orchestrator.Sunray
		if a == ui.ActionAsteroid {
			kind = orchestrator.Asteroid
		}
		id, ok := s.target()
		if !ok {
			s.log.Info("no planet to target", "action", a)
			return
		}
		s.Facade.InjectCelestial(id, kind)
		s.View.SpawnCelestial(kind, id)
		s.Log.Add(fmt.Sprintf("%s launched at planet %d", kind, id), MsgEvent)
	case ui.ActionBlind:
		s.Facade.TriggerBlind()
		s.Log.Add("Explorers blinded.", MsgEvent)
	case ui.ActionNuke:
		s.Facade.TriggerNuke()
		for _, id := range s.View.PlanetIDs() {
			s.View.SpawnCelestial(orchestrator.Asteroid, id)
		}
		s.Log.Add("Nuke launched at every planet.", MsgCritical)
	}
}

// target is the selected planet, or a random live one.
func (s *Session) target() (uint32, bool) {
	if sel := s.Panel.Selection; sel.HasPlanet && s.Store.Current().Live(sel.Planet) {
		return sel.Planet, true
	}
	ids := s.Store.Current().PlanetIDs()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[s.rng.IntN(len(ids))], true
}

// VariableFrame is the per-frame pipeline: buttons, scroll, selection, info
// texts and animations.
func (s *Session) VariableFrame(dt time.Duration) {
	in := s.input
	s.Panel.UpdatePointer(in.X, in.Y, in.Down, in.JustPressed)
	if in.Wheel != 0 {
		s.Panel.Wheel(in.X, in.Y, in.Wheel*ui.WheelStep)
	}
	if in.JustPressed && !s.Panel.Covers(in.X, in.Y) {
		s.selectAt(in.X, in.Y)
	}

	s.Panel.SetLogLines(s.Log.Len(), s.Log.Total())
	s.Panel.SetPlanetInfo(s.planetLines())
	s.Panel.SetExplorerInfo(s.explorerLines())

	s.View.SetEdgeAlpha(s.Machine.Timer().Fraction())
	s.View.Animate(dt.Seconds())
}

func (s *Session) selectAt(sx, sy float64) {
	cx, cy := s.View.CameraPos()
	x, y := galaxy.ScreenToWorld(sx, sy, cx, cy, ScreenWidth, ScreenHeight)
	if id, ok := s.View.ExplorerAt(x, y); ok {
		s.Panel.SelectExplorer(id)
		return
	}
	if id, ok := s.View.PlanetAt(x, y); ok {
		s.Panel.SelectPlanet(id)
	}
}

func (s *Session) planetLines() []string {
	sel := s.Panel.Selection
	if !sel.HasPlanet {
		return []string{"No planet selected"}
	}
	status, live := s.Store.Current().PlanetStates[sel.Planet]
	if !live {
		return []string{fmt.Sprintf("Id: %d", sel.Planet), "Destroyed"}
	}
	info, ok := s.Facade.PlanetInfo(sel.Planet)
	if !ok {
		return []string{fmt.Sprintf("Id: %d", sel.Planet), fmt.Sprintf("Status: %s", status)}
	}
	return []string{
		fmt.Sprintf("Name: %s", info.Name),
		fmt.Sprintf("Id: %d", info.ID),
		fmt.Sprintf("Energy: %d/%d", info.EnergyCharged, info.EnergyTotal),
		fmt.Sprintf("Rocket: %s", yesNo(info.HasRocket)),
	}
}

func (s *Session) explorerLines() []string {
	sel := s.Panel.Selection
	if !sel.HasExplorer {
		return []string{"No explorer selected"}
	}
	ex, ok := s.View.ExplorerInfo(sel.Explorer)
	if !ok {
		return []string{fmt.Sprintf("Id: %d", sel.Explorer), "Lost"}
	}
	return []string{
		fmt.Sprintf("Id: %d", ex.ID),
		fmt.Sprintf("Visiting: %d", ex.Planet),
		fmt.Sprintf("Status: %s", ex.Status),
		fmt.Sprintf("ResourceBag: %s", ex.Bag),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
