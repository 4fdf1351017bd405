package game

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator/mocks"
	"github.com/omc-galaxy/galaxy_viewer/internal/snapshot"
	"github.com/omc-galaxy/galaxy_viewer/internal/ui"
	"go.uber.org/mock/gomock"
)

var ringEdges = []orchestrator.Edge{{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 0}}

func newSession(t *testing.T, logger *slog.Logger, orchs ...orchestrator.Orchestrator) *Session {
	t.Helper()
	next := 0
	f := orchestrator.NewFacade(func() orchestrator.Orchestrator {
		o := orchs[next]
		next++
		return o
	}, orchestrator.Options{Logger: logger})
	if err := f.Initialize("galaxy.json"); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	s := NewSession(f, SessionOptions{
		Clock:  NewManualClock(time.Unix(0, 0)),
		Logger: logger,
		Seed:   1,
	})
	s.Start()
	return s
}

func press(s *Session, a ui.Action) {
	s.Panel.Queue().Push(a)
	s.FixedTick(DefaultTickPeriod)
}

func TestSession_StartStop(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile("galaxy.json").Return(nil)
	m.EXPECT().Topology().Return(ringEdges, 4).AnyTimes()
	m.EXPECT().PlanetStates().Return(nil).AnyTimes()
	m.EXPECT().StartAll().Return(nil).Times(1)

	s := newSession(t, logger, m)
	if got := s.View.PlanetIDs(); len(got) != 4 {
		t.Fatalf("initial ring = %v", got)
	}

	press(s, ui.ActionStart)
	if s.Machine.State() != Running {
		t.Fatalf("state = %v, want Running", s.Machine.State())
	}
	press(s, ui.ActionStop)
	if s.Machine.State() != Paused {
		t.Fatalf("state = %v, want Paused", s.Machine.State())
	}

	buf.Reset()
	press(s, ui.ActionStop)
	if s.Machine.State() != Paused {
		t.Errorf("state = %v after second stop", s.Machine.State())
	}
	if !strings.Contains(buf.String(), "illegal transition") {
		t.Errorf("second stop not logged as illegal:\n%s", buf.String())
	}
}

func TestSession_PausedKeepsPolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)
	m.EXPECT().StartAll().Return(nil)
	m.EXPECT().PlanetStates().Return(nil).AnyTimes()

	full := m.EXPECT().Topology().Return(ringEdges, 4).Times(3)
	m.EXPECT().Topology().Return(ringEdges[:1], 2).After(full).AnyTimes()

	s := newSession(t, discard(), m) // poll 1
	press(s, ui.ActionStart)         // poll 2
	press(s, ui.ActionStop)          // poll 3, paused
	if s.Machine.State() != Paused {
		t.Fatalf("state = %v, want Paused", s.Machine.State())
	}

	// Planets destroyed while paused still leave the view.
	s.FixedTick(DefaultTickPeriod)
	if got := s.View.EdgeKeys(); !slices.Equal(got, []snapshot.EdgeKey{{A: 0, B: 1}}) {
		t.Errorf("edges while paused = %v", got)
	}
	if s.Machine.State() != Paused {
		t.Errorf("polling changed the state to %v", s.Machine.State())
	}
}

func TestSession_QueueFullKeepsState(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)
	entered := make(chan struct{})
	release := make(chan struct{})
	m.EXPECT().StartAll().DoAndReturn(func() error {
		close(entered)
		<-release
		return nil
	})

	f := orchestrator.NewFacade(func() orchestrator.Orchestrator { return m },
		orchestrator.Options{Async: true, Logger: discard()})
	t.Cleanup(func() { _ = f.Close() })
	if err := f.Initialize("galaxy.json"); err != nil {
		t.Fatal(err)
	}
	defer close(release)

	// Another caller occupies the worker and fills its queue.
	f.Begin(orchestrator.OpStart)
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up the first start")
	}
	for range orchestrator.QueueSize {
		f.Begin(orchestrator.OpStart)
	}

	mach := NewMachine(f, logger)
	mach.state = Paused
	mach.Fire(StartGame)
	if mach.State() != Paused || mach.Held() {
		t.Errorf("state=%v held=%v, want Paused and released", mach.State(), mach.Held())
	}
	out := buf.String()
	if !strings.Contains(out, "command failed, state unchanged") || !strings.Contains(out, "worker queue full") {
		t.Errorf("log = %q", out)
	}
}

func TestSession_ManualCommandsOnlyWhileRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)
	m.EXPECT().Topology().Return(ringEdges, 4).AnyTimes()
	m.EXPECT().PlanetStates().Return(nil).AnyTimes()
	m.EXPECT().StartAll().Return(nil)
	m.EXPECT().InjectCelestial(uint32(2), orchestrator.Asteroid).Return(nil).Times(1)
	m.EXPECT().TriggerNuke().Return(nil).Times(1)

	s := newSession(t, discard(), m)
	press(s, ui.ActionAsteroid) // ignored while waiting

	press(s, ui.ActionStart)
	s.Panel.SelectPlanet(2)
	press(s, ui.ActionAsteroid)
	if s.View.CelestialCount() != 1 {
		t.Errorf("celestials = %d after asteroid", s.View.CelestialCount())
	}

	press(s, ui.ActionNuke)
	if s.View.CelestialCount() != 4 {
		t.Errorf("celestials = %d after nuke, want one per planet", s.View.CelestialCount())
	}
}

func TestSession_ResetReinitializes(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockOrchestrator(ctrl)
	second := mocks.NewMockOrchestrator(ctrl)

	first.EXPECT().InitializeFromFile("galaxy.json").Return(nil)
	first.EXPECT().Topology().Return(ringEdges, 4).AnyTimes()
	first.EXPECT().PlanetStates().Return(nil).AnyTimes()
	first.EXPECT().StartAll().Return(nil)
	first.EXPECT().StopAll().Return(nil)

	second.EXPECT().InitializeFromFile("galaxy.json").Return(nil)
	second.EXPECT().Topology().Return([]orchestrator.Edge{{A: 0, B: 1}, {A: 1, B: 2}}, 3).AnyTimes()
	second.EXPECT().PlanetStates().Return(nil).AnyTimes()

	s := newSession(t, discard(), first, second)
	press(s, ui.ActionStart)
	press(s, ui.ActionReset)

	if s.Machine.State() != WaitingStart {
		t.Errorf("state = %v", s.Machine.State())
	}
	if got := s.View.PlanetIDs(); !slices.Equal(got, []uint32{0, 1, 2}) {
		t.Errorf("planets = %v", got)
	}
	if s.View.RingSize() != 3 {
		t.Errorf("ring size = %d, want 3", s.View.RingSize())
	}
	if s.Facade.Running() {
		t.Error("reset galaxy should not be running")
	}
}

func TestSession_FrameRoutesInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)
	m.EXPECT().Topology().Return(ringEdges, 4).AnyTimes()
	m.EXPECT().PlanetStates().Return(nil).AnyTimes()

	s := newSession(t, discard(), m)

	// Planet 0 sits at world (250, 0), screen (1210, 540).
	s.Frame(Input{X: 1210, Y: 540, Down: true, JustPressed: true})
	if !s.Panel.Selection.HasPlanet || s.Panel.Selection.Planet != 0 {
		t.Fatalf("selection = %+v", s.Panel.Selection)
	}
	lines := s.Panel.InfoBlocks()[0].Block.Lines
	if len(lines) != 2 || lines[0] != "Id: 0" {
		t.Errorf("planet info = %q", lines)
	}

	start := s.Panel.Buttons()[0].Rect
	s.Frame(Input{X: start.X + 1, Y: start.Y + 1, Down: true, JustPressed: true})
	if got := s.Panel.Queue().Drain(); !slices.Equal(got, []ui.Action{ui.ActionStart}) {
		t.Errorf("queued = %v", got)
	}
}

func TestSession_ShutdownStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)
	m.EXPECT().Topology().Return(ringEdges, 4).AnyTimes()
	m.EXPECT().PlanetStates().Return(nil).AnyTimes()
	m.EXPECT().StartAll().Return(nil)
	m.EXPECT().StopAll().Return(nil)

	s := newSession(t, discard(), m)
	press(s, ui.ActionStart)
	s.Shutdown()
	if s.Machine.State() != WaitingStart || s.Facade.Running() {
		t.Errorf("state=%v running=%v", s.Machine.State(), s.Facade.Running())
	}
}

func TestSession_ShutdownWaitsForAsyncStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)
	m.EXPECT().Topology().Return(ringEdges, 4).AnyTimes()
	m.EXPECT().PlanetStates().Return(nil).AnyTimes()
	m.EXPECT().StartAll().Return(nil)
	m.EXPECT().StopAll().DoAndReturn(func() error {
		time.Sleep(30 * time.Millisecond)
		return nil
	})

	f := orchestrator.NewFacade(func() orchestrator.Orchestrator { return m },
		orchestrator.Options{Async: true, Logger: discard()})
	t.Cleanup(func() { _ = f.Close() })
	if err := f.Initialize("galaxy.json"); err != nil {
		t.Fatal(err)
	}
	s := NewSession(f, SessionOptions{Clock: NewManualClock(time.Unix(0, 0)), Logger: discard(), Seed: 1})
	s.Start()

	press(s, ui.ActionStart)
	deadline := time.Now().Add(time.Second)
	for s.Machine.Held() {
		if time.Now().After(deadline) {
			t.Fatal("start never completed")
		}
		time.Sleep(time.Millisecond)
		s.Machine.Tick(0)
	}

	s.Shutdown()
	if s.Machine.Held() || s.Machine.State() != WaitingStart || f.Running() {
		t.Errorf("held=%v state=%v running=%v", s.Machine.Held(), s.Machine.State(), f.Running())
	}
}
