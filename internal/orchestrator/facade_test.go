package orchestrator_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator/mocks"
	"go.uber.org/mock/gomock"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFacade(t *testing.T, async bool, orchs ...orchestrator.Orchestrator) *orchestrator.Facade {
	t.Helper()
	next := 0
	factory := func() orchestrator.Orchestrator {
		if next >= len(orchs) {
			t.Fatalf("factory called %d times, only %d orchestrators provided", next+1, len(orchs))
		}
		o := orchs[next]
		next++
		return o
	}
	f := orchestrator.NewFacade(factory, orchestrator.Options{Async: async, Logger: quietLogger()})
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestFacade_CommandsBeforeInitFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	f := newFacade(t, false, m)

	f.Begin(orchestrator.OpStart)
	c, ok := f.PollCompletion()
	if !ok {
		t.Fatal("expected a completion")
	}
	if !errors.Is(c.Err, orchestrator.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", c.Err)
	}

	edges, n := f.Topology()
	if edges != nil || n != 0 {
		t.Errorf("expected empty topology before init, got %v %d", edges, n)
	}
	if f.PlanetStates() != nil {
		t.Error("expected no planet states before init")
	}
}

func TestFacade_StartAllIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile("galaxy.json").Return(nil)
	m.EXPECT().StartAll().Return(nil).Times(1)

	f := newFacade(t, false, m)
	if err := f.Initialize("galaxy.json"); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	f.Begin(orchestrator.OpStart)
	f.Begin(orchestrator.OpStart)

	first, ok := f.PollCompletion()
	if !ok || first.Err != nil || first.Skipped {
		t.Fatalf("first start: %+v ok=%v", first, ok)
	}
	second, ok := f.PollCompletion()
	if !ok || second.Err != nil || !second.Skipped {
		t.Fatalf("second start should be swallowed: %+v ok=%v", second, ok)
	}
	if !f.Running() {
		t.Error("facade should report running")
	}
}

func TestFacade_StartFailureKeepsStopped(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	boom := errors.New("boom")
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)
	m.EXPECT().StartAll().Return(boom)

	f := newFacade(t, false, m)
	if err := f.Initialize("g"); err != nil {
		t.Fatal(err)
	}
	f.Begin(orchestrator.OpStart)
	c, _ := f.PollCompletion()
	if !errors.Is(c.Err, boom) {
		t.Fatalf("expected wrapped boom, got %v", c.Err)
	}
	if f.Running() {
		t.Error("failed start must not mark running")
	}
}

func TestFacade_InitializeWrapsOrchestratorError(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile("missing").Return(orchestrator.ErrBadPath)

	f := newFacade(t, false, m)
	err := f.Initialize("missing")
	if !errors.Is(err, orchestrator.ErrBadPath) {
		t.Fatalf("expected ErrBadPath, got %v", err)
	}
	if f.Initialized() {
		t.Error("facade must not be initialized after a failed load")
	}
}

func TestFacade_ReinitializeStopsRunningOrchestrator(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockOrchestrator(ctrl)
	second := mocks.NewMockOrchestrator(ctrl)

	gomock.InOrder(
		first.EXPECT().InitializeFromFile("g").Return(nil),
		first.EXPECT().StartAll().Return(nil),
		first.EXPECT().StopAll().Return(nil),
		second.EXPECT().InitializeFromFile("g").Return(nil),
	)

	f := newFacade(t, false, first, second)
	if err := f.Initialize("g"); err != nil {
		t.Fatal(err)
	}
	runID := f.RunID()
	f.Begin(orchestrator.OpStart)
	f.Begin(orchestrator.OpInit)

	for i := 0; i < 2; i++ {
		c, ok := f.PollCompletion()
		if !ok || c.Err != nil {
			t.Fatalf("completion %d: %+v ok=%v", i, c, ok)
		}
	}
	if f.Running() {
		t.Error("re-initialized galaxy must start stopped")
	}
	if f.RunID() == runID {
		t.Error("re-initialize should mint a new run id")
	}
}

func TestFacade_CancelDropsStaleCompletions(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)
	m.EXPECT().StartAll().Return(nil)

	f := newFacade(t, false, m)
	if err := f.Initialize("g"); err != nil {
		t.Fatal(err)
	}
	gen := f.Begin(orchestrator.OpStart)
	f.Cancel()
	if c, ok := f.PollCompletion(); ok {
		t.Fatalf("stale completion from gen %d leaked: %+v", gen, c)
	}
}

func TestFacade_AsyncCompletesOnWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)
	m.EXPECT().StartAll().Return(nil)

	f := newFacade(t, true, m)
	if err := f.Initialize("g"); err != nil {
		t.Fatal(err)
	}
	f.Begin(orchestrator.OpStart)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c, ok := f.PollCompletion(); ok {
			if c.Op != orchestrator.OpStart || c.Err != nil {
				t.Fatalf("unexpected completion %+v", c)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("async start never completed")
}

func TestFacade_FireAndForgetCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)
	m.EXPECT().InjectCelestial(uint32(3), orchestrator.Asteroid).Return(errors.New("no such planet"))
	m.EXPECT().TriggerBlind().Return(nil)
	m.EXPECT().TriggerNuke().Return(nil)

	f := newFacade(t, false, m)
	if err := f.Initialize("g"); err != nil {
		t.Fatal(err)
	}
	f.InjectCelestial(3, orchestrator.Asteroid)
	f.TriggerBlind()
	f.TriggerNuke()
}

func TestFacade_OptionalCapabilities(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockOrchestrator(ctrl)
	m.EXPECT().InitializeFromFile(gomock.Any()).Return(nil)

	f := newFacade(t, false, m)
	if err := f.Initialize("g"); err != nil {
		t.Fatal(err)
	}
	if f.Explorers() != nil {
		t.Error("plain orchestrator has no explorers")
	}
	if _, ok := f.PlanetInfo(0); ok {
		t.Error("plain orchestrator has no planet info")
	}
	if f.DrainEvents() != nil {
		t.Error("plain orchestrator has no events")
	}
}

func TestFacade_QueueFullReportsError(t *testing.T) {
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

	f := newFacade(t, true, m)
	if err := f.Initialize("g"); err != nil {
		t.Fatal(err)
	}
	defer close(release)

	f.Begin(orchestrator.OpStart)
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up the first start")
	}
	for range orchestrator.QueueSize {
		f.Begin(orchestrator.OpStart)
	}
	if _, ok := f.PollCompletion(); ok {
		t.Fatal("no command should have completed while the worker is blocked")
	}

	f.Begin(orchestrator.OpStart)
	c, ok := f.PollCompletion()
	if !ok {
		t.Fatal("overflowing command should complete immediately")
	}
	if c.Op != orchestrator.OpStart || !errors.Is(c.Err, orchestrator.ErrQueueFull) {
		t.Errorf("completion = %+v, want ErrQueueFull", c)
	}
	if f.Running() {
		t.Error("facade reports running before start_all returned")
	}
}
