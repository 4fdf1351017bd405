package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultBudget is the soft deadline for a single orchestrator call.
const DefaultBudget = 100 * time.Millisecond

// QueueSize is how many commands the async worker buffers before Begin
// fails them with ErrQueueFull.
const QueueSize = 8

// Op is a potentially slow orchestrator command routed through Begin.
type Op uint8

const (
	OpInit Op = iota
	OpStart
	OpStop
)

func (o Op) String() string {
	switch o {
	case OpInit:
		return "initialize_from_file"
	case OpStart:
		return "start_all"
	case OpStop:
		return "stop_all"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Completion reports the outcome of a command submitted with Begin.
type Completion struct {
	Op  Op
	Gen uint64
	Err error
	// Skipped is set when the façade swallowed a duplicate start/stop.
	Skipped bool
}

// Factory creates a fresh, uninitialized orchestrator. The façade calls it on
// every (re)initialization.
type Factory func() Orchestrator

// Options configures a Facade.
type Options struct {
	// Async moves Init/Start/Stop onto a dedicated worker goroutine.
	Async bool
	// Budget is the soft per-call deadline; overruns are logged.
	Budget time.Duration
	Logger *slog.Logger
}

type job struct {
	op  Op
	gen uint64
}

// Facade is the viewer's only handle on the orchestrator. Poll methods are
// cheap pass-throughs; Init/Start/Stop go through Begin and report back via
// PollCompletion so the caller never blocks in async mode.
//
// In async mode the wrapped orchestrator must tolerate concurrent calls from
// the worker and the render goroutine.
type Facade struct {
	factory Factory
	budget  time.Duration
	log     *slog.Logger
	overrun rate.Sometimes

	mu          sync.Mutex
	orch        Orchestrator
	path        string
	runID       uuid.UUID
	initialized bool
	running     bool
	gen         uint64
	done        []Completion

	async  bool
	jobs   chan job
	eg     *errgroup.Group
	cancel context.CancelFunc
}

// NewFacade creates a façade. Call Close when done to stop the worker.
func NewFacade(factory Factory, opts Options) *Facade {
	if opts.Budget <= 0 {
		opts.Budget = DefaultBudget
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	f := &Facade{
		factory: factory,
		budget:  opts.Budget,
		log:     opts.Logger.With("component", "orchestrator"),
		overrun: rate.Sometimes{Interval: 5 * time.Second},
		async:   opts.Async,
	}
	if f.async {
		ctx, cancel := context.WithCancel(context.Background())
		eg, ctx := errgroup.WithContext(ctx)
		f.jobs = make(chan job, QueueSize)
		f.eg = eg
		f.cancel = cancel
		eg.Go(func() error {
			return f.worker(ctx)
		})
	}
	return f
}

// Close stops the worker goroutine, if any.
func (f *Facade) Close() error {
	if !f.async {
		return nil
	}
	f.cancel()
	return f.eg.Wait()
}

// Initialize loads the galaxy synchronously. It is the bootstrap entry
// point; resets use Begin(OpInit) which reuses the same path.
func (f *Facade) Initialize(path string) error {
	f.mu.Lock()
	f.path = path
	f.mu.Unlock()
	return f.doInit()
}

// Initialized reports whether a galaxy is loaded.
func (f *Facade) Initialized() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialized
}

// Running reports whether start_all has been accepted more recently than stop_all.
func (f *Facade) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

// RunID identifies the current galaxy load in log records.
func (f *Facade) RunID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runID.String()
}

// Begin submits a command and returns the generation it was issued under.
// The outcome is observed with PollCompletion.
func (f *Facade) Begin(op Op) uint64 {
	f.mu.Lock()
	gen := f.gen
	f.mu.Unlock()

	if !f.async {
		f.finish(op, gen, f.run(op))
		return gen
	}
	select {
	case f.jobs <- job{op: op, gen: gen}:
	default:
		f.finish(op, gen, outcome{err: fmt.Errorf("%s: %w", op, ErrQueueFull)})
	}
	return gen
}

// PollCompletion returns the oldest completion of the current generation.
// Completions from cancelled generations are dropped.
func (f *Facade) PollCompletion() (Completion, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.done) > 0 {
		c := f.done[0]
		f.done = f.done[1:]
		if c.Gen == f.gen {
			return c, true
		}
		f.log.Debug("dropping stale completion", "op", c.Op, "gen", c.Gen)
	}
	return Completion{}, false
}

// Cancel makes every in-flight command's completion stale.
func (f *Facade) Cancel() {
	f.mu.Lock()
	f.gen++
	f.mu.Unlock()
}

func (f *Facade) worker(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case j := <-f.jobs:
			f.finish(j.op, j.gen, f.run(j.op))
		}
	}
}

type outcome struct {
	err     error
	skipped bool
}

func (f *Facade) run(op Op) outcome {
	switch op {
	case OpInit:
		return outcome{err: f.doInit()}
	case OpStart:
		return f.doStartStop(true)
	case OpStop:
		return f.doStartStop(false)
	default:
		return outcome{err: fmt.Errorf("unknown op %d", op)}
	}
}

func (f *Facade) finish(op Op, gen uint64, out outcome) {
	f.mu.Lock()
	f.done = append(f.done, Completion{Op: op, Gen: gen, Err: out.err, Skipped: out.skipped})
	f.mu.Unlock()
}

func (f *Facade) doInit() error {
	f.mu.Lock()
	old, wasRunning, path := f.orch, f.running, f.path
	f.mu.Unlock()

	if old != nil && wasRunning {
		if err := f.timed("stop_all", old.StopAll); err != nil {
			f.log.Warn("stop before re-initialize failed", "err", err)
		}
		f.mu.Lock()
		f.running = false
		f.mu.Unlock()
	}

	o := f.factory()
	err := f.timed(OpInit.String(), func() error {
		return o.InitializeFromFile(path)
	})
	if err != nil {
		return fmt.Errorf("initialize %q: %w", path, err)
	}

	f.mu.Lock()
	f.orch = o
	f.initialized = true
	f.running = false
	f.runID = uuid.New()
	id := f.runID.String()
	f.mu.Unlock()

	f.log.Info("galaxy initialized", "path", path, "run_id", id)
	return nil
}

func (f *Facade) doStartStop(start bool) outcome {
	f.mu.Lock()
	o, initialized, running := f.orch, f.initialized, f.running
	f.mu.Unlock()

	op := OpStop
	if start {
		op = OpStart
	}
	if !initialized {
		return outcome{err: fmt.Errorf("%s: %w", op, ErrNotInitialized)}
	}
	if running == start {
		f.log.Info("duplicate command ignored", "op", op)
		return outcome{skipped: true}
	}

	call := o.StopAll
	if start {
		call = o.StartAll
	}
	if err := f.timed(op.String(), call); err != nil {
		return outcome{err: fmt.Errorf("%s: %w", op, err)}
	}

	f.mu.Lock()
	f.running = start
	f.mu.Unlock()
	return outcome{}
}

// current returns the live orchestrator or nil before initialization.
func (f *Facade) current() Orchestrator {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized {
		return nil
	}
	return f.orch
}

func (f *Facade) timed(name string, call func() error) error {
	start := time.Now()
	err := call()
	if took := time.Since(start); took > f.budget {
		f.overrun.Do(func() {
			f.log.Warn("orchestrator call overran tick budget", "call", name, "took", took, "budget", f.budget)
		})
	}
	return err
}

// Topology returns the current edges and planet count, or nothing before init.
func (f *Facade) Topology() ([]Edge, int) {
	o := f.current()
	if o == nil {
		return nil, 0
	}
	var (
		edges []Edge
		n     int
	)
	_ = f.timed("get_topology", func() error {
		edges, n = o.Topology()
		return nil
	})
	return edges, n
}

// PlanetStates returns per-planet statuses, or nothing before init.
func (f *Facade) PlanetStates() []PlanetState {
	o := f.current()
	if o == nil {
		return nil
	}
	var states []PlanetState
	_ = f.timed("get_planet_states", func() error {
		states = o.PlanetStates()
		return nil
	})
	return states
}

// Explorers returns explorer states when the orchestrator exposes them.
func (f *Facade) Explorers() []ExplorerState {
	src, ok := f.current().(ExplorerSource)
	if !ok {
		return nil
	}
	return src.Explorers()
}

// PlanetInfo returns planet details when the orchestrator exposes them.
func (f *Facade) PlanetInfo(id uint32) (PlanetInfo, bool) {
	src, ok := f.current().(PlanetInspector)
	if !ok {
		return PlanetInfo{}, false
	}
	return src.PlanetInfo(id)
}

// DrainEvents returns orchestrator-originated events, if supported.
func (f *Facade) DrainEvents() []Event {
	src, ok := f.current().(EventSource)
	if !ok {
		return nil
	}
	return src.DrainEvents()
}

// InjectCelestial aims a sunray or asteroid at a planet. Failures are logged.
func (f *Facade) InjectCelestial(planetID uint32, kind CelestialKind) {
	f.fire("inject_celestial", func(o Orchestrator) error {
		return o.InjectCelestial(planetID, kind)
	}, "planet", planetID, "kind", kind)
}

// TriggerBlind fires the blind command. Failures are logged.
func (f *Facade) TriggerBlind() {
	f.fire("trigger_blind", Orchestrator.TriggerBlind)
}

// TriggerNuke fires the nuke command. Failures are logged.
func (f *Facade) TriggerNuke() {
	f.fire("trigger_nuke", Orchestrator.TriggerNuke)
}

func (f *Facade) fire(name string, call func(Orchestrator) error, args ...any) {
	o := f.current()
	if o == nil {
		f.log.Warn("command failed", append([]any{"call", name, "err", ErrNotInitialized}, args...)...)
		return
	}
	if err := f.timed(name, func() error { return call(o) }); err != nil {
		f.log.Warn("command failed", append([]any{"call", name, "err", err}, args...)...)
		return
	}
	f.log.Info("command sent", append([]any{"call", name}, args...)...)
}
