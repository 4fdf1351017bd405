package game

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTickPeriod is the fixed tick used for polling the orchestrator.
const DefaultTickPeriod = 600 * time.Millisecond

// MaxCatchUp bounds how many fixed ticks one frame may run after a stall.
const MaxCatchUp = 4

// Clock is the scheduler's time source.
type Clock interface {
	Now() time.Time
}

// RealClock reads the monotonic wall clock.
type RealClock struct{}

// Now returns time.Now.
func (RealClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable time source for tests.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current mocked time.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Scheduler splits frames into a fixed-period schedule and a per-frame
// schedule. Both run on the caller's goroutine; fixed ticks due in a frame
// run before the frame's variable callback.
type Scheduler struct {
	Period   time.Duration
	Fixed    func(dt time.Duration)
	Variable func(dt time.Duration)

	clock   Clock
	log     *slog.Logger
	started bool
	last    time.Time
	acc     time.Duration
	ticks   uint64
}

// NewScheduler creates a scheduler driven by clock. A non-positive period
// falls back to DefaultTickPeriod.
func NewScheduler(clock Clock, period time.Duration, logger *slog.Logger) *Scheduler {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		Period: period,
		clock:  clock,
		log:    logger.With("component", "scheduler"),
	}
}

// Ticks returns the number of fixed ticks run so far.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Frame runs one frame and returns how many fixed ticks it ran. The first
// frame only anchors the clock.
func (s *Scheduler) Frame() int {
	now := s.clock.Now()
	if !s.started {
		s.started = true
		s.last = now
		if s.Variable != nil {
			s.Variable(0)
		}
		return 0
	}
	dt := now.Sub(s.last)
	s.last = now
	if dt < 0 {
		dt = 0
	}
	s.acc += dt

	n := 0
	for s.acc >= s.Period {
		if n == MaxCatchUp {
			dropped := s.acc / s.Period
			s.acc %= s.Period
			s.log.Debug("fixed ticks dropped", "count", int(dropped))
			break
		}
		s.acc -= s.Period
		n++
		s.ticks++
		if s.Fixed != nil {
			s.Fixed(s.Period)
		}
	}
	if s.Variable != nil {
		s.Variable(dt)
	}
	return n
}
