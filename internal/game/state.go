package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
)

// GameState is the viewer's coarse lifecycle.
type GameState uint8

const (
	WaitingStart GameState = iota
	Running
	Paused
)

func (s GameState) String() string {
	switch s {
	case WaitingStart:
		return "WaitingStart"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	default:
		return fmt.Sprintf("GameState(%d)", uint8(s))
	}
}

// Event is a request to change the game state.
type Event uint8

const (
	StartGame Event = iota
	StopGame
	ResetGame
	EndGame
)

func (e Event) String() string {
	switch e {
	case StartGame:
		return "StartGame"
	case StopGame:
		return "StopGame"
	case ResetGame:
		return "ResetGame"
	case EndGame:
		return "EndGame"
	default:
		return fmt.Sprintf("Event(%d)", uint8(e))
	}
}

// Commander is the part of the orchestrator façade the machine drives.
type Commander interface {
	Begin(op orchestrator.Op) uint64
	PollCompletion() (orchestrator.Completion, bool)
	Cancel()
}

type effect uint8

const (
	effectNone effect = iota
	effectStart
	effectStop
	effectReset
)

type transitionKey struct {
	from GameState
	ev   Event
}

type transition struct {
	to     GameState
	effect effect
}

// transitions is the full table. A (state, event) pair missing here is an
// illegal transition and leaves the state unchanged.
var transitions = map[transitionKey]transition{
	{WaitingStart, StartGame}: {Running, effectStart},
	{WaitingStart, ResetGame}: {WaitingStart, effectReset},
	{WaitingStart, EndGame}:   {WaitingStart, effectStop},

	{Running, StopGame}:  {Paused, effectNone},
	{Running, ResetGame}: {WaitingStart, effectReset},
	{Running, EndGame}:   {WaitingStart, effectStop},

	{Paused, StartGame}: {Running, effectStart},
	{Paused, ResetGame}: {WaitingStart, effectReset},
	{Paused, EndGame}:   {WaitingStart, effectStop},
}

// Legal reports whether ev is accepted in state s.
func Legal(s GameState, ev Event) bool {
	_, ok := transitions[transitionKey{s, ev}]
	return ok
}

type held struct {
	gen uint64
	ev  Event
	tr  transition
}

// Machine owns the game state. It must only be driven from the fixed tick.
//
// Transitions backed by an orchestrator command are held until the command
// completes; events that arrive meanwhile are queued and replayed in order.
// ResetGame is never queued: it cancels whatever is in flight.
type Machine struct {
	state    GameState
	cmd      Commander
	log      *slog.Logger
	timer    *Timer
	onReset  func()
	pending  *held
	deferred []Event
}

// NewMachine creates a machine in WaitingStart.
func NewMachine(cmd Commander, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		state: WaitingStart,
		cmd:   cmd,
		log:   logger.With("component", "state"),
		timer: NewTimer(time.Second),
	}
}

// OnReset registers the hook run when a ResetGame is accepted, before the
// re-initialize is submitted.
func (m *Machine) OnReset(fn func()) { m.onReset = fn }

// State returns the current state.
func (m *Machine) State() GameState { return m.state }

// Timer returns the start countdown.
func (m *Machine) Timer() *Timer { return m.timer }

// Held reports whether a transition waits for the orchestrator.
func (m *Machine) Held() bool { return m.pending != nil }

// Resetting reports whether a re-initialize is in flight.
func (m *Machine) Resetting() bool {
	return m.pending != nil && m.pending.tr.effect == effectReset
}

// Fire applies one event.
func (m *Machine) Fire(ev Event) {
	if ev == ResetGame {
		m.cmd.Cancel()
		m.pending = nil
		m.deferred = nil
	} else if m.pending != nil {
		m.deferred = append(m.deferred, ev)
		m.log.Debug("event queued behind held transition", "event", ev, "held", m.pending.ev)
		return
	}
	m.apply(ev)
	m.poll()
}

func (m *Machine) apply(ev Event) {
	tr, ok := transitions[transitionKey{m.state, ev}]
	if !ok {
		m.log.Info("illegal transition", "state", m.state, "event", ev)
		return
	}
	switch tr.effect {
	case effectNone:
		m.enter(tr.to, ev)
	case effectStart:
		m.hold(ev, tr, orchestrator.OpStart)
	case effectStop:
		m.hold(ev, tr, orchestrator.OpStop)
	case effectReset:
		if m.onReset != nil {
			m.onReset()
		}
		m.enter(tr.to, ev)
		m.hold(ev, tr, orchestrator.OpInit)
	}
}

func (m *Machine) hold(ev Event, tr transition, op orchestrator.Op) {
	gen := m.cmd.Begin(op)
	m.pending = &held{gen: gen, ev: ev, tr: tr}
}

func (m *Machine) enter(to GameState, ev Event) {
	if to == Running && ev == StartGame {
		m.timer.Reset()
	}
	if to != m.state {
		m.log.Info("state changed", "from", m.state, "to", to, "event", ev)
	}
	m.state = to
}

// Tick polls for command completions and advances the countdown.
func (m *Machine) Tick(dt time.Duration) {
	m.poll()
	m.timer.Tick(dt)
}

func (m *Machine) poll() {
	for m.pending != nil {
		c, ok := m.cmd.PollCompletion()
		if !ok {
			return
		}
		if c.Gen != m.pending.gen {
			m.log.Debug("ignoring completion", "op", c.Op, "gen", c.Gen)
			continue
		}
		p := m.pending
		m.pending = nil
		if c.Err != nil {
			m.log.Error("command failed, state unchanged", "op", c.Op, "event", p.ev, "err", c.Err)
		} else if p.tr.effect != effectReset {
			m.enter(p.tr.to, p.ev)
		}

		queued := m.deferred
		m.deferred = nil
		for i, ev := range queued {
			if m.pending != nil {
				m.deferred = append(m.deferred, queued[i:]...)
				break
			}
			m.apply(ev)
		}
	}
}

// Timer is a one-shot countdown. The zero value counts as finished.
type Timer struct {
	Duration time.Duration
	elapsed  time.Duration
	started  bool
}

// NewTimer creates a finished timer of duration d.
func NewTimer(d time.Duration) *Timer {
	return &Timer{Duration: d}
}

// Reset restarts the countdown.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.started = true
}

// Tick advances the countdown.
func (t *Timer) Tick(dt time.Duration) {
	if !t.started || t.Finished() {
		return
	}
	t.elapsed = min(t.elapsed+dt, t.Duration)
}

// Finished reports whether the countdown ran out.
func (t *Timer) Finished() bool {
	return !t.started || t.elapsed >= t.Duration
}

// Fraction is the elapsed share of the countdown in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.Finished() || t.Duration <= 0 {
		return 1
	}
	return float64(t.elapsed) / float64(t.Duration)
}
