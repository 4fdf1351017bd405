// Package ui holds the side menu: its node tree, button states, the log
// viewport scroll and the info blocks. It knows nothing about drawing.
package ui

import "fmt"

// Action is a command produced by the menu or a key binding.
type Action uint8

const (
	ActionStart Action = iota
	ActionStop
	ActionAsteroid
	ActionSunray
	ActionBlind
	ActionNuke
	ActionReset
	ActionEnd
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionAsteroid:
		return "asteroid"
	case ActionSunray:
		return "sunray"
	case ActionBlind:
		return "blind"
	case ActionNuke:
		return "nuke"
	case ActionReset:
		return "reset"
	case ActionEnd:
		return "end"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Label is the button caption for a.
func (a Action) Label() string {
	switch a {
	case ActionStart:
		return "Start Game"
	case ActionStop:
		return "Stop Game"
	case ActionAsteroid:
		return "Launch Asteroid"
	case ActionSunray:
		return "Launch Sunray"
	case ActionBlind:
		return "Blind"
	case ActionNuke:
		return "Nuke"
	default:
		return a.String()
	}
}

// MenuActions are the buttons in top-to-bottom order.
var MenuActions = []Action{ActionStart, ActionStop, ActionAsteroid, ActionSunray, ActionBlind, ActionNuke}

// CommandQueue buffers actions between the variable schedule that produces
// them and the fixed tick that consumes them.
type CommandQueue struct {
	actions []Action
}

// Push appends an action.
func (q *CommandQueue) Push(a Action) {
	q.actions = append(q.actions, a)
}

// Len returns the number of queued actions.
func (q *CommandQueue) Len() int { return len(q.actions) }

// Drain returns the queued actions in order and empties the queue.
func (q *CommandQueue) Drain() []Action {
	out := q.actions
	q.actions = nil
	return out
}
