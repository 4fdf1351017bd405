package orchestrator

import "fmt"

// PlanetStatus is the lifecycle state the orchestrator reports for a planet.
type PlanetStatus uint8

const (
	StatusIdle      PlanetStatus = iota // created, threads not started
	StatusRunning                       // actively simulated
	StatusPaused                        // stopped by stop_all
	StatusDestroyed                     // gone for good, never comes back
)

func (s PlanetStatus) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusPaused:
		return "Paused"
	case StatusDestroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("PlanetStatus(%d)", uint8(s))
	}
}

// CelestialKind identifies a transient hazard aimed at a planet.
type CelestialKind uint8

const (
	Sunray CelestialKind = iota
	Asteroid
)

func (k CelestialKind) String() string {
	switch k {
	case Sunray:
		return "sunray"
	case Asteroid:
		return "asteroid"
	default:
		return fmt.Sprintf("CelestialKind(%d)", uint8(k))
	}
}

// Edge is an undirected link between two planets as reported by the
// orchestrator. Order and duplicates are not normalised here.
type Edge struct {
	A, B uint32
}

// PlanetState pairs a planet id with its current status.
type PlanetState struct {
	ID     uint32
	Status PlanetStatus
}

// ExplorerState is a point-in-time view of one explorer agent.
type ExplorerState struct {
	ID     uint32
	Planet uint32
	Status string
	Bag    map[string]int
}

// PlanetInfo is the detail block shown for a selected planet.
type PlanetInfo struct {
	ID            uint32
	Name          string
	EnergyCharged int
	EnergyTotal   int
	HasRocket     bool
}

// Event is something the orchestrator did on its own that the renderer
// should visualise.
type Event struct {
	Kind     CelestialKind
	PlanetID uint32
}
