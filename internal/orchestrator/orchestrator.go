package orchestrator

import "errors"

//go:generate go tool mockgen -destination=./mocks/orchestrator_mock.go -package=mocks . Orchestrator,ExplorerSource,PlanetInspector,EventSource

var (
	// ErrBadPath is returned when the galaxy file cannot be opened.
	ErrBadPath = errors.New("galaxy file path is not readable")
	// ErrParse is returned when the galaxy file content is malformed.
	ErrParse = errors.New("galaxy file could not be parsed")
	// ErrAlreadyInitialized is returned by a second InitializeFromFile.
	ErrAlreadyInitialized = errors.New("orchestrator already initialized")
	// ErrNotInitialized is returned by commands issued before initialization.
	ErrNotInitialized = errors.New("orchestrator not initialized")
	// ErrQueueFull is reported when the async worker has too many commands pending.
	ErrQueueFull = errors.New("worker queue full")
)

// Orchestrator is the external simulation the viewer renders.
// InitializeFromFile must succeed before any other call.
type Orchestrator interface {
	InitializeFromFile(path string) error
	// Topology returns the current edge list and planet count.
	Topology() ([]Edge, int)
	PlanetStates() []PlanetState
	StartAll() error
	StopAll() error
	InjectCelestial(planetID uint32, kind CelestialKind) error
	TriggerBlind() error
	TriggerNuke() error
}

// ExplorerSource is implemented by orchestrators that expose explorer agents.
type ExplorerSource interface {
	Explorers() []ExplorerState
}

// PlanetInspector is implemented by orchestrators that expose planet details.
type PlanetInspector interface {
	PlanetInfo(id uint32) (PlanetInfo, bool)
}

// EventSource is implemented by orchestrators that emit their own celestial
// events. DrainEvents returns and forgets everything queued since the last call.
type EventSource interface {
	DrainEvents() []Event
}
