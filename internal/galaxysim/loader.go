package galaxysim

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
)

// DefaultCells is the energy cell count of a planet that does not set one.
const DefaultCells = 5

// GalaxyFile is the JSON-serializable definition of a galaxy.
type GalaxyFile struct {
	Name      string        `json:"name"`
	Planets   []PlanetDef   `json:"planets"`
	Edges     [][2]uint32   `json:"edges"`
	Explorers []ExplorerDef `json:"explorers"`
}

// PlanetDef defines one planet.
type PlanetDef struct {
	ID    uint32 `json:"id"`
	Name  string `json:"name"`
	Cells int    `json:"cells"`
}

// ExplorerDef places an explorer on its starting planet.
type ExplorerDef struct {
	ID     uint32 `json:"id"`
	Planet uint32 `json:"planet"`
}

// LoadGalaxy parses and validates a GalaxyFile from JSON bytes.
func LoadGalaxy(data []byte) (*GalaxyFile, error) {
	var g GalaxyFile
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse galaxy: %w: %w", orchestrator.ErrParse, err)
	}
	if len(g.Planets) == 0 {
		return nil, fmt.Errorf("%w: galaxy has no planets", orchestrator.ErrParse)
	}

	ids := make(map[uint32]bool, len(g.Planets))
	for i, p := range g.Planets {
		if ids[p.ID] {
			return nil, fmt.Errorf("%w: duplicate planet id %d", orchestrator.ErrParse, p.ID)
		}
		ids[p.ID] = true
		if p.Cells <= 0 {
			g.Planets[i].Cells = DefaultCells
		}
		if p.Name == "" {
			g.Planets[i].Name = fmt.Sprintf("Planet %d", p.ID)
		}
	}
	for _, e := range g.Edges {
		if !ids[e[0]] || !ids[e[1]] {
			return nil, fmt.Errorf("%w: edge %v names an unknown planet", orchestrator.ErrParse, e)
		}
	}
	seen := map[uint32]bool{}
	for _, x := range g.Explorers {
		if seen[x.ID] {
			return nil, fmt.Errorf("%w: duplicate explorer id %d", orchestrator.ErrParse, x.ID)
		}
		seen[x.ID] = true
		if !ids[x.Planet] {
			return nil, fmt.Errorf("%w: explorer %d starts on unknown planet %d", orchestrator.ErrParse, x.ID, x.Planet)
		}
	}
	return &g, nil
}

// LoadGalaxyFile reads and parses path.
func LoadGalaxyFile(path string) (*GalaxyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", orchestrator.ErrBadPath, err)
	}
	return LoadGalaxy(data)
}
