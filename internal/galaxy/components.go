// Package galaxy keeps the visual entities (planets, edges, explorers and
// celestial hazards) in step with the latest orchestrator snapshot.
package galaxy

import (
	"image/color"

	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
	"github.com/omc-galaxy/galaxy_viewer/internal/snapshot"
)

// Layout constants, world units (one unit = one logical pixel).
const (
	GalaxyRadius   = 250.0
	PlanetRadius   = 50.0
	CelestialRad   = PlanetRadius / 2
	ExplorerSize   = 40.0
	BackgroundW    = 1920.0
	BackgroundH    = 1080.0
	PlanetSprites  = 7
	ExplorerSlots  = 8
	ExplorerJitter = PlanetRadius * 0.8

	// CelestialLifetime is three fixed ticks at the default period.
	CelestialLifetime = 1.8
	asteroidApproach  = 220.0
)

// Draw layers.
const (
	ZBackground = iota
	ZEdge
	ZPlanet
	ZExplorer
	ZCelestial
)

// Logical asset names.
const (
	AssetSky      = "sky"
	AssetExplorer = "explorer"
	AssetAsteroid = "asteroid"
	AssetSunray   = "sunray"
)

// Transform places an entity in world space. Y grows upwards and the origin
// is the centre of the screen.
type Transform struct {
	X, Y     float64
	Rotation float64 // radians, counter-clockwise
	Z        int
}

// Sprite names the image to draw and its size in world units. An empty Asset
// draws a solid rectangle of Color.
type Sprite struct {
	Asset string
	W, H  float64
	Color color.RGBA
	Alpha float64
}

// Planet marks a planet visual.
type Planet struct {
	ID     uint32
	Radius float64
}

// Edge marks an edge visual between two planets.
type Edge struct {
	Key    snapshot.EdgeKey
	Length float64
}

// Explorer marks an explorer visual. Texts are pre-formatted for the panel.
type Explorer struct {
	ID     uint32
	Planet uint32
	Status string
	Bag    string
}

// Celestial marks a transient asteroid or sunray.
type Celestial struct {
	Kind         orchestrator.CelestialKind
	PlanetID     uint32
	FromX, FromY float64
	Lifetime     float64
	Remaining    float64
}

// Background marks the full-screen sky sprite.
type Background struct{}

// Camera marks the single 2D camera. It looks at (X, Y).
type Camera struct {
	X, Y float64
}

// PlanetAsset returns the sprite used for planet id, round-robin over the palette.
func PlanetAsset(id uint32) string {
	return planetAssets[id%PlanetSprites]
}

var planetAssets = [PlanetSprites]string{
	"planet_0", "planet_1", "planet_2", "planet_3", "planet_4", "planet_5", "planet_6",
}

// AssetNames lists every logical image name the view draws.
func AssetNames() []string {
	names := []string{AssetSky, AssetExplorer, AssetAsteroid, AssetSunray}
	return append(names, planetAssets[:]...)
}

var white = color.RGBA{255, 255, 255, 255}
