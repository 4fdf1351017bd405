// Package assets embeds the sample galaxies shipped with the viewer.
package assets

import "embed"

// Galaxies holds galaxies/*.json.
//
//go:embed galaxies/*.json
var Galaxies embed.FS
