// Package sprites loads the viewer's images by logical name and paints a
// placeholder for any image that is missing or unreadable.
package sprites

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ojrac/opensimplex-go"
	_ "golang.org/x/image/webp"
)

// Extensions are tried in order for every logical name.
var Extensions = []string{".png", ".webp"}

// PlaceholderSize is the edge length of generated round images.
const PlaceholderSize = 64

// Set maps logical names to decoded images.
type Set map[string]image.Image

// Load reads every name from dir. A name with no readable file gets a
// placeholder and one WARN record; Load itself never fails.
func Load(dir string, names []string, logger *slog.Logger) Set {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "sprites")
	set := make(Set, len(names))
	for _, name := range names {
		img, path, err := find(dir, name)
		if err != nil {
			log.Warn("image unavailable, using placeholder", "name", name, "dir", dir, "err", err)
			set[name] = Placeholder(name)
			continue
		}
		log.Debug("image loaded", "name", name, "path", path, "size", img.Bounds().Size())
		set[name] = img
	}
	return set
}

func find(dir, name string) (image.Image, string, error) {
	var errs []error
	for _, ext := range Extensions {
		path := filepath.Join(dir, name+ext)
		img, err := decode(path)
		if err == nil {
			return img, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil, "", fmt.Errorf("no %s file for %q", strings.Join(Extensions, "/"), name)
	}
	return nil, "", errors.Join(errs...)
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// planetTints colours the planet placeholders, indexed by sprite number.
var planetTints = [...]color.NRGBA{
	{85, 85, 255, 255},
	{85, 255, 85, 255},
	{255, 85, 85, 255},
	{255, 255, 85, 255},
	{85, 255, 255, 255},
	{255, 85, 255, 255},
	{170, 85, 0, 255},
}

// Placeholder paints a stand-in image for a logical name.
func Placeholder(name string) image.Image {
	switch {
	case name == "sky":
		return starfield(480, 270, 3)
	case name == "explorer":
		return diamond(PlaceholderSize, color.NRGBA{255, 255, 255, 255})
	case name == "asteroid":
		return disc(PlaceholderSize, color.NRGBA{170, 170, 170, 255}, false)
	case name == "sunray":
		return disc(PlaceholderSize, color.NRGBA{255, 255, 85, 255}, true)
	case strings.HasPrefix(name, "planet_"):
		var n int
		fmt.Sscanf(name, "planet_%d", &n)
		return disc(PlaceholderSize, planetTints[n%len(planetTints)], false)
	default:
		return disc(PlaceholderSize, color.NRGBA{255, 0, 255, 255}, false)
	}
}

// disc draws a filled circle. A soft disc fades towards its rim.
func disc(size int, c color.NRGBA, soft bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r) / r
			if d > 1 {
				continue
			}
			px := c
			if soft {
				px.A = uint8(float64(c.A) * (1 - d*d))
			}
			img.SetNRGBA(x, y, px)
		}
	}
	return img
}

func diamond(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	h := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if abs(x-h)+abs(y-h) <= h {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

// starfield paints a dark sky with noise-placed stars.
func starfield(w, h int, seed int64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	noise := opensimplex.NewNormalized(seed)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			haze := noise.Eval2(float64(x)/120, float64(y)/120)
			px := color.NRGBA{uint8(4 + 12*haze), uint8(6 + 10*haze), uint8(16 + 30*haze), 255}
			if noise.Eval2(float64(x)*0.9, float64(y)*0.9) > 0.86 {
				px = color.NRGBA{230, 230, 255, 255}
			}
			img.SetNRGBA(x, y, px)
		}
	}
	return img
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
