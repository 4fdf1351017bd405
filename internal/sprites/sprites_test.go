package sprites

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_ReadsPNG(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "planet_0.png"), 12, 8)

	set := Load(dir, []string{"planet_0"}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	if got := set["planet_0"].Bounds().Size(); got != image.Pt(12, 8) {
		t.Errorf("size = %v", got)
	}
}

func TestLoad_FallsBackOncePerName(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "asteroid.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	set := Load(dir, []string{"asteroid", "sky", "explorer"}, slog.New(slog.NewTextHandler(&out, nil)))

	if len(set) != 3 {
		t.Fatalf("set has %d images", len(set))
	}
	if got := strings.Count(out.String(), "level=WARN"); got != 3 {
		t.Errorf("WARN records = %d, want 3\n%s", got, out.String())
	}
	if !strings.Contains(out.String(), "decode") {
		t.Errorf("corrupt file error not reported: %s", out.String())
	}
	if got := set["sky"].Bounds().Dx(); got != 480 {
		t.Errorf("sky placeholder width = %d", got)
	}
}

func TestPlaceholder_Shapes(t *testing.T) {
	tests := []struct {
		name   string
		centre color.NRGBA
	}{
		{"planet_0", planetTints[0]},
		{"planet_9", planetTints[2]},
		{"asteroid", color.NRGBA{170, 170, 170, 255}},
		{"explorer", color.NRGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := Placeholder(tt.name).(*image.NRGBA)
			c := PlaceholderSize / 2
			if got := img.NRGBAAt(c, c); got != tt.centre {
				t.Errorf("centre = %v, want %v", got, tt.centre)
			}
			if got := img.NRGBAAt(0, 0); got.A != 0 {
				t.Errorf("corner should be transparent, got %v", got)
			}
		})
	}
}

func TestPlaceholder_SunrayFades(t *testing.T) {
	img := Placeholder("sunray").(*image.NRGBA)
	c := PlaceholderSize / 2
	inner, outer := img.NRGBAAt(c, c).A, img.NRGBAAt(c, 2).A
	if inner <= outer {
		t.Errorf("alpha centre %d, rim %d", inner, outer)
	}
}
