// Package render draws the galaxy view and the side menu with Ebitengine.
// It only reads state; every decision is made in the game package.
package render

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/omc-galaxy/galaxy_viewer/internal/galaxy"
	"github.com/omc-galaxy/galaxy_viewer/internal/game"
	"github.com/omc-galaxy/galaxy_viewer/internal/sprites"
	"github.com/omc-galaxy/galaxy_viewer/internal/ui"
)

// Renderer owns the GPU images and draws a session.
type Renderer struct {
	Atlas    *FontAtlas
	textures map[string]*ebiten.Image
	pixel    *ebiten.Image // 1x1 white pixel for edges and rectangles
	log      *slog.Logger
	missing  map[string]bool
}

// NewRenderer uploads the sprite set. Call it before the first frame.
func NewRenderer(set sprites.Set, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	r := &Renderer{
		Atlas:    NewFontAtlas(),
		textures: make(map[string]*ebiten.Image, len(set)),
		pixel:    pixel,
		log:      logger.With("component", "render"),
		missing:  map[string]bool{},
	}
	for name, img := range set {
		r.textures[name] = ebiten.NewImageFromImage(img)
	}
	return r
}

// Draw renders one frame of s.
func (r *Renderer) Draw(screen *ebiten.Image, s *game.Session) {
	screen.Fill(ColorBackdrop)
	cx, cy := s.View.CameraPos()
	for _, it := range s.View.DrawList() {
		r.drawSprite(screen, it, cx, cy)
	}
	r.drawPanel(screen, s)
}

func (r *Renderer) texture(name string) *ebiten.Image {
	if name == "" {
		return r.pixel
	}
	if t, ok := r.textures[name]; ok {
		return t
	}
	if !r.missing[name] {
		r.missing[name] = true
		r.log.Warn("no texture for sprite, drawing a block", "name", name)
	}
	return r.pixel
}

// drawSprite scales the texture to the sprite's world size, rotates it about
// its centre and places it through the camera.
func (r *Renderer) drawSprite(screen *ebiten.Image, it galaxy.DrawItem, cx, cy float64) {
	tex := r.texture(it.Sprite.Asset)
	b := tex.Bounds()
	tw, th := float64(b.Dx()), float64(b.Dy())
	sx, sy := galaxy.WorldToScreen(it.Transform.X, it.Transform.Y, cx, cy, game.ScreenWidth, game.ScreenHeight)

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-tw/2, -th/2)
	op.GeoM.Scale(it.Sprite.W/tw, it.Sprite.H/th)
	op.GeoM.Rotate(-it.Transform.Rotation)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(it.Sprite.Color)
	op.ColorScale.ScaleAlpha(float32(it.Sprite.Alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(tex, &op)
}

func (r *Renderer) fillRect(screen *ebiten.Image, rect ui.Rect, clr color.Color) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(rect.W, rect.H)
	op.GeoM.Translate(rect.X, rect.Y)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(r.pixel, &op)
}

func (r *Renderer) drawPanel(screen *ebiten.Image, s *game.Session) {
	p := s.Panel
	r.fillRect(screen, p.SideRect(), ui.PanelColor)

	title := p.TitleRect()
	r.Atlas.DrawText(screen, title.X, title.Y+(title.H-GlyphHeight)/2, "Galaxy Menu", ColorTitle)
	status := fmt.Sprintf("%s  %.0f FPS", s.Machine.State(), ebiten.ActualFPS())
	r.Atlas.DrawText(screen, title.X+title.W-TextWidth(status), title.Y+(title.H-GlyphHeight)/2, status, ColorDim)

	for _, b := range p.Buttons() {
		r.fillRect(screen, b.Rect, b.State.Color())
		label := b.Action.Label()
		r.Atlas.DrawText(screen, b.Rect.X+(b.Rect.W-TextWidth(label))/2, b.Rect.Y+(b.Rect.H-GlyphHeight)/2, label, ColorText)
	}

	lr := p.LogRect()
	r.fillRect(screen, lr, ColorLogWindow)
	lines := s.Log.Window(p.LogSkip(), p.VisibleLogLines())
	y := lr.Y + lr.H - float64(len(lines))*ui.LineHeight
	for _, m := range lines {
		r.Atlas.DrawText(screen, lr.X, y, m.Text, MessageColor(m.Priority))
		y += ui.LineHeight
	}
	if skip := p.LogSkip(); skip > 0 {
		more := fmt.Sprintf("%d newer", skip)
		r.Atlas.DrawText(screen, lr.X+lr.W-TextWidth(more), lr.Y+lr.H+2, more, ColorDim)
	}

	for _, info := range p.InfoBlocks() {
		y := info.Rect.Y
		r.Atlas.DrawText(screen, info.Rect.X, y, info.Block.Title, ColorTitle)
		for _, line := range info.Block.Lines {
			y += ui.LineHeight
			r.Atlas.DrawText(screen, info.Rect.X, y, line, ColorText)
		}
	}
}
