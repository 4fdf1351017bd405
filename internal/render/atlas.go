package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph cell size of basicfont.Face7x13.
const (
	GlyphWidth  = 7
	GlyphHeight = 13

	firstGlyph = 32
	lastGlyph  = 126
	atlasCols  = 16
)

// FontAtlas holds printable ASCII rendered once into a single image.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [lastGlyph - firstGlyph + 1]*ebiten.Image
}

// NewFontAtlas renders the atlas at startup.
func NewFontAtlas() *FontAtlas {
	img := glyphSheet()
	eimg := ebiten.NewImageFromImage(img)
	a := &FontAtlas{image: eimg}
	for r := firstGlyph; r <= lastGlyph; r++ {
		a.glyphs[r-firstGlyph] = eimg.SubImage(glyphRect(r)).(*ebiten.Image)
	}
	return a
}

func glyphRect(r int) image.Rectangle {
	i := r - firstGlyph
	x := (i % atlasCols) * GlyphWidth
	y := (i / atlasCols) * GlyphHeight
	return image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)
}

// glyphSheet draws every printable character in white on transparency.
func glyphSheet() *image.NRGBA {
	rows := (lastGlyph - firstGlyph + atlasCols) / atlasCols
	img := image.NewNRGBA(image.Rect(0, 0, atlasCols*GlyphWidth, rows*GlyphHeight))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}
	for r := firstGlyph; r <= lastGlyph; r++ {
		cell := glyphRect(r)
		d.Dot = fixed.P(cell.Min.X, cell.Min.Y+basicfont.Face7x13.Ascent)
		d.DrawString(string(rune(r)))
	}
	return img
}

// Glyph returns the sub-image for r; characters outside printable ASCII
// draw as '?'.
func (a *FontAtlas) Glyph(r rune) *ebiten.Image {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	return a.glyphs[r-firstGlyph]
}

// DrawText draws s with its top-left corner at (x, y).
func (a *FontAtlas) DrawText(screen *ebiten.Image, x, y float64, s string, clr color.Color) {
	var op ebiten.DrawImageOptions
	for i, r := range []rune(s) {
		if r == ' ' {
			continue
		}
		op = ebiten.DrawImageOptions{}
		op.GeoM.Translate(x+float64(i*GlyphWidth), y)
		op.ColorScale.ScaleWithColor(clr)
		screen.DrawImage(a.Glyph(r), &op)
	}
}

// TextWidth is the pixel width of s.
func TextWidth(s string) float64 {
	return float64(len([]rune(s)) * GlyphWidth)
}
