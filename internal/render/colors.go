package render

import (
	"image/color"

	"github.com/omc-galaxy/galaxy_viewer/internal/game"
)

// Named colours used by the panel and the log.
var (
	ColorText      = color.RGBA{230, 230, 230, 255}
	ColorTitle     = color.RGBA{85, 255, 255, 255}
	ColorDim       = color.RGBA{120, 120, 120, 255}
	ColorInfo      = color.RGBA{0, 170, 170, 255}
	ColorWarning   = color.RGBA{255, 255, 85, 255}
	ColorCritical  = color.RGBA{255, 85, 85, 255}
	ColorEvent     = color.RGBA{85, 255, 85, 255}
	ColorBackdrop  = color.RGBA{0, 0, 0, 255}
	ColorLogWindow = color.RGBA{10, 16, 16, 160}
)

// MessageColor returns the colour a log line is drawn in.
func MessageColor(p game.MsgPriority) color.RGBA {
	switch p {
	case game.MsgCritical:
		return ColorCritical
	case game.MsgWarning:
		return ColorWarning
	case game.MsgEvent:
		return ColorEvent
	case game.MsgDebug:
		return ColorDim
	default:
		return ColorInfo
	}
}
