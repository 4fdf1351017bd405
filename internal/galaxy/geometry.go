package galaxy

import "math"

// RingPosition returns the ring slot for planet id on a ring of n planets.
func RingPosition(id uint32, n int) (x, y float64) {
	if n <= 0 {
		return 0, 0
	}
	angle := 2 * math.Pi * float64(id) / float64(n)
	return GalaxyRadius * math.Cos(angle), GalaxyRadius * math.Sin(angle)
}

// Segment returns the midpoint, rotation and length of the sprite joining
// start and end. The sprite is symmetric, so swapping endpoints only adds π
// to the rotation.
func Segment(sx, sy, ex, ey float64) (mx, my, rotation, length float64) {
	dx, dy := sx-ex, sy-ey
	return (sx + ex) / 2, (sy + ey) / 2, math.Atan2(dy, dx), math.Hypot(dx, dy)
}

// JitterOffset spreads explorers sharing a planet over eight angular slots.
func JitterOffset(explorerID uint32) (dx, dy float64) {
	slot := explorerID % ExplorerSlots
	angle := 2 * math.Pi * float64(slot) / ExplorerSlots
	return ExplorerJitter * math.Cos(angle), ExplorerJitter * math.Sin(angle)
}

// WorldToScreen maps a world point to screen pixels for a camera at (cx, cy)
// on a w×h screen. Screen Y grows downwards.
func WorldToScreen(x, y, cx, cy float64, w, h int) (sx, sy float64) {
	return float64(w)/2 + (x - cx), float64(h)/2 - (y - cy)
}

// ScreenToWorld is the inverse of WorldToScreen.
func ScreenToWorld(sx, sy, cx, cy float64, w, h int) (x, y float64) {
	return sx - float64(w)/2 + cx, float64(h)/2 - sy + cy
}
