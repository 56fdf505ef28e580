// Package desktop provides the ebiten window frontend. The window's logical
// size is the world size, so snapshots are drawn in world units and ebiten
// scales them to the window.
package desktop

import (
	"image/color"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Palette
var (
	skyColor      = color.RGBA{R: 112, G: 197, B: 206, A: 255}
	obstacleColor = color.RGBA{R: 83, G: 170, B: 55, A: 255}
	capColor      = color.RGBA{R: 60, G: 130, B: 40, A: 255}
	groundColor   = color.RGBA{R: 222, G: 216, B: 149, A: 255}
	grassColor    = color.RGBA{R: 100, G: 180, B: 60, A: 255}
	bodyColor     = color.RGBA{R: 250, G: 200, B: 40, A: 255}
	beakColor     = color.RGBA{R: 240, G: 110, B: 30, A: 255}
	eyeColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	overlayColor  = color.RGBA{R: 0, G: 0, B: 0, A: 140}
)

const (
	capHeight  = 12
	capOverlap = 4 // Caps stick out this far on each side
	grassStrip = 6
)

// fillRect is one solid rectangle in world units.
type fillRect struct {
	X, Y, W, H float32
	Color      color.RGBA
}

// sceneRects converts a snapshot into draw calls, back to front.
// Obstacles outside the world are skipped.
func sceneRects(snap flappy.Snapshot) []fillRect {
	geo := snap.Geometry
	groundY := float32(geo.GroundY())
	rects := []fillRect{{0, 0, float32(geo.Width), float32(geo.Height), skyColor}}

	for _, o := range snap.Obstacles {
		if !o.OnScreen(geo) {
			continue
		}
		x := float32(o.X)
		w := float32(geo.ObstacleWidth)
		gapTop := float32(o.GapY)
		gapBottom := float32(o.GapY + geo.Gap)

		rects = append(rects,
			fillRect{x, 0, w, gapTop, obstacleColor},
			fillRect{x - capOverlap, gapTop - capHeight, w + 2*capOverlap, capHeight, capColor},
			fillRect{x, gapBottom, w, groundY - gapBottom, obstacleColor},
			fillRect{x - capOverlap, gapBottom, w + 2*capOverlap, capHeight, capColor},
		)
	}

	rects = append(rects,
		fillRect{0, groundY, float32(geo.Width), float32(geo.Ground), groundColor},
		fillRect{0, groundY, float32(geo.Width), grassStrip, grassColor},
	)

	b := snap.Body
	size := float32(b.Size)
	bx, by := float32(b.X), float32(b.Y)
	rects = append(rects,
		fillRect{bx, by, size, size, bodyColor},
		fillRect{bx + size*0.6, by + size*0.2, size * 0.25, size * 0.25, eyeColor},
		fillRect{bx + size, by + size*0.45, size * 0.3, size * 0.2, beakColor},
	)

	if snap.Mode != flappy.ModeRunning {
		rects = append(rects, fillRect{0, 0, float32(geo.Width), float32(geo.Height), overlayColor})
	}
	return rects
}
