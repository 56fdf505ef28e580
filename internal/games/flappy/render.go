package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for terminal rendering
const (
	BodyChar      = '●'
	BeakChar      = '▶'
	ObstacleChar  = '█'
	CapTopChar    = '▄'
	CapBottomChar = '▀'
	GroundTopChar = '═'
	GroundChar    = '░'
)

// HUD text
const (
	PausedTitle     = "PAUSED"
	PausedHint      = "P to resume"
	GameOverTitle   = "GAME OVER"
	GameOverHint    = "Press R to restart"
	ControlsHint    = "SPACE/UP: Flap   P: Pause   R: Restart"
	scoreLineFormat = " Score: %d   Best: %d "
)

// cellMapper converts world units to screen cells.
type cellMapper struct {
	sx, sy float64
}

func newCellMapper(geo Geometry, dst *core.Screen) cellMapper {
	return cellMapper{
		sx: float64(dst.Width()) / float64(geo.Width),
		sy: float64(dst.Height()) / float64(geo.Height),
	}
}

func (m cellMapper) x(v float64) int { return int(math.Floor(v * m.sx)) }
func (m cellMapper) y(v float64) int { return int(math.Floor(v * m.sy)) }

// span maps [from, to) in world units to at least one cell.
func (m cellMapper) xSpan(from, to float64) (int, int) {
	a, b := m.x(from), int(math.Ceil(to*m.sx))
	if b <= a {
		b = a + 1
	}
	return a, b
}

func (m cellMapper) ySpan(from, to float64) (int, int) {
	a, b := m.y(from), int(math.Ceil(to*m.sy))
	if b <= a {
		b = a + 1
	}
	return a, b
}

// Render draws a snapshot into a character screen, scaling the world to fit.
func Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	geo := snap.Geometry
	m := newCellMapper(geo, dst)
	groundRow := m.y(float64(geo.GroundY()))

	for _, o := range snap.Obstacles {
		if o.OnScreen(geo) {
			drawObstacle(dst, m, geo, o, groundRow)
		}
	}

	// Ground
	dst.DrawHLine(0, groundRow, dst.Width(), GroundTopChar, core.ColorOrange)
	for y := groundRow + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), GroundChar, core.ColorBrown)
	}

	drawBody(dst, m, snap.Body)

	dst.DrawTextColored(1, 0, fmt.Sprintf(scoreLineFormat, snap.Score, snap.Best), core.ColorBrightWhite)

	switch snap.Mode {
	case ModePaused:
		drawCenteredMessage(dst, PausedTitle, PausedHint)
	case ModeGameOver:
		drawCenteredMessage(dst, GameOverTitle, fmt.Sprintf("Score: %d  |  %s", snap.Score, GameOverHint))
	default:
		if groundRow+1 < dst.Height() {
			dst.DrawTextColored(1, groundRow+1, ControlsHint, core.ColorGray)
		}
	}
}

// drawObstacle renders both segments of a pair with caps facing the gap.
func drawObstacle(dst *core.Screen, m cellMapper, geo Geometry, o ObstacleView, groundRow int) {
	left, right := m.xSpan(float64(o.X), float64(o.X+geo.ObstacleWidth))
	gapTop := m.y(float64(o.GapY))
	gapBottom := m.y(float64(o.GapY + geo.Gap))

	dst.DrawRect(core.NewRect(left, 0, right-left, gapTop), ObstacleChar, core.ColorGreen)
	if gapTop > 0 {
		dst.DrawHLine(left, gapTop-1, right-left, CapTopChar, core.ColorBrightGreen)
	}

	dst.DrawRect(core.NewRect(left, gapBottom, right-left, groundRow-gapBottom), ObstacleChar, core.ColorGreen)
	if gapBottom < groundRow {
		dst.DrawHLine(left, gapBottom, right-left, CapBottomChar, core.ColorBrightGreen)
	}
}

// drawBody renders the body as a block of dots with a beak on the right.
func drawBody(dst *core.Screen, m cellMapper, b BodyView) {
	left, right := m.xSpan(b.X, b.X+float64(b.Size))
	top, bottom := m.ySpan(b.Y, b.Y+float64(b.Size))

	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			dst.SetColored(x, y, BodyChar, core.ColorBrightYellow)
		}
	}
	dst.SetColored(right, top+(bottom-top)/2, BeakChar, core.ColorOrange)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}
