package desktop

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// Options configures the window.
type Options struct {
	Scale  float64 // Window pixels per world unit
	Logger *log.Logger
}

// keyCommands maps keys to the commands they send when just pressed.
var keyCommands = []struct {
	key ebiten.Key
	cmd core.Command
}{
	{ebiten.KeySpace, core.CommandFlap},
	{ebiten.KeyArrowUp, core.CommandFlap},
	{ebiten.KeyW, core.CommandFlap},
	{ebiten.KeyP, core.CommandTogglePause},
	{ebiten.KeyEscape, core.CommandTogglePause},
	{ebiten.KeyR, core.CommandRestart},
}

// Window implements ebiten.Game on top of a sim.Driver. ebiten calls
// Update at the driver's tick rate, so every Update is exactly one tick.
type Window struct {
	driver *sim.Driver
	logger *log.Logger
	face   text.Face
}

// Text scales relative to the 7x13 bitmap face.
const (
	titleScale = 3
	hudScale   = 1.5
)

// New creates a window for the driver.
func New(driver *sim.Driver, opts Options) *Window {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Window{
		driver: driver,
		logger: opts.Logger,
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// Update reads input and runs one tick.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	for _, kc := range keyCommands {
		if inpututil.IsKeyJustPressed(kc.key) {
			w.driver.Send(kc.cmd)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		w.driver.Send(core.CommandFlap)
	}

	w.driver.Step()
	return nil
}

// Draw renders the latest snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	snap := w.driver.Snapshot()

	for _, r := range sceneRects(snap) {
		vector.FillRect(screen, r.X, r.Y, r.W, r.H, r.Color, false)
	}

	geo := snap.Geometry
	cx, cy := float64(geo.Width)/2, float64(geo.Height)/2
	w.drawText(screen, fmt.Sprintf("Score: %d   Best: %d", snap.Score, snap.Best), hudScale, cx, 12)

	switch snap.Mode {
	case flappy.ModePaused:
		w.drawText(screen, flappy.PausedTitle, titleScale, cx, cy-40)
		w.drawText(screen, flappy.PausedHint, hudScale, cx, cy+10)
	case flappy.ModeGameOver:
		w.drawText(screen, flappy.GameOverTitle, titleScale, cx, cy-40)
		w.drawText(screen, flappy.GameOverHint, hudScale, cx, cy+10)
	default:
		ebitenutil.DebugPrintAt(screen, "SPACE/UP/CLICK: flap  P: pause  R: restart  Q: quit", 8, geo.GroundY()+grassStrip+8)
	}
}

// drawText draws msg horizontally centred on x with its top at y.
func (w *Window) drawText(screen *ebiten.Image, msg string, scale, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, msg, w.face, op)
}

// Layout keeps the logical screen at world size.
func (w *Window) Layout(_, _ int) (int, int) {
	geo := w.driver.Game().Geometry()
	return geo.Width, geo.Height
}

// Run opens the window and blocks until it is closed.
func Run(driver *sim.Driver, opts Options) error {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	win := New(driver, opts)

	geo := driver.Game().Geometry()
	ebiten.SetWindowSize(int(float64(geo.Width)*opts.Scale), int(float64(geo.Height)*opts.Scale))
	ebiten.SetWindowTitle(driver.Game().Title())
	ebiten.SetTPS(driver.TickRate())

	win.logger.Debug("opening window", "scale", opts.Scale, "tps", driver.TickRate())
	if err := ebiten.RunGame(win); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
