// Package gui runs the game in a desktop window with ebiten.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Colors of the window renderer.
var (
	skyColor      = color.RGBA{0x87, 0xce, 0xeb, 0xff}
	pipeColor     = color.RGBA{0x2e, 0x8b, 0x57, 0xff}
	pipeHighlight = color.RGBA{0x3c, 0xb3, 0x71, 0xff}
	pipeCapColor  = color.RGBA{0x22, 0x8b, 0x22, 0xff}
	birdColor     = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	birdCenter    = color.RGBA{0xff, 0xff, 0xe0, 0xff}
	birdOutline   = color.RGBA{0xda, 0xa5, 0x20, 0xff}
	wingColor     = color.RGBA{0xff, 0xa5, 0x00, 0xff}
	shadeColor    = color.RGBA{0, 0, 0, 0x90}
)

const (
	capOverhang = 5
	capHeight   = 20
	spriteR     = 32 // Radius of the circle sprite scaled into ellipses
)

// errQuit ends the ebiten loop on user request.
var errQuit = errors.New("quit")

// Options wires the optional services of a window Game.
type Options struct {
	Store  *storage.Store // Run history
	Player string
	Sounds *audio.Board
	Logger *log.Logger
}

// Game adapts a flappy.Game to ebiten.
type Game struct {
	game  *flappy.Game
	opts  Options
	state core.GameState

	circle *ebiten.Image // White disc used for ellipses
	bird   *ebiten.Image // Offscreen layer rotated onto the screen
}

// NewGame wraps game, which must already be Reset.
func NewGame(game *flappy.Game, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	circle := ebiten.NewImage(2*spriteR, 2*spriteR)
	vector.DrawFilledCircle(circle, spriteR, spriteR, spriteR, color.White, true)

	cfg := game.Session().Config()
	return &Game{
		game:   game,
		opts:   opts,
		state:  game.State(),
		circle: circle,
		bird:   ebiten.NewImage(cfg.Player.Width+2, cfg.Player.Height+2),
	}
}

// Update reads input and advances the simulation by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return errQuit
	}

	in := core.NewInputFrame()
	for _, a := range Actions(pressedKeys(), inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)) {
		in.Set(a)
	}
	if in.Empty() && !g.state.Ticking() {
		return nil
	}

	result := g.game.Step(in)
	g.state = result.State
	if result.Events != 0 {
		g.opts.Logger.Debug("step", "frame", g.game.Session().Frame(), "events", result.Events)
	}
	g.opts.Sounds.Play(result.Events)

	if result.Events.Has(core.EventCrash) && result.State.Score > 0 && g.opts.Store != nil {
		frames := g.game.Session().Frame()
		if _, err := g.opts.Store.SaveScore(g.opts.Player, result.State.Score, frames, ebiten.TPS()); err != nil {
			g.opts.Logger.Warn("could not record run", "error", err)
		}
	}
	return nil
}

// pressedKeys returns the keys pressed this tick.
func pressedKeys() []ebiten.Key {
	return inpututil.AppendJustPressedKeys(nil)
}

// Actions maps freshly pressed keys and a click to game actions.
// A click flaps, starts and restarts, like the buttons of a web page.
func Actions(keys []ebiten.Key, clicked bool) []core.Action {
	var out []core.Action
	for _, k := range keys {
		switch k {
		case ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW:
			out = append(out, core.ActionJump)
		case ebiten.KeyEnter:
			out = append(out, core.ActionConfirm)
		case ebiten.KeyR:
			out = append(out, core.ActionRestart)
		case ebiten.KeyP, ebiten.KeyEscape:
			out = append(out, core.ActionPause)
		}
	}
	if clicked {
		out = append(out, core.ActionJump, core.ActionConfirm)
	}
	return out
}

// Draw renders the field.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.game.Session().Snapshot()
	screen.Fill(skyColor)

	for _, o := range snap.Obstacles {
		drawPipe(screen, o, snap.FieldHeight)
	}
	g.drawBird(screen, snap.Entity, snap.Frame)
	g.drawOverlay(screen, snap)
}

func drawPipe(screen *ebiten.Image, o flappy.Obstacle, fieldH float64) {
	top, bottom := o.TopBox(), o.BottomBox(fieldH)

	for _, arm := range []core.Box{top, bottom} {
		x, y, w, h := float32(arm.X), float32(arm.Y), float32(arm.W), float32(arm.H)
		vector.DrawFilledRect(screen, x, y, w, h, pipeColor, false)
		vector.DrawFilledRect(screen, x+w/3, y, w/3, h, pipeHighlight, false)
	}
	for _, c := range CapBoxes(o) {
		vector.DrawFilledRect(screen, float32(c.X), float32(c.Y), float32(c.W), float32(c.H), pipeCapColor, false)
	}
}

// CapBoxes returns the rims at the open ends of both pipes, wider than the
// body by capOverhang on each side.
func CapBoxes(o flappy.Obstacle) [2]core.Box {
	top := o.TopBox()
	return [2]core.Box{
		{X: top.X - capOverhang, Y: top.Bottom() - capHeight, W: top.W + 2*capOverhang, H: capHeight},
		{X: top.X - capOverhang, Y: o.BottomY, W: top.W + 2*capOverhang, H: capHeight},
	}
}

// drawBird paints the bird upright on its layer and rotates the layer about
// the bird's center.
func (g *Game) drawBird(screen *ebiten.Image, e flappy.Entity, frame int) {
	layer := g.bird
	layer.Clear()

	w, h := e.Width, e.Height
	cx, cy := w/2+1, h/2+1

	g.ellipse(layer, cx, cy, w/2, h/2, birdOutline)
	g.ellipse(layer, cx, cy, w/2-1, h/2-1, birdColor)
	g.ellipse(layer, cx, cy, w/4, h/4, birdCenter)
	g.ellipse(layer, cx-w/6, cy, w/6, WingHeight(h, frame)/2, wingColor)

	eyeX, eyeY := float32(cx+w/4), float32(cy-h/6)
	vector.DrawFilledCircle(layer, eyeX, eyeY, 2.5, color.Black, true)
	vector.DrawFilledCircle(layer, eyeX+0.5, eyeY-0.5, 0.8, color.White, true)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cx, -cy)
	op.GeoM.Rotate(e.Rotation)
	op.GeoM.Translate(e.X+w/2, e.Y+h/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(layer, op)
}

// WingHeight oscillates the wing with the frame counter.
func WingHeight(birdHeight float64, frame int) float64 {
	return birdHeight/3 + math.Sin(float64(frame)*0.3)*3
}

// ellipse draws a filled ellipse by scaling the circle sprite.
func (g *Game) ellipse(dst *ebiten.Image, cx, cy, rx, ry float64, clr color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rx/spriteR, ry/spriteR)
	op.GeoM.Translate(cx-rx, cy-ry)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(g.circle, op)
}

func (g *Game) drawOverlay(screen *ebiten.Image, snap flappy.Snapshot) {
	w, h := int(snap.FieldWidth), int(snap.FieldHeight)

	switch snap.Phase {
	case flappy.PhaseStart:
		drawPanel(screen, w, h,
			"FLAPPY BIRD",
			"Space / click to start",
			fmt.Sprintf("Best: %d", snap.Best),
		)
	case flappy.PhasePlaying:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), 10, 10)
		best := fmt.Sprintf("Best: %d", snap.Best)
		ebitenutil.DebugPrintAt(screen, best, w-10-6*len(best), 10)
		if g.state.Paused {
			drawPanel(screen, w, h, "PAUSED", "Press P to resume")
		}
	case flappy.PhaseOver:
		title := "GAME OVER"
		if snap.Score > 0 && snap.Score == snap.Best {
			title = "GAME OVER - NEW BEST!"
		}
		drawPanel(screen, w, h,
			title,
			fmt.Sprintf("Score: %d   Best: %d", snap.Score, snap.Best),
			"R / click to restart",
		)
	}
}

// drawPanel shades a box in the middle of the field and prints lines in it.
func drawPanel(screen *ebiten.Image, w, h int, lines ...string) {
	const lineH, charW = 20, 6

	width := 0
	for _, l := range lines {
		width = max(width, len(l)*charW)
	}
	boxW, boxH := width+40, len(lines)*lineH+20
	x, y := (w-boxW)/2, (h-boxH)/2

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), shadeColor, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, (w-len(l)*charW)/2, y+12+i*lineH)
	}
}

// Layout keeps the field size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.game.Session().Config()
	return cfg.Field.Width, cfg.Field.Height
}

// Run resets game and plays it in a window until it is closed or q is pressed.
func Run(game *flappy.Game, rc core.RuntimeConfig, scale float64, opts Options) error {
	if err := game.Reset(rc); err != nil {
		return err
	}
	if scale <= 0 {
		scale = 1
	}

	cfg := game.Session().Config()
	ebiten.SetWindowSize(int(float64(cfg.Field.Width)*scale), int(float64(cfg.Field.Height)*scale))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if rc.TickRate > 0 {
		ebiten.SetTPS(rc.TickRate)
	}

	err := ebiten.RunGame(NewGame(game, opts))
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
