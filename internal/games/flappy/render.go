package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdBodyChar  = '●'
	BirdLevelChar = '▶'
	BirdUpChar    = '▲'
	BirdDownChar  = '▼'
	WingUpChar    = '^'
	WingDownChar  = 'v'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// wingPeriod is the number of ticks per wing position.
const wingPeriod = 6

// RenderSnapshot draws snap scaled onto dst. The bottom row is the ground;
// everything above it maps to the play field.
func RenderSnapshot(dst *core.Screen, snap Snapshot, paused bool) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w == 0 || h < 2 {
		return
	}
	fieldRows := h - 1
	sc := core.NewScaler(snap.FieldWidth, snap.FieldHeight, w, fieldRows)

	for _, o := range snap.Obstacles {
		drawPipe(dst, sc, o, fieldRows)
	}
	drawBird(dst, sc, snap.Entity, snap.Frame)
	dst.DrawHLine(0, h-1, w, GroundChar, core.ColorOrange)

	switch snap.Phase {
	case PhaseStart:
		drawCenteredMessage(dst,
			"FLAPPY BIRD",
			"Space / Enter to start",
			fmt.Sprintf("Best: %d", snap.Best),
		)
	case PhasePlaying:
		drawHUD(dst, snap)
		if paused {
			drawCenteredMessage(dst, "PAUSED", "Press P to resume")
		}
	case PhaseOver:
		title := "GAME OVER"
		if snap.Score > 0 && snap.Score == snap.Best {
			title = "GAME OVER - NEW BEST!"
		}
		drawCenteredMessage(dst,
			title,
			fmt.Sprintf("Score: %d   Best: %d", snap.Score, snap.Best),
			"R to restart  |  Q to quit",
		)
	}
}

// drawPipe renders both arms of a pipe with caps one cell wider than the body.
func drawPipe(dst *core.Screen, sc core.Scaler, o Obstacle, fieldRows int) {
	body := sc.Cells(o.TopBox())
	topRows := sc.Row(o.TopHeight)
	bottomRow := sc.Row(o.BottomY)

	for y := 0; y < topRows; y++ {
		dst.DrawHLine(body.X, y, body.W, PipeChar, core.ColorGreen)
	}
	if topRows > 0 {
		dst.DrawHLine(body.X-1, topRows-1, body.W+2, PipeCapTop, core.ColorBrightGreen)
	}

	for y := bottomRow; y < fieldRows; y++ {
		dst.DrawHLine(body.X, y, body.W, PipeChar, core.ColorGreen)
	}
	if bottomRow < fieldRows {
		dst.DrawHLine(body.X-1, bottomRow, body.W+2, PipeCapBottom, core.ColorBrightGreen)
	}
}

// drawBird fills the hitbox and marks the head by tilt and the wing by frame.
func drawBird(dst *core.Screen, sc core.Scaler, e Entity, frame int) {
	cells := sc.Cells(e.Box())
	dst.DrawRect(cells, BirdBodyChar, core.ColorGold)

	midY := cells.Y + cells.H/2
	dst.SetColored(cells.Right()-1, midY, birdHead(e.Rotation), core.ColorOrange)

	if cells.W > 1 {
		wing := WingUpChar
		if (frame/wingPeriod)%2 == 1 {
			wing = WingDownChar
		}
		dst.SetColored(cells.X, midY, wing, core.ColorYellow)
	}
}

// birdHead picks the head glyph for a rotation in radians.
func birdHead(rotation float64) rune {
	switch {
	case rotation < -0.2:
		return BirdUpChar
	case rotation > 0.2:
		return BirdDownChar
	default:
		return BirdLevelChar
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorBrightWhite)

	best := fmt.Sprintf(" Best: %d ", snap.Best)
	dst.DrawTextColored(dst.Width()-len(best)-2, 0, best, core.ColorGray)
}

// drawCenteredMessage draws a boxed block of lines in the center of the screen.
func drawCenteredMessage(dst *core.Screen, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := 2*len(lines) + 1
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightYellow
		}
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+2*i, l, color)
	}
}
