package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is a pipe pair with a gap between TopHeight and BottomY.
type Obstacle struct {
	X         float64 // Left edge, decreases every tick
	Width     float64
	TopHeight float64 // Height of the upper pipe
	BottomY   float64 // Top of the lower pipe: TopHeight + gap size
	Passed    bool    // Whether the bird has been credited for this pipe
}

// Right returns the x-coordinate of the right edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// TopBox returns the upper pipe extending from the top of the field.
func (o Obstacle) TopBox() core.Box {
	return core.Box{X: o.X, Y: 0, W: o.Width, H: o.TopHeight}
}

// BottomBox returns the lower pipe extending down to fieldHeight.
func (o Obstacle) BottomBox(fieldHeight float64) core.Box {
	return core.Box{X: o.X, Y: o.BottomY, W: o.Width, H: fieldHeight - o.BottomY}
}

// Rand is the random source used for gap placement.
// *math/rand.Rand satisfies it; tests supply scripted sequences.
type Rand interface {
	// Intn returns a uniform value in [0, n). n is always positive.
	Intn(n int) int
}

// Generator creates pipes of a fixed width with randomized gap placement.
type Generator struct {
	rng   Rand
	width float64
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng Rand, width int) *Generator {
	return &Generator{rng: rng, width: float64(width)}
}

// Generate returns a new pipe at spawnX. TopHeight is drawn uniformly from the
// integers in [minHeight, fieldHeight-gapSize-minHeight].
//
// The range must not be empty; config.Validate rejects such geometry at
// startup, so an empty range here is a programming error and panics.
func (g *Generator) Generate(spawnX float64, fieldHeight, gapSize, minHeight int) Obstacle {
	maxHeight := fieldHeight - gapSize - minHeight
	if maxHeight < minHeight {
		panic(fmt.Sprintf("flappy: gap %d with arms of %d does not fit in height %d", gapSize, minHeight, fieldHeight))
	}

	topHeight := minHeight + g.rng.Intn(maxHeight-minHeight+1)

	return Obstacle{
		X:         spawnX,
		Width:     g.width,
		TopHeight: float64(topHeight),
		BottomY:   float64(topHeight + gapSize),
		Passed:    false,
	}
}

// Collides reports whether the bird overlaps either pipe of o. Horizontal
// overlap is strict, so touching edges do not collide. It depends only on its
// arguments.
func Collides(e Entity, o Obstacle) bool {
	if !e.Box().OverlapsX(o.TopBox()) {
		return false
	}
	return e.Y < o.TopHeight || e.Bottom() > o.BottomY
}
