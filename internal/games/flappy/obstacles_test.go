package flappy

import (
	"math/rand"
	"testing"
)

// fixedRand always returns the same draw.
type fixedRand struct {
	value int
	calls []int
}

func (r *fixedRand) Intn(n int) int {
	r.calls = append(r.calls, n)
	if r.value >= n {
		return n - 1
	}
	return r.value
}

// lastRand always returns the largest allowed draw.
type lastRand struct{}

func (lastRand) Intn(n int) int { return n - 1 }

func TestGenerateBounds(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(7)), 60)
	seen := make(map[float64]bool)

	for i := 0; i < 5000; i++ {
		o := gen.Generate(400, 480, 150, 50)

		if o.TopHeight < 50 || o.TopHeight > 280 {
			t.Fatalf("TopHeight = %f, expected within [50, 280]", o.TopHeight)
		}
		if o.BottomY-o.TopHeight != 150 {
			t.Fatalf("BottomY - TopHeight = %f, expected 150", o.BottomY-o.TopHeight)
		}
		if o.TopHeight != float64(int(o.TopHeight)) {
			t.Fatalf("TopHeight = %f, expected an integer value", o.TopHeight)
		}
		seen[o.TopHeight] = true
	}

	// Both ends of the inclusive range are reachable
	if !seen[50] || !seen[280] {
		t.Errorf("expected both 50 and 280 to be drawn over 5000 pipes, got 50=%v 280=%v", seen[50], seen[280])
	}
}

func TestGenerateScenario(t *testing.T) {
	rng := &fixedRand{value: 50}
	gen := NewGenerator(rng, 60)

	o := gen.Generate(450, 480, 150, 50)

	if o.TopHeight != 100 {
		t.Errorf("TopHeight = %f, expected 100", o.TopHeight)
	}
	if o.BottomY != 250 {
		t.Errorf("BottomY = %f, expected 250", o.BottomY)
	}
	if o.X != 450 || o.Width != 60 {
		t.Errorf("X, Width = %f, %f, expected 450, 60", o.X, o.Width)
	}
	if o.Passed {
		t.Error("new pipe should not be passed")
	}
	// [50, 280] inclusive has 231 values
	if len(rng.calls) != 1 || rng.calls[0] != 231 {
		t.Errorf("Intn calls = %v, expected [231]", rng.calls)
	}
}

func TestGenerateExtremes(t *testing.T) {
	low := NewGenerator(&fixedRand{value: 0}, 60).Generate(0, 480, 150, 50)
	if low.TopHeight != 50 {
		t.Errorf("lowest draw TopHeight = %f, expected 50", low.TopHeight)
	}

	high := NewGenerator(lastRand{}, 60).Generate(0, 480, 150, 50)
	if high.TopHeight != 280 || high.BottomY != 430 {
		t.Errorf("highest draw = (%f, %f), expected (280, 430)", high.TopHeight, high.BottomY)
	}
}

func TestGenerateExactFit(t *testing.T) {
	rng := &fixedRand{}
	o := NewGenerator(rng, 60).Generate(0, 480, 380, 50)

	if o.TopHeight != 50 || o.BottomY != 430 {
		t.Errorf("exact fit = (%f, %f), expected (50, 430)", o.TopHeight, o.BottomY)
	}
	if rng.calls[0] != 1 {
		t.Errorf("Intn(%d), expected Intn(1)", rng.calls[0])
	}
}

func TestGeneratePanicsOnImpossibleGeometry(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Generate should panic when the gap cannot fit")
		}
	}()
	NewGenerator(&fixedRand{}, 60).Generate(0, 200, 150, 50)
}

func TestCollides(t *testing.T) {
	bird := Entity{X: 80, Y: 200, Width: 40, Height: 30}

	tests := []struct {
		name     string
		obstacle Obstacle
		expected bool
	}{
		{
			name:     "inside gap",
			obstacle: Obstacle{X: 90, Width: 60, TopHeight: 150, BottomY: 300},
			expected: false,
		},
		{
			name:     "hits top pipe",
			obstacle: Obstacle{X: 90, Width: 60, TopHeight: 210, BottomY: 360},
			expected: true,
		},
		{
			name:     "hits bottom pipe",
			obstacle: Obstacle{X: 90, Width: 60, TopHeight: 50, BottomY: 220},
			expected: true,
		},
		{
			name:     "pipe left edge touches bird right edge",
			obstacle: Obstacle{X: 120, Width: 60, TopHeight: 300, BottomY: 450},
			expected: false,
		},
		{
			name:     "pipe right edge touches bird left edge",
			obstacle: Obstacle{X: 20, Width: 60, TopHeight: 300, BottomY: 450},
			expected: false,
		},
		{
			name:     "bird exactly fills the gap",
			obstacle: Obstacle{X: 90, Width: 60, TopHeight: 200, BottomY: 230},
			expected: false,
		},
		{
			name:     "no horizontal overlap",
			obstacle: Obstacle{X: 300, Width: 60, TopHeight: 400, BottomY: 450},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			first := Collides(bird, tc.obstacle)
			if first != tc.expected {
				t.Errorf("Collides() = %v, expected %v", first, tc.expected)
			}
			// Same inputs, same verdict
			for i := 0; i < 10; i++ {
				if Collides(bird, tc.obstacle) != first {
					t.Fatal("Collides() is not deterministic")
				}
			}
		})
	}
}

func TestObstacleBoxes(t *testing.T) {
	o := Obstacle{X: 10, Width: 60, TopHeight: 100, BottomY: 250}

	top := o.TopBox()
	if top.Y != 0 || top.H != 100 || top.W != 60 {
		t.Errorf("TopBox() = %+v", top)
	}
	bottom := o.BottomBox(480)
	if bottom.Y != 250 || bottom.H != 230 {
		t.Errorf("BottomBox() = %+v", bottom)
	}
	if gap := bottom.Y - top.Bottom(); gap != 150 {
		t.Errorf("gap between boxes = %f, expected 150", gap)
	}
}
