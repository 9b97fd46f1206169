package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/skybound/internal/config"
	"github.com/vovakirdan/skybound/internal/core"
)

// Pipe is a column obstacle with one gap the craft can fly through.
type Pipe struct {
	X         float64 // Left edge; fractional while scrolling
	GapY      int     // First open row
	GapHeight int
	Passed    bool // Already counted towards the score
}

// Col is the screen column the pipe is drawn from.
func (p Pipe) Col() int {
	return int(math.Floor(p.X))
}

// GapEnd is the first blocked row under the gap.
func (p Pipe) GapEnd() int {
	return p.GapY + p.GapHeight
}

// TopRect is the blocked section above the gap.
func (p Pipe) TopRect(width int) core.Rect {
	return core.NewRect(p.Col(), 0, width, p.GapY)
}

// BottomRect is the blocked section from the gap down to the ground.
func (p Pipe) BottomRect(width, floorY int) core.Rect {
	return core.NewRect(p.Col(), p.GapEnd(), width, floorY-p.GapEnd())
}

// Course is the scrolling row of pipes. The same seed always yields the
// same pipes.
type Course struct {
	obs     config.FlappyObstacles
	rng     *rand.Rand
	pipes   []Pipe
	screenW int
	floorY  int
}

// NewCourse creates an empty course. floorY is the ground row; pipes
// occupy the rows above it.
func NewCourse(seed int64, screenW, floorY int, obs config.FlappyObstacles) *Course {
	c := &Course{
		obs:     obs,
		pipes:   make([]Pipe, 0, 8),
		screenW: screenW,
		floorY:  floorY,
	}
	c.Reset(seed)
	return c
}

// Reset removes every pipe and reseeds the generator.
func (c *Course) Reset(seed int64) {
	c.pipes = c.pipes[:0]
	c.rng = rand.New(rand.NewSource(seed))
}

// Resize changes the playfield. Pipes already on screen keep their gaps.
func (c *Course) Resize(screenW, floorY int) {
	c.screenW = screenW
	c.floorY = floorY
}

// Advance scrolls the course by one tick under tuning t. It returns how many
// pipes had their middle cross craftX during the tick.
func (c *Course) Advance(craftX float64, t config.Tuning) int {
	half := float64(c.obs.PipeWidth) / 2

	passed := 0
	kept := c.pipes[:0]
	for _, p := range c.pipes {
		p.X -= t.Speed
		if !p.Passed && p.X+half < craftX {
			p.Passed = true
			passed++
		}
		if p.X+float64(c.obs.PipeWidth) > 0 {
			kept = append(kept, p)
		}
	}
	c.pipes = kept

	if n := len(c.pipes); n == 0 || c.pipes[n-1].X < float64(c.screenW-t.Spacing) {
		c.pipes = append(c.pipes, c.nextPipe(t))
	}
	return passed
}

// nextPipe places a pipe at the right edge. Its gap height is drawn from
// [MinGapSize, t.MaxGap] and the gap stays inside the margins.
func (c *Course) nextPipe(t config.Tuning) Pipe {
	low := c.obs.MinGapSize
	high := max(t.MaxGap, low)
	height := low + c.rng.Intn(high-low+1)

	top := c.obs.TopMargin
	lowest := max(c.floorY-c.obs.BottomMargin-height, top)
	gapY := top + c.rng.Intn(lowest-top+1)

	return Pipe{X: float64(c.screenW), GapY: gapY, GapHeight: height}
}

// Pipes returns the pipes on the course, leftmost first.
func (c *Course) Pipes() []Pipe {
	return c.pipes
}

// Hits reports whether r overlaps any pipe.
func (c *Course) Hits(r core.Rect) bool {
	w := c.obs.PipeWidth
	for _, p := range c.pipes {
		if r.Intersects(p.TopRect(w)) || r.Intersects(p.BottomRect(w, c.floorY)) {
			return true
		}
	}
	return false
}
