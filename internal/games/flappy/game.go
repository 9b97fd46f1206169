// Package flappy implements Skybound, a Flappy Bird-style game: the player
// flaps a small craft through gaps in scrolling pipes and scores one point
// per pipe passed.
package flappy

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/skybound/internal/config"
	"github.com/vovakirdan/skybound/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '▶'
	BodyChar      = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// Phase is the lifecycle stage of a run.
type Phase int

const (
	PhaseReady   Phase = iota // Waiting for the first flap
	PhasePlaying              // In flight
	PhaseOver                 // Crashed
)

// Game implements the Skybound game logic.
type Game struct {
	cfg     config.FlappyConfig
	curve   config.Curve
	runtime core.RuntimeConfig
	course  *Course

	playerY   float64 // Craft vertical position (top of hitbox)
	playerVel float64 // Craft vertical velocity
	score     int
	phase     Phase
	paused    bool
	tickCount int // Ticks in flight since the first flap
}

// New creates a game using the given configuration. Call Reset before Step.
func New(cfg config.FlappyConfig) *Game {
	return &Game{
		cfg:   cfg,
		curve: config.NewCurve(cfg),
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.playerY = float64(g.floorY()-g.cfg.Player.Height) / 2
	g.playerVel = 0
	g.score = 0
	g.phase = PhaseReady
	g.paused = false
	g.tickCount = 0

	if g.course == nil {
		g.course = NewCourse(rc.Seed, rc.ScreenW, g.floorY(), g.cfg.Obstacles)
	} else {
		g.course.Resize(rc.ScreenW, g.floorY())
		g.course.Reset(rc.Seed)
	}
}

// Resize adapts the playfield to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.course != nil {
		g.course.Resize(w, g.floorY())
	}
}

// floorY is the row the ground is drawn on.
func (g *Game) floorY() int {
	return g.runtime.ScreenH - 1
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.phase {
	case PhaseOver:
		return core.StepResult{State: g.State()}
	case PhaseReady:
		if !in.Has(core.ActionJump) {
			return core.StepResult{State: g.State()}
		}
		g.phase = PhasePlaying
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	phys := g.cfg.Physics
	if in.Has(core.ActionJump) {
		g.playerVel = phys.JumpImpulse
	}
	g.playerVel = min(g.playerVel+phys.Gravity, phys.MaxFallSpeed)
	g.playerY += g.playerVel

	centerX := float64(g.cfg.Player.X) + float64(g.cfg.Player.Width)/2
	passed := g.course.Advance(centerX, g.curve.At(g.score, g.tickCount))
	g.score += passed

	crashed := false

	// Hit the top of the screen
	if g.playerY < 0 {
		g.playerY = 0
		crashed = true
	}

	// Hit the ground
	if int(g.playerY)+g.cfg.Player.Height > g.floorY() {
		g.playerY = float64(g.floorY() - g.cfg.Player.Height)
		crashed = true
	}

	if g.course.Hits(g.playerRect()) {
		crashed = true
	}

	if crashed {
		g.phase = PhaseOver
	}

	return core.StepResult{
		State:   g.State(),
		Scored:  passed > 0,
		Crashed: crashed,
	}
}

// playerRect returns the craft's collision rectangle.
func (g *Game) playerRect() core.Rect {
	p := g.cfg.Player
	return core.NewRect(p.X, int(g.playerY), p.Width, p.Height)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseOver,
		Paused:   g.paused,
		Ticks:    g.tickCount,
	}
}

// Phase returns the lifecycle stage of the current run.
func (g *Game) Phase() Phase {
	return g.phase
}

// Level returns the current difficulty level in [0, 1].
func (g *Game) Level() float64 {
	return g.curve.Level(g.score, g.tickCount)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawHLine(0, g.floorY(), dst.Width(), GroundChar, core.ColorGround)

	for _, p := range g.course.Pipes() {
		g.drawPipe(dst, p)
	}

	// Craft
	pl := g.cfg.Player
	top := int(g.playerY)
	for dy := 0; dy < pl.Height; dy++ {
		for dx := 0; dx < pl.Width; dx++ {
			if dx == pl.Width-1 && dy == 0 {
				dst.SetColored(pl.X+dx, top+dy, PlayerChar, core.ColorCraft)
			} else {
				dst.SetColored(pl.X+dx, top+dy, BodyChar, core.ColorCraftBody)
			}
		}
	}

	// Score, centred at the top like a scoreboard
	if g.phase != PhaseReady {
		dst.DrawTextCentered(0, fmt.Sprintf(" %d ", g.score), core.ColorScore)
	}

	switch {
	case g.phase == PhaseReady:
		drawCenteredMessage(dst, "GET READY", "Press SPACE to fly", core.ColorInfo)
	case g.phase == PhaseOver:
		drawCenteredMessage(dst, "OOPS!", fmt.Sprintf("%d points  |  R to fly again", g.score), core.ColorAlert)
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorNotice)
	}
}

// drawPipe renders a single pipe to the screen.
func (g *Game) drawPipe(dst *core.Screen, p Pipe) {
	width := g.cfg.Obstacles.PipeWidth
	x := p.Col()
	floor := g.floorY()

	// Top section, capped at its lower end
	for y := 0; y < p.GapY; y++ {
		dst.DrawHLine(x, y, width, PipeChar, core.ColorPipe)
	}
	if p.GapY > 0 {
		dst.DrawHLine(x, p.GapY-1, width, PipeCapTop, core.ColorPipeCap)
	}

	// Bottom section, capped at its upper end
	bottomY := p.GapY + p.GapHeight
	for y := bottomY; y < floor; y++ {
		dst.DrawHLine(x, y, width, PipeChar, core.ColorPipe)
	}
	if bottomY < floor {
		dst.DrawHLine(x, bottomY, width, PipeCapBottom, core.ColorPipeCap)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	titleW := utf8.RuneCountInString(title)
	subW := utf8.RuneCountInString(subtitle)

	boxW := max(titleW, subW) + 4
	boxH := 5
	box := core.CenteredIn(core.NewRect(0, 0, dst.Width(), dst.Height()), boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextColored(box.X+(boxW-titleW)/2, box.Y+1, title, c)
	dst.DrawTextColored(box.X+(boxW-subW)/2, box.Y+3, subtitle, core.ColorScore)
}
