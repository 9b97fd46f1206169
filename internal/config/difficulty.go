package config

// Floors used when the config leaves the scaling minimums unset.
const (
	fallbackMinGap     = 4
	fallbackMinSpacing = 15
)

// Tuning is the course a run flies through at one moment: how fast pipes
// scroll, how tall a gap may be, and how far apart pipes are.
type Tuning struct {
	Level   float64 // 0 is the easiest setting, 1 the hardest
	Speed   float64 // Columns per tick
	MaxGap  int     // Tallest gap the next pipe may get
	Spacing int     // Columns between consecutive pipes
}

// Curve derives Tuning from how far a run has got. It is a value type and
// safe to share between games.
type Curve struct {
	difficulty  DifficultyConfig
	baseSpeed   float64
	baseGap     int
	baseSpacing int
}

// NewCurve builds the difficulty curve for cfg.
func NewCurve(cfg FlappyConfig) Curve {
	return Curve{
		difficulty:  cfg.Difficulty,
		baseSpeed:   cfg.Physics.BaseSpeed,
		baseGap:     cfg.Obstacles.MaxGapSize,
		baseSpacing: cfg.Obstacles.PipeSpacing,
	}
}

// Progressive reports whether the course gets harder during a run.
func (c Curve) Progressive() bool {
	return c.difficulty.Enabled && c.difficulty.Progression.Type != ProgressionNone
}

func (c Curve) start() float64 {
	return min(max(c.difficulty.InitialLevel, 0), 1)
}

// Level returns the difficulty in [0, 1] after score points and ticks in
// flight. It rises linearly from the initial level and tops out at max_at.
func (c Curve) Level(score, ticks int) float64 {
	start := c.start()
	if !c.Progressive() {
		return start
	}

	var done int
	switch c.difficulty.Progression.Type {
	case ProgressionScore:
		done = score
	case ProgressionTime:
		done = ticks
	default:
		return start
	}

	maxAt := max(c.difficulty.Progression.MaxAt, 1)
	progress := min(max(float64(done)/float64(maxAt), 0), 1)
	return start + progress*(1-start)
}

// At returns the course parameters after score points and ticks in flight.
func (c Curve) At(score, ticks int) Tuning {
	level := c.Level(score, ticks)
	s := c.difficulty.Scaling

	minGap := s.MinGap
	if minGap <= 0 {
		minGap = fallbackMinGap
	}
	minSpacing := s.MinSpacing
	if minSpacing <= 0 {
		minSpacing = fallbackMinSpacing
	}

	return Tuning{
		Level:   level,
		Speed:   c.baseSpeed * (1 + level*s.SpeedMultiplier),
		MaxGap:  max(c.baseGap-int(level*float64(s.GapReduction)), minGap),
		Spacing: max(c.baseSpacing-int(level*float64(s.SpacingReduction)), minSpacing),
	}
}
