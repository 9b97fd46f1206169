package core

// Screen size and frame rate a run falls back to when the terminal does not
// report them.
const (
	DefaultScreenW  = 80
	DefaultScreenH  = 24
	DefaultTickRate = 30
)

// RuntimeConfig is what the front end tells the game at reset: the size of
// the playfield, the frame rate and the RNG seed. The same seed and inputs
// always produce the same run.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int
	Seed     int64 // 0 lets the front end pick one
}

// Normalize fills unset sizes and rate with the defaults. fps is used as
// the rate when TickRate is unset.
func (rc RuntimeConfig) Normalize(fps int) RuntimeConfig {
	if rc.ScreenW <= 0 || rc.ScreenH <= 0 {
		rc.ScreenW, rc.ScreenH = DefaultScreenW, DefaultScreenH
	}
	if rc.TickRate <= 0 {
		rc.TickRate = fps
	}
	if rc.TickRate <= 0 {
		rc.TickRate = DefaultTickRate
	}
	return rc
}

// GameState is what a run shows to the outside.
type GameState struct {
	Score    int // Pipes passed
	GameOver bool
	Paused   bool
	Ticks    int // Ticks in flight
}

// StepResult reports one tick. Scored and Crashed are set only on the tick
// the event happened.
type StepResult struct {
	State   GameState
	Scored  bool
	Crashed bool
}
