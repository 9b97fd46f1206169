// Package config provides YAML-based configuration loading for Skybound:
// leaderboard endpoints, local storage, logging, the scoring server and the
// game itself, plus difficulty management for the game.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/vovakirdan/skybound/internal/logging"
)

// Config is the complete Skybound configuration.
type Config struct {
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Storage     StorageConfig     `yaml:"storage"`
	Log         LogConfig         `yaml:"log"`
	Server      ServerConfig      `yaml:"server"`
	SSH         SSHConfig         `yaml:"ssh"`
	Game        FlappyConfig      `yaml:"game"`
}

// LeaderboardConfig points the client at the shared scoring service.
// An empty RemoteURL runs the leaderboard offline on the device store.
type LeaderboardConfig struct {
	RemoteURL string        `yaml:"remote_url" env:"REMOTE_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"REMOTE_TIMEOUT"`
}

// StorageConfig locates the device database.
type StorageConfig struct {
	DB string `yaml:"db" env:"DB"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"` // debug, info, warn, error
	File  string `yaml:"file" env:"LOG_FILE"`   // used by the terminal UI
}

// ServerConfig configures the HTTP scoring service.
type ServerConfig struct {
	Address     string          `yaml:"address" env:"SERVER_ADDR"`
	Backend     string          `yaml:"backend" env:"SERVER_BACKEND"` // sqlite, redis, memory
	DB          string          `yaml:"db" env:"SERVER_DB"`
	Redis       RedisConfig     `yaml:"redis"`
	CORSOrigins []string        `yaml:"cors_origins" env:"CORS_ORIGINS"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// RedisConfig selects the Redis instance for the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
	Key      string `yaml:"key"`
}

// RateLimitConfig is a per-client token bucket. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// SSHConfig configures the SSH arcade server.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"SSH_ADDR"`
	HostKey     string        `yaml:"host_key" env:"SSH_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SSH_IDLE_TIMEOUT"`
}

// FlappyConfig contains all configuration for the Skybound game.
type FlappyConfig struct {
	FPS        int              `yaml:"fps"`
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics defines physics parameters.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// FlappyObstacles defines pipe parameters.
type FlappyObstacles struct {
	PipeWidth    int `yaml:"pipe_width"`
	PipeSpacing  int `yaml:"pipe_spacing"`
	MinGapSize   int `yaml:"min_gap_size"`
	MaxGapSize   int `yaml:"max_gap_size"`
	TopMargin    int `yaml:"top_margin"`
	BottomMargin int `yaml:"bottom_margin"`
}

// FlappyPlayer defines the craft's position and size.
type FlappyPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
	MinGap           int     `yaml:"min_gap"`           // Gap never shrinks below this
	MinSpacing       int     `yaml:"min_spacing"`       // Spacing never shrinks below this
}

// Server backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Progression types.
const (
	ProgressionScore = "score"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the game config based on a difficulty preset.
// The fixed preset freezes difficulty at the configured initial level.
func (g *FlappyConfig) ApplyPreset(preset DifficultyPreset) {
	if preset == DifficultyFixed {
		g.Difficulty.Enabled = false
		return
	}
	g.Difficulty.Enabled = true
	g.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// Validate checks the whole configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if err := c.Leaderboard.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("leaderboard: %v", err))
	}
	if strings.TrimSpace(c.Storage.DB) == "" {
		errs = append(errs, "storage: db path cannot be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log: %v", err))
	}
	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server: %v", err))
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, "ssh: idle_timeout cannot be negative")
	}
	if err := c.Game.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("game: %v", err))
	}

	if len(errs) > 0 {
		return errors.New("config: " + strings.Join(errs, "; "))
	}
	return nil
}

// Offline reports whether no remote scoring service is configured.
func (l LeaderboardConfig) Offline() bool {
	return strings.TrimSpace(l.RemoteURL) == ""
}

// Validate checks the leaderboard section.
func (l LeaderboardConfig) Validate() error {
	if l.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if l.Offline() {
		return nil
	}
	u, err := url.Parse(l.RemoteURL)
	if err != nil {
		return fmt.Errorf("invalid remote_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("remote_url must be an http(s) URL, got %q", l.RemoteURL)
	}
	return nil
}

// Validate checks the server section.
func (s ServerConfig) Validate() error {
	var errs []string
	if strings.TrimSpace(s.Address) == "" {
		errs = append(errs, "address cannot be empty")
	}
	switch s.Backend {
	case BackendSQLite:
		if strings.TrimSpace(s.DB) == "" {
			errs = append(errs, "db path is required for the sqlite backend")
		}
	case BackendRedis:
		if strings.TrimSpace(s.Redis.Addr) == "" {
			errs = append(errs, "redis.addr is required for the redis backend")
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("unknown backend %q", s.Backend))
	}
	if s.RateLimit.RPS < 0 {
		errs = append(errs, "rate_limit.rps cannot be negative")
	}
	if s.RateLimit.RPS > 0 && s.RateLimit.Burst < 1 {
		errs = append(errs, "rate_limit.burst must be at least 1")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, ", "))
	}
	return nil
}

// Validate checks that the game parameters are playable.
func (g FlappyConfig) Validate() error {
	var errs []string
	if g.FPS < 1 || g.FPS > 240 {
		errs = append(errs, "fps must be between 1 and 240")
	}
	if g.Physics.Gravity <= 0 {
		errs = append(errs, "physics.gravity must be positive")
	}
	if g.Physics.JumpImpulse >= 0 {
		errs = append(errs, "physics.jump_impulse must be negative")
	}
	if g.Physics.MaxFallSpeed <= 0 {
		errs = append(errs, "physics.max_fall_speed must be positive")
	}
	if g.Physics.BaseSpeed <= 0 {
		errs = append(errs, "physics.base_speed must be positive")
	}
	if g.Obstacles.PipeWidth < 1 {
		errs = append(errs, "obstacles.pipe_width must be at least 1")
	}
	if g.Obstacles.MinGapSize < 1 || g.Obstacles.MinGapSize > g.Obstacles.MaxGapSize {
		errs = append(errs, "obstacles gap sizes must satisfy 1 <= min_gap_size <= max_gap_size")
	}
	if g.Obstacles.PipeSpacing <= g.Obstacles.PipeWidth {
		errs = append(errs, "obstacles.pipe_spacing must exceed pipe_width")
	}
	if g.Player.Width < 1 || g.Player.Height < 1 {
		errs = append(errs, "player size must be at least 1x1")
	}
	switch g.Difficulty.Progression.Type {
	case ProgressionScore, ProgressionTime, ProgressionNone:
	default:
		errs = append(errs, fmt.Sprintf("difficulty.progression.type %q is not score, time or none", g.Difficulty.Progression.Type))
	}
	if g.Difficulty.InitialLevel < 0 || g.Difficulty.InitialLevel > 1 {
		errs = append(errs, "difficulty.initial_level must be within [0, 1]")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, ", "))
	}
	return nil
}
