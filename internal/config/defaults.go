package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/skybound.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hardcoded configuration. It matches the embedded
// defaults/skybound.yaml and is used when that cannot be parsed.
func Default() Config {
	return Config{
		Leaderboard: LeaderboardConfig{
			RemoteURL: "http://localhost:5000",
			Timeout:   time.Second,
		},
		Storage: StorageConfig{
			DB: "~/.skybound/skybound.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.skybound/skybound.log",
		},
		Server: ServerConfig{
			Address: ":5000",
			Backend: BackendSQLite,
			DB:      "~/.skybound/server.db",
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "skybound:leaderboard",
			},
			CORSOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				RPS:   20,
				Burst: 40,
			},
		},
		SSH: SSHConfig{
			Address:     ":2222",
			HostKey:     "~/.skybound/ssh_host_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		Game: DefaultFlappyConfig(),
	}
}

// DefaultFlappyConfig returns the default game configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		FPS: 30,
		Physics: FlappyPhysics{
			Gravity:      0.25,
			JumpImpulse:  -1.8,
			MaxFallSpeed: 3.0,
			BaseSpeed:    0.8,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:    5,
			PipeSpacing:  40,
			MinGapSize:   8,
			MaxGapSize:   12,
			TopMargin:    3,
			BottomMargin: 3,
		},
		Player: FlappyPlayer{
			X:      10,
			Width:  2,
			Height: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionScore,
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				GapReduction:     4,
				SpacingReduction: 15,
				MinGap:           4,
				MinSpacing:       15,
			},
		},
	}
}
