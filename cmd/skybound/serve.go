package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skybound/internal/leaderboard"
	"github.com/vovakirdan/skybound/internal/logging"
	"github.com/vovakirdan/skybound/internal/server"
)

var (
	flagServeAddr    string
	flagServeBackend string
	flagServeDB      string
	flagRedisAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP scoring service",
	Long: `Run the scoring service that game clients submit to.

Backends:
  sqlite - A database file on this host (default)
  redis  - A Redis key, so several service instances share one board
  memory - In-process only, lost on restart

Examples:
  skybound serve
  skybound serve --addr :8080
  skybound serve --backend redis --redis-addr localhost:6379
  skybound serve --backend memory

Point clients at it with:
  skybound play --remote http://localhost:5000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (host:port)")
	serveCmd.Flags().StringVar(&flagServeBackend, "backend", "", "Storage backend: sqlite, redis, memory")
	serveCmd.Flags().StringVar(&flagServeDB, "server-db", "", "Database path for the sqlite backend")
	serveCmd.Flags().StringVar(&flagRedisAddr, "redis-addr", "", "Redis address for the redis backend")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Address = flagServeAddr
	}
	if flags.Changed("backend") {
		cfg.Server.Backend = flagServeBackend
	}
	if flags.Changed("server-db") {
		cfg.Server.DB = flagServeDB
	}
	if flags.Changed("redis-addr") {
		cfg.Server.Redis.Addr = flagRedisAddr
	}
	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, "skybound-server")
	if err != nil {
		return err
	}

	backend, err := server.OpenBackend(cfg.Server, logger)
	if err != nil {
		return err
	}
	defer backend.Close()
	logger.Info("leaderboard backend ready", "backend", backend.Name)

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg.Server, leaderboard.NewLocalSource(backend.Store), logger)

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	return ignoreCancel(ctx, srv.ListenAndServe(ctx))
}
