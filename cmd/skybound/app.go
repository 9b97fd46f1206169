package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skybound/internal/config"
	"github.com/vovakirdan/skybound/internal/leaderboard"
	"github.com/vovakirdan/skybound/internal/logging"
	"github.com/vovakirdan/skybound/internal/remote"
	"github.com/vovakirdan/skybound/internal/storage"
)

// loadConfig loads the configuration and applies the global flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.DB = flagDBPath
	}
	if flags.Changed("remote") {
		cfg.Leaderboard.RemoteURL = flagRemote
	}
	if flagOffline {
		cfg.Leaderboard.RemoteURL = ""
	}
	if flags.Changed("timeout") {
		cfg.Leaderboard.Timeout = flagTimeout
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	log.Debug("config loaded", "source", source)
	return cfg, nil
}

// device is what a game client needs: the device database and the
// leaderboard service in front of it.
type device struct {
	kv      *storage.Store
	service *leaderboard.Service
	logger  *log.Logger
}

// openDevice opens the device database and builds the leaderboard service.
// Logs go to logOut.
func openDevice(cfg config.Config, logOut io.Writer) (*device, error) {
	logger, err := logging.New(logOut, cfg.Log.Level, "skybound")
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		return nil, err
	}

	local := leaderboard.NewLocalSource(storage.NewRosterStore(kv, storage.WithLogger(logger)))

	var remoteSrc leaderboard.Source
	if !cfg.Leaderboard.Offline() {
		client, err := remote.NewClient(cfg.Leaderboard.RemoteURL,
			remote.WithTimeout(cfg.Leaderboard.Timeout),
			remote.WithLogger(logger),
		)
		if err != nil {
			kv.Close()
			return nil, err
		}
		remoteSrc = client
		logger.Debug("using scoring service", "url", client.BaseURL(), "timeout", cfg.Leaderboard.Timeout)
	} else {
		logger.Debug("offline: using the device leaderboard only")
	}

	return &device{
		kv:      kv,
		service: leaderboard.NewService(remoteSrc, local, leaderboard.WithLogger(logger)),
		logger:  logger,
	}, nil
}

func (d *device) Close() error {
	return d.kv.Close()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// ignoreCancel drops the error a command returns because it was interrupted.
func ignoreCancel(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
