package server

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skybound/internal/config"
	"github.com/vovakirdan/skybound/internal/leaderboard"
	"github.com/vovakirdan/skybound/internal/storage"
	redisstore "github.com/vovakirdan/skybound/internal/storage/redis"
)

// Backend is an opened roster store plus the function that releases it.
type Backend struct {
	Store leaderboard.RosterStore
	Name  string
	close func() error
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the roster store selected by cfg.Backend.
func OpenBackend(cfg config.ServerConfig, logger *log.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite, "":
		kv, err := storage.Open(cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Store: storage.NewRosterStore(kv, storage.WithLogger(logger)),
			Name:  config.BackendSQLite,
			close: kv.Close,
		}, nil

	case config.BackendRedis:
		rc := redisstore.DefaultConfig()
		rc.Addr = cfg.Redis.Addr
		rc.Password = cfg.Redis.Password
		rc.DB = cfg.Redis.DB
		if cfg.Redis.Key != "" {
			rc.Key = cfg.Redis.Key
		}
		rs, err := redisstore.New(rc, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: rs, Name: config.BackendRedis, close: rs.Close}, nil

	case config.BackendMemory:
		return &Backend{Store: leaderboard.NewMemoryStore(), Name: config.BackendMemory}, nil
	}
	return nil, fmt.Errorf("server: unknown backend %q", cfg.Backend)
}
