// Package redis keeps the scoring server's leaderboard roster in Redis so
// several server instances can share one board. Submissions update the
// roster with WATCH/MULTI/EXEC, so concurrent instances never overwrite each
// other.
package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/skybound/internal/leaderboard"
	"github.com/vovakirdan/skybound/internal/storage"
)

// DefaultKey is the Redis key the roster is stored under.
const DefaultKey = "skybound:leaderboard"

// Config holds Redis connection configuration
type Config struct {
	Addr         string
	Password     string
	DB           int
	Key          string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		Key:          DefaultKey,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Store implements leaderboard.RosterStore on a single Redis string key
// holding the roster as a JSON array.
type Store struct {
	client *redis.Client
	key    string
	logger *log.Logger
}

// New connects to Redis with the provided configuration.
func New(config Config, logger *log.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: cannot connect to %s: %w", config.Addr, err)
	}

	s := NewWithClient(client, config.Key)
	if logger != nil {
		s.logger = logger
	}
	return s, nil
}

// NewWithClient creates a Store using an existing Redis client (useful for testing).
// An empty key selects DefaultKey.
func NewWithClient(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key, logger: log.New(io.Discard)}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Load returns the stored roster. A missing or unreadable value is an empty
// roster.
func (s *Store) Load(ctx context.Context) (leaderboard.Roster, error) {
	return s.load(ctx, s.client)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *Store) load(ctx context.Context, c getter) (leaderboard.Roster, error) {
	payload, err := c.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return leaderboard.Roster{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: cannot read roster: %w", err)
	}

	r, err := storage.DecodeRoster(payload)
	if err != nil {
		s.logger.Warn("discarding stored roster", "key", s.key, "error", err)
		return leaderboard.Roster{}, nil
	}
	return r, nil
}

// Save overwrites the stored roster with a single SET.
func (s *Store) Save(ctx context.Context, r leaderboard.Roster) error {
	payload, err := storage.EncodeRoster(r)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis: cannot write roster: %w", err)
	}
	return nil
}

// maxUpdateAttempts bounds how often Update retries after another client
// changed the roster between its read and its write.
const maxUpdateAttempts = 50

// ErrContended is returned when Update lost every attempt to other writers.
var ErrContended = errors.New("redis: roster changed concurrently too many times")

// Update applies a change to the roster with optimistic locking: the key is
// WATCHed, read, and rewritten in MULTI/EXEC. If another client wrote the key
// in between, EXEC aborts and the change is applied again to the new value.
func (s *Store) Update(ctx context.Context, apply func(leaderboard.Roster) (leaderboard.Roster, bool)) error {
	txf := func(tx *redis.Tx) error {
		r, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		next, write := apply(r)
		if !write {
			return nil
		}
		payload, err := storage.EncodeRoster(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, payload, 0)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return fmt.Errorf("redis: cannot update roster: %w", err)
		}
		s.logger.Debug("roster changed during update, retrying", "key", s.key, "attempt", attempt)
	}
	return ErrContended
}

// Clear deletes the roster key.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis: cannot clear roster: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var _ leaderboard.RosterUpdater = (*Store)(nil)
