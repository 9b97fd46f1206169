package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skybound/internal/leaderboard"
)

// RosterKey is the key the fallback leaderboard lives under.
const RosterKey = "skybound_mock_leaderboard"

// EncodeRoster serializes r as a JSON array of {"name","score"} objects.
// A nil roster encodes as an empty array.
func EncodeRoster(r leaderboard.Roster) (string, error) {
	if r == nil {
		r = leaderboard.Roster{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode roster: %w", err)
	}
	return string(b), nil
}

// DecodeRoster parses a stored roster and checks it against the roster
// invariants.
func DecodeRoster(payload string) (leaderboard.Roster, error) {
	var r leaderboard.Roster
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("storage: malformed roster: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("storage: invalid roster: %w", err)
	}
	if r == nil {
		r = leaderboard.Roster{}
	}
	return r, nil
}

// RosterStore keeps a leaderboard roster under one key of the KV table.
type RosterStore struct {
	kv     *Store
	key    string
	logger *log.Logger
}

// RosterOption configures a RosterStore.
type RosterOption func(*RosterStore)

// WithKey stores the roster under key instead of RosterKey.
func WithKey(key string) RosterOption {
	return func(r *RosterStore) {
		if key != "" {
			r.key = key
		}
	}
}

// WithLogger sets the logger that reports discarded payloads.
func WithLogger(l *log.Logger) RosterOption {
	return func(r *RosterStore) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRosterStore returns a RosterStore backed by kv.
func NewRosterStore(kv *Store, opts ...RosterOption) *RosterStore {
	r := &RosterStore{
		kv:     kv,
		key:    RosterKey,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the stored roster. An absent or unreadable payload is an
// empty roster; it is replaced by the next Save.
func (r *RosterStore) Load(ctx context.Context) (leaderboard.Roster, error) {
	payload, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return leaderboard.Roster{}, nil
	}

	roster, err := DecodeRoster(payload)
	if err != nil {
		r.logger.Warn("discarding stored roster", "key", r.key, "error", err)
		return leaderboard.Roster{}, nil
	}
	return roster, nil
}

// Save overwrites the stored roster.
func (r *RosterStore) Save(ctx context.Context, roster leaderboard.Roster) error {
	payload, err := EncodeRoster(roster)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, r.key, payload)
}

// Clear removes the stored roster.
func (r *RosterStore) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, r.key)
}

var _ leaderboard.RosterStore = (*RosterStore)(nil)
