package leaderboard

import (
	"context"
	"sync"
)

// Source answers the four leaderboard operations from one store.
// The remote API client and the device-local store are both Sources; the
// Service picks between them per call.
type Source interface {
	List(ctx context.Context) ([]RankedEntry, error)
	Submit(ctx context.Context, name string, score int) (SubmitResult, error)
	Winner(ctx context.Context) (RankedEntry, bool, error)
	Reset(ctx context.Context) error
}

// RosterStore persists a single roster value. Implementations own raw
// storage only; they never rank or enforce capacity.
type RosterStore interface {
	// Load returns the stored roster. A missing or malformed value is an
	// empty roster, not an error.
	Load(ctx context.Context) (Roster, error)
	// Save replaces the stored roster atomically.
	Save(ctx context.Context, r Roster) error
	// Clear removes the stored roster.
	Clear(ctx context.Context) error
}

// RosterUpdater is a RosterStore shared by several processes. Update loads
// the roster, passes it to apply and, when apply asks for it, stores the
// result, all as one atomic step. apply may run more than once and must not
// have side effects beyond its return values.
type RosterUpdater interface {
	RosterStore
	Update(ctx context.Context, apply func(Roster) (next Roster, write bool)) error
}

// LocalSource applies the roster policy over a RosterStore.
// Submissions are serialized so that load, apply and save happen as one step
// within this process.
type LocalSource struct {
	mu    sync.Mutex
	store RosterStore
}

// NewLocalSource creates a Source backed by store.
func NewLocalSource(store RosterStore) *LocalSource {
	return &LocalSource{store: store}
}

// List returns the ranked roster.
func (l *LocalSource) List(ctx context.Context) ([]RankedEntry, error) {
	r, err := l.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(r), nil
}

// Submit applies a submission and persists the roster if it was accepted.
// name must already be normalized.
func (l *LocalSource) Submit(ctx context.Context, name string, score int) (SubmitResult, error) {
	if name == "" {
		return SubmitResult{}, ErrInvalidName
	}
	if err := ValidateScore(score); err != nil {
		return SubmitResult{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var outcome Outcome
	apply := func(r Roster) (Roster, bool) {
		var next Roster
		next, outcome = ApplySubmission(r, name, score)
		return next, outcome == OutcomeAccepted
	}

	if shared, ok := l.store.(RosterUpdater); ok {
		if err := shared.Update(ctx, apply); err != nil {
			return SubmitResult{}, err
		}
	} else {
		r, err := l.store.Load(ctx)
		if err != nil {
			return SubmitResult{}, err
		}
		if next, write := apply(r); write {
			if err := l.store.Save(ctx, next); err != nil {
				return SubmitResult{}, err
			}
		}
	}

	if outcome == OutcomeRosterFull {
		return SubmitResult{Success: false, Error: CodeMaxPlayers}, nil
	}
	return SubmitResult{Success: true}, nil
}

// Winner returns the top ranked entry, if any.
func (l *LocalSource) Winner(ctx context.Context) (RankedEntry, bool, error) {
	r, err := l.store.Load(ctx)
	if err != nil {
		return RankedEntry{}, false, err
	}
	w, ok := Winner(r)
	return w, ok, nil
}

// Reset clears the stored roster.
func (l *LocalSource) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Clear(ctx)
}

var _ Source = (*LocalSource)(nil)
