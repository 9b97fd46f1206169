// Package leaderboard implements the bounded score roster shared by every
// Skybound score store, and the service that answers from the remote scoring
// API when it can and from the device store when it cannot.
//
// The roster rules (capacity, monotonic scores, ranking, winner) live here as
// pure functions so that the remote server and the local fallback rank
// identically.
package leaderboard

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Roster limits.
const (
	MaxPlayers    = 10 // Distinct names a roster can hold
	MaxNameLength = 20 // Name length in runes after trimming
)

// Error codes carried in SubmitResult.Error.
const (
	CodeMaxPlayers   = "MAX_PLAYERS"
	CodeInvalidName  = "INVALID_NAME"
	CodeInvalidScore = "INVALID_SCORE"
	CodeStorage      = "STORAGE_ERROR"
)

// ScoreEntry is one player's best recorded score.
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Roster is the ordered set of entries tracked by a leaderboard.
// Order is registration order; it only matters for breaking score ties.
type Roster []ScoreEntry

// Index returns the position of name in the roster, or -1.
func (r Roster) Index(name string) int {
	for i, e := range r {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with r.
func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	copy(out, r)
	return out
}

// Validate reports whether r satisfies the roster invariants:
// at most MaxPlayers entries, unique names in normalized form, non-negative
// scores.
func (r Roster) Validate() error {
	if len(r) > MaxPlayers {
		return errTooManyEntries
	}
	seen := make(map[string]struct{}, len(r))
	for _, e := range r {
		if e.Name == "" || strings.TrimSpace(e.Name) != e.Name || utf8.RuneCountInString(e.Name) > MaxNameLength {
			return ErrInvalidName
		}
		if e.Score < 0 {
			return ErrInvalidScore
		}
		if _, dup := seen[e.Name]; dup {
			return errDuplicateName
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

// RankedEntry is a read-only ranked projection of a ScoreEntry.
type RankedEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// SubmitResult is what a score submission reports back to the caller.
// Error is empty on success, CodeMaxPlayers when the roster is full.
type SubmitResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Err converts a failed result into the matching sentinel error.
// It returns nil for a successful result.
func (r SubmitResult) Err() error {
	if r.Success {
		return nil
	}
	switch r.Error {
	case CodeMaxPlayers:
		return ErrRosterFull
	case CodeInvalidName:
		return ErrInvalidName
	case CodeInvalidScore:
		return ErrInvalidScore
	case CodeStorage:
		return ErrStorage
	case "":
		return errRejected
	default:
		return fmt.Errorf("leaderboard: submission rejected: %s", r.Error)
	}
}

// Outcome is the policy decision for a submission.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeRosterFull
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "ACCEPTED"
	case OutcomeRosterFull:
		return "ROSTER_FULL"
	default:
		return "UNKNOWN"
	}
}
