package leaderboard

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Rank orders the roster by score, highest first. Equal scores keep their
// roster order, and every entry gets its own rank: 1..N with no gaps and no
// shared ranks.
func Rank(r Roster) []RankedEntry {
	sorted := r.Clone()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	ranked := make([]RankedEntry, len(sorted))
	for i, e := range sorted {
		ranked[i] = RankedEntry{
			Rank:  i + 1,
			Name:  e.Name,
			Score: e.Score,
		}
	}
	return ranked
}

// Winner returns the rank 1 entry. The second result is false for an empty roster.
func Winner(r Roster) (RankedEntry, bool) {
	ranked := Rank(r)
	if len(ranked) == 0 {
		return RankedEntry{}, false
	}
	return ranked[0], true
}

// ApplySubmission records score for name.
//
// A known name keeps the higher of its recorded and submitted score. An
// unknown name is appended when there is room, so on equal scores earlier
// registrants rank first. An unknown name on a full roster is rejected with
// OutcomeRosterFull and the roster is returned unchanged.
//
// name must already be normalized (see NormalizeName). The input roster is
// never modified.
func ApplySubmission(r Roster, name string, score int) (Roster, Outcome) {
	if i := r.Index(name); i >= 0 {
		next := r.Clone()
		next[i].Score = max(next[i].Score, score)
		return next, OutcomeAccepted
	}

	if len(r) >= MaxPlayers {
		return r, OutcomeRosterFull
	}

	next := make(Roster, len(r), len(r)+1)
	copy(next, r)
	return append(next, ScoreEntry{Name: name, Score: score}), OutcomeAccepted
}

// Reset returns an empty roster.
func Reset(Roster) Roster {
	return Roster{}
}

// NormalizeName trims surrounding whitespace and caps the name at
// MaxNameLength runes. Names are case-sensitive.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
	}
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// ValidateScore rejects negative scores.
func ValidateScore(score int) error {
	if score < 0 {
		return ErrInvalidScore
	}
	return nil
}

// CanJoin reports whether name could be submitted to a board showing
// entries: either the name is already listed or there is a free slot.
func CanJoin(entries []RankedEntry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return len(entries) < MaxPlayers
}

// IsRecord reports whether entries list name with exactly score, meaning a
// just-submitted score became that player's best.
func IsRecord(entries []RankedEntry, name string, score int) bool {
	for _, e := range entries {
		if e.Name == name {
			return e.Score == score
		}
	}
	return false
}
