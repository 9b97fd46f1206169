package leaderboard

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRoster() Roster {
	r := make(Roster, 0, MaxPlayers)
	for i := 0; i < MaxPlayers; i++ {
		r = append(r, ScoreEntry{Name: fmt.Sprintf("P%d", i), Score: i * 3})
	}
	return r
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	r := Roster{
		{Name: "low", Score: 1},
		{Name: "high", Score: 30},
		{Name: "mid", Score: 12},
	}

	got := Rank(r)
	want := []RankedEntry{
		{Rank: 1, Name: "high", Score: 30},
		{Rank: 2, Name: "mid", Score: 12},
		{Rank: 3, Name: "low", Score: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Rank() mismatch (-want +got):\n%s", diff)
	}
}

func TestRankBreaksTiesByRosterOrder(t *testing.T) {
	r := Roster{{Name: "A", Score: 10}, {Name: "B", Score: 10}}

	got := Rank(r)
	want := []RankedEntry{
		{Rank: 1, Name: "A", Score: 10},
		{Rank: 2, Name: "B", Score: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Rank() mismatch (-want +got):\n%s", diff)
	}
}

func TestRankAssignsDistinctRanksAcrossTies(t *testing.T) {
	r := Roster{
		{Name: "a", Score: 5},
		{Name: "b", Score: 9},
		{Name: "c", Score: 5},
		{Name: "d", Score: 9},
		{Name: "e", Score: 0},
	}

	got := Rank(r)
	names := make([]string, len(got))
	for i, e := range got {
		assert.Equal(t, i+1, e.Rank)
		names[i] = e.Name
	}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, names)
}

func TestRankIsIdempotent(t *testing.T) {
	r := Roster{{Name: "x", Score: 3}, {Name: "y", Score: 7}, {Name: "z", Score: 3}}

	first := Rank(r)
	second := Rank(r)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Rank() not stable across calls (-first +second):\n%s", diff)
	}
}

func TestRankDoesNotReorderInput(t *testing.T) {
	r := Roster{{Name: "x", Score: 1}, {Name: "y", Score: 2}}
	Rank(r)
	assert.Equal(t, "x", r[0].Name)
}

func TestRankEmpty(t *testing.T) {
	got := Rank(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWinner(t *testing.T) {
	_, ok := Winner(nil)
	assert.False(t, ok, "empty roster has no winner")

	r := Roster{{Name: "A", Score: 4}, {Name: "B", Score: 8}, {Name: "C", Score: 8}}
	w, ok := Winner(r)
	require.True(t, ok)
	assert.Equal(t, Rank(r)[0], w)
	assert.Equal(t, RankedEntry{Rank: 1, Name: "B", Score: 8}, w)
}

func TestApplySubmissionInsertsWhileRoomRemains(t *testing.T) {
	var r Roster
	for n := 0; n < MaxPlayers; n++ {
		next, outcome := ApplySubmission(r, fmt.Sprintf("new%d", n), n)
		require.Equal(t, OutcomeAccepted, outcome)
		require.Len(t, next, n+1)
		assert.Equal(t, fmt.Sprintf("new%d", n), next[n].Name, "new names append at the end")
		r = next
	}
}

func TestApplySubmissionRejectsNewNameWhenFull(t *testing.T) {
	r := fullRoster()
	before := r.Clone()

	next, outcome := ApplySubmission(r, "K", 5)
	assert.Equal(t, OutcomeRosterFull, outcome)
	assert.Equal(t, "ROSTER_FULL", outcome.String())
	assert.Len(t, next, MaxPlayers)
	assert.Equal(t, before, next)
}

func TestApplySubmissionUpdatesExistingNameWhenFull(t *testing.T) {
	r := fullRoster()

	next, outcome := ApplySubmission(r, "P0", 100)
	require.Equal(t, OutcomeAccepted, outcome)
	assert.Equal(t, 100, next[0].Score)
	assert.Len(t, next, MaxPlayers)
}

func TestApplySubmissionKeepsHigherScore(t *testing.T) {
	r := Roster{{Name: "A", Score: 50}}

	lower, outcome := ApplySubmission(r, "A", 20)
	require.Equal(t, OutcomeAccepted, outcome)
	assert.Equal(t, 50, lower[0].Score, "a lower score must not replace a higher one")

	higher, outcome := ApplySubmission(r, "A", 70)
	require.Equal(t, OutcomeAccepted, outcome)
	assert.Equal(t, 70, higher[0].Score)

	assert.Equal(t, 50, r[0].Score, "input roster must not be modified")
}

func TestApplySubmissionNamesAreCaseSensitive(t *testing.T) {
	r := Roster{{Name: "ann", Score: 1}}
	next, outcome := ApplySubmission(r, "Ann", 2)
	require.Equal(t, OutcomeAccepted, outcome)
	assert.Len(t, next, 2)
}

func TestReset(t *testing.T) {
	assert.Empty(t, Reset(fullRoster()))
	assert.Empty(t, Reset(nil))
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "plain", raw: "pilot", want: "pilot"},
		{name: "trimmed", raw: "  pilot\t", want: "pilot"},
		{name: "empty", raw: "", wantErr: ErrInvalidName},
		{name: "whitespace only", raw: "   ", wantErr: ErrInvalidName},
		{name: "truncated", raw: strings.Repeat("x", 25), want: strings.Repeat("x", MaxNameLength)},
		{name: "truncated multibyte", raw: strings.Repeat("é", 22), want: strings.Repeat("é", MaxNameLength)},
		{name: "retrimmed after cut", raw: strings.Repeat("a", 19) + "   tail", want: strings.Repeat("a", 19)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeName(tc.raw)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateScore(t *testing.T) {
	assert.NoError(t, ValidateScore(0))
	assert.NoError(t, ValidateScore(42))
	assert.ErrorIs(t, ValidateScore(-1), ErrInvalidScore)
}

func TestRosterValidate(t *testing.T) {
	assert.NoError(t, Roster(nil).Validate())
	assert.NoError(t, fullRoster().Validate())

	tooMany := append(fullRoster(), ScoreEntry{Name: "extra", Score: 1})
	assert.Error(t, tooMany.Validate())

	assert.Error(t, Roster{{Name: "a", Score: 1}, {Name: "a", Score: 2}}.Validate())
	assert.ErrorIs(t, Roster{{Name: "", Score: 1}}.Validate(), ErrInvalidName)
	assert.ErrorIs(t, Roster{{Name: " Ann", Score: 1}}.Validate(), ErrInvalidName)
	assert.ErrorIs(t, Roster{{Name: "Ann\t", Score: 1}}.Validate(), ErrInvalidName)
	assert.ErrorIs(t, Roster{{Name: strings.Repeat("é", MaxNameLength+1), Score: 1}}.Validate(), ErrInvalidName)
	assert.NoError(t, Roster{{Name: strings.Repeat("é", MaxNameLength), Score: 1}}.Validate())
	assert.ErrorIs(t, Roster{{Name: "a", Score: -3}}.Validate(), ErrInvalidScore)
}

func TestSubmitResultErr(t *testing.T) {
	assert.NoError(t, SubmitResult{Success: true}.Err())
	assert.ErrorIs(t, SubmitResult{Error: CodeMaxPlayers}.Err(), ErrRosterFull)
	assert.ErrorIs(t, SubmitResult{Error: CodeInvalidName}.Err(), ErrInvalidName)
	assert.ErrorIs(t, SubmitResult{Error: CodeInvalidScore}.Err(), ErrInvalidScore)
	assert.ErrorIs(t, SubmitResult{Error: CodeStorage}.Err(), ErrStorage)
	assert.ErrorContains(t, SubmitResult{Error: "NOPE"}.Err(), "NOPE")
	assert.Error(t, SubmitResult{}.Err())
}

func TestCanJoin(t *testing.T) {
	board := Rank(fullRoster())
	assert.True(t, CanJoin(board, "P3"), "listed names can always submit")
	assert.False(t, CanJoin(board, "K"))
	assert.True(t, CanJoin(board[:MaxPlayers-1], "K"))
	assert.True(t, CanJoin(nil, "K"))
}

func TestIsRecord(t *testing.T) {
	board := Rank(Roster{{Name: "A", Score: 12}, {Name: "B", Score: 3}})
	assert.True(t, IsRecord(board, "A", 12))
	assert.False(t, IsRecord(board, "A", 5), "a lower run is not a record")
	assert.False(t, IsRecord(board, "C", 12))
}
