package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/skybound/internal/leaderboard"
)

func TestRosterStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rs := NewRosterStore(openTestStore(t))

	got, err := rs.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	want := leaderboard.Roster{{Name: "B", Score: 3}, {Name: "A", Score: 9}}
	require.NoError(t, rs.Save(ctx, want))

	got, err = rs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got, "registration order is preserved")

	require.NoError(t, rs.Clear(ctx))
	got, err = rs.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRosterStorePersistedLayout(t *testing.T) {
	ctx := context.Background()
	kv := openTestStore(t)
	rs := NewRosterStore(kv)

	require.NoError(t, rs.Save(ctx, leaderboard.Roster{{Name: "A", Score: 1}}))

	raw, ok, err := kv.Get(ctx, RosterKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"name":"A","score":1}]`, raw)

	require.NoError(t, rs.Save(ctx, nil))
	raw, _, err = kv.Get(ctx, RosterKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestRosterStoreMalformedPayloadLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	payloads := []string{
		`{not json`,
		`{"name":"A"}`,
		`[{"name":"","score":1}]`,
		`[{"name":"A","score":1},{"name":"A","score":2}]`,
		`[{"name":"A","score":-5}]`,
		`[{"name":"  padded  ","score":3}]`,
		`[{"name":"abcdefghijklmnopqrstuvwxyz","score":3}]`,
	}

	for _, p := range payloads {
		kv := openTestStore(t)
		require.NoError(t, kv.Put(ctx, RosterKey, p))

		rs := NewRosterStore(kv)
		got, err := rs.Load(ctx)
		require.NoError(t, err, p)
		assert.Empty(t, got, p)

		// The next save replaces the bad payload.
		require.NoError(t, rs.Save(ctx, leaderboard.Roster{{Name: "ok", Score: 1}}))
		got, err = rs.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
}

func TestRosterStoreCustomKey(t *testing.T) {
	ctx := context.Background()
	kv := openTestStore(t)

	a := NewRosterStore(kv, WithKey("a"))
	b := NewRosterStore(kv, WithKey("b"))

	require.NoError(t, a.Save(ctx, leaderboard.Roster{{Name: "A", Score: 1}}))
	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRosterStoreBacksLocalSource(t *testing.T) {
	ctx := context.Background()
	src := leaderboard.NewLocalSource(NewRosterStore(openTestStore(t)))

	res, err := src.Submit(ctx, "A", 10)
	require.NoError(t, err)
	require.True(t, res.Success)
	_, err = src.Submit(ctx, "B", 10)
	require.NoError(t, err)

	got, err := src.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.RankedEntry{
		{Rank: 1, Name: "A", Score: 10},
		{Rank: 2, Name: "B", Score: 10},
	}, got)
}

func TestLoadFailsWhenDatabaseClosed(t *testing.T) {
	kv, err := Open(t.TempDir() + "/closed.db")
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	_, err = NewRosterStore(kv).Load(context.Background())
	assert.Error(t, err, "I/O failures surface as errors")
}

func TestPrefsPlayerName(t *testing.T) {
	ctx := context.Background()
	prefs := NewPrefs(openTestStore(t))

	name, err := prefs.PlayerName(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, prefs.SetPlayerName(ctx, "pilot"))
	name, err = prefs.PlayerName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pilot", name)

	require.NoError(t, prefs.ForgetPlayerName(ctx))
	name, err = prefs.PlayerName(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)
}
