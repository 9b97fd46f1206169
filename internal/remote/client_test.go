package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/skybound/internal/leaderboard"
)

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", opts...)
	require.NoError(t, err)
	return c
}

func requireNetworkError(t *testing.T, err error, kind leaderboard.NetworkErrorKind) *leaderboard.NetworkError {
	t.Helper()
	var ne *leaderboard.NetworkError
	require.True(t, errors.As(err, &ne), "expected *NetworkError, got %T: %v", err, err)
	assert.Equal(t, kind, ne.Kind)
	return ne
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("  ")
	assert.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient("http://example.test/")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test", c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.timeout)
}

func TestListNumbersRowsWithoutRank(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/leaderboard", r.URL.Path)
		_, _ = io.WriteString(w, `[{"name":"A","score":30},{"name":"B","score":10}]`)
	}))

	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.RankedEntry{
		{Rank: 1, Name: "A", Score: 30},
		{Rank: 2, Name: "B", Score: 10},
	}, got)
}

func TestListKeepsServerOrder(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"name":"B","score":10},{"name":"A","score":30}]`)
	}))

	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.RankedEntry{
		{Rank: 1, Name: "B", Score: 10},
		{Rank: 2, Name: "A", Score: 30},
	}, got)
}

func TestListKeepsRemoteRanks(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"name":"A","score":30,"rank":1},{"name":"B","score":30,"rank":2}]`)
	}))

	got, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Rank)
}

func TestListEmptyAndNull(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		}))
		got, err := c.List(context.Background())
		require.NoError(t, err, body)
		assert.Empty(t, got, body)
	}
}

func TestListRejectsRowWithoutName(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"score":3}]`)
	}))

	_, err := c.List(context.Background())
	requireNetworkError(t, err, leaderboard.KindDecode)
}

func TestNon2xxIsStatusError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.List(context.Background())
	ne := requireNetworkError(t, err, leaderboard.KindStatus)
	assert.Equal(t, http.StatusInternalServerError, ne.Status)
	assert.Contains(t, ne.Error(), "500")
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	}))

	_, err := c.List(context.Background())
	requireNetworkError(t, err, leaderboard.KindDecode)
}

func TestTimeoutCancelsRequest(t *testing.T) {
	cancelled := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			close(cancelled)
		case <-time.After(3 * time.Second):
		}
	}), WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := c.List(context.Background())
	ne := requireNetworkError(t, err, leaderboard.KindTimeout)
	assert.True(t, ne.Timeout())
	assert.Less(t, time.Since(start), time.Second)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw the request cancelled")
	}
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)

	_, err = c.List(context.Background())
	requireNetworkError(t, err, leaderboard.KindConnection)
}

func TestSubmitSendsJSONAndReturnsVerdict(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/score", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "K", body["name"])
		assert.Equal(t, float64(5), body["score"])

		_, _ = io.WriteString(w, `{"success":false,"error":"MAX_PLAYERS"}`)
	}))

	res, err := c.Submit(context.Background(), "K", 5)
	require.NoError(t, err)
	assert.Equal(t, leaderboard.SubmitResult{Success: false, Error: leaderboard.CodeMaxPlayers}, res)
}

func TestSubmitRequiresSuccessField(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))

	_, err := c.Submit(context.Background(), "A", 1)
	requireNetworkError(t, err, leaderboard.KindDecode)
}

func TestWinner(t *testing.T) {
	body := `{"name":"A","score":12}`
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/winner", r.URL.Path)
		_, _ = io.WriteString(w, body)
	}))

	w, ok, err := c.Winner(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, leaderboard.RankedEntry{Rank: 1, Name: "A", Score: 12}, w)

	body = `null`
	_, ok, err = c.Winner(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResetUsesDeleteAndIgnoresBody(t *testing.T) {
	var method string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		assert.Equal(t, "/reset", r.URL.Path)
		_, _ = io.WriteString(w, `whatever`)
	}))

	require.NoError(t, c.Reset(context.Background()))
	assert.Equal(t, http.MethodDelete, method)
}

func TestWithHeader(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "skybound-test", r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, `[]`)
	}), WithHeader("User-Agent", "skybound-test"))

	_, err := c.List(context.Background())
	require.NoError(t, err)
}
