package leaderboard

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// Service is the leaderboard API used by the game. Every operation tries the
// remote source first and, on any failure, answers from the local source
// instead. Results from the two sources are never mixed within one call.
//
// None of the operations return an error: connectivity problems are absorbed
// by the fallback, and policy rejections are reported in SubmitResult.
type Service struct {
	remote Source
	local  Source
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used to report fallbacks and store failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service. remote may be nil, in which case every call
// is answered locally.
func NewService(remote, local Source, opts ...Option) *Service {
	s := &Service{
		remote: remote,
		local:  local,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the ranked leaderboard.
func (s *Service) List(ctx context.Context) []RankedEntry {
	entries, err := fallback(s, "list", func(src Source) ([]RankedEntry, error) {
		return src.List(ctx)
	})
	if err != nil {
		s.logger.Error("local leaderboard unavailable", "op", "list", "error", err)
		return []RankedEntry{}
	}
	return entries
}

// Submit records score for name. Success with an empty Error means the
// score was stored (remotely, or locally after a connectivity failure).
func (s *Service) Submit(ctx context.Context, name string, score int) SubmitResult {
	name, err := NormalizeName(name)
	if err != nil {
		return SubmitResult{Error: CodeInvalidName}
	}
	if err := ValidateScore(score); err != nil {
		return SubmitResult{Error: CodeInvalidScore}
	}

	res, err := fallback(s, "submit", func(src Source) (SubmitResult, error) {
		return src.Submit(ctx, name, score)
	})
	if err != nil {
		s.logger.Error("local leaderboard unavailable", "op", "submit", "error", err)
		return SubmitResult{Error: CodeStorage}
	}
	return res
}

// Winner returns the rank 1 entry. The second result is false when the
// leaderboard is empty.
func (s *Service) Winner(ctx context.Context) (RankedEntry, bool) {
	type winner struct {
		entry RankedEntry
		ok    bool
	}
	w, err := fallback(s, "winner", func(src Source) (winner, error) {
		e, ok, err := src.Winner(ctx)
		return winner{entry: e, ok: ok}, err
	})
	if err != nil {
		s.logger.Error("local leaderboard unavailable", "op", "winner", "error", err)
		return RankedEntry{}, false
	}
	return w.entry, w.ok
}

// Reset clears the leaderboard. The remote reset is best-effort; the local
// store is cleared regardless of its outcome.
func (s *Service) Reset(ctx context.Context) {
	if s.remote != nil {
		if err := s.remote.Reset(ctx); err != nil {
			s.logger.Warn("remote reset failed", "error", err)
		}
	}
	if err := s.local.Reset(ctx); err != nil {
		s.logger.Error("local leaderboard unavailable", "op", "reset", "error", err)
	}
}

// fallback runs call against the remote source and, if that fails, against
// the local source. The remote call has returned before the local one starts.
func fallback[T any](s *Service, op string, call func(Source) (T, error)) (T, error) {
	if s.remote != nil {
		v, err := call(s.remote)
		if err == nil {
			return v, nil
		}
		s.logFallback(op, err)
	}
	return call(s.local)
}

func (s *Service) logFallback(op string, err error) {
	var ne *NetworkError
	if errors.As(err, &ne) {
		s.logger.Warn("remote leaderboard failed, using local store",
			"op", op, "kind", ne.Kind, "error", err)
		return
	}
	s.logger.Warn("remote leaderboard failed, using local store", "op", op, "error", err)
}
