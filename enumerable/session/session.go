package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/diff"
)

// Session is one suppression window: the contents when it was opened and, once finished, when it was closed.
// A finished Session is analyzed exactly once.
type Session struct {
	ID       uuid.UUID
	Before   diff.Snapshot
	After    diff.Snapshot
	finished bool
	analyzed bool
}

func newSession(before diff.Snapshot) (*Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	return &Session{ID: id, Before: before}, nil
}

// Finish captures the contents at the end of the suppression window.
func (s *Session) Finish(after diff.Snapshot) {
	s.After = after
	s.finished = true
}

// IsFinished reports whether the "after" state was captured.
func (s *Session) IsFinished() bool {
	return s.finished
}

// IsAnalyzed reports whether the session was fed to a diff engine.
func (s *Session) IsAnalyzed() bool {
	return s.analyzed
}

// Analyze computes the change records between Before and After with engine.
func (s *Session) Analyze(ctx context.Context, engine *diff.Engine) ([]diff.ChangeRecord, error) {
	if !s.finished {
		return nil, fmt.Errorf("%w: %s", enumerable.ErrSessionNotFinished, s.ID)
	}

	if s.analyzed {
		return nil, fmt.Errorf("%w: %s", enumerable.ErrSessionAlreadyAnalyzed, s.ID)
	}

	s.analyzed = true

	return engine.Analyze(ctx, s.Before, s.After)
}
