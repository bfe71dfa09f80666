// Package session holds the per-document-run evaluation state shared between
// the engine and the surrounding processor.
package session

import (
	"github.com/google/uuid"

	"github.com/mresende/go-weave/pkg/interfaces"
)

// Session is the explicit evaluation-state handle owned by a document
// processing run. The pipeline is single-threaded by contract, so the flag is
// accessed without locking.
type Session struct {
	id       uuid.UUID
	fullEval bool
	stale    bool
}

// New creates a session. fullEval marks the run as a full evaluation pass;
// only then do changed literate conversions flag the session stale.
func New(fullEval bool) *Session {
	return &Session{
		id:       uuid.New(),
		fullEval: fullEval,
	}
}

// ID identifies the session in diagnostics and command messages.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// FullEval reports whether this run performs a full evaluation pass.
func (s *Session) FullEval() bool {
	return s.fullEval
}

// MarkStale records that dependent computation must be re-run.
func (s *Session) MarkStale() {
	s.stale = true
}

// Stale reports whether a re-evaluation was requested during this run.
func (s *Session) Stale() bool {
	return s.stale
}

var _ interfaces.EvalState = (*Session)(nil)
