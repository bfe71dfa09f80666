package session

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewSessionStartsClean(t *testing.T) {
	s := New(true)
	if s.Stale() {
		t.Fatal("expected fresh session to not be stale")
	}
	if !s.FullEval() {
		t.Fatal("expected full-eval flag to be carried")
	}
	if s.ID() == uuid.Nil {
		t.Fatal("expected non-zero session id")
	}
}

func TestMarkStaleSticks(t *testing.T) {
	s := New(false)
	s.MarkStale()
	s.MarkStale()
	if !s.Stale() {
		t.Fatal("expected session to be stale after MarkStale")
	}
}

func TestSessionsGetDistinctIDs(t *testing.T) {
	if New(false).ID() == New(false).ID() {
		t.Fatal("expected distinct session ids")
	}
}
