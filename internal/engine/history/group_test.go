package history

import (
	"errors"
	"testing"
	"time"
)

func TestGroupCollapsesPushes(t *testing.T) {
	clock := newFakeClock()
	s := newTestText(clock, 0)
	s.Reset("a")

	s.BeginGroup("paste")
	for _, v := range []string{"ab", "abc", "abcd"} {
		clock.Advance(time.Second)
		s.Push(v)
	}
	s.EndGroup()

	if got := s.UndoCount(); got != 1 {
		t.Fatalf("UndoCount() = %d, want 1", got)
	}
	if v := mustUndo(t, s); v != "a" {
		t.Errorf("Undo() = %q, want %q", v, "a")
	}
}

func TestEndGroupSealsResult(t *testing.T) {
	clock := newFakeClock()
	s := newTestText(clock, time.Hour)
	s.Reset("a")
	s.Push("a1")

	s.BeginGroup("format")
	s.Push("A1")
	s.EndGroup()
	s.Push("A12")

	if v := mustUndo(t, s); v != "A1" {
		t.Errorf("Undo() = %q, want %q", v, "A1")
	}
	if v := mustUndo(t, s); v != "a1" {
		t.Errorf("Undo() = %q, want %q", v, "a1")
	}
}

func TestNestedBeginGroupIgnored(t *testing.T) {
	s := NewText(DefaultConfig())
	s.BeginGroup("outer")
	s.BeginGroup("inner")
	if !s.InGroup() {
		t.Fatal("InGroup() = false, want true")
	}
	s.EndGroup()
	if s.InGroup() {
		t.Error("single EndGroup should close the group")
	}
}

func TestGroupScope(t *testing.T) {
	clock := newFakeClock()
	s := newTestText(clock, 0)
	s.Reset("x")

	func() {
		scope := s.GroupScope("edit")
		defer scope.End()
		s.Push("xy")
		s.Push("xyz")
		scope.End()
	}()

	if s.InGroup() {
		t.Error("scope should have closed the group")
	}
	if got := s.UndoCount(); got != 1 {
		t.Errorf("UndoCount() = %d, want 1", got)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	clock := newFakeClock()
	s := newTestText(clock, 0)
	s.Reset("body")

	boom := errors.New("boom")
	err := s.Transaction("format", func() error {
		s.Push("BODY")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction() error = %v, want boom", err)
	}
	if v, _ := s.Current(); v != "body" {
		t.Errorf("Current() = %q, want %q", v, "body")
	}
	if s.CanUndo() {
		t.Error("rolled back group should leave nothing to undo")
	}
}

func TestTransactionCommits(t *testing.T) {
	clock := newFakeClock()
	s := newTestText(clock, 0)
	s.Reset("body")

	if err := s.Transaction("format", func() error {
		s.Push("BODY")
		s.Push("BODY!")
		return nil
	}); err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}
	if v := mustUndo(t, s); v != "body" {
		t.Errorf("Undo() = %q, want %q", v, "body")
	}
}

func TestCheckpoint(t *testing.T) {
	clock := newFakeClock()
	s := newTestText(clock, 0)
	s.Reset("a")
	s.Push("b")

	cp := s.CreateCheckpoint()
	s.Push("c")
	s.Push("d")

	v, err := s.UndoToCheckpoint(cp)
	if err != nil {
		t.Fatalf("UndoToCheckpoint() error = %v", err)
	}
	if v != "b" {
		t.Errorf("UndoToCheckpoint() = %q, want %q", v, "b")
	}
	if _, err := s.UndoToCheckpoint(cp); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("second UndoToCheckpoint() error = %v, want ErrNothingToUndo", err)
	}
}
