package engine

import (
	"errors"
	"testing"
)

func TestScore(t *testing.T) {
	s := NewScore(4)
	if s.IsComplete() || s.IsPerfect() {
		t.Fatal("fresh score should be neither complete nor perfect")
	}
	if err := s.Record(-1); !errors.Is(err, ErrNegativePoints) {
		t.Errorf("Record(-1) = %v, want ErrNegativePoints", err)
	}
	_ = s.Record(3)
	_ = s.Record(0)
	if s.Points() != 3 {
		t.Errorf("Points = %d, want 3", s.Points())
	}
	_ = s.Record(1)
	if !s.IsPerfect() {
		t.Error("4/4 should be perfect")
	}
	s.markComplete()
	if !s.IsComplete() {
		t.Error("expected complete")
	}
}

func TestScore_EmptyTierNeverPerfect(t *testing.T) {
	s := NewScore(0)
	s.markComplete()
	if s.IsPerfect() {
		t.Error("0/0 must not be perfect")
	}
}
