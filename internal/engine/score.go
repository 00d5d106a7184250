package engine

import "errors"

// ErrNegativePoints is returned by Score.Record for negative input.
var ErrNegativePoints = errors.New("points must not be negative")

// Score holds the counters for one tier traversal.
type Score struct {
	points   int
	total    int
	complete bool
}

// NewScore starts a score for a tier worth total points.
func NewScore(total int) Score {
	return Score{total: total}
}

// Record adds points. The score never decreases.
func (s *Score) Record(points int) error {
	if points < 0 {
		return ErrNegativePoints
	}
	s.points += points
	return nil
}

// markComplete is called by the controller after the last item is scored.
func (s *Score) markComplete() { s.complete = true }

func (s Score) Points() int { return s.points }
func (s Score) Total() int  { return s.total }

// IsComplete reports whether the tier's last item has been scored.
func (s Score) IsComplete() bool { return s.complete }

// IsPerfect reports a full score on a non-empty tier.
func (s Score) IsPerfect() bool { return s.points == s.total && s.total > 0 }
