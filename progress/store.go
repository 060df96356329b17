package progress

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a level has no stored record or trace.
var ErrNotFound = errors.New("progress: not found")

// Record is the outcome of one completed run.
type Record struct {
	Seconds float64   `json:"seconds"`
	Rank    string    `json:"rank"`
	Prisms  int       `json:"prisms"`
	At      time.Time `json:"at"`
}

// Better reports whether r beats prev. Faster wins; ties go to more prisms.
func (r Record) Better(prev Record) bool {
	if r.Seconds != prev.Seconds {
		return r.Seconds < prev.Seconds
	}
	return r.Prisms > prev.Prisms
}

// Sample is one pose captured during a run.
type Sample struct {
	T   float64    `json:"t"`
	Pos [3]float64 `json:"pos"`
	Rot [4]float64 `json:"rot"`
}

// Trace is a recorded run, kept for the best result of each level.
type Trace struct {
	RunID   string   `json:"runId"`
	Samples []Sample `json:"samples"`
}

// Store persists level progress. Level 0 is always unlocked.
type Store interface {
	Unlocked() ([]int, error)
	Unlock(level int) error
	Best(level int) (Record, error)
	// SubmitResult stores rec if it beats the current best.
	SubmitResult(level int, rec Record) (bool, error)
	SaveGhost(level int, tr Trace) error
	Ghost(level int) (Trace, error)
	Close() error
}
