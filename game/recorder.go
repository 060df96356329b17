package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/milk9111/cuberoll/progress"
)

// Recorder samples the cube pose on a fixed interval for ghost traces.
type Recorder struct {
	interval time.Duration
	next     time.Duration
	trace    progress.Trace
}

func NewRecorder(interval time.Duration) *Recorder {
	r := &Recorder{interval: interval}
	r.Reset()
	return r
}

// Reset starts a fresh run with a new id.
func (r *Recorder) Reset() {
	r.next = 0
	r.trace = progress.Trace{RunID: uuid.NewString()}
}

func (r *Recorder) Update(s *Session, dt time.Duration) {
	if r.interval <= 0 {
		return
	}
	for s.Elapsed >= r.next {
		r.trace.Samples = append(r.trace.Samples, sampleOf(s.player, r.next))
		r.next += r.interval
	}
}

// Trace returns a copy of the recorded run.
func (r *Recorder) Trace() progress.Trace {
	out := progress.Trace{RunID: r.trace.RunID}
	out.Samples = append([]progress.Sample(nil), r.trace.Samples...)
	return out
}

func sampleOf(p *Player, at time.Duration) progress.Sample {
	q := p.Orientation
	return progress.Sample{
		T:   at.Seconds(),
		Pos: [3]float64{p.Position[0], p.Position[1], p.Position[2]},
		Rot: [4]float64{q.W, q.V[0], q.V[1], q.V[2]},
	}
}
