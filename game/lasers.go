package game

import (
	"time"

	"github.com/milk9111/cuberoll/world"
)

// LaserSystem toggles every laser tile on a fixed period. A laser switching
// on under a resting cube sends it back to spawn.
type LaserSystem struct {
	acc time.Duration
}

func (l *LaserSystem) Update(s *Session, dt time.Duration) {
	period := s.tuning.Effects.LaserPeriod
	if period <= 0 {
		return
	}
	l.acc += dt
	for l.acc >= period {
		l.acc -= period
		s.toggleLasers()
	}
}

func (s *Session) toggleLasers() {
	hit := false
	for _, t := range s.world.Tiles() {
		if t.Type != world.TypeLaser {
			continue
		}
		t.Active = !t.Active
		if t.Active && s.player.state == Idle && s.player.Cell == t.Pos.Above() {
			hit = true
		}
	}
	if hit {
		s.events.Push(Event{Type: EventLaser, Data: s.player.Cell.Below()})
		s.respawn()
	}
}
