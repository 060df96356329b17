package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/cuberoll/common"
	"github.com/milk9111/cuberoll/world"
)

// RequestMove asks the cube to move one cell along dir. It is honoured only
// while Idle or Balancing and reports whether anything happened.
func (s *Session) RequestMove(dir world.Coord) bool {
	if s.completed || !dir.IsCardinal() {
		return false
	}
	switch s.player.state {
	case Idle:
		return s.tryMove(dir)
	case Balancing:
		if dir.Dot(s.player.BalanceDir) >= s.tuning.Motion.DirectionThreshold {
			s.changeState(Falling)
			return true
		}
		s.player.snap(s.player.Cell)
		return s.tryMove(dir)
	}
	return false
}

func (s *Session) tryMove(dir world.Coord) bool {
	p := s.player
	target := p.Cell.Add(dir)

	if floor, ok := s.world.Floor(target.Below()); ok && floor.Type == world.TypeOneway {
		if floor.Dir.Dot(dir) < s.tuning.Motion.DirectionThreshold {
			return false
		}
	}

	_, blocked := s.world.Floor(target)
	_, roofed := s.world.Floor(target.Above())
	switch {
	case blocked && !roofed:
		s.beginTumble(dir, target.Above(), 0.5, s.tuning.Motion.ClimbDuration)
		s.changeState(Climbing)
	case !blocked:
		s.beginTumble(dir, target, -0.5, s.tuning.Motion.RollDuration)
		s.changeState(Rolling)
	default:
		return false
	}
	p.LastDir = dir
	return true
}

// beginTumble sets up a 90 degree pivot about the leading edge. lift is the
// vertical offset of the pivot from the cube centre.
func (s *Session) beginTumble(dir, target world.Coord, lift float64, duration time.Duration) {
	p := s.player
	d := dir.Vec()
	p.anim = tumble{
		dir:      dir,
		from:     p.Position,
		fromRot:  p.Orientation,
		pivot:    p.Position.Add(d.Mul(0.5)).Add(mgl64.Vec3{0, lift, 0}),
		axis:     common.PivotAxis(common.WorldUp, d),
		target:   target,
		duration: duration,
	}
}
