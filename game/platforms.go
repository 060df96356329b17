package game

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/cuberoll/common"
	"github.com/milk9111/cuberoll/world"
)

// PlatformSystem advances moving platforms along their ping-pong paths,
// carries a resting cube and crushes one caught inside.
type PlatformSystem struct{}

func (PlatformSystem) Update(s *Session, dt time.Duration) {
	frames := dt.Seconds() * s.tuning.Effects.PlatformTickRate
	for _, t := range s.world.Platforms() {
		pl := t.Platform
		if pl == nil {
			continue
		}
		old := pl.Current
		advancePlatform(pl, frames)
		if s.player.state != Idle {
			continue
		}
		if s.crushedBy(pl) {
			s.respawn()
			return
		}
		if s.carriedBy(old) {
			s.carry(pl.Current.Sub(old))
		}
	}
}

func advancePlatform(pl *world.Platform, frames float64) {
	if pl.Direction == 0 {
		pl.Direction = 1
	}
	pl.Progress += pl.Speed * pl.Direction * frames
	switch {
	case pl.Progress >= 1:
		pl.Progress = 1
		pl.Direction = -1
	case pl.Progress <= 0:
		pl.Progress = 0
		pl.Direction = 1
	}
	pl.Current = common.LerpVec(pl.Start.Vec(), pl.End.Vec(), pl.Progress)
}

// carriedBy reports whether the cube rests on top of the platform as it was
// at old.
func (s *Session) carriedBy(old mgl64.Vec3) bool {
	pos := s.player.Position
	r := s.tuning.Proximity.CarryRadius
	box := cp.NewBBForExtents(cp.Vector{X: old[0], Y: old[2]}, r, r)
	if !box.ContainsVect(cp.Vector{X: pos[0], Y: pos[2]}) {
		return false
	}
	dy := float64(s.player.Cell.Y) - old[1]
	return math.Abs(dy-1) < s.tuning.Proximity.CarryHeightTolerance
}

func (s *Session) crushedBy(pl *world.Platform) bool {
	pos := s.player.Position
	r := s.tuning.Proximity.CrushRadius
	box := cp.NewBBForExtents(cp.Vector{X: pl.Current[0], Y: pl.Current[2]}, r, r)
	if !box.ContainsVect(cp.Vector{X: pos[0], Y: pos[2]}) {
		return false
	}
	return math.Abs(pos[1]-pl.Current[1]) < r
}

func (s *Session) carry(delta mgl64.Vec3) {
	p := s.player
	p.Position = p.Position.Add(delta)
	p.Cell = world.CoordOf(p.Position.Sub(p.restPosition(world.Coord{})))
}
