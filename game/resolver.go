package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/cuberoll/world"
)

// resolve applies the floor rule for the cell the cube just settled in,
// then the proximity rules.
func (s *Session) resolve() {
	s.resolveArrival(false)
}

func (s *Session) resolveArrival(teleported bool) {
	if s.completed {
		return
	}
	p := s.player
	floor, ok := s.world.Floor(p.Cell.Below())
	if !ok {
		s.changeState(Falling)
		s.updateProximity()
		return
	}

	bouncedOff := p.bouncedOff
	p.bouncedOff = nil

	switch floor.Type {
	case world.TypeEnd:
		s.complete()
		return
	case world.TypeShrink:
		scale := shrunkScale
		if p.Shrunk() {
			scale = fullScale
		}
		p.setScale(scale)
		s.events.Push(Event{Type: EventShrink, Data: scale})
	case world.TypeCheckpoint:
		if !floor.Active {
			floor.Active = true
			s.spawn = floor.Pos.Above()
			s.events.Push(Event{Type: EventCheckpoint, Data: s.spawn})
		}
	case world.TypeTeleporter:
		if teleported {
			break
		}
		if dest := s.teleportDestination(floor); dest != nil && s.exitClear(dest) {
			p.snap(dest.Pos.Above())
			s.events.Push(Event{Type: EventTeleport, Data: p.Cell})
			s.resolveArrival(true)
			return
		}
	case world.TypeFragile:
		if !floor.Broken {
			s.crumble(floor)
		}
	case world.TypeIce:
		s.slide()
	case world.TypeBouncy:
		if floor != bouncedOff {
			p.bouncedOff = floor
			s.launch(s.tuning.Effects.BounceHeight)
		}
	case world.TypeExplosive:
		if !floor.Active {
			s.lightFuse(floor)
		}
	case world.TypeGravity:
		if !floor.Active {
			s.flipGravity(floor)
		}
	case world.TypeLaser:
		if floor.Active {
			s.events.Push(Event{Type: EventLaser, Data: floor.Pos})
			s.respawn()
			return
		}
	}
	s.updateProximity()
}

// updateProximity runs the floor-independent rules: switch activation and
// prism pickup.
func (s *Session) updateProximity() {
	here := s.player.Cell.Vec()

	changed := false
	for _, sw := range s.world.Switches() {
		near := here.Sub(sw.Pos.Vec()).Len() < s.tuning.Proximity.SwitchRadius
		if near != sw.Active {
			sw.Active = near
			changed = true
			s.events.Push(Event{Type: EventSwitch, Data: sw.Pos})
		}
	}
	if changed {
		s.syncGhosts()
	}

	prisms := append([]*world.Tile(nil), s.world.Prisms()...)
	for _, pr := range prisms {
		if here.Sub(pr.Pos.Vec()).Len() < s.tuning.Proximity.PrismRadius {
			s.world.RemoveTile(pr)
			s.Prisms++
			s.events.Push(Event{Type: EventPrism, Data: pr.Pos})
		}
	}
}

// syncGhosts makes ghost tiles solid exactly while some switch is active.
func (s *Session) syncGhosts() {
	active := false
	for _, sw := range s.world.Switches() {
		if sw.Active {
			active = true
			break
		}
	}
	s.world.SyncGhosts(active)
}

// teleportDestination pairs teleporters by channel when one is set, else
// picks the nearest other teleporter. Ties keep placement order.
func (s *Session) teleportDestination(from *world.Tile) *world.Tile {
	all := s.world.Teleporters()
	if from.Channel != "" {
		for _, t := range all {
			if t != from && t.Channel == from.Channel {
				return t
			}
		}
	}
	var best *world.Tile
	bestDist := math.Inf(1)
	for _, t := range all {
		if t == from {
			continue
		}
		if d := from.Pos.Distance(t.Pos); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// exitClear reports whether the cell on top of a destination teleporter is
// free to hold the cube.
func (s *Session) exitClear(dest *world.Tile) bool {
	_, blocked := s.world.Floor(dest.Pos.Above())
	return !blocked
}

func (s *Session) crumble(tile *world.Tile) {
	tile.Broken = true
	s.events.Push(Event{Type: EventFragile, Data: tile.Pos})
	s.timers.After(s.tuning.Effects.FragileDelay, func() {
		if _, ok := s.world.TileAt(tile.Pos); !ok {
			return
		}
		s.world.RemoveTile(tile)
		s.events.Push(Event{Type: EventCollapse, Data: tile.Pos})
		if s.player.state == Idle && s.player.Cell == tile.Pos.Above() {
			s.changeState(Falling)
		}
	})
}

func (s *Session) slide() {
	cell, dir := s.player.Cell, s.player.LastDir
	if dir == (world.Coord{}) {
		return
	}
	s.timers.After(s.tuning.Effects.IceDelay, func() {
		if s.player.state == Idle && s.player.Cell == cell {
			s.RequestMove(dir)
		}
	})
}

func (s *Session) launch(height float64) {
	p := s.player
	p.launchTop = p.Position[1] + height
	s.changeState(Launching)
}

func (s *Session) lightFuse(tile *world.Tile) {
	tile.Active = true
	s.events.Push(Event{Type: EventFuse, Data: tile.Pos})
	s.timers.After(s.tuning.Effects.ExplosiveDelay, func() {
		if cur, ok := s.world.TileAt(tile.Pos); !ok || cur != tile {
			return
		}
		s.detonate(tile)
	})
}

// detonate removes every non-end tile within the blast radius of tile, the
// explosive included, and bumps a resting cube caught in it. A resting cube
// outside the blast whose floor went with it falls.
func (s *Session) detonate(tile *world.Tile) {
	if s.completed {
		return
	}
	centre := tile.Pos.Vec()
	radius := s.tuning.Effects.ExplosiveRadius + 1e-9
	for _, t := range s.world.Tiles() {
		if t.Type == world.TypeEnd {
			continue
		}
		if t.Position().Sub(centre).Len() <= radius {
			s.world.RemoveTile(t)
		}
	}
	s.syncGhosts()
	s.events.Push(Event{Type: EventExplode, Data: tile.Pos})

	p := s.player
	if p.state != Idle && p.state != Balancing {
		return
	}
	if p.Cell.Vec().Sub(centre).Len() <= radius {
		p.snap(p.Cell)
		s.launch(s.tuning.Effects.ExplosiveBump)
		return
	}
	if p.state == Idle {
		if _, ok := s.world.Floor(p.Cell.Below()); !ok {
			s.changeState(Falling)
		}
	}
}

func (s *Session) flipGravity(tile *world.Tile) {
	tile.Active = true
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0})
	up := q.Rotate(s.Up)
	s.Up = mgl64.Vec3{math.Round(up[0]), math.Round(up[1]), math.Round(up[2])}
	s.events.Push(Event{Type: EventGravity, Data: s.Up})
	s.timers.After(s.tuning.Effects.GravityCooldown, func() {
		tile.Active = false
	})
}
