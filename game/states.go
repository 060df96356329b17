package game

import (
	"math"
	"time"

	"github.com/milk9111/cuberoll/common"
	"github.com/milk9111/cuberoll/world"
)

// PlayerState is one state of the cube's motion machine. States are
// stateless singletons; per-motion data lives on Player.
type PlayerState interface {
	Name() string
	Enter(s *Session)
	Exit(s *Session)
	Update(s *Session, dt time.Duration)
}

// Player state singletons (avoid allocations on transitions).
var (
	Idle       PlayerState = &idleState{}
	Rolling    PlayerState = &rollingState{}
	Climbing   PlayerState = &climbingState{}
	Balancing  PlayerState = &balancingState{}
	Falling    PlayerState = &fallingState{}
	Assembling PlayerState = &assemblingState{}
	Launching  PlayerState = &launchingState{}
)

type idleState struct{}

type rollingState struct{}

type climbingState struct{}

type balancingState struct{}

type fallingState struct{}

type assemblingState struct{}

type launchingState struct{}

func (idleState) Name() string                        { return "idle" }
func (idleState) Enter(s *Session)                    {}
func (idleState) Exit(s *Session)                     {}
func (idleState) Update(s *Session, dt time.Duration) {}

func (rollingState) Name() string     { return "rolling" }
func (rollingState) Enter(s *Session) { s.events.Push(Event{Type: EventRoll, Data: s.player.anim.dir}) }
func (rollingState) Exit(s *Session)  {}
func (rollingState) Update(s *Session, dt time.Duration) {
	p := s.player
	if !p.advanceTumble(dt) {
		return
	}
	target := p.anim.target
	if _, ok := s.world.Floor(target.Below()); ok {
		p.snap(target)
		s.changeState(Idle)
		s.resolve()
		return
	}
	// Hold the exact landing pose, tipped over the edge.
	p.Cell = target
	p.Position = p.restPosition(target)
	p.Orientation = common.RotateOrientation(p.Orientation.Normalize(), p.anim.axis, s.tuning.Motion.BalanceTilt)
	p.BalanceDir = p.anim.dir
	s.changeState(Balancing)
}

func (climbingState) Name() string     { return "climbing" }
func (climbingState) Enter(s *Session) { s.events.Push(Event{Type: EventClimb, Data: s.player.anim.dir}) }
func (climbingState) Exit(s *Session)  {}
func (climbingState) Update(s *Session, dt time.Duration) {
	p := s.player
	if !p.advanceTumble(dt) {
		return
	}
	p.snap(p.anim.target)
	s.changeState(Idle)
	s.resolve()
}

func (balancingState) Name() string     { return "balancing" }
func (balancingState) Enter(s *Session) { s.events.Push(Event{Type: EventBalance, Data: s.player.BalanceDir}) }
func (balancingState) Exit(s *Session)  {}
func (balancingState) Update(s *Session, dt time.Duration) {
	s.EdgeTime += dt
}

func (fallingState) Name() string { return "falling" }
func (fallingState) Enter(s *Session) {
	s.player.Orientation = s.player.Orientation.Normalize()
	s.events.Push(Event{Type: EventFall, Data: s.player.Cell})
}
func (fallingState) Exit(s *Session) {}
func (fallingState) Update(s *Session, dt time.Duration) {
	p := s.player
	drop := s.tuning.Motion.FallSpeed * dt.Seconds()
	// Step in sub-cell increments so a long frame cannot tunnel through a
	// floor.
	for drop > 0 {
		step := math.Min(drop, 0.25)
		drop -= step
		p.Position[1] -= step
		if p.Position[1] < s.tuning.Motion.DeathY {
			s.respawn()
			return
		}
		x, z := p.column()
		below := int(math.Floor(p.Position[1] - 0.5 - p.seat()))
		if _, ok := s.world.Floor(world.Coord{X: x, Y: below, Z: z}); ok {
			p.snap(world.Coord{X: x, Y: below + 1, Z: z})
			s.events.Push(Event{Type: EventLand, Data: p.Cell})
			s.changeState(Idle)
			s.resolve()
			return
		}
	}
}

func (assemblingState) Name() string { return "assembling" }
func (assemblingState) Enter(s *Session) {
	s.player.assemble = 0
	s.player.Position = s.player.restPosition(s.player.Cell).Add(common.WorldUp.Mul(s.tuning.Motion.AssembleHeight))
}
func (assemblingState) Exit(s *Session) {}
func (assemblingState) Update(s *Session, dt time.Duration) {
	p := s.player
	p.assemble += dt
	rest := p.restPosition(p.Cell)
	dur := s.tuning.Motion.AssembleDuration
	if dur <= 0 || p.assemble >= dur {
		p.snap(p.Cell)
		s.changeState(Idle)
		s.resolve()
		return
	}
	t := common.Clamp01(float64(p.assemble) / float64(dur))
	top := rest.Add(common.WorldUp.Mul(s.tuning.Motion.AssembleHeight))
	p.Position = common.LerpVec(top, rest, t)
}

func (launchingState) Name() string     { return "launching" }
func (launchingState) Enter(s *Session) { s.events.Push(Event{Type: EventBounce, Data: s.player.Cell}) }
func (launchingState) Exit(s *Session)  {}
func (launchingState) Update(s *Session, dt time.Duration) {
	p := s.player
	next := p.Position[1] + s.tuning.Effects.BounceSpeed*dt.Seconds()
	x, z := p.column()
	head := world.Coord{X: x, Y: int(math.Floor(next-p.seat())) + 1, Z: z}
	if _, blocked := s.world.Floor(head); blocked || next >= p.launchTop {
		p.Position[1] = math.Min(next, p.launchTop)
		if blocked {
			p.Position[1] = float64(head.Y-1) + p.seat()
		}
		p.Cell = world.Coord{X: x, Y: int(math.Round(p.Position[1] - p.seat())), Z: z}
		s.changeState(Falling)
		return
	}
	p.Position[1] = next
}

// advanceTumble steps the current pivot rotation and reports completion.
func (p *Player) advanceTumble(dt time.Duration) bool {
	a := &p.anim
	a.elapsed += dt
	t := 1.0
	if a.duration > 0 {
		t = common.Clamp01(float64(a.elapsed) / float64(a.duration))
	}
	angle := math.Pi / 2 * t
	p.Position = common.RotateAbout(a.from, a.pivot, a.axis, angle)
	p.Orientation = common.RotateOrientation(a.fromRot, a.axis, angle)
	return t >= 1
}
