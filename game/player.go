package game

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/cuberoll/world"
)

const (
	fullScale   = 1.0
	shrunkScale = 0.5
	// shrunkSeat keeps a half-size cube resting on the floor below its cell.
	shrunkSeat = -0.25
)

// Player is the rolling cube. Cell is the logical lattice cell it occupies;
// Position and Orientation are the rendered pose.
type Player struct {
	Cell        world.Coord
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       float64

	// LastDir is the most recent accepted move direction.
	LastDir world.Coord
	// BalanceDir is the direction that put the cube on an edge.
	BalanceDir world.Coord

	state PlayerState
	anim  tumble

	launchTop float64
	assemble  time.Duration
	// bouncedOff is the bouncy tile that launched the cube, so landing back
	// on it does not relaunch.
	bouncedOff *world.Tile
}

// tumble is an in-flight pivot rotation.
type tumble struct {
	dir      world.Coord
	from     mgl64.Vec3
	fromRot  mgl64.Quat
	pivot    mgl64.Vec3
	axis     mgl64.Vec3
	elapsed  time.Duration
	duration time.Duration
	target   world.Coord
}

func newPlayer(cell world.Coord) *Player {
	p := &Player{Scale: fullScale}
	p.snap(cell)
	return p
}

func (p *Player) State() PlayerState { return p.state }

func (p *Player) Shrunk() bool { return p.Scale < fullScale }

// seat is the vertical offset of the cube centre from its cell centre.
func (p *Player) seat() float64 {
	if p.Shrunk() {
		return shrunkSeat
	}
	return 0
}

func (p *Player) restPosition(c world.Coord) mgl64.Vec3 {
	return c.Vec().Add(mgl64.Vec3{0, p.seat(), 0})
}

// snap places the cube squarely in c with identity orientation.
func (p *Player) snap(c world.Coord) {
	p.Cell = c
	p.Position = p.restPosition(c)
	p.Orientation = mgl64.QuatIdent()
}

// setScale toggles size while keeping the cube seated on its floor.
func (p *Player) setScale(scale float64) {
	p.Scale = scale
	p.Position[1] = float64(p.Cell.Y) + p.seat()
}

// column returns the rounded x/z column the cube is over.
func (p *Player) column() (int, int) {
	return int(math.Round(p.Position[0])), int(math.Round(p.Position[2]))
}
