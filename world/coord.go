package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Coord is an integer lattice position and the key of the grid index.
type Coord struct {
	X, Y, Z int
}

var (
	Up      = Coord{0, 1, 0}
	Down    = Coord{0, -1, 0}
	Forward = Coord{0, 0, -1}
	Back    = Coord{0, 0, 1}
	Left    = Coord{-1, 0, 0}
	Right   = Coord{1, 0, 0}
)

// Cardinals lists the four horizontal move directions in input priority
// order: forward > back > left > right.
var Cardinals = [4]Coord{Forward, Back, Left, Right}

func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

func (c Coord) Sub(o Coord) Coord {
	return Coord{c.X - o.X, c.Y - o.Y, c.Z - o.Z}
}

func (c Coord) Scale(n int) Coord {
	return Coord{c.X * n, c.Y * n, c.Z * n}
}

func (c Coord) Above() Coord { return c.Add(Up) }
func (c Coord) Below() Coord { return c.Add(Down) }

func (c Coord) Vec() mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z)}
}

// Dot returns the normalized dot product of two direction coords.
func (c Coord) Dot(o Coord) float64 {
	a, b := c.Vec(), o.Vec()
	if a.Len() == 0 || b.Len() == 0 {
		return 0
	}
	return a.Normalize().Dot(b.Normalize())
}

// Distance is the Euclidean distance between two lattice points.
func (c Coord) Distance(o Coord) float64 {
	return c.Vec().Sub(o.Vec()).Len()
}

// IsCardinal reports whether c is one of the four horizontal unit steps.
func (c Coord) IsCardinal() bool {
	for _, d := range Cardinals {
		if c == d {
			return true
		}
	}
	return false
}

// Less orders coords by Y, then Z, then X.
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	if c.Z != o.Z {
		return c.Z < o.Z
	}
	return c.X < o.X
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// CoordOf rounds a continuous position to the nearest lattice point.
func CoordOf(v mgl64.Vec3) Coord {
	return Coord{int(math.Round(v[0])), int(math.Round(v[1])), int(math.Round(v[2]))}
}
