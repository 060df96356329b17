package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Type identifies a tile's behavior.
type Type string

const (
	TypeNormal     Type = "normal"
	TypePrism      Type = "prism"
	TypeMoving     Type = "moving"
	TypeEnd        Type = "end"
	TypeSwitch     Type = "switch"
	TypeGhost      Type = "ghost"
	TypeShrink     Type = "shrink"
	TypeCheckpoint Type = "checkpoint"
	TypeTeleporter Type = "teleporter"
	TypeFragile    Type = "fragile"
	TypeOneway     Type = "oneway"
	TypeIce        Type = "ice"
	TypeBouncy     Type = "bouncy"
	TypeExplosive  Type = "explosive"
	TypeLaser      Type = "laser"
	TypeMagnetic   Type = "magnetic"
	TypeGravity    Type = "gravity"
)

// Tile is the simulation state of one placed block. Rendering is keyed by
// Pos and reads this state; it never writes back.
type Tile struct {
	Type Type
	Pos  Coord

	// Active covers switch, checkpoint, gravity, laser and the ghost overlay.
	// For explosive tiles it means the fuse has been lit.
	Active bool

	Broken    bool
	Countdown time.Duration

	// Dir is the required traversal direction of a oneway tile.
	Dir Coord

	// Channel pairs teleporters explicitly. Empty means nearest-other.
	Channel string

	Platform *Platform
}

// Platform is the path state of a moving tile.
type Platform struct {
	Start     Coord
	End       Coord
	Speed     float64
	Direction float64
	Progress  float64
	Current   mgl64.Vec3
}

// Clone returns a deep copy suitable for undo snapshots.
func (t *Tile) Clone() *Tile {
	if t == nil {
		return nil
	}
	out := *t
	if t.Platform != nil {
		p := *t.Platform
		out.Platform = &p
	}
	return &out
}

// Position is the tile's current continuous position; moving platforms
// report their interpolated position.
func (t *Tile) Position() mgl64.Vec3 {
	if t.Platform != nil {
		return t.Platform.Current
	}
	return t.Pos.Vec()
}
