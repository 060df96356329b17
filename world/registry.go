package world

import (
	"fmt"
	"sort"
)

// Collection names the ordered tracking sequence a tile type lives in.
type Collection int

const (
	TrackNone Collection = iota
	TrackPrisms
	TrackPlatforms
	TrackSwitches
	TrackGhosts
	TrackTeleporters
)

// Behavior is the static per-type table entry.
type Behavior struct {
	// Indexed tiles live in the coordinate index and act as floor.
	Indexed bool
	Track   Collection
	// DefaultActive is the interaction state a fresh tile starts with.
	DefaultActive bool
}

const (
	DefaultPlatformSpeed = 0.02
	DefaultPlatformReach = 3
)

var behaviors = map[Type]Behavior{
	TypeNormal:     {Indexed: true},
	TypePrism:      {Track: TrackPrisms},
	TypeMoving:     {Track: TrackPlatforms},
	TypeEnd:        {Indexed: true},
	TypeSwitch:     {Track: TrackSwitches},
	TypeGhost:      {Track: TrackGhosts},
	TypeShrink:     {Indexed: true},
	TypeCheckpoint: {Indexed: true},
	TypeTeleporter: {Indexed: true, Track: TrackTeleporters},
	TypeFragile:    {Indexed: true},
	TypeOneway:     {Indexed: true},
	TypeIce:        {Indexed: true},
	TypeBouncy:     {Indexed: true},
	TypeExplosive:  {Indexed: true},
	TypeLaser:      {Indexed: true, DefaultActive: true},
	TypeMagnetic:   {Indexed: true},
	TypeGravity:    {Indexed: true},
}

// BehaviorOf returns the registry entry for t and whether t is known.
func BehaviorOf(t Type) (Behavior, bool) {
	b, ok := behaviors[t]
	return b, ok
}

// ParseType validates a tile type name.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := behaviors[t]; !ok {
		return "", fmt.Errorf("world: unknown tile type %q", s)
	}
	return t, nil
}

// Types lists every registered tile type in name order.
func Types() []Type {
	out := make([]Type, 0, len(behaviors))
	for t := range behaviors {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewTile builds a tile of type t at pos with its default interaction state.
// Unknown types fall back to normal.
func NewTile(t Type, pos Coord) *Tile {
	b, ok := behaviors[t]
	if !ok {
		t = TypeNormal
	}
	tile := &Tile{Type: t, Pos: pos, Active: b.DefaultActive}
	switch t {
	case TypeMoving:
		end := pos.Add(Coord{DefaultPlatformReach, 0, 0})
		tile.Platform = &Platform{
			Start:     pos,
			End:       end,
			Speed:     DefaultPlatformSpeed,
			Direction: 1,
			Current:   pos.Vec(),
		}
	case TypeOneway:
		tile.Dir = Forward
	}
	return tile
}
