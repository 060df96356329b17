package editor

import "github.com/milk9111/cuberoll/world"

type Kind int

const (
	Add Kind = iota
	Remove
)

func (k Kind) String() string {
	if k == Remove {
		return "remove"
	}
	return "add"
}

// Command is a reversible edit. It holds plain data only: the target
// coordinate, the tile type and a snapshot of the tile it created or removed.
type Command struct {
	Kind     Kind
	Coord    world.Coord
	Type     world.Type
	Snapshot *world.Tile
}

func NewAdd(c world.Coord, t world.Type) *Command {
	return &Command{Kind: Add, Coord: c, Type: t}
}

func NewRemove(c world.Coord) *Command {
	return &Command{Kind: Remove, Coord: c}
}

// apply runs the command forward and reports whether the world changed.
func (c *Command) apply(w *world.World) bool {
	switch c.Kind {
	case Add:
		var t *world.Tile
		if c.Snapshot != nil {
			t = c.Snapshot.Clone()
		} else {
			t = world.NewTile(c.Type, c.Coord)
		}
		if !w.Place(t) {
			return false
		}
		c.Type = t.Type
		c.Snapshot = t.Clone()
		return true
	case Remove:
		t, ok := w.Remove(c.Coord)
		if !ok {
			return false
		}
		c.Type = t.Type
		c.Snapshot = t.Clone()
		return true
	}
	return false
}

// revert undoes a previously applied command.
func (c *Command) revert(w *world.World) bool {
	switch c.Kind {
	case Add:
		_, ok := w.Remove(c.Coord)
		return ok
	case Remove:
		if c.Snapshot == nil {
			return false
		}
		return w.Place(c.Snapshot.Clone())
	}
	return false
}
