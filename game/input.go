package game

import "github.com/milk9111/cuberoll/world"

// Intent is the set of held move directions sampled once per frame, indexed
// like world.Cardinals.
type Intent struct {
	Held [4]bool
}

// IntentOf builds a snapshot from held directions. Non-cardinal directions
// are ignored.
func IntentOf(dirs ...world.Coord) Intent {
	var in Intent
	for _, d := range dirs {
		for i, c := range world.Cardinals {
			if d == c {
				in.Held[i] = true
			}
		}
	}
	return in
}

func (in Intent) Any() bool {
	for _, h := range in.Held {
		if h {
			return true
		}
	}
	return false
}

// Direction resolves simultaneous presses by fixed priority: forward, back,
// left, right.
func (in Intent) Direction() (world.Coord, bool) {
	for i, h := range in.Held {
		if h {
			return world.Cardinals[i], true
		}
	}
	return world.Coord{}, false
}

// Pressed returns the directions held now but not in prev.
func (in Intent) Pressed(prev Intent) Intent {
	var out Intent
	for i := range in.Held {
		out.Held[i] = in.Held[i] && !prev.Held[i]
	}
	return out
}

// Released reports whether every direction held in prev has been let go.
func (in Intent) Released(prev Intent) bool {
	return prev.Any() && !in.Any()
}
