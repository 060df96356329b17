package world

import "sort"

// World owns the coordinate index and the ordered tracking collections.
// All placement and removal goes through World so the two never disagree.
type World struct {
	grid *Grid

	prisms      []*Tile
	platforms   []*Tile
	switches    []*Tile
	ghosts      []*Tile
	teleporters []*Tile
}

func New() *World {
	return &World{grid: NewGrid()}
}

// Grid exposes the coordinate index for read-mostly queries.
func (w *World) Grid() *Grid {
	return w.grid
}

func (w *World) Prisms() []*Tile      { return w.prisms }
func (w *World) Platforms() []*Tile   { return w.platforms }
func (w *World) Switches() []*Tile    { return w.switches }
func (w *World) Ghosts() []*Tile      { return w.ghosts }
func (w *World) Teleporters() []*Tile { return w.teleporters }

// Occupied reports whether any tile claims c, indexed or tracked.
func (w *World) Occupied(c Coord) bool {
	_, ok := w.TileAt(c)
	return ok
}

// TileAt returns the tile placed at c. Indexed tiles win over tracked ones;
// moving platforms are found by their start cell.
func (w *World) TileAt(c Coord) (*Tile, bool) {
	if w == nil {
		return nil, false
	}
	if t, ok := w.grid.Get(c); ok {
		return t, true
	}
	for _, list := range w.trackedLists() {
		for _, t := range *list {
			if t.Pos == c {
				return t, true
			}
		}
	}
	return nil, false
}

// Floor returns the tile a cube resting above c would stand on: the indexed
// tile at c, or a moving platform currently passing through c.
func (w *World) Floor(c Coord) (*Tile, bool) {
	if w == nil {
		return nil, false
	}
	if t, ok := w.grid.Get(c); ok {
		return t, true
	}
	for _, p := range w.platforms {
		if CoordOf(p.Position()) == c {
			return p, true
		}
	}
	return nil, false
}

// Place adds t to the index and/or its tracking collection according to the
// registry. Placing onto an occupied coordinate is a no-op returning false.
func (w *World) Place(t *Tile) bool {
	if w == nil || t == nil {
		return false
	}
	b, ok := BehaviorOf(t.Type)
	if !ok || w.Occupied(t.Pos) {
		return false
	}
	if b.Indexed || (t.Type == TypeGhost && t.Active) {
		w.grid.Set(t.Pos, t)
	}
	if list := w.list(b.Track); list != nil {
		*list = append(*list, t)
	}
	return true
}

// Remove deletes the tile at c from every collection it belongs to.
func (w *World) Remove(c Coord) (*Tile, bool) {
	t, ok := w.TileAt(c)
	if !ok {
		return nil, false
	}
	w.RemoveTile(t)
	return t, true
}

// RemoveTile deletes t by identity.
func (w *World) RemoveTile(t *Tile) {
	if w == nil || t == nil {
		return
	}
	if cur, ok := w.grid.Get(t.Pos); ok && cur == t {
		w.grid.Remove(t.Pos)
	}
	for _, list := range w.trackedLists() {
		*list = removeTile(*list, t)
	}
}

// SyncGhosts moves every ghost tile into or out of the index.
func (w *World) SyncGhosts(active bool) {
	for _, g := range w.ghosts {
		g.Active = active
		if active {
			w.grid.Set(g.Pos, g)
			continue
		}
		if cur, ok := w.grid.Get(g.Pos); ok && cur == g {
			w.grid.Remove(g.Pos)
		}
	}
}

// Tiles returns every placed tile ordered by position.
func (w *World) Tiles() []*Tile {
	if w == nil {
		return nil
	}
	seen := make(map[*Tile]struct{})
	var out []*Tile
	add := func(t *Tile) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, c := range w.grid.Coords() {
		t, _ := w.grid.Get(c)
		add(t)
	}
	for _, list := range w.trackedLists() {
		for _, t := range *list {
			add(t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos.Less(out[j].Pos) })
	return out
}

func (w *World) Len() int {
	return len(w.Tiles())
}

func (w *World) Clear() {
	if w == nil {
		return
	}
	w.grid.Clear()
	w.prisms = nil
	w.platforms = nil
	w.switches = nil
	w.ghosts = nil
	w.teleporters = nil
}

func (w *World) list(c Collection) *[]*Tile {
	switch c {
	case TrackPrisms:
		return &w.prisms
	case TrackPlatforms:
		return &w.platforms
	case TrackSwitches:
		return &w.switches
	case TrackGhosts:
		return &w.ghosts
	case TrackTeleporters:
		return &w.teleporters
	}
	return nil
}

func (w *World) trackedLists() []*[]*Tile {
	return []*[]*Tile{&w.prisms, &w.platforms, &w.switches, &w.ghosts, &w.teleporters}
}

func removeTile(list []*Tile, t *Tile) []*Tile {
	for i, cur := range list {
		if cur == t {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
