package world

import "sort"

// Grid is the sparse coordinate index. It knows nothing about tracking
// collections; World keeps those consistent.
type Grid struct {
	cells map[Coord]*Tile
}

func NewGrid() *Grid {
	return &Grid{cells: make(map[Coord]*Tile)}
}

func (g *Grid) Get(c Coord) (*Tile, bool) {
	if g == nil {
		return nil, false
	}
	t, ok := g.cells[c]
	return t, ok
}

// Has reports whether c is occupied.
func (g *Grid) Has(c Coord) bool {
	_, ok := g.Get(c)
	return ok
}

// Set stores t at c. An occupied coordinate is left untouched and Set
// returns false.
func (g *Grid) Set(c Coord, t *Tile) bool {
	if g == nil || t == nil {
		return false
	}
	if g.cells == nil {
		g.cells = make(map[Coord]*Tile)
	}
	if _, ok := g.cells[c]; ok {
		return false
	}
	g.cells[c] = t
	return true
}

func (g *Grid) Remove(c Coord) {
	if g == nil {
		return
	}
	delete(g.cells, c)
}

func (g *Grid) Clear() {
	if g == nil {
		return
	}
	g.cells = make(map[Coord]*Tile)
}

func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.cells)
}

// Coords returns every occupied coordinate in Coord.Less order.
func (g *Grid) Coords() []Coord {
	if g == nil {
		return nil
	}
	out := make([]Coord, 0, len(g.cells))
	for c := range g.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
