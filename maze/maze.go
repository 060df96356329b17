// Package maze generates playable cube levels: a recursive-backtracker
// maze over an x/z footprint with a height map whose neighbouring cells
// never differ by more than one step.
package maze

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/milk9111/cuberoll/levels"
	"github.com/milk9111/cuberoll/prefabs"
	"github.com/milk9111/cuberoll/world"
)

// Cell is a footprint position.
type Cell struct {
	X, Z int
}

type Config struct {
	Width, Depth int
	MaxHeight    int
	Seed         int64

	HazardChance      float64
	InteractiveChance float64
	PrismChance       float64
}

// ConfigFromSpec builds a generator config from tuning values.
func ConfigFromSpec(spec prefabs.GeneratorSpec, seed int64) Config {
	return Config{
		Width:             spec.Width,
		Depth:             spec.Depth,
		MaxHeight:         spec.MaxHeight,
		Seed:              seed,
		HazardChance:      spec.HazardChance,
		InteractiveChance: spec.InteractiveChance,
		PrismChance:       spec.PrismChance,
	}
}

type Result struct {
	Doc     *levels.Document
	Spawn   world.Coord
	Start   Cell
	End     Cell
	Heights map[Cell]int
}

var (
	hazards      = []world.Type{world.TypeFragile, world.TypeLaser, world.TypeExplosive}
	interactives = []world.Type{world.TypeIce, world.TypeBouncy, world.TypeCheckpoint, world.TypeShrink}
	steps        = []Cell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
)

// Generate builds a maze level. The same config always yields the same
// level.
func Generate(cfg Config) (*Result, error) {
	if cfg.Width <= 0 || cfg.Depth <= 0 {
		return nil, fmt.Errorf("maze: invalid footprint %dx%d", cfg.Width, cfg.Depth)
	}
	if cfg.MaxHeight < 0 {
		cfg.MaxHeight = 0
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	start := Cell{0, 0}
	heights := map[Cell]int{start: 0}
	stack := []Cell{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var open []Cell
		for _, d := range steps {
			n := Cell{cur.X + d.X, cur.Z + d.Z}
			if !cfg.inBounds(n) {
				continue
			}
			if _, seen := heights[n]; !seen {
				open = append(open, n)
			}
		}
		if len(open) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := open[rng.Intn(len(open))]
		h := heights[cur]
		switch r := rng.Float64(); {
		case r < 0.2:
			h++
		case r < 0.4:
			h--
		}
		h = clamp(h, 0, cfg.MaxHeight)

		bridge := Cell{(cur.X + next.X) / 2, (cur.Z + next.Z) / 2}
		heights[next] = h
		heights[bridge] = int(math.Round(float64(heights[cur]+h) / 2))
		stack = append(stack, next)
	}

	end := cfg.findEnd(heights)
	cells := sortedCells(heights)

	floors := make(map[Cell]world.Type, len(cells))
	for _, c := range cells {
		floors[c] = world.TypeNormal
	}
	floors[end] = world.TypeEnd
	prisms := mapset.New[Cell]()

	// Scatter pass: sample the whole footprint, skipping cells the maze
	// never reached.
	area := cfg.Width * cfg.Depth
	for i := 0; i < area; i++ {
		c := Cell{rng.Intn(cfg.Width), rng.Intn(cfg.Depth)}
		r := rng.Float64()
		if _, ok := heights[c]; !ok || c == end {
			continue
		}
		switch {
		case r < cfg.HazardChance:
			if c != start {
				floors[c] = hazards[rng.Intn(len(hazards))]
			}
		case r < cfg.HazardChance+cfg.InteractiveChance:
			floors[c] = interactives[rng.Intn(len(interactives))]
		case r < cfg.HazardChance+cfg.InteractiveChance+cfg.PrismChance:
			if c != start {
				prisms.Put(c)
			}
		}
	}

	doc := &levels.Document{
		Metadata: levels.Metadata{
			Name:   fmt.Sprintf("maze-%d", cfg.Seed),
			Author: "mazegen",
		},
		Blocks: []levels.Block{},
	}
	for _, c := range cells {
		h := heights[c]
		for y := 0; y < h; y++ {
			doc.Blocks = append(doc.Blocks, block(world.TypeNormal, c.X, y, c.Z))
		}
		doc.Blocks = append(doc.Blocks, block(floors[c], c.X, h, c.Z))
		if prisms.Has(c) {
			doc.Blocks = append(doc.Blocks, block(world.TypePrism, c.X, h+1, c.Z))
		}
	}

	spawn := world.Coord{X: start.X, Y: heights[start] + 1, Z: start.Z}
	doc.Spawn = []int{spawn.X, spawn.Y, spawn.Z}

	return &Result{
		Doc:     doc,
		Spawn:   spawn,
		Start:   start,
		End:     end,
		Heights: heights,
	}, nil
}

// findEnd walks diagonally in from the far corner to the first reached
// cell. Footprints too thin for the diagonal fall back to the reached cell
// farthest from the start.
func (cfg Config) findEnd(heights map[Cell]int) Cell {
	for k := 0; k < cfg.Width && k < cfg.Depth; k++ {
		c := Cell{cfg.Width - 1 - k, cfg.Depth - 1 - k}
		if _, ok := heights[c]; ok && c != (Cell{}) {
			return c
		}
	}
	best, bestD := Cell{}, -1
	for _, c := range sortedCells(heights) {
		if d := c.X*c.X + c.Z*c.Z; d > bestD {
			best, bestD = c, d
		}
	}
	return best
}

func (cfg Config) inBounds(c Cell) bool {
	return c.X >= 0 && c.Z >= 0 && c.X < cfg.Width && c.Z < cfg.Depth
}

// Connected reports whether every reached cell can be walked to from the
// start through orthogonal neighbours at most one step apart in height.
func Connected(res *Result) bool {
	if res == nil || len(res.Heights) == 0 {
		return false
	}
	seen := mapset.New[Cell]()
	queue := []Cell{res.Start}
	seen.Put(res.Start)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range []Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			n := Cell{cur.X + d.X, cur.Z + d.Z}
			h, ok := res.Heights[n]
			if !ok || seen.Has(n) {
				continue
			}
			if abs(h-res.Heights[cur]) > 1 {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
	return seen.Size() == len(res.Heights)
}

func sortedCells(heights map[Cell]int) []Cell {
	out := make([]Cell, 0, len(heights))
	for c := range heights {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].X < out[j].X
	})
	return out
}

func block(t world.Type, x, y, z int) levels.Block {
	return levels.Block{Type: string(t), Pos: []int{x, y, z}}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
