package main

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/cuberoll/game"
	"github.com/milk9111/cuberoll/prefabs"
	"github.com/milk9111/cuberoll/progress"
	"github.com/milk9111/cuberoll/world"
)

// TileSize is the on-screen width of one lattice cell.
const TileSize = 40

// Palette is the resolved set of draw colors.
type Palette struct {
	Background color.Color
	Player     color.Color
	Ghost      color.Color
	Tiles      map[world.Type]color.Color
}

func defaultPalette() *Palette {
	return &Palette{
		Background: colornames.Black,
		Player:     colornames.White,
		Ghost:      color.NRGBA{R: 255, G: 255, B: 255, A: 90},
		Tiles: map[world.Type]color.Color{
			world.TypeNormal:     colornames.Gray,
			world.TypePrism:      colornames.Cyan,
			world.TypeMoving:     colornames.Blue,
			world.TypeEnd:        colornames.Red,
			world.TypeSwitch:     colornames.Yellow,
			world.TypeGhost:      color.NRGBA{R: 255, G: 255, B: 255, A: 77},
			world.TypeShrink:     colornames.Magenta,
			world.TypeCheckpoint: colornames.Royalblue,
			world.TypeTeleporter: colornames.Darkorchid,
			world.TypeFragile:    colornames.Tan,
			world.TypeOneway:     colornames.Mediumseagreen,
			world.TypeIce:        colornames.Lightblue,
			world.TypeBouncy:     colornames.Darkorange,
			world.TypeExplosive:  colornames.Firebrick,
			world.TypeLaser:      colornames.Crimson,
			world.TypeMagnetic:   colornames.Slateblue,
			world.TypeGravity:    colornames.Lightseagreen,
		},
	}
}

// LoadPalette reads palette.yaml over the built-in colors. The returned
// palette is usable even when err is non-nil.
func LoadPalette() (*Palette, error) {
	p := defaultPalette()
	spec, err := prefabs.LoadPaletteSpec()
	if err != nil {
		return p, err
	}
	if spec.Background != nil {
		p.Background = spec.Background.Color
	}
	if spec.Player != nil {
		p.Player = spec.Player.Color
	}
	for name, c := range spec.Tiles {
		typ, err := world.ParseType(name)
		if err != nil || c == nil {
			continue
		}
		p.Tiles[typ] = c.Color
	}
	return p, nil
}

func (p *Palette) tile(t world.Type) color.Color {
	if c, ok := p.Tiles[t]; ok {
		return c
	}
	return colornames.Gray
}

// camera maps world x/z onto the screen, centred on the cube.
type camera struct {
	cx, cz float64
}

func (c camera) project(x, z float64) (float32, float32) {
	return float32(baseWidth/2 + (x-c.cx)*TileSize), float32(baseHeight/2 + (z-c.cz)*TileSize)
}

// drawScene renders a top-down view. Tiles below the cube are filled and
// shaded by height; tiles at or above it are outlined so the cube stays
// visible.
func drawScene(screen *ebiten.Image, s *game.Session, pal *Palette, ghost *progress.Sample) {
	screen.Fill(pal.Background)

	p := s.Player()
	cam := camera{cx: p.Position.X(), cz: p.Position.Z()}

	tiles := s.World().Tiles()
	sort.SliceStable(tiles, func(i, j int) bool { return tiles[i].Position().Y() < tiles[j].Position().Y() })

	var above []*world.Tile
	for _, t := range tiles {
		if t.Pos.Y >= p.Cell.Y {
			above = append(above, t)
			continue
		}
		drawTile(screen, cam, pal, t, float64(p.Cell.Y-1-t.Pos.Y))
	}

	if ghost != nil {
		x, y := cam.project(ghost.Pos[0]-0.5, ghost.Pos[2]-0.5)
		vector.StrokeRect(screen, x, y, TileSize, TileSize, 2, pal.Ghost, false)
	}

	size := float32(TileSize * p.Scale)
	x, y := cam.project(p.Position.X(), p.Position.Z())
	vector.FillRect(screen, x-size/2, y-size/2, size, size, pal.Player, false)
	if d := p.LastDir; d != (world.Coord{}) {
		vector.StrokeLine(screen, x, y, x+float32(d.X)*size/2, y+float32(d.Z)*size/2, 2, pal.Background, true)
	}

	for _, t := range above {
		pos := t.Position()
		tx, ty := cam.project(pos.X()-0.5, pos.Z()-0.5)
		vector.StrokeRect(screen, tx, ty, TileSize, TileSize, 1, pal.tile(t.Type), false)
	}
}

func drawTile(screen *ebiten.Image, cam camera, pal *Palette, t *world.Tile, depth float64) {
	pos := t.Position()
	x, y := cam.project(pos.X()-0.5, pos.Z()-0.5)
	c := shade(pal.tile(t.Type), 1-0.15*depth)

	switch {
	case t.Type == world.TypePrism:
		vector.FillRect(screen, x+TileSize/4, y+TileSize/4, TileSize/2, TileSize/2, c, false)
	case t.Type == world.TypeGhost && !t.Active:
		vector.StrokeRect(screen, x, y, TileSize, TileSize, 1, c, false)
	case t.Type == world.TypeLaser && !t.Active:
		vector.FillRect(screen, x, y, TileSize, TileSize, shade(pal.tile(world.TypeNormal), 1-0.15*depth), false)
		vector.StrokeRect(screen, x+2, y+2, TileSize-4, TileSize-4, 1, c, false)
	default:
		vector.FillRect(screen, x, y, TileSize, TileSize, c, false)
		vector.StrokeRect(screen, x, y, TileSize, TileSize, 1, pal.Background, false)
	}

	switch {
	case t.Type == world.TypeOneway:
		cx, cy := x+TileSize/2, y+TileSize/2
		vector.StrokeLine(screen, cx, cy, cx+float32(t.Dir.X)*TileSize/2, cy+float32(t.Dir.Z)*TileSize/2, 3, pal.Background, true)
	case t.Type == world.TypeExplosive && t.Active:
		vector.StrokeRect(screen, x+4, y+4, TileSize-8, TileSize-8, 2, colornames.Yellow, false)
	case (t.Type == world.TypeSwitch || t.Type == world.TypeCheckpoint) && t.Active:
		vector.StrokeRect(screen, x+2, y+2, TileSize-4, TileSize-4, 2, colornames.White, false)
	}
}

// shade scales the color channels by f, clamped to [0.25, 1].
func shade(c color.Color, f float64) color.Color {
	if f < 0.25 {
		f = 0.25
	}
	if f > 1 {
		f = 1
	}
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * f),
		G: uint16(float64(g) * f),
		B: uint16(float64(b) * f),
		A: uint16(a),
	}
}
