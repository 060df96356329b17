package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/cuberoll/levels"
	"github.com/milk9111/cuberoll/maze"
	"github.com/milk9111/cuberoll/prefabs"
	"github.com/milk9111/cuberoll/world"
)

const previewCell = 32

// previewGame shows the generated height map from above: brighter cells are
// higher, the start is outlined white and the end red.
type previewGame struct {
	res *maze.Result
	cfg maze.Config
}

func (g *previewGame) Update() error {
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	for cell, h := range g.res.Heights {
		x := float32(previewCell + cell.X*previewCell)
		y := float32(previewCell + cell.Z*previewCell)
		v := uint8(80 + 175*h/max(g.cfg.MaxHeight, 1))
		vector.FillRect(screen, x, y, previewCell, previewCell, color.RGBA{v, v, v, 0xff}, false)
	}
	for _, b := range g.res.Doc.Blocks {
		if b.Type != string(world.TypePrism) {
			continue
		}
		x := float32(previewCell + b.Pos[0]*previewCell + previewCell/2)
		y := float32(previewCell + b.Pos[2]*previewCell + previewCell/2)
		vector.FillCircle(screen, x, y, previewCell/6, colornames.Cyan, true)
	}
	mark := func(c maze.Cell, clr color.Color) {
		x := float32(previewCell + c.X*previewCell)
		y := float32(previewCell + c.Z*previewCell)
		vector.StrokeRect(screen, x+1, y+1, previewCell-2, previewCell-2, 2, clr, false)
	}
	mark(g.res.Start, colornames.White)
	mark(g.res.End, colornames.Red)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %d blocks", g.res.Doc.Metadata.Name, len(g.res.Doc.Blocks)))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return (g.cfg.Width + 2) * previewCell, (g.cfg.Depth + 2) * previewCell
}

func main() {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("tuning: %v (using defaults)", err)
	}
	gen := tuning.Generator

	seed := flag.Int64("seed", 0, "generator seed (0 picks one from the clock)")
	width := flag.Int("width", gen.Width, "footprint width in cells")
	depth := flag.Int("depth", gen.Depth, "footprint depth in cells")
	maxHeight := flag.Int("max-height", gen.MaxHeight, "highest floor level")
	out := flag.String("out", "", "write the level document here (default stdout)")
	preview := flag.Bool("preview", false, "open a window showing the generated height map")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gen.Width, gen.Depth, gen.MaxHeight = *width, *depth, *maxHeight
	cfg := maze.ConfigFromSpec(gen, *seed)

	res, err := maze.Generate(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if !maze.Connected(res) {
		log.Fatalf("seed %d: end is not reachable from the start", *seed)
	}

	if *out != "" {
		if err := levels.WriteFile(*out, res.Doc); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s (seed %d, %d blocks)", *out, *seed, len(res.Doc.Blocks))
	} else {
		data, err := levels.Encode(res.Doc)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := os.Stdout.Write(append(data, '\n')); err != nil {
			log.Fatal(err)
		}
	}

	if !*preview {
		return
	}
	g := &previewGame{res: res, cfg: cfg}
	ebiten.SetWindowSize((cfg.Width+2)*previewCell, (cfg.Depth+2)*previewCell)
	ebiten.SetWindowTitle("mazegen " + res.Doc.Metadata.Name)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
