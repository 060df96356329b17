package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"

	"github.com/milk9111/cuberoll/editor"
	"github.com/milk9111/cuberoll/levels"
	"github.com/milk9111/cuberoll/prefabs"
	"github.com/milk9111/cuberoll/world"
)

// clipboardReady is set once the system clipboard initialises.
var clipboardReady bool

const (
	leftPanelWidth = 200
	cellSize       = 32
)

// EditorGame is the Ebiten game for the level editor. The canvas shows one
// horizontal layer at a time; lower layers are drawn dimmed underneath.
type EditorGame struct {
	ui      *ebitenui.UI
	toolBar *ToolBar
	left    *LeftPanelUI

	ed       *editor.Editor
	palette  *prefabs.PaletteSpec
	savePath string
	author   string

	layer      int
	panX, panY float64
	isPanning  bool
	lastPanX   int
	lastPanY   int
	lastCell   *world.Coord
	status     string
}

func NewEditorGame(ed *editor.Editor, savePath, author string) *EditorGame {
	g := &EditorGame{
		ed:       ed,
		savePath: savePath,
		author:   author,
		panX:     float64(leftPanelWidth) + 3*cellSize,
		panY:     6 * cellSize,
	}

	palette, err := prefabs.LoadPaletteSpec()
	if err != nil {
		log.Printf("palette: %v", err)
	}
	g.palette = palette

	names := make([]string, 0, len(world.Types()))
	for _, t := range world.Types() {
		names = append(names, string(t))
	}

	g.ui, g.toolBar, g.left = BuildEditorUI(
		names,
		func(tool editor.Tool) { g.ed.SetTool(tool) },
		func(name string) {
			if err := g.ed.SetBlockType(world.Type(name)); err != nil {
				g.status = err.Error()
			}
		},
		ToolbarActions{
			Undo: g.undo,
			Redo: g.redo,
			Save: g.save,
			Load: g.load,
			Copy: g.copyToClipboard,
		},
		ed.Tool(),
	)
	g.left.FileNameInput.SetText(savePath)
	g.left.SelectBlock(string(ed.BlockType()))
	return g
}

func (g *EditorGame) Update() error {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	switch {
	case ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.save()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.load()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyToClipboard()
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.layer++
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.layer--
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.cycleBlockType(shift)
	}

	g.ui.Update()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.isPanning = true
		g.lastPanX, g.lastPanY = ebiten.CursorPosition()
	}
	if g.isPanning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cx, cy := ebiten.CursorPosition()
		g.panX += float64(cx - g.lastPanX)
		g.panY += float64(cy - g.lastPanY)
		g.lastPanX, g.lastPanY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.isPanning = false
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		if wy > 0 {
			g.layer++
		} else {
			g.layer--
		}
	}

	// If the UI is hovered, ignore clicks so toolbar/button clicks don't
	// also edit the level underneath.
	if ebuiinput.UIHovered {
		g.lastCell = nil
		return nil
	}
	cell, ok := g.cursorCell()
	if !ok {
		return nil
	}
	if shift && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ed.SetSpawn(cell.Above())
		g.status = fmt.Sprintf("spawn set to %v", g.ed.Spawn())
		return nil
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !shift {
		// One edit per cell while dragging.
		if g.lastCell == nil || *g.lastCell != cell {
			g.ed.ExecuteEdit(cell, "")
			g.lastCell = &cell
		}
	} else {
		g.lastCell = nil
	}
	return nil
}

func (g *EditorGame) cursorCell() (world.Coord, bool) {
	sx, sy := ebiten.CursorPosition()
	if sx < leftPanelWidth {
		return world.Coord{}, false
	}
	x := floorDiv(float64(sx)-g.panX, cellSize)
	z := floorDiv(float64(sy)-g.panY, cellSize)
	return world.Coord{X: x, Y: g.layer, Z: z}, true
}

func floorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}

func (g *EditorGame) cycleBlockType(back bool) {
	types := world.Types()
	idx := 0
	for i, t := range types {
		if t == g.ed.BlockType() {
			idx = i
		}
	}
	if back {
		idx = (idx + len(types) - 1) % len(types)
	} else {
		idx = (idx + 1) % len(types)
	}
	if err := g.ed.SetBlockType(types[idx]); err == nil {
		g.left.SelectBlock(string(types[idx]))
	}
}

func (g *EditorGame) undo() {
	if !g.ed.Undo() {
		g.status = "nothing to undo"
		return
	}
	g.status = fmt.Sprintf("undo (%d left)", g.ed.Stack().Len())
}

func (g *EditorGame) redo() {
	if !g.ed.Redo() {
		g.status = "nothing to redo"
		return
	}
	g.status = fmt.Sprintf("redo (%d left)", g.ed.Stack().RedoLen())
}

func (g *EditorGame) path() string {
	if p := strings.TrimSpace(g.left.FileNameInput.GetText()); p != "" {
		g.savePath = p
	}
	return g.savePath
}

func (g *EditorGame) save() {
	path := g.path()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc := g.ed.Document(levels.Metadata{Name: name, Author: g.author})
	if err := levels.WriteFile(path, doc); err != nil {
		g.status = err.Error()
		log.Printf("save: %v", err)
		return
	}
	g.status = fmt.Sprintf("saved %d blocks to %s", len(doc.Blocks), path)
	log.Print(g.status)
}

func (g *EditorGame) load() {
	path := g.path()
	doc, err := levels.ReadFile(path)
	if err != nil {
		g.status = err.Error()
		log.Printf("load: %v", err)
		return
	}
	if err := g.ed.Load(doc); err != nil {
		g.status = err.Error()
		return
	}
	g.status = fmt.Sprintf("loaded %s", path)
}

// copyToClipboard puts the level document JSON on the system clipboard.
func (g *EditorGame) copyToClipboard() {
	if !clipboardReady {
		g.status = "clipboard unavailable"
		return
	}
	path := g.path()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	data, err := levels.Encode(g.ed.Document(levels.Metadata{Name: name, Author: g.author}))
	if err != nil {
		g.status = err.Error()
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = fmt.Sprintf("copied %d bytes of level JSON", len(data))
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	screen.Fill(canvasColor)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for x := g.panX; x < float64(w); x += cellSize {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1, color.RGBA{48, 48, 60, 255}, false)
	}
	for y := g.panY; y < float64(h); y += cellSize {
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1, color.RGBA{48, 48, 60, 255}, false)
	}

	for _, t := range g.ed.World().Tiles() {
		if t.Pos.Y > g.layer {
			continue
		}
		x := float32(g.panX + float64(t.Pos.X)*cellSize)
		y := float32(g.panY + float64(t.Pos.Z)*cellSize)
		c := g.tileColor(t.Type)
		if t.Pos.Y < g.layer {
			vector.StrokeRect(screen, x+2, y+2, cellSize-4, cellSize-4, 1, c, false)
			continue
		}
		vector.FillRect(screen, x, y, cellSize, cellSize, c, false)
		if t.Type == world.TypeMoving && t.Platform != nil {
			ex := float32(g.panX + float64(t.Platform.End.X)*cellSize + cellSize/2)
			ey := float32(g.panY + float64(t.Platform.End.Z)*cellSize + cellSize/2)
			vector.StrokeLine(screen, x+cellSize/2, y+cellSize/2, ex, ey, 2, c, true)
		}
	}

	if sp := g.ed.Spawn(); sp.Y-1 <= g.layer {
		x := float32(g.panX + float64(sp.X)*cellSize + cellSize/2)
		y := float32(g.panY + float64(sp.Z)*cellSize + cellSize/2)
		vector.StrokeCircle(screen, x, y, cellSize/3, 2, colornames.White, true)
	}

	if cell, ok := g.cursorCell(); ok && !ebuiinput.UIHovered {
		x := float32(g.panX + float64(cell.X)*cellSize)
		y := float32(g.panY + float64(cell.Z)*cellSize)
		vector.StrokeRect(screen, x, y, cellSize, cellSize, 2, colornames.Yellow, false)
	}

	g.ui.Draw(screen)

	info := fmt.Sprintf("layer y=%d  tool %s  block %s  tiles %d  undo %d  redo %d\n%s",
		g.layer, g.ed.Tool(), g.ed.BlockType(), g.ed.World().Len(), g.ed.Stack().Len(), g.ed.Stack().RedoLen(), g.status)
	ebitenutil.DebugPrintAt(screen, info, leftPanelWidth+8, h-40)
}

func (g *EditorGame) tileColor(t world.Type) color.Color {
	if g.palette != nil {
		if c, ok := g.palette.Tiles[string(t)]; ok && c != nil {
			return c.Color
		}
	}
	return colornames.Gray
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func main() {
	filePath := flag.String("file", filepath.Join("levels", "untitled.json"), "level file to edit and save")
	levelName := flag.String("level", "", "built-in level to start from (basename, .json optional)")
	author := flag.String("author", "", "author written into saved levels")
	maxUndo := flag.Int("max-undo", 0, "undo history size (0 uses tuning.yaml)")
	flag.Parse()

	log.Println("Editor starting...")
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: %v", err)
	} else {
		clipboardReady = true
	}

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("tuning: %v (using defaults)", err)
	}
	if *maxUndo <= 0 {
		*maxUndo = tuning.Editor.MaxUndo
	}

	ed := editor.New(world.New(), *maxUndo)
	switch {
	case *levelName != "":
		doc, err := levels.LoadLevelFromFS(*levelName)
		if err != nil {
			log.Fatalf("load level: %v", err)
		}
		if err := ed.Load(doc); err != nil {
			log.Fatal(err)
		}
	default:
		if doc, err := levels.ReadFile(*filePath); err == nil {
			if err := ed.Load(doc); err != nil {
				log.Fatal(err)
			}
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowTitle("cuberoll editor")

	if err := ebiten.RunGame(NewEditorGame(ed, *filePath, *author)); err != nil {
		log.Fatal(err)
	}
}
