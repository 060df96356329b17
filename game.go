package main

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/cuberoll/game"
	"github.com/milk9111/cuberoll/levels"
	"github.com/milk9111/cuberoll/maze"
	"github.com/milk9111/cuberoll/prefabs"
	"github.com/milk9111/cuberoll/progress"
	"github.com/milk9111/cuberoll/world"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// mazeLevel is the progress slot shared by generated mazes.
const mazeLevel = 1000

type Options struct {
	Level       string
	MazeSeed    int64
	Watch       bool
	ProgressDir string
	Debug       bool
}

type Game struct {
	frames int
	debug  bool

	input   *Input
	session *game.Session
	store   progress.Store
	ranker  *progress.Ranker
	watcher *prefabs.Watcher
	tuning  prefabs.Tuning
	palette *Palette

	names     []string
	level     int
	levelName string
	levelPath string
	mazeSeed  int64

	ghost     progress.Trace
	showGhost bool
	banner    string
}

func NewGame(opts Options) (*Game, error) {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("tuning: %v (using defaults)", err)
	}

	palette, err := LoadPalette()
	if err != nil {
		log.Printf("palette: %v (using defaults)", err)
	}

	store, err := progress.OpenBadger(opts.ProgressDir)
	if err != nil {
		return nil, fmt.Errorf("open progress %q: %w", opts.ProgressDir, err)
	}

	ranker, err := progress.NewRanker()
	if err != nil {
		log.Printf("rank script: %v (using built-in ranks)", err)
	}

	g := &Game{
		debug:     opts.Debug,
		input:     NewInput(),
		store:     store,
		ranker:    ranker,
		tuning:    tuning,
		palette:   palette,
		names:     levels.Names(),
		mazeSeed:  opts.MazeSeed,
		showGhost: true,
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"), "levels")
		if err != nil {
			log.Printf("watch: %v", err)
		} else {
			g.watcher = w
		}
	}

	switch {
	case opts.MazeSeed != 0:
		err = g.loadMaze(opts.MazeSeed)
	case opts.Level != "" && strings.ContainsAny(opts.Level, `/\`):
		err = g.loadLevelFile(opts.Level)
	case opts.Level != "":
		err = g.loadLevelByName(opts.Level)
	default:
		err = g.loadLevel(0)
	}
	if err != nil {
		_ = g.Close()
		return nil, err
	}
	return g, nil
}

func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	if g.store != nil {
		errs = append(errs, g.store.Close())
	}
	return errors.Join(errs...)
}

func (g *Game) loadLevel(index int) error {
	if index < 0 || index >= len(g.names) {
		return fmt.Errorf("level %d out of range", index)
	}
	doc, err := levels.LoadLevelFromFS(g.names[index])
	if err != nil {
		return err
	}
	g.levelPath = ""
	return g.start(doc, index, g.names[index])
}

func (g *Game) loadLevelByName(name string) error {
	name = strings.TrimSuffix(name, ".json")
	for i, n := range g.names {
		if n == name {
			return g.loadLevel(i)
		}
	}
	return fmt.Errorf("unknown level %q", name)
}

func (g *Game) loadLevelFile(path string) error {
	doc, err := levels.ReadFile(path)
	if err != nil {
		return err
	}
	g.levelPath = path
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return g.start(doc, g.indexOf(name), name)
}

func (g *Game) loadMaze(seed int64) error {
	res, err := maze.Generate(maze.ConfigFromSpec(g.tuning.Generator, seed))
	if err != nil {
		return err
	}
	g.levelPath = ""
	return g.start(res.Doc, mazeLevel, res.Doc.Metadata.Name)
}

func (g *Game) indexOf(name string) int {
	for i, n := range g.names {
		if n == name {
			return i
		}
	}
	return mazeLevel
}

func (g *Game) start(doc *levels.Document, level int, name string) error {
	tuning := g.tuning
	s, err := game.Load(doc, game.Config{
		Level:  level,
		Tuning: &tuning,
		Store:  g.store,
		Ranker: g.ranker,
		Hooks: game.Hooks{
			LevelComplete: g.onComplete,
			Respawn: func(c world.Coord) {
				if g.debug {
					log.Printf("respawn at %v", c)
				}
			},
		},
	})
	if err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	g.session = s
	g.level = level
	g.levelName = name
	g.banner = ""
	g.ghost = progress.Trace{}
	if tr, err := g.store.Ghost(level); err == nil {
		g.ghost = tr
	} else if !errors.Is(err, progress.ErrNotFound) {
		log.Printf("ghost %s: %v", name, err)
	}
	log.Printf("playing %s", name)
	return nil
}

func (g *Game) onComplete(res game.Result) {
	g.banner = fmt.Sprintf("Complete! %.2fs rank %s prisms %d", res.Record.Seconds, res.Record.Rank, res.Record.Prisms)
	if res.Improved {
		g.banner += "  (new best)"
	}
	log.Printf("%s: %s", g.levelName, g.banner)
}

func (g *Game) unlocked(level int) bool {
	list, err := g.store.Unlocked()
	if err != nil {
		log.Printf("unlocked: %v", err)
		return false
	}
	for _, l := range list {
		if l == level {
			return true
		}
	}
	return false
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()
	g.input.Update()

	switch {
	case g.input.RestartPressed:
		g.session.Restart()
		g.banner = ""
	case g.input.NextPressed:
		g.advance(1)
	case g.input.PrevPressed:
		g.advance(-1)
	case g.input.GhostPressed:
		g.showGhost = !g.showGhost
	}

	g.session.Input(g.input.Intent)
	g.session.Update(time.Second / time.Duration(ebiten.TPS()))

	for _, evt := range g.session.Events() {
		if g.debug {
			log.Printf("event: %s %v", evt.Type, evt.Data)
		}
	}
	return nil
}

// advance moves through the built-in levels. Moving forward requires the
// target level to be unlocked; a maze run steps to a fresh seed instead.
func (g *Game) advance(step int) {
	if g.level == mazeLevel && g.levelPath == "" {
		g.mazeSeed += int64(step)
		if g.mazeSeed == 0 {
			g.mazeSeed += int64(step)
		}
		if err := g.loadMaze(g.mazeSeed); err != nil {
			log.Printf("maze %d: %v", g.mazeSeed, err)
		}
		return
	}

	next := g.level + step
	if next < 0 || next >= len(g.names) {
		return
	}
	if step > 0 && !g.unlocked(next) {
		g.banner = fmt.Sprintf("%s is locked", g.names[next])
		return
	}
	if err := g.loadLevel(next); err != nil {
		log.Printf("load %s: %v", g.names[next], err)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for _, c := range g.watcher.Poll() {
		switch c.Kind {
		case prefabs.ChangeSpec:
			g.reloadSpecs(c.Path)
		case prefabs.ChangeScript:
			ranker, err := progress.NewRanker()
			if err != nil {
				log.Printf("reload %s: %v", c.Path, err)
				continue
			}
			g.ranker = ranker
			log.Printf("reloaded %s (applies from the next level)", c.Path)
		case prefabs.ChangeLevel:
			g.reloadLevel(c.Path)
		}
	}
}

func (g *Game) reloadSpecs(path string) {
	switch filepath.Base(path) {
	case "tuning.yaml":
		tuning, err := prefabs.LoadTuning()
		if err != nil {
			log.Printf("reload %s: %v", path, err)
			return
		}
		g.tuning = tuning
		g.session.SetTuning(tuning)
	case "palette.yaml":
		palette, err := LoadPalette()
		if err != nil {
			log.Printf("reload %s: %v", path, err)
			return
		}
		g.palette = palette
	default:
		return
	}
	log.Printf("reloaded %s", path)
}

func (g *Game) reloadLevel(path string) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name != g.levelName {
		return
	}
	doc, err := levels.ReadFile(path)
	if err != nil {
		log.Printf("reload %s: %v", path, err)
		return
	}
	if err := g.start(doc, g.level, name); err != nil {
		log.Printf("reload %s: %v", path, err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawScene(screen, g.session, g.palette, g.ghostSample())

	s := g.session
	p := s.Player()
	hud := fmt.Sprintf("%s    %.1fs    prisms %d    %s\nFPS: %.2f",
		g.levelName, s.Elapsed.Seconds(), s.Prisms, s.State().Name(), ebiten.ActualFPS())
	if best, err := g.store.Best(g.level); err == nil {
		hud += fmt.Sprintf("    best %.2fs (%s)", best.Seconds, best.Rank)
	}
	if p.Shrunk() {
		hud += "    shrunk"
	}
	if g.banner != "" {
		hud += "\n" + g.banner + "\nEnter: next level  R: restart"
	}
	ebitenutil.DebugPrint(screen, hud)
}

func (g *Game) ghostSample() *progress.Sample {
	if !g.showGhost {
		return nil
	}
	sample, ok := g.ghost.At(g.session.Elapsed.Seconds())
	if !ok {
		return nil
	}
	return &sample
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
