package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "log every gameplay event")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional) or a path to a level file")
	mazeSeed := flag.Int64("maze", 0, "play a generated maze with this seed instead of a level")
	watch := flag.Bool("watch", false, "reload prefabs/, scripts and levels/ when they change on disk")
	progressDir := flag.String("progress", "progress.db", "progress database directory (empty keeps progress in memory)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("cuberoll")

	g, err := NewGame(Options{
		Level:       *levelName,
		MazeSeed:    *mazeSeed,
		Watch:       *watch,
		ProgressDir: *progressDir,
		Debug:       *debug,
	})
	if err != nil {
		log.Fatal(err)
	}

	err = ebiten.RunGame(g)
	if cerr := g.Close(); cerr != nil {
		log.Printf("close: %v", cerr)
	}
	if err != nil {
		log.Fatal(err)
	}
}
