package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilephys/common"
)

func main() {
	configPath := flag.String("config", "playground.yaml", "YAML config file; defaults apply when it does not exist")
	levelName := flag.String("level", "demo.json", "level file on disk or embedded level name")
	scriptPath := flag.String("script", "", "reaction script (defaults to prefabs/scripts/react.tengo)")
	debug := flag.Bool("debug", false, "start with the physics debug overlay")
	watch := flag.Bool("watch", true, "hot reload config and script changes")
	flag.Parse()

	game, err := NewGame(Options{
		ConfigPath: *configPath,
		LevelName:  *levelName,
		ScriptPath: *scriptPath,
		Debug:      *debug,
		Watch:      *watch,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("tilephys playground")
	ebiten.SetTPS(common.TicksPerSecond)

	err = ebiten.RunGame(game)
	if cerr := game.Close(); cerr != nil {
		log.Printf("close watcher: %v", cerr)
	}
	if err != nil {
		log.Fatal(err)
	}
}
