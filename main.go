package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/physbox/common"
	"golang.design/x/clipboard"
)

func main() {
	savePath := flag.String("save", "sandbox.yaml", "snapshot file used by the save and load buttons")
	logPath := flag.String("log", "", "mirror the event log to this CSV file")
	debug := flag.Bool("debug", false, "start with physics shape outlines visible")
	flag.Parse()

	clipboardReady := true
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
		clipboardReady = false
	}

	ebiten.SetWindowSize(common.ScreenWidth, common.ScreenHeight)
	ebiten.SetWindowTitle("physbox")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := NewGame(*savePath, *logPath, *debug, clipboardReady)
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
