package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/prefabs"
)

func main() {
	watch := flag.Bool("watch", false, "reload prefab tuning on file change (dev builds)")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("undercroft")

	game, err := NewGame()
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("prefab watching disabled: %v", err)
		} else {
			defer watcher.Close()
			go func() {
				for range watcher.Events {
					game.RequestTuningReload()
				}
			}()
			go func() {
				for err := range watcher.Errors {
					log.Printf("prefab watcher: %v", err)
				}
			}()
		}
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
