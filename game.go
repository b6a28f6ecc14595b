package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/ecs/system"
	"github.com/milk9111/physbox/obj"
	"github.com/milk9111/physbox/prefabs"
)

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	camera    *obj.Camera
	renderer  *system.RenderSystem
	drag      *system.DragSystem
	physics   *system.PhysicsSystem
	eventLog  *obj.EventLog
	watcher   *prefabs.Watcher
	ui        *sandboxUI

	savePath string
	debug    bool
}

func NewGame(savePath, logPath string, debug, clipboardReady bool) *Game {
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		log.Printf("load world spec: %v", err)
		worldSpec = &prefabs.WorldSpec{GravityY: common.DefaultGravityY}
	}

	w := ecs.NewWorld()
	camera := obj.NewCamera(common.ScreenWidth, common.ScreenHeight)
	camera.SetZoomBounds(worldSpec.Camera.ZoomMin, worldSpec.Camera.ZoomMax)
	eventLog := obj.NewEventLog(logPath)

	physics := system.NewPhysicsSystem(worldSpec)
	drag := system.NewDragSystem(physics, camera, worldSpec.Drag)

	singleton := ecs.CreateEntity(w)
	if err := ecs.Add(w, singleton, component.InputComponent.Kind(), &component.Input{}); err != nil {
		panic(fmt.Sprintf("game: input singleton: %v", err))
	}
	if err := ecs.Add(w, singleton, component.ScoreComponent.Kind(), &component.Score{}); err != nil {
		panic(fmt.Sprintf("game: score singleton: %v", err))
	}

	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewCameraSystem(camera, worldSpec.Camera),
		system.NewScenarioSystem(),
		system.NewSpawnSystem(eventLog),
		drag,
		system.NewPlayerControllerSystem(physics),
		physics,
		system.NewScoreSystem(eventLog),
		system.NewTTLSystem(),
		system.NewSpriteSystem(),
		system.NewPersistenceSystem(physics, camera, eventLog, clipboardReady),
	)

	watcher, err := prefabs.NewWatcher("prefabs")
	if err != nil {
		log.Printf("prefab watcher disabled: %v", err)
		watcher = nil
	}

	g := &Game{
		world:     w,
		scheduler: scheduler,
		camera:    camera,
		renderer:  system.NewRenderSystem(camera, physics),
		drag:      drag,
		physics:   physics,
		eventLog:  eventLog,
		watcher:   watcher,
		savePath:  savePath,
		debug:     debug,
	}
	g.ui = newSandboxUI(g)
	return g
}

func (g *Game) Update() error {
	g.drainWatcher()

	if g.ui != nil {
		g.ui.Update()
	}

	g.scheduler.Update(g.world)

	e, ok := ecs.First(g.world, component.InputComponent.Kind())
	if ok {
		if in, ok := ecs.Get(g.world, e, component.InputComponent.Kind()); ok && in.DebugPressed {
			g.debug = !g.debug
		}
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen, g.debug)
	drawHUD(screen, g)
	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.ScreenWidth, common.ScreenHeight
}

// drainWatcher invalidates cached prefabs whose files changed on disk so
// the next spawn picks up the edit.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			prefabs.Invalidate(filepath.Base(path))
			log.Printf("reloaded prefab %s", filepath.Base(path))
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			if err != nil {
				log.Printf("prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.eventLog != nil {
		_ = g.eventLog.Close()
	}
}
