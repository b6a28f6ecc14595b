package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
)

func drawHUD(screen *ebiten.Image, g *Game) {
	if screen == nil || g == nil {
		return
	}

	score := 0
	if e, ok := ecs.First(g.world, component.ScoreComponent.Kind()); ok {
		if sc, ok := ecs.Get(g.world, e, component.ScoreComponent.Kind()); ok {
			score = sc.Points
		}
	}

	objects := 0
	ecs.ForEach(g.world, component.EntityKindComponent.Kind(), func(ecs.Entity, *component.EntityKind) {
		objects++
	})

	gv := g.physics.Gravity()
	status := fmt.Sprintf(
		"FPS: %.0f  Objects: %d  Score: %d\nZoom: %.2f  Offset: (%.0f, %.0f)  Gravity: (%.0f, %.0f)",
		ebiten.ActualFPS(), objects, score,
		g.camera.Zoom(), g.camera.OffsetX, g.camera.OffsetY,
		gv.X, gv.Y,
	)
	ebitenutil.DebugPrintAt(screen, status, 180, 4)

	help := "LMB drag  RMB spawn  WASD push player  Arrows pan  Wheel zoom  F1 outlines  C copy"
	ebitenutil.DebugPrintAt(screen, help, 180, common.ScreenHeight-18)

	if entries := g.eventLog.Entries(); len(entries) > 0 {
		last := entries[len(entries)-1]
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("last: [%s] %s", last.Kind, last.Message), 180, 36)
	}
}
