package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
)

// PlayerControllerSystem pushes the player body with WASD. Diagonals are
// normalized so they carry the same force as a straight push.
type PlayerControllerSystem struct {
	physics *PhysicsSystem
}

func NewPlayerControllerSystem(physics *PhysicsSystem) *PlayerControllerSystem {
	return &PlayerControllerSystem{physics: physics}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil || p.physics == nil {
		return
	}

	e, ok := ecs.First(w, component.InputComponent.Kind())
	if !ok {
		return
	}
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return
	}
	if in.MoveX == 0 && in.MoveY == 0 {
		return
	}

	length := math.Hypot(in.MoveX, in.MoveY)
	dir := cp.Vector{X: in.MoveX / length, Y: in.MoveY / length}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(pe ecs.Entity, pl *component.Player) {
		body := p.physics.Body(pe)
		if body == nil {
			return
		}
		body.ApplyForceAtLocalPoint(dir.Mult(pl.ForceMagnitude), cp.Vector{})
	})
}
