// Package entity builds sandbox objects from prefab specs.
package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/prefabs"
)

// ErrInvalidShapeParams is returned when a prefab describes a body the
// physics space would reject. Nothing is stored in the registry on failure.
var ErrInvalidShapeParams = errors.New("entity: invalid shape params")

// Spawn creates an entity of the given kind at a world position. The physics
// body itself is instantiated by the physics system on its next update.
func Spawn(w *ecs.World, kind string, x, y float64) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("spawn: world is nil")
	}
	if !component.KnownKind(kind) {
		return 0, fmt.Errorf("spawn: unknown kind %q", kind)
	}

	spec, err := prefabs.LoadEntitySpec(kind)
	if err != nil {
		return 0, fmt.Errorf("spawn %s: %w", kind, err)
	}
	if err := ValidateSpec(spec); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", kind, err)
	}

	e := ecs.CreateEntity(w)
	if err := buildComponents(w, e, kind, spec, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func buildComponents(w *ecs.World, e ecs.Entity, kind string, spec *prefabs.EntitySpec, x, y float64) error {
	if err := ecs.Add(w, e, component.EntityKindComponent.Kind(), &component.EntityKind{Name: kind}); err != nil {
		return fmt.Errorf("spawn %s: add kind: %w", kind, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fmt.Errorf("spawn %s: add transform: %w", kind, err)
	}

	body := &component.PhysicsBody{
		ShapeKind:  component.ShapeKind(spec.Physics.Shape),
		Radius:     spec.Physics.Radius,
		Width:      spec.Physics.Width,
		Height:     spec.Physics.Height,
		Mass:       spec.Physics.Mass,
		Friction:   spec.Physics.Friction,
		Elasticity: spec.Physics.Elasticity,
		Static:     spec.Physics.Static,
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return fmt.Errorf("spawn %s: add physics body: %w", kind, err)
	}

	switch kind {
	case component.KindPlayer:
		if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{ForceMagnitude: spec.Force}); err != nil {
			return fmt.Errorf("spawn %s: add player: %w", kind, err)
		}
	case component.KindCoin:
		if err := ecs.Add(w, e, component.CoinComponent.Kind(), &component.Coin{Value: spec.Value}); err != nil {
			return fmt.Errorf("spawn %s: add coin: %w", kind, err)
		}
	case component.KindBouncer:
		if err := ecs.Add(w, e, component.BouncerComponent.Kind(), &component.Bouncer{Impulse: spec.Impulse}); err != nil {
			return fmt.Errorf("spawn %s: add bouncer: %w", kind, err)
		}
	}
	return nil
}

// ValidateSpec checks that a prefab describes a body Spawn could build.
// Callers that must not mutate anything on failure, like the snapshot
// loader, run this over every record before touching the world.
func ValidateSpec(spec *prefabs.EntitySpec) error {
	if spec == nil {
		return fmt.Errorf("%w: nil spec", ErrInvalidShapeParams)
	}
	return validatePhysics(spec.Physics)
}

func validatePhysics(p prefabs.PhysicsSpec) error {
	switch component.ShapeKind(p.Shape) {
	case component.ShapeCircle:
		if p.Radius <= 0 {
			return fmt.Errorf("%w: circle radius %v", ErrInvalidShapeParams, p.Radius)
		}
	case component.ShapeBox:
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("%w: box %vx%v", ErrInvalidShapeParams, p.Width, p.Height)
		}
	default:
		return fmt.Errorf("%w: shape %q", ErrInvalidShapeParams, p.Shape)
	}
	if !p.Static && p.Mass <= 0 {
		return fmt.Errorf("%w: dynamic body mass %v", ErrInvalidShapeParams, p.Mass)
	}
	return nil
}
