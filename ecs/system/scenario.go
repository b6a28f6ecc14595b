package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/prefabs"
)

// ScenarioSystem runs named tengo scenario scripts on request. Scripts
// populate the world through host functions, so a scenario is just a
// batch of spawn and gravity requests queued for the regular systems.
type ScenarioSystem struct{}

func NewScenarioSystem() *ScenarioSystem {
	return &ScenarioSystem{}
}

func (s *ScenarioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	type request struct {
		e    ecs.Entity
		name string
	}
	var requests []request
	ecs.ForEach(w, component.ScenarioRequestComponent.Kind(), func(e ecs.Entity, r *component.ScenarioRequest) {
		requests = append(requests, request{e: e, name: r.Name})
	})

	for _, r := range requests {
		ecs.DestroyEntity(w, r.e)
		if err := s.run(w, r.name); err != nil {
			log.Printf("scenario %s: %v", r.name, err)
		}
	}
}

func (s *ScenarioSystem) run(w *ecs.World, name string) error {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	if err := script.Add("spawn", &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		kind := scriptString(args[0])
		if !component.KnownKind(kind) {
			return nil, fmt.Errorf("spawn: unknown kind %q", kind)
		}
		x, ok := scriptFloat(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "number", Found: args[1].TypeName()}
		}
		y, ok := scriptFloat(args[2])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "number", Found: args[2].TypeName()}
		}

		req := ecs.CreateEntity(w)
		if err := ecs.Add(w, req, component.SpawnRequestComponent.Kind(), &component.SpawnRequest{Kind: kind, X: x, Y: y}); err != nil {
			return nil, err
		}
		return tengo.TrueValue, nil
	}}); err != nil {
		return fmt.Errorf("bind spawn: %w", err)
	}

	if err := script.Add("set_gravity", &tengo.UserFunction{Name: "set_gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		gx, ok := scriptFloat(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "number", Found: args[0].TypeName()}
		}
		gy, ok := scriptFloat(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "number", Found: args[1].TypeName()}
		}

		req := ecs.CreateEntity(w)
		if err := ecs.Add(w, req, component.GravityRequestComponent.Kind(), &component.GravityRequest{X: gx, Y: gy}); err != nil {
			return nil, err
		}
		return tengo.TrueValue, nil
	}}); err != nil {
		return fmt.Errorf("bind set_gravity: %w", err)
	}

	if _, err := script.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func scriptString(obj tengo.Object) string {
	if s, ok := obj.(*tengo.String); ok {
		return s.Value
	}
	return obj.String()
}

func scriptFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Int:
		return float64(v.Value), true
	case *tengo.Float:
		return v.Value, true
	default:
		return 0, false
	}
}
