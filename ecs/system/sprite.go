package system

import (
	"fmt"
	"log"

	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/ecs/render"
	"github.com/milk9111/physbox/prefabs"
)

// SpriteSystem attaches sprites to entities that have a body but no image
// yet. Attachment happens here rather than at spawn so spawning never
// touches the GPU.
type SpriteSystem struct{}

func NewSpriteSystem() *SpriteSystem {
	return &SpriteSystem{}
}

func (s *SpriteSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.EntityKindComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, kind *component.EntityKind, pb *component.PhysicsBody) {
		if ecs.Has(w, e, component.SpriteComponent.Kind()) {
			return
		}

		sprite := s.buildSprite(kind.Name, pb)
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
			panic(fmt.Sprintf("sprite: attach to %s: %v", e, err))
		}
	})
}

func (s *SpriteSystem) buildSprite(kind string, pb *component.PhysicsBody) *component.Sprite {
	width, height := pb.Width, pb.Height
	if pb.ShapeKind == component.ShapeCircle {
		width = pb.Radius * 2
		height = pb.Radius * 2
	}

	scale := 1.0
	var img = render.Placeholder(kind, width, height)

	spec, err := prefabs.LoadEntitySpec(kind)
	if err != nil {
		log.Printf("sprite: load spec for %s: %v", kind, err)
	} else if spec.Sprite.Image != "" {
		loaded, err := render.LoadImage(spec.Sprite.Image)
		if err != nil {
			log.Printf("sprite: load image %q for %s: %v", spec.Sprite.Image, kind, err)
		} else {
			img = loaded
			if spec.Sprite.Scale > 0 {
				scale = spec.Sprite.Scale
			}
		}
	}

	bounds := img.Bounds()
	return &component.Sprite{
		Image:   img,
		OriginX: float64(bounds.Dx()) / 2,
		OriginY: float64(bounds.Dy()) / 2,
		Scale:   scale,
	}
}
