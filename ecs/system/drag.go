package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/obj"
	"github.com/milk9111/physbox/prefabs"
)

const pickRadius = 4

// DragSystem runs the mouse manipulation session. A press over an entity
// grabs it, holding steers its velocity toward the cursor, and release
// throws it with the velocity of the last few cursor samples. A press
// over empty space queues a spawn of the selected kind instead.
type DragSystem struct {
	physics *PhysicsSystem
	camera  *obj.Camera
	spec    prefabs.DragSpec

	dragging bool
	target   ecs.Entity
	offsetX  float64
	offsetY  float64
	samples  []cp.Vector

	selectedKind string
}

func NewDragSystem(physics *PhysicsSystem, camera *obj.Camera, spec prefabs.DragSpec) *DragSystem {
	if spec.ThrowFrames < 2 {
		spec.ThrowFrames = 2
	}
	return &DragSystem{
		physics:      physics,
		camera:       camera,
		spec:         spec,
		selectedKind: component.KindBall,
	}
}

// SelectKind sets the entity kind spawned on an empty-space press.
func (d *DragSystem) SelectKind(kind string) error {
	if !component.KnownKind(kind) {
		return fmt.Errorf("select kind %q: unknown entity kind", kind)
	}
	d.selectedKind = kind
	return nil
}

func (d *DragSystem) SelectedKind() string {
	return d.selectedKind
}

// Dragging reports whether a drag session is active and its target.
func (d *DragSystem) Dragging() (ecs.Entity, bool) {
	return d.target, d.dragging
}

func (d *DragSystem) Update(w *ecs.World) {
	if w == nil || d.physics == nil || d.camera == nil {
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

	wx, wy := d.camera.ScreenToWorld(in.CursorX, in.CursorY)

	if d.dragging && !ecs.IsAlive(w, d.target) {
		d.endDrag()
	}

	switch {
	case in.DragPressed && !d.dragging:
		d.beginDrag(w, wx, wy)
	case in.DragHeld && d.dragging:
		d.steer(wx, wy)
	case in.DragReleased && d.dragging:
		d.release()
	}

	if in.SpawnPressed && !d.dragging {
		req := ecs.CreateEntity(w)
		if err := ecs.Add(w, req, component.SpawnRequestComponent.Kind(), &component.SpawnRequest{
			Kind: d.selectedKind,
			X:    wx,
			Y:    wy,
		}); err != nil {
			panic(fmt.Sprintf("drag: queue spawn request: %v", err))
		}
	}
}

func (d *DragSystem) beginDrag(w *ecs.World, wx, wy float64) {
	e, ok := d.physics.FindAt(w, wx, wy, pickRadius)
	if !ok {
		return
	}
	body := d.physics.Body(e)
	if body == nil || body.GetType() != cp.BODY_DYNAMIC {
		return
	}

	pos := body.Position()
	d.dragging = true
	d.target = e
	d.offsetX = pos.X - wx
	d.offsetY = pos.Y - wy
	d.samples = d.samples[:0]
	d.recordSample(wx, wy)
}

// steer corrects the body's velocity toward the cursor instead of
// teleporting it, so the body still pushes and collides on the way.
func (d *DragSystem) steer(wx, wy float64) {
	body := d.physics.Body(d.target)
	if body == nil {
		d.endDrag()
		return
	}

	d.recordSample(wx, wy)

	target := cp.Vector{X: wx + d.offsetX, Y: wy + d.offsetY}
	pos := body.Position()
	v := target.Sub(pos).Mult(d.spec.Gain)
	if speed := v.Length(); speed > d.spec.MaxSpeed {
		v = v.Mult(d.spec.MaxSpeed / speed)
	}
	body.SetVelocityVector(v)
	body.SetAngularVelocity(0)
}

func (d *DragSystem) release() {
	body := d.physics.Body(d.target)
	if body != nil && len(d.samples) >= 2 {
		first := d.samples[0]
		last := d.samples[len(d.samples)-1]
		dt := float64(len(d.samples)-1) * common.TimeStep
		body.SetVelocityVector(last.Sub(first).Mult(1 / dt))
	}
	d.endDrag()
}

func (d *DragSystem) recordSample(wx, wy float64) {
	d.samples = append(d.samples, cp.Vector{X: wx, Y: wy})
	if len(d.samples) > d.spec.ThrowFrames {
		d.samples = d.samples[len(d.samples)-d.spec.ThrowFrames:]
	}
}

func (d *DragSystem) endDrag() {
	d.dragging = false
	d.target = 0
	d.samples = d.samples[:0]
}
