package system

import (
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/obj"
	"github.com/milk9111/physbox/prefabs"
)

// CameraSystem applies pan and zoom input to the camera. Zoom pivots on
// the cursor so the world point under it stays put.
type CameraSystem struct {
	camera *obj.Camera
	spec   prefabs.CameraSpec
}

func NewCameraSystem(camera *obj.Camera, spec prefabs.CameraSpec) *CameraSystem {
	return &CameraSystem{
		camera: camera,
		spec:   spec,
	}
}

func (c *CameraSystem) Update(w *ecs.World) {
	if w == nil || c.camera == nil {
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

	if in.PanX != 0 || in.PanY != 0 {
		c.camera.Pan(in.PanX*c.spec.PanSpeed, in.PanY*c.spec.PanSpeed)
	}

	if in.WheelY != 0 {
		factor := 1 + in.WheelY*c.spec.ZoomSpeed
		c.camera.ZoomBy(factor, in.CursorX, in.CursorY)
	}
}
