package component

import "github.com/jakecoffman/cp"

type ShapeKind string

const (
	ShapeCircle ShapeKind = "circle"
	ShapeBox    ShapeKind = "box"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape stay nil until the physics system instantiates them; the
// rest of the fields describe what to build.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	ShapeKind  ShapeKind
	Radius     float64
	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
