package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PhysicsSpec struct {
	Shape      string  `yaml:"shape"`
	Radius     float64 `yaml:"radius"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
}

type SpriteSpec struct {
	Image string  `yaml:"image"`
	Scale float64 `yaml:"scale"`
}

// EntitySpec describes one spawnable kind. Value, Force, and Impulse only
// matter for the kinds that use them.
type EntitySpec struct {
	Name    string      `yaml:"name"`
	Value   int         `yaml:"value"`
	Force   float64     `yaml:"force"`
	Impulse float64     `yaml:"impulse"`
	Physics PhysicsSpec `yaml:"physics"`
	Sprite  SpriteSpec  `yaml:"sprite"`
}

// LoadEntitySpec loads the spec for a kind from <kind>.yaml.
func LoadEntitySpec(kind string) (*EntitySpec, error) {
	spec, err := LoadSpec[EntitySpec](kind + ".yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type DragSpec struct {
	Gain        float64 `yaml:"gain"`
	MaxSpeed    float64 `yaml:"max_speed"`
	ThrowFrames int     `yaml:"throw_frames"`
}

type BoundarySpec struct {
	Extent     float64 `yaml:"extent"`
	Thickness  float64 `yaml:"thickness"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type CameraSpec struct {
	ZoomMin   float64 `yaml:"zoom_min"`
	ZoomMax   float64 `yaml:"zoom_max"`
	ZoomSpeed float64 `yaml:"zoom_speed"`
	PanSpeed  float64 `yaml:"pan_speed"`
}

// WorldSpec carries the tunables that are not per-entity.
type WorldSpec struct {
	GravityX float64      `yaml:"gravity_x"`
	GravityY float64      `yaml:"gravity_y"`
	Camera   CameraSpec   `yaml:"camera"`
	Drag     DragSpec     `yaml:"drag"`
	Boundary BoundarySpec `yaml:"boundary"`
}

// LoadWorldSpec loads world.yaml.
func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
