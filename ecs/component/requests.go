package component

// Request components are one-shot commands attached to throwaway entities.
// The consuming system destroys the carrier after handling it.

// SpawnRequest asks the spawn system to create a kind at a world position.
type SpawnRequest struct {
	Kind string
	X    float64
	Y    float64
}

var SpawnRequestComponent = NewComponent[SpawnRequest]()

// ResetRequest clears the registry, score, camera, and gravity.
type ResetRequest struct{}

var ResetRequestComponent = NewComponent[ResetRequest]()

// SaveRequest writes the current world snapshot to Path.
type SaveRequest struct {
	Path string
}

var SaveRequestComponent = NewComponent[SaveRequest]()

// LoadRequest replaces the world with the snapshot read from Path.
type LoadRequest struct {
	Path string
}

var LoadRequestComponent = NewComponent[LoadRequest]()

// CopyRequest places the current world snapshot on the OS clipboard.
type CopyRequest struct{}

var CopyRequestComponent = NewComponent[CopyRequest]()

// GravityRequest sets the space gravity vector.
type GravityRequest struct {
	X float64
	Y float64
}

var GravityRequestComponent = NewComponent[GravityRequest]()

// ScenarioRequest runs a named scenario script.
type ScenarioRequest struct {
	Name string
}

var ScenarioRequestComponent = NewComponent[ScenarioRequest]()
