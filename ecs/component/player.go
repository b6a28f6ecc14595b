package component

// Player marks the controllable entity and carries its steering force.
type Player struct {
	ForceMagnitude float64
}

var PlayerComponent = NewComponent[Player]()
