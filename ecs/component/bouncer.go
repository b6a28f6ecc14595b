package component

// Bouncer pushes dynamic bodies away on contact.
type Bouncer struct {
	Impulse float64
}

var BouncerComponent = NewComponent[Bouncer]()
