package component

// EntityKind tags an entity with its sandbox object kind. The set is closed;
// snapshot loading rejects anything else.
type EntityKind struct {
	Name string
}

const (
	KindPlayer  = "player"
	KindBall    = "ball"
	KindBox     = "box"
	KindBouncer = "bouncer"
	KindCoin    = "coin"
)

// KnownKind reports whether name is one of the spawnable kinds.
func KnownKind(name string) bool {
	switch name {
	case KindPlayer, KindBall, KindBox, KindBouncer, KindCoin:
		return true
	}
	return false
}

var EntityKindComponent = NewComponent[EntityKind]()
