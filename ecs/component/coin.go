package component

// Coin is a collectible worth Value points when the player touches it.
type Coin struct {
	Value int
}

var CoinComponent = NewComponent[Coin]()
