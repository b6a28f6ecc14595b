package component

// Score is the session score singleton.
type Score struct {
	Points int
}

var ScoreComponent = NewComponent[Score]()
