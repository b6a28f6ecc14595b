package component

// Input is the per-frame pointer and key state, written by the input system
// and read by everything downstream. Cursor coordinates are screen space.
type Input struct {
	CursorX float64
	CursorY float64
	WheelY  float64

	DragPressed  bool
	DragHeld     bool
	DragReleased bool
	SpawnPressed bool

	PanX  float64
	PanY  float64
	MoveX float64
	MoveY float64

	DebugPressed bool
	CopyPressed  bool
}

var InputComponent = NewComponent[Input]()
