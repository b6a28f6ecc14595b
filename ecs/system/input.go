package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
)

type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	cx, cy := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()

	panX, panY := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		panX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		panX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		panY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		panY += 1
	}

	moveX, moveY := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		moveY += 1
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		in.CursorX = float64(cx)
		in.CursorY = float64(cy)
		in.WheelY = wheelY

		in.DragPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		in.DragHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		in.DragReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
		in.SpawnPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

		in.PanX = panX
		in.PanY = panY
		in.MoveX = moveX
		in.MoveY = moveY

		in.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF1)
		in.CopyPressed = inpututil.IsKeyJustPressed(ebiten.KeyC)
	})
}
