package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/prefabs"
	"golang.org/x/image/font/basicfont"
)

// sandboxUI is the left-hand control panel: kind selection, world
// actions, scenarios, and gravity adjustment.
type sandboxUI struct {
	ui   *ebitenui.UI
	game *Game

	gravityX float64
	gravityY float64
}

func newSandboxUI(g *Game) *sandboxUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnActiveImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x77, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	labelColor := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	s := &sandboxUI{game: g}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	panel.AddChild(widget.NewText(widget.TextOpts.Text("Spawn", &face, labelColor)))
	for _, kind := range []string{
		component.KindPlayer,
		component.KindBall,
		component.KindBox,
		component.KindBouncer,
		component.KindCoin,
	} {
		k := kind
		img := btnImg
		if k == g.drag.SelectedKind() {
			img = btnActiveImg
		}
		// Selects the kind for right-click spawning and drops one at the
		// view center right away.
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: img, Pressed: btnActiveImg}),
			widget.ButtonOpts.Text(k, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if err := g.drag.SelectKind(k); err != nil {
					log.Printf("ui: %v", err)
					return
				}
				cx, cy := g.camera.ScreenToWorld(float64(common.ScreenWidth)/2, float64(common.ScreenHeight)/2)
				queueRequest(g.world, component.SpawnRequestComponent.Kind(), &component.SpawnRequest{Kind: k, X: cx, Y: cy})
			}),
		))
	}

	panel.AddChild(widget.NewText(widget.TextOpts.Text("World", &face, labelColor)))
	panel.AddChild(s.actionButton("Reset", btnImg, btnActiveImg, &face, btnTextColor, func() {
		queueRequest(g.world, component.ResetRequestComponent.Kind(), &component.ResetRequest{})
	}))
	panel.AddChild(s.actionButton("Save", btnImg, btnActiveImg, &face, btnTextColor, func() {
		queueRequest(g.world, component.SaveRequestComponent.Kind(), &component.SaveRequest{Path: g.savePath})
	}))
	panel.AddChild(s.actionButton("Load", btnImg, btnActiveImg, &face, btnTextColor, func() {
		queueRequest(g.world, component.LoadRequestComponent.Kind(), &component.LoadRequest{Path: g.savePath})
	}))
	panel.AddChild(s.actionButton("Copy", btnImg, btnActiveImg, &face, btnTextColor, func() {
		queueRequest(g.world, component.CopyRequestComponent.Kind(), &component.CopyRequest{})
	}))

	scenarios := prefabs.ScriptNames()
	if len(scenarios) > 0 {
		panel.AddChild(widget.NewText(widget.TextOpts.Text("Scenarios", &face, labelColor)))
		for _, name := range scenarios {
			n := name
			panel.AddChild(s.actionButton(n, btnImg, btnActiveImg, &face, btnTextColor, func() {
				queueRequest(g.world, component.ScenarioRequestComponent.Kind(), &component.ScenarioRequest{Name: n})
			}))
		}
	}

	gv := g.physics.Gravity()
	s.gravityX = gv.X
	s.gravityY = gv.Y

	panel.AddChild(widget.NewText(widget.TextOpts.Text("Gravity X", &face, labelColor)))
	panel.AddChild(s.gravitySlider(-1000, 1000, int(gv.X), func(v float64) {
		s.gravityX = v
		queueRequest(g.world, component.GravityRequestComponent.Kind(), &component.GravityRequest{X: s.gravityX, Y: s.gravityY})
	}))
	panel.AddChild(widget.NewText(widget.TextOpts.Text("Gravity Y", &face, labelColor)))
	panel.AddChild(s.gravitySlider(-1000, 2000, int(gv.Y), func(v float64) {
		s.gravityY = v
		queueRequest(g.world, component.GravityRequestComponent.Kind(), &component.GravityRequest{X: s.gravityX, Y: s.gravityY})
	}))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	s.ui = &ebitenui.UI{Container: root}
	return s
}

func (s *sandboxUI) actionButton(label string, idle, pressed *imageui.NineSlice, face *ebtext.Face, textColor *widget.ButtonTextColor, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Pressed: pressed}),
		widget.ButtonOpts.Text(label, face, textColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (s *sandboxUI) gravitySlider(min, max, current int, onChange func(float64)) *widget.Slider {
	trackImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255})
	handleImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 255})

	slider := widget.NewSlider(
		widget.SliderOpts.Direction(widget.DirectionHorizontal),
		widget.SliderOpts.MinMax(min, max),
		widget.SliderOpts.Images(
			&widget.SliderTrackImage{Idle: trackImg, Hover: trackImg},
			&widget.ButtonImage{Idle: handleImg, Pressed: handleImg},
		),
		widget.SliderOpts.FixedHandleSize(8),
		widget.SliderOpts.PageSizeFunc(func() int { return 50 }),
		widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
			onChange(float64(args.Current))
		}),
		widget.SliderOpts.WidgetOpts(widget.WidgetOpts.MinSize(140, 14)),
	)
	slider.Current = current
	return slider
}

// queueRequest attaches a one-shot request component to a fresh entity
// for the owning system to consume next update.
func queueRequest[T any](w *ecs.World, k component.ComponentKind[T], v *T) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, k, v); err != nil {
		panic(fmt.Sprintf("ui: queue request: %v", err))
	}
}

func (s *sandboxUI) Update() {
	if s == nil || s.ui == nil {
		return
	}
	s.ui.Update()
}

func (s *sandboxUI) Draw(screen *ebiten.Image) {
	if s == nil || s.ui == nil {
		return
	}
	s.ui.Draw(screen)
}

