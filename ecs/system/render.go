package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/obj"
)

const gridSpacing = 100

// RenderSystem draws the world through the camera. It is not scheduled
// with the update systems; the game calls Draw from its render phase.
type RenderSystem struct {
	camera  *obj.Camera
	physics *PhysicsSystem
}

func NewRenderSystem(camera *obj.Camera, physics *PhysicsSystem) *RenderSystem {
	return &RenderSystem{
		camera:  camera,
		physics: physics,
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, debug bool) {
	if r == nil || w == nil || screen == nil || r.camera == nil {
		return
	}

	screen.Fill(color.RGBA{R: 24, G: 26, B: 33, A: 255})
	r.drawGrid(screen)

	zoom := r.camera.Zoom()
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Image == nil {
			return
		}

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		op.GeoM.Scale(sx*s.Scale, sy*s.Scale)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		screenX, screenY := r.camera.WorldToScreen(t.X, t.Y)
		op.GeoM.Translate(screenX, screenY)

		screen.DrawImage(s.Image, op)
	})

	if debug && r.physics != nil && r.physics.Space() != nil {
		cp.DrawSpace(r.physics.Space(), &debugDrawer{screen: screen, camera: r.camera})
	}
}

// drawGrid draws world-aligned grid lines. Lines are skipped when zoom
// packs them closer than 20 screen pixels apart.
func (r *RenderSystem) drawGrid(screen *ebiten.Image) {
	zoom := r.camera.Zoom()
	if float64(gridSpacing)*zoom < 20 {
		return
	}

	bounds := screen.Bounds()
	sw := float64(bounds.Dx())
	sh := float64(bounds.Dy())

	minX, minY := r.camera.ScreenToWorld(0, 0)
	maxX, maxY := r.camera.ScreenToWorld(sw, sh)

	c := color.RGBA{R: 46, G: 50, B: 62, A: 255}
	for x := math.Floor(minX/gridSpacing) * gridSpacing; x <= maxX; x += gridSpacing {
		sx, _ := r.camera.WorldToScreen(x, 0)
		ebitenutil.DrawLine(screen, sx, 0, sx, sh, c)
	}
	for y := math.Floor(minY/gridSpacing) * gridSpacing; y <= maxY; y += gridSpacing {
		_, sy := r.camera.WorldToScreen(0, y)
		ebitenutil.DrawLine(screen, 0, sy, sw, sy, c)
	}
}

// debugDrawer feeds Chipmunk's debug geometry through the camera onto
// the screen.
type debugDrawer struct {
	screen *ebiten.Image
	camera *obj.Camera
}

func (d *debugDrawer) project(v cp.Vector) cp.Vector {
	x, y := d.camera.WorldToScreen(v.X, v.Y)
	return cp.Vector{X: x, Y: y}
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	c := fcolorToRGBA(outline)
	zoom := d.camera.Zoom()
	center := d.project(pos)
	r := radius * zoom

	steps := 20
	prev := cp.Vector{X: center.X + r, Y: center.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := cp.Vector{X: center.X + math.Cos(th)*r, Y: center.Y + math.Sin(th)*r}
		ebitenutil.DrawLine(d.screen, prev.X, prev.Y, cur.X, cur.Y, c)
		prev = cur
	}
	ax := center.X + math.Cos(angle)*r
	ay := center.Y + math.Sin(angle)*r
	ebitenutil.DrawLine(d.screen, center.X, center.Y, ax, ay, c)
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	pa, pb := d.project(a), d.project(b)
	ebitenutil.DrawLine(d.screen, pa.X, pa.Y, pb.X, pb.Y, fcolorToRGBA(fill))
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	pa, pb := d.project(a), d.project(b)
	ebitenutil.DrawLine(d.screen, pa.X, pa.Y, pb.X, pb.Y, fcolorToRGBA(outline))
	if radius > 0 {
		d.DrawCircle(a, 0, radius, outline, fill, data)
		d.DrawCircle(b, 0, radius, outline, fill, data)
	}
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil || count == 0 {
		return
	}
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		a := d.project(verts[i])
		b := d.project(verts[(i+1)%count])
		ebitenutil.DrawLine(d.screen, a.X, a.Y, b.X, b.Y, c)
	}
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	c := fcolorToRGBA(fill)
	p := d.project(pos)
	l := size / 2
	ebitenutil.DrawLine(d.screen, p.X-l, p.Y, p.X+l, p.Y, c)
	ebitenutil.DrawLine(d.screen, p.X, p.Y-l, p.X, p.Y+l, c)
}

func (d *debugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
