package obj

import "github.com/milk9111/physbox/common"

// Camera maps between world and screen coordinates with a pan offset and a
// clamped zoom. The offset is the world point shown at the screen center, so
// worldToScreen and screenToWorld stay exact inverses of each other.
type Camera struct {
	OffsetX float64
	OffsetY float64

	screenW int
	screenH int
	zoom    float64
	minZoom float64
	maxZoom float64
}

// NewCamera creates a camera centered on the origin at zoom 1.
func NewCamera(screenW, screenH int) *Camera {
	c := &Camera{
		screenW: screenW,
		screenH: screenH,
		zoom:    1.0,
		minZoom: 0.2,
		maxZoom: 3.0,
	}
	c.OffsetX = float64(screenW) / 2.0
	c.OffsetY = float64(screenH) / 2.0
	return c
}

// SetZoomBounds updates the allowed zoom range and re-clamps the current zoom.
func (c *Camera) SetZoomBounds(min, max float64) {
	if min <= 0 || max < min {
		return
	}
	c.minZoom = min
	c.maxZoom = max
	c.zoom = common.Clamp(c.zoom, c.minZoom, c.maxZoom)
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// Zoom returns the current zoom factor.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom sets the zoom, clamped to the configured range. Zero or negative
// values clamp to the minimum so the transform stays invertible.
func (c *Camera) SetZoom(z float64) {
	c.zoom = common.Clamp(z, c.minZoom, c.maxZoom)
}

// WorldToScreen converts a world coordinate to screen space.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.OffsetX)*c.zoom + float64(c.screenW)/2.0
	sy := (wy-c.OffsetY)*c.zoom + float64(c.screenH)/2.0
	return sx, sy
}

// ScreenToWorld converts a screen coordinate to world space.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-float64(c.screenW)/2.0)/c.zoom + c.OffsetX
	wy := (sy-float64(c.screenH)/2.0)/c.zoom + c.OffsetY
	return wx, wy
}

// Pan moves the view by a screen-space delta, so pan speed looks the same at
// every zoom level.
func (c *Camera) Pan(dx, dy float64) {
	c.OffsetX += dx / c.zoom
	c.OffsetY += dy / c.zoom
}

// ZoomBy multiplies the zoom by factor, clamped to the configured range, and
// adjusts the offset so the world point under the screen pivot stays put.
func (c *Camera) ZoomBy(factor float64, pivotX, pivotY float64) {
	if factor <= 0 {
		return
	}
	wx, wy := c.ScreenToWorld(pivotX, pivotY)
	c.zoom = common.Clamp(c.zoom*factor, c.minZoom, c.maxZoom)
	c.OffsetX = wx - (pivotX-float64(c.screenW)/2.0)/c.zoom
	c.OffsetY = wy - (pivotY-float64(c.screenH)/2.0)/c.zoom
}

// Reset recenters the view and restores zoom 1.
func (c *Camera) Reset() {
	c.OffsetX = float64(c.screenW) / 2.0
	c.OffsetY = float64(c.screenH) / 2.0
	c.zoom = common.Clamp(1.0, c.minZoom, c.maxZoom)
}
