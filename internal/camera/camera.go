// Package camera provides a 2D follow camera over a bounded world.
package camera

// Camera controls the viewport into the world.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// World dimensions; the view never leaves them when it fits inside
	WorldW, WorldH float64
}

// New creates a camera centered on the world with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	return &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) could be on screen.
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return abs(wx-c.X) <= halfW && abs(wy-c.Y) <= halfH
}

// Resize updates the viewport and keeps the view inside the world.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.Clamp()
}

// Follow moves the camera toward a target. While the target sits inside the
// deadzone (a fraction of the viewport, centered) the camera holds still;
// otherwise it closes lerp of the gap to the position that puts the target
// back on the deadzone edge.
func (c *Camera) Follow(tx, ty, lerp, deadzone float64) {
	lerp = clamp(lerp, 0, 1)
	halfW := c.ViewportW * deadzone / (2 * c.Zoom)
	halfH := c.ViewportH * deadzone / (2 * c.Zoom)

	c.X += lerp * outside(tx-c.X, halfW)
	c.Y += lerp * outside(ty-c.Y, halfH)
	c.Clamp()
}

// CenterOn snaps the camera to a point.
func (c *Camera) CenterOn(wx, wy float64) {
	c.X, c.Y = wx, wy
	c.Clamp()
}

// Clamp keeps the visible area inside the world. A world smaller than the
// view is centered.
func (c *Camera) Clamp() {
	c.X = clampAxis(c.X, c.ViewportW/(2*c.Zoom), c.WorldW)
	c.Y = clampAxis(c.Y, c.ViewportH/(2*c.Zoom), c.WorldH)
}

// VisibleWorldBounds returns (minX, minY, maxX, maxY) in world coordinates.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func clampAxis(x, half, size float64) float64 {
	lo, hi := half, size-half
	if lo > hi {
		return size / 2
	}
	return clamp(x, lo, hi)
}

// outside returns how far d lies beyond [-half, half], signed.
func outside(d, half float64) float64 {
	switch {
	case d > half:
		return d - half
	case d < -half:
		return d + half
	}
	return 0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
