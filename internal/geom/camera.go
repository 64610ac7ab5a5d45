package geom

// Camera scale limits.
const (
	MinScale = 0.2
	MaxScale = 4.0
)

// Camera maps world coordinates to screen coordinates with a pixel offset and
// a uniform scale. The transform is
//
//	screen = viewport/2 + offset + world*scale
//
// so a zero camera centers the world origin in the viewport.
type Camera struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// NewCamera returns a camera at the origin with scale 1.
func NewCamera() Camera {
	return Camera{Scale: 1}
}

// ClampScale limits s to [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// ScreenToWorld converts a screen-space point to world space for the given
// viewport size.
func (c Camera) ScreenToWorld(screen Point, viewport Point) Point {
	return Point{
		X: (screen.X - viewport.X/2 - c.X) / c.Scale,
		Y: (screen.Y - viewport.Y/2 - c.Y) / c.Scale,
	}
}

// WorldToScreen converts a world-space point to screen space for the given
// viewport size.
func (c Camera) WorldToScreen(world Point, viewport Point) Point {
	return Point{
		X: viewport.X/2 + c.X + world.X*c.Scale,
		Y: viewport.Y/2 + c.Y + world.Y*c.Scale,
	}
}

// ZoomAround rescales the camera to newScale (clamped) while keeping the
// world point currently under anchor at the same screen position. anchor is
// in screen space.
func (c Camera) ZoomAround(anchor Point, newScale float64, viewport Point) Camera {
	newScale = ClampScale(newScale)
	world := c.ScreenToWorld(anchor, viewport)
	return Camera{
		X:     anchor.X - viewport.X/2 - world.X*newScale,
		Y:     anchor.Y - viewport.Y/2 - world.Y*newScale,
		Scale: newScale,
	}
}

// Pan translates the camera offset by a screen-space delta.
func (c Camera) Pan(delta Point) Camera {
	c.X += delta.X
	c.Y += delta.Y
	return c
}
