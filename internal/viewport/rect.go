package viewport

// Rect is an axis-aligned rectangle in layout coordinates. Y grows downward
// to match scroll offsets.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Intersects reports whether the rectangles overlap. Touching edges count
// as an intersection, so a tile flush against the inflated viewport border
// is still near.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.Right() && other.X <= r.Right() &&
		r.Y <= other.Bottom() && other.Y <= r.Bottom()
}

// Inflate grows the rectangle by margin on every side.
func (r Rect) Inflate(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}
