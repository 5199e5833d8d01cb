package layout

// Area is a rectangle in screen pixel coordinates.
type Area struct {
	X      uint16
	Y      uint16
	Width  uint16
	Height uint16
}

// Contains reports whether the point lies strictly inside the area.
func (a Area) Contains(x, y uint16) bool {
	return x > a.X && x < a.X+a.Width && y > a.Y && y < a.Y+a.Height
}

// Strut is the screen-edge space a dock window reserves.
type Strut struct {
	Left   uint32
	Right  uint32
	Top    uint32
	Bottom uint32
}
