// SPDX-License-Identifier: MPL-2.0

package event

const (
	// ButtonPrimary is the main (usually left) pointer button.
	ButtonPrimary Button = iota
	// ButtonAuxiliary is the middle button or wheel press.
	ButtonAuxiliary
	// ButtonSecondary is the context-menu (usually right) button.
	ButtonSecondary
)

type (
	// Point is a position in host coordinates.
	Point struct {
		X, Y float64
	}

	// Rect is an axis-aligned rectangle in host coordinates.
	Rect struct {
		X, Y, W, H float64
	}

	// Button identifies a pointer button.
	Button int

	// PointerEvent is a pointer press, move or release at Pos.
	PointerEvent struct {
		Pos    Point
		Button Button
	}
)

// At builds a primary-button PointerEvent at (x, y).
func At(x, y float64) PointerEvent {
	return PointerEvent{Pos: Point{X: x, Y: y}}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ContainsAny reports whether p lies inside any of rects.
func ContainsAny(rects []Rect, p Point) bool {
	for _, r := range rects {
		if r.Contains(p) {
			return true
		}
	}
	return false
}
