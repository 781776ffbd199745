// Package shapes holds small geometric values used with the jsonx helpers.
package shapes

import "math"

// Shape is anything with an area.
type Shape interface {
	Area() float64
}

// Rectangle is an axis aligned rectangle.
type Rectangle struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewRectangle(width, height float64) *Rectangle {
	return &Rectangle{Width: width, Height: height}
}

// Area returns Width * Height.
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

// Circle is defined by its radius only.
type Circle struct {
	Radius float64 `json:"radius"`
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) Circumference() float64 {
	return 2 * math.Pi * c.Radius
}
