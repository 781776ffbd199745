package shapes

import (
	"math"
	"testing"
)

func TestRectangle_Area(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		want          float64
	}{
		{"regular", 10, 20, 200},
		{"square", 5, 5, 25},
		{"degenerate", 0, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRectangle(tt.width, tt.height)
			if r.Width != tt.width || r.Height != tt.height {
				t.Fatalf("NewRectangle() = %+v", r)
			}
			if got := r.Area(); got != tt.want {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCircle(t *testing.T) {
	c := Circle{Radius: 2}
	if got := c.Area(); math.Abs(got-4*math.Pi) > 1e-9 {
		t.Errorf("Area() = %v, want %v", got, 4*math.Pi)
	}
	if got := c.Circumference(); math.Abs(got-4*math.Pi) > 1e-9 {
		t.Errorf("Circumference() = %v, want %v", got, 4*math.Pi)
	}
}

func TestShapeInterface(t *testing.T) {
	shapes := []Shape{Rectangle{Width: 2, Height: 3}, Circle{Radius: 1}}
	var total float64
	for _, s := range shapes {
		total += s.Area()
	}
	if math.Abs(total-(6+math.Pi)) > 1e-9 {
		t.Errorf("total area = %v", total)
	}
}
