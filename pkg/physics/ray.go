// pkg/physics/ray.go
package physics

import "math"

// epsilon below which a direction component or cross product is treated
// as parallel to the line being tested.
const epsilon = 1e-6

// Axis selects which kind of axis-aligned boundary a ray is cast against.
type Axis int

const (
	// Vertical is a boundary line of constant X.
	Vertical Axis = iota
	// Horizontal is a boundary line of constant Y.
	Horizontal
)

// Intersection is the result of a ray cast. T is the distance along the
// ray in units of the direction length. Point and T are only meaningful
// when Intersects is true.
type Intersection struct {
	Intersects bool
	Point      Vector2D
	T          float64
}

// RayLineIntersection casts a ray from origin along dir against the
// segment from lineStart to lineEnd. The ray extends forward only
// (t >= 0) and the hit must lie within the segment.
func RayLineIntersection(origin, dir, lineStart, lineEnd Vector2D) Intersection {
	segment := lineEnd.Sub(lineStart)
	denom := dir.Cross(segment)
	if math.Abs(denom) < epsilon {
		return Intersection{}
	}

	toStart := lineStart.Sub(origin)
	t := toStart.Cross(segment) / denom
	u := toStart.Cross(dir) / denom
	if t < 0 || u < 0 || u > 1 {
		return Intersection{}
	}

	return Intersection{
		Intersects: true,
		Point:      origin.Add(dir.Scale(t)),
		T:          t,
	}
}

// RayBoundaryIntersection casts a ray against an infinite axis-aligned
// boundary: the line x = value for Vertical, y = value for Horizontal.
// Rays parallel to the boundary or pointing away from it do not
// intersect.
func RayBoundaryIntersection(origin, dir Vector2D, value float64, axis Axis) Intersection {
	component := dir.X
	distance := value - origin.X
	if axis == Horizontal {
		component = dir.Y
		distance = value - origin.Y
	}

	if math.Abs(component) < epsilon {
		return Intersection{}
	}

	t := distance / component
	if t < 0 {
		return Intersection{}
	}

	return Intersection{
		Intersects: true,
		Point:      origin.Add(dir.Scale(t)),
		T:          t,
	}
}
