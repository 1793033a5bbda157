// Package physics provides vector math and bounding-sphere collision tests.
package physics

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Length()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec3) float64 {
	return b.Sub(a).LengthSquared()
}

// PointInSphere checks if a point is within radius of a center position.
func PointInSphere(p, center Vec3, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// SpheresOverlap checks if two bounding spheres overlap.
func SpheresOverlap(c1 Vec3, r1 float64, c2 Vec3, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) < minDist*minDist
}
