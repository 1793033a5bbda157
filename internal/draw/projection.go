package draw

import "github.com/tmarek/starlane/internal/physics"

// Camera projects corridor coordinates onto the canvas. It trails the
// ship on the travel axis and looks down negative Z, so hazards grow as
// they close in.
type Camera struct {
	// Pos is the camera position in world space. Updated each frame to
	// follow the ship.
	Pos physics.Vec3
	// Focal controls the field of view; larger values zoom in.
	Focal float64
	// Trail is how far behind the ship the camera sits on the Z axis.
	Trail float64
}

// NewCamera returns a camera with the stock focal length and trail.
func NewCamera() *Camera {
	return &Camera{Focal: 26, Trail: 18}
}

// Follow re-seats the camera behind the ship. Only the Z axis tracks;
// X and Y stay centered so the corridor walls read as fixed.
func (c *Camera) Follow(shipPos physics.Vec3) {
	c.Pos = physics.Vec3{Z: shipPos.Z + c.Trail}
}

// Project maps a world point to logical canvas coordinates plus an
// apparent scale factor. ok is false when the point sits behind the
// camera plane and must not be drawn.
func (c *Camera) Project(canvas *Canvas, p physics.Vec3) (pt Point, scale float64, ok bool) {
	depth := c.Pos.Z - p.Z
	if depth <= 1 {
		return Point{}, 0, false
	}

	scale = c.Focal / depth
	cx := canvas.LogicalWidth() / 2
	cy := canvas.LogicalHeight() / 2

	// Y is inverted: world up is positive, terminal rows grow downward.
	// The 2x factor matches the sub-pixel vertical resolution.
	pt = Point{
		X: cx + (p.X-c.Pos.X)*scale,
		Y: cy - (p.Y-c.Pos.Y)*scale*2,
	}
	return pt, scale, true
}
