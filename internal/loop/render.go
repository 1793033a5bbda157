package loop

import (
	"math"

	"github.com/tmarek/starlane/internal/draw"
	"github.com/tmarek/starlane/internal/object"
	"github.com/tmarek/starlane/internal/physics"
)

// Logical resolution. Objects project into this coordinate space; the
// canvas scales it to whatever terminal it renders on.
const (
	targetWidth  = 120
	targetHeight = 80 // sub-pixels, so 40 terminal rows
)

// corridorMarkerCount is how many depth rings hint at the corridor walls.
const corridorMarkerCount = 6

// renderScene draws one frame of the corridor onto the canvas: wall
// markers first, then hazards far to near, then projectiles and the ship.
func renderScene(canvas *draw.Canvas, cam *draw.Camera, sc *Scene) {
	cam.Follow(sc.Ship().Pos)

	drawCorridor(canvas, cam, sc)
	drawHazards(canvas, cam, sc.Hazards())
	drawProjectiles(canvas, cam, sc.Projectiles())
	drawShip(canvas, cam, sc.Ship())
}

// drawCorridor renders receding corner ticks so the flight box reads as
// a tunnel. Markers scroll with the ship's Z so motion is visible even
// with nothing else on screen.
func drawCorridor(canvas *draw.Canvas, cam *draw.Camera, sc *Scene) {
	corr := sc.Corridor()
	shipZ := sc.Ship().Pos.Z

	spacing := 24.0
	// Snap the nearest marker to a multiple of the spacing for scroll.
	base := math.Floor(shipZ/spacing) * spacing

	for i := 0; i < corridorMarkerCount; i++ {
		z := base - float64(i)*spacing
		for _, corner := range [4]physics.Vec3{
			{X: -corr.HorizontalLimit, Y: -corr.VerticalLimit, Z: z},
			{X: corr.HorizontalLimit, Y: -corr.VerticalLimit, Z: z},
			{X: -corr.HorizontalLimit, Y: corr.VerticalLimit, Z: z},
			{X: corr.HorizontalLimit, Y: corr.VerticalLimit, Z: z},
		} {
			pt, scale, ok := cam.Project(canvas, corner)
			if !ok {
				continue
			}
			tick := math.Max(0.5, scale*1.5)
			h := math.Copysign(tick, -corner.X)
			v := math.Copysign(tick*2, -corner.Y)
			canvas.DrawLine(pt, draw.Point{X: pt.X + h, Y: pt.Y})
			canvas.DrawLine(pt, draw.Point{X: pt.X, Y: pt.Y + v})
		}
	}
}

func drawHazards(canvas *draw.Canvas, cam *draw.Camera, hazards []*object.Hazard) {
	for _, h := range hazards {
		pt, scale, ok := cam.Project(canvas, h.Pos)
		if !ok {
			continue
		}
		radius := h.Size * scale
		canvas.DrawCircle(pt, radius, radius > 2)
	}
}

func drawProjectiles(canvas *draw.Canvas, cam *draw.Camera, projectiles []*object.Projectile) {
	for _, p := range projectiles {
		pt, _, ok := cam.Project(canvas, p.Pos)
		if !ok {
			continue
		}
		canvas.SetFloat(pt.X, pt.Y)
	}
}

// drawShip renders the player as a filled chevron pointing into the
// corridor. During the entry animation it blinks to read as shielded.
func drawShip(canvas *draw.Canvas, cam *draw.Camera, ship *object.Ship) {
	if ship.Entering() && int(ship.Pos.Z*4)%2 == 0 {
		return
	}

	pt, scale, ok := cam.Project(canvas, ship.Pos)
	if !ok {
		return
	}

	half := ship.Radius * scale
	pts := canvas.BorrowPoints(4)
	pts[0] = draw.Point{X: pt.X, Y: pt.Y - half*2}          // nose
	pts[1] = draw.Point{X: pt.X + half*1.6, Y: pt.Y + half} // right wing
	pts[2] = draw.Point{X: pt.X, Y: pt.Y + half*0.4}        // tail notch
	pts[3] = draw.Point{X: pt.X - half*1.6, Y: pt.Y + half} // left wing
	canvas.DrawPolygon(pts, true)
}
