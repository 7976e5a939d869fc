package game

import (
	"math"

	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/paddle"
)

const epsilon = 1e-9

// resolveWalls keeps the puck inside the rink. Instead of reflecting the
// whole vector it clamps the centre to the wall and forces the offending
// velocity component to point back into the field, so a puck can never
// tunnel through the same wall on consecutive ticks. The side walls have a
// gap the height of the goal mouth.
func (e *Engine) resolveWalls() bool {
	p := &e.puck
	r := p.Radius
	hit := false

	if p.Y-r < 0 {
		p.Y = r
		p.Vy = math.Abs(p.Vy)
		hit = true
	}
	if p.Y+r > field.Height {
		p.Y = field.Height - r
		p.Vy = -math.Abs(p.Vy)
		hit = true
	}

	left, right := e.goals[0], e.goals[1]
	if p.X-r < left.X+left.Width && !left.Mouth(p.Y) {
		p.X = left.X + left.Width + r
		p.Vx = math.Abs(p.Vx)
		hit = true
	}
	if p.X+r > right.X && !right.Mouth(p.Y) {
		p.X = right.X - r
		p.Vx = -math.Abs(p.Vx)
		hit = true
	}

	return hit
}

// resolvePaddles runs the swept test for each paddle in side order. If both
// resolve in the same tick the later one is reported.
func (e *Engine) resolvePaddles() field.Side {
	hit := field.SideNone
	for i := range e.paddles {
		if e.resolvePaddle(&e.paddles[i]) {
			hit = e.paddles[i].Side
		}
	}
	return hit
}

// resolvePaddle tests the puck against the segment the paddle travelled
// this tick, so a fast paddle cannot pass through the puck between samples.
func (e *Engine) resolvePaddle(pd *paddle.Paddle) bool {
	p := &e.puck
	minDist := p.Radius + pd.Radius

	cx, cy, t := ClosestPointOnSegment(pd.LastX, pd.LastY, pd.X, pd.Y, p.X, p.Y)
	closest := math.Hypot(p.X-cx, p.Y-cy)
	if closest >= minDist {
		return false
	}

	dx := p.X - cx
	dy := p.Y - cy
	if e.tuning.SweptNormal {
		contactX, contactY := firstContact(pd.LastX, pd.LastY, pd.X, pd.Y, p.X, p.Y, minDist, t)
		dx, dy = p.X-contactX, p.Y-contactY
	}
	nx, ny := 1.0, 0.0
	if dist := math.Hypot(dx, dy); dist > epsilon {
		nx, ny = dx/dist, dy/dist
	}
	pvx, pvy := pd.Velocity()

	// push the puck clear of the swept paddle
	overlap := minDist - closest + e.tuning.Separation
	p.X += nx * overlap
	p.Y += ny * overlap

	// reflect the velocity relative to the paddle, then add the paddle's
	// velocity back so its momentum carries into the puck
	rvx := p.Vx - pvx
	rvy := p.Vy - pvy
	dot := rvx*nx + rvy*ny
	if dot >= 0 {
		return false
	}
	rvx -= 2 * dot * nx
	rvy -= 2 * dot * ny
	p.Vx = rvx + pvx
	p.Vy = rvy + pvy

	e.tuning.strike(p, math.Hypot(pvx, pvy))
	return true
}

// resolveGoal scores a puck that left the field through a goal mouth and
// serves it again from the centre of the conceding half, moving toward the
// scorer. Returns the goal that was entered.
func (e *Engine) resolveGoal() field.Side {
	p := &e.puck
	var entered field.Side
	switch left, right := e.goals[0], e.goals[1]; {
	case p.X < left.X && left.Mouth(p.Y):
		entered = field.SideLeft
	case p.X > right.X+right.Width && right.Mouth(p.Y):
		entered = field.SideRight
	default:
		return field.SideNone
	}

	e.scores.Award(entered.Opponent())
	e.lastGoal = entered
	e.resetPuck(entered)
	return entered
}

func (e *Engine) resetPuck(conceded field.Side) {
	x, y := field.ServePoint(conceded)
	vx := e.tuning.BaseSpeed
	if conceded == field.SideRight {
		vx = -vx
	}
	e.puck.Reset(x, y, vx)
}

// ClosestPointOnSegment projects (px, py) onto the segment a-b and returns
// the nearest point and its parameter t in [0, 1]. A zero-length segment
// yields the start point.
func ClosestPointOnSegment(ax, ay, bx, by, px, py float64) (float64, float64, float64) {
	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	if lenSq < epsilon {
		return ax, ay, 0
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	t = clamp(t, 0, 1)
	return ax + t*dx, ay + t*dy, t
}

// firstContact returns the earliest point on the segment a-b at distance
// minDist from (px, py), searching no further than tMax. If the segment
// already starts in contact the start point is returned.
func firstContact(ax, ay, bx, by, px, py, minDist, tMax float64) (float64, float64) {
	dx := bx - ax
	dy := by - ay
	fx := ax - px
	fy := ay - py

	a := dx*dx + dy*dy
	c := fx*fx + fy*fy - minDist*minDist
	if c <= 0 || a < epsilon {
		if c <= 0 {
			return ax, ay
		}
		return ax + tMax*dx, ay + tMax*dy
	}

	b := 2 * (fx*dx + fy*dy)
	disc := b*b - 4*a*c
	if disc < 0 {
		return ax + tMax*dx, ay + tMax*dy
	}

	t := (-b - math.Sqrt(disc)) / (2 * a)
	t = clamp(t, 0, tMax)
	return ax + t*dx, ay + t*dy
}
