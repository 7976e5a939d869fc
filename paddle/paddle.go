package paddle

import (
	"math"

	"github.com/mo-shahab/go-hockey/field"
)

// Paddle is one player's striker. LastX/LastY hold the position at the end
// of the previous tick; the segment from there to X/Y is what the swept
// collision test checks against the puck.
type Paddle struct {
	Side         field.Side
	X, Y         float64
	LastX, LastY float64
	Radius       float64
}

// New returns a side's paddle at its start position.
func New(side field.Side) Paddle {
	x, y := field.PaddleStart(side)
	return Paddle{
		Side:   side,
		X:      x,
		Y:      y,
		LastX:  x,
		LastY:  y,
		Radius: field.PaddleRadius,
	}
}

// Bounds is the rectangle a paddle centre may occupy.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// BoundsFor returns the legal area of a side's paddle: its own half, kept a
// radius away from the centre line and the top/bottom walls, and a radius
// plus the goal depth away from its back wall.
func BoundsFor(side field.Side) Bounds {
	b := Bounds{
		MinY: field.PaddleRadius,
		MaxY: field.Height - field.PaddleRadius,
	}
	if side == field.SideRight {
		b.MinX = field.ScreenWidth + field.PaddleRadius
		b.MaxX = field.TotalWidth - field.PaddleRadius - field.GoalWidth
	} else {
		b.MinX = field.PaddleRadius + field.GoalWidth
		b.MaxX = field.ScreenWidth - field.PaddleRadius
	}
	return b
}

// Clamp returns (x, y) moved into the side's legal area. NaN coordinates
// fall back to the nearest lower bound so the result is always finite.
func Clamp(side field.Side, x, y float64) (float64, float64) {
	b := BoundsFor(side)
	return clamp(x, b.MinX, b.MaxX), clamp(y, b.MinY, b.MaxY)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// MoveTo sets the paddle position, clamped into its half.
func (p *Paddle) MoveTo(x, y float64) {
	p.X, p.Y = Clamp(p.Side, x, y)
}

// Follow moves the paddle a fraction of the way toward (x, y).
func (p *Paddle) Follow(x, y, fraction float64) {
	p.MoveTo(p.X+(x-p.X)*fraction, p.Y+(y-p.Y)*fraction)
}

// Velocity is the displacement since the last Commit.
func (p Paddle) Velocity() (float64, float64) {
	return p.X - p.LastX, p.Y - p.LastY
}

// Commit records the current position as the start of the next sweep.
func (p *Paddle) Commit() {
	p.LastX = p.X
	p.LastY = p.Y
}
