package puck

import (
	"math"

	"github.com/mo-shahab/go-hockey/field"
)

// Puck is the single moving body of the simulation. SmashTime is the
// remaining smash duration in seconds; zero means the smash is off.
type Puck struct {
	X, Y      float64
	Vx, Vy    float64
	Radius    float64
	SmashTime float64
}

// New returns a puck resting at the centre line.
func New() Puck {
	return Puck{
		X:      field.TotalWidth / 2,
		Y:      field.Height / 2,
		Radius: field.PuckRadius,
	}
}

// Speed is the magnitude of the velocity.
func (p Puck) Speed() float64 {
	return math.Hypot(p.Vx, p.Vy)
}

// Advance moves the puck by one tick of velocity.
func (p *Puck) Advance() {
	p.X += p.Vx
	p.Y += p.Vy
}

// SetSpeed rescales the velocity to the given magnitude, keeping its
// direction. A zero velocity has no direction and is left alone.
func (p *Puck) SetSpeed(speed float64) {
	current := p.Speed()
	if current == 0 {
		return
	}
	ratio := speed / current
	p.Vx *= ratio
	p.Vy *= ratio
}

func (p Puck) Smashing() bool {
	return p.SmashTime > 0
}

// Reset places the puck at (x, y) moving horizontally at vx and clears the
// smash.
func (p *Puck) Reset(x, y, vx float64) {
	p.X = x
	p.Y = y
	p.Vx = vx
	p.Vy = 0
	p.SmashTime = 0
}
