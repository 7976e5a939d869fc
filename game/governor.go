package game

import (
	"math"

	"github.com/mo-shahab/go-hockey/puck"
)

// Govern keeps the puck speed inside its band after collisions resolve.
//
// The floor is BaseSpeed, or BaseSpeed*SmashMultiplier while smashing. Above
// the floor the velocity decays geometrically (slower while smashing) but
// never below the floor; below it the puck is rescaled straight up; a stalled
// puck is kicked along +x. Outside a smash the speed is also capped at
// BaseSpeed*MaxMultiplier.
func Govern(p *puck.Puck, t Tuning) {
	target := t.BaseSpeed
	decay := t.SpeedDecay
	if p.Smashing() {
		target = t.BaseSpeed * t.SmashMultiplier
		decay = t.SmashDecay
	}

	speed := p.Speed()
	switch {
	case math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= t.StallSpeed:
		p.Vx = target
		p.Vy = 0
	case speed > target:
		p.Vx *= decay
		p.Vy *= decay
		if p.Speed() < target {
			p.SetSpeed(target)
		}
		if !p.Smashing() {
			if ceiling := t.BaseSpeed * t.MaxMultiplier; p.Speed() > ceiling {
				p.SetSpeed(ceiling)
			}
		}
	case speed < target:
		p.SetSpeed(target)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
