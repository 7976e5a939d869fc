package game

import "github.com/mo-shahab/go-hockey/puck"

// SmashPhase is the state of the smash machine. The remaining time lives on
// the puck, so the phase is derived rather than stored.
type SmashPhase int

const (
	SmashIdle SmashPhase = iota
	SmashActive
)

func (p SmashPhase) String() string {
	if p == SmashActive {
		return "active"
	}
	return "idle"
}

// PhaseOf returns the smash phase of a puck.
func PhaseOf(p puck.Puck) SmashPhase {
	if p.Smashing() {
		return SmashActive
	}
	return SmashIdle
}

// strike applies a paddle hit to the smash machine. A paddle moving faster
// than the threshold enters (or refreshes) the smash and drives the puck to
// the smash speed. A slower hit cancels any running smash and boosts the
// puck within the normal band. Reports whether the hit was a smash.
func (t Tuning) strike(p *puck.Puck, paddleSpeed float64) bool {
	if paddleSpeed > t.SmashThreshold {
		p.SmashTime = t.SmashDuration
		p.SetSpeed(t.BaseSpeed * t.SmashMultiplier)
		return true
	}

	p.SmashTime = 0
	speed := p.Speed()
	target := speed + t.BaseSpeed*t.BoostIncrement
	target = clamp(target, t.BaseSpeed, t.BaseSpeed*t.MaxMultiplier)
	p.SetSpeed(target)
	return false
}

// decaySmash runs the smash timer down by real elapsed seconds.
func decaySmash(p *puck.Puck, dt float64) {
	if p.SmashTime <= 0 {
		p.SmashTime = 0
		return
	}
	p.SmashTime -= dt
	if p.SmashTime < 0 {
		p.SmashTime = 0
	}
}
