package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/paddle"
	"github.com/mo-shahab/go-hockey/puck"
	"github.com/mo-shahab/go-hockey/scores"
)

// Tuning holds the physics constants that only the authority needs. Speeds
// are in field units per tick; SmashDuration is in seconds.
type Tuning struct {
	BaseSpeed      float64 `toml:"base_speed"`
	MaxMultiplier  float64 `toml:"max_multiplier"`
	BoostIncrement float64 `toml:"boost_increment"`
	SpeedDecay     float64 `toml:"speed_decay"`

	SmashMultiplier float64 `toml:"smash_multiplier"`
	SmashThreshold  float64 `toml:"smash_threshold"`
	SmashDuration   float64 `toml:"smash_duration"`
	SmashDecay      float64 `toml:"smash_decay"`

	ServeSpeed float64 `toml:"serve_speed"`
	StallSpeed float64 `toml:"stall_speed"`
	Separation float64 `toml:"separation"`

	// SweptNormal measures the paddle contact normal from the point where
	// the paddle first touched the puck during its sweep, rather than from
	// the closest point of the sweep.
	SweptNormal bool `toml:"swept_normal"`
}

// DefaultTuning returns the constants the game was balanced with.
func DefaultTuning() Tuning {
	return Tuning{
		BaseSpeed:      20,
		MaxMultiplier:  1.6,
		BoostIncrement: 0.4,
		SpeedDecay:     0.985,

		SmashMultiplier: 2.5,
		SmashThreshold:  120,
		SmashDuration:   1.0,
		SmashDecay:      0.995,

		ServeSpeed: 8,
		StallSpeed: 0.1,
		Separation: 1.0,
	}
}

var ErrInvalidTuning = errors.New("invalid tuning")

// Validate checks that the speed band is well formed.
func (t Tuning) Validate() error {
	positive := map[string]float64{
		"base_speed":      t.BaseSpeed,
		"smash_threshold": t.SmashThreshold,
		"serve_speed":     t.ServeSpeed,
	}
	for name, v := range positive {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, name, v)
		}
	}
	if t.MaxMultiplier < 1 {
		return fmt.Errorf("%w: max_multiplier must be at least 1, got %v", ErrInvalidTuning, t.MaxMultiplier)
	}
	if t.SmashMultiplier < 1 {
		return fmt.Errorf("%w: smash_multiplier must be at least 1, got %v", ErrInvalidTuning, t.SmashMultiplier)
	}
	for name, v := range map[string]float64{"speed_decay": t.SpeedDecay, "smash_decay": t.SmashDecay} {
		if !(v > 0 && v <= 1) {
			return fmt.Errorf("%w: %s must be in (0, 1], got %v", ErrInvalidTuning, name, v)
		}
	}
	if t.BoostIncrement < 0 || t.SmashDuration < 0 || t.StallSpeed < 0 || t.Separation < 0 {
		return fmt.Errorf("%w: increments, durations and margins must not be negative", ErrInvalidTuning)
	}
	return nil
}

// CollisionResult reports what happened during one Step. It is read by
// effect collaborators (audio, view) and never written back.
type CollisionResult struct {
	WallHit   bool
	PaddleHit field.Side
	GoalSide  field.Side // the goal the puck entered, not the scorer
	IsSmash   bool
}

// Scorer returns the side credited for GoalSide, or SideNone.
func (r CollisionResult) Scorer() field.Side {
	return r.GoalSide.Opponent()
}

// Snapshot is a value copy of the whole simulation. It holds no pointers,
// so assigning it never aliases engine state.
type Snapshot struct {
	Puck   puck.Puck
	Left   paddle.Paddle
	Right  paddle.Paddle
	Scores scores.Scores
}

// NewSnapshot returns the start-of-match state.
func NewSnapshot() Snapshot {
	return Snapshot{
		Puck:  puck.New(),
		Left:  paddle.New(field.SideLeft),
		Right: paddle.New(field.SideRight),
	}
}

// Paddle returns a copy of a side's paddle.
func (s Snapshot) Paddle(side field.Side) (paddle.Paddle, bool) {
	switch side {
	case field.SideLeft:
		return s.Left, true
	case field.SideRight:
		return s.Right, true
	}
	return paddle.Paddle{}, false
}

// PaddleRef returns a pointer into the snapshot for in-place updates.
func (s *Snapshot) PaddleRef(side field.Side) *paddle.Paddle {
	switch side {
	case field.SideLeft:
		return &s.Left
	case field.SideRight:
		return &s.Right
	}
	return nil
}
