package game

import (
	"log"
	"math"
	"math/rand"

	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/paddle"
	"github.com/mo-shahab/go-hockey/puck"
	"github.com/mo-shahab/go-hockey/scores"
)

// Engine owns the puck, both paddles, the goals and the score. Only the
// authoritative peer steps it. It is not safe for concurrent use; the frame
// loop that owns it is its only caller.
type Engine struct {
	tuning   Tuning
	puck     puck.Puck
	paddles  [2]paddle.Paddle
	goals    [2]field.Goal
	scores   scores.Scores
	lastGoal field.Side
}

// New creates an engine in its start-of-match state
func New(t Tuning) *Engine {
	return &Engine{
		tuning: t,
		puck:   puck.New(),
		paddles: [2]paddle.Paddle{
			paddle.New(field.SideLeft),
			paddle.New(field.SideRight),
		},
		goals: field.Goals(),
	}
}

// Step advances the simulation by one tick. The puck moves by its velocity
// once per call regardless of dt, which keeps gameplay speed independent of
// frame jitter; dt (seconds) only runs the smash timer down.
func (e *Engine) Step(dt float64) CollisionResult {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}
	e.sanitize()

	e.puck.Advance()

	var result CollisionResult
	// paddles first, so a puck pinned against a wall is pushed out and then
	// clamped by the wall
	result.PaddleHit = e.resolvePaddles()
	result.WallHit = e.resolveWalls()
	result.GoalSide = e.resolveGoal()
	if result.GoalSide != field.SideNone {
		log.Printf("%s player scored! Score: %d-%d",
			result.Scorer(), e.scores.Left, e.scores.Right)
	}

	decaySmash(&e.puck, dt)
	Govern(&e.puck, e.tuning)

	for i := range e.paddles {
		e.paddles[i].Commit()
	}

	result.IsSmash = e.puck.Smashing()
	return result
}

// sanitize recovers from a non-finite puck, which can only come from a bad
// SetState. A NaN would otherwise poison every later tick.
func (e *Engine) sanitize() {
	p := &e.puck
	if finite(p.X) && finite(p.Y) && finite(p.SmashTime) {
		return
	}
	log.Printf("Puck state not finite (%v, %v), re-centering", p.X, p.Y)
	fresh := puck.New()
	fresh.Vx = e.tuning.BaseSpeed
	e.puck = fresh
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// UpdatePaddle moves a side's paddle, clamped into its half. An unknown side
// is ignored.
func (e *Engine) UpdatePaddle(side field.Side, x, y float64) {
	pd := e.paddle(side)
	if pd == nil {
		return
	}
	pd.MoveTo(x, y)
}

// FollowPaddle moves a side's paddle a fraction of the way toward a target.
func (e *Engine) FollowPaddle(side field.Side, x, y, fraction float64) {
	pd := e.paddle(side)
	if pd == nil {
		return
	}
	pd.Follow(x, y, fraction)
}

// Paddle returns a copy of a side's paddle.
func (e *Engine) Paddle(side field.Side) (paddle.Paddle, bool) {
	pd := e.paddle(side)
	if pd == nil {
		return paddle.Paddle{}, false
	}
	return *pd, true
}

func (e *Engine) paddle(side field.Side) *paddle.Paddle {
	for i := range e.paddles {
		if e.paddles[i].Side == side {
			return &e.paddles[i]
		}
	}
	return nil
}

// Puck returns a copy of the puck.
func (e *Engine) Puck() puck.Puck {
	return e.puck
}

// Scores returns the current score.
func (e *Engine) Scores() scores.Scores {
	return e.scores
}

// LastGoal is the goal most recently entered, or SideNone.
func (e *Engine) LastGoal() field.Side {
	return e.lastGoal
}

// Serve launches the resting puck at the start of a match: a random angle
// within 45 degrees of horizontal toward a random side, at the serve speed.
// The governor lifts it to the base speed on the next Step.
func (e *Engine) Serve(rng *rand.Rand) {
	float := rand.Float64
	if rng != nil {
		float = rng.Float64
	}

	angle := (float() - 0.5) * math.Pi / 2
	direction := 1.0
	if float() <= 0.5 {
		direction = -1
	}

	e.puck.Vx = math.Cos(angle) * e.tuning.ServeSpeed * direction
	e.puck.Vy = math.Sin(angle) * e.tuning.ServeSpeed
}

// GetState returns a deep copy of the simulation.
func (e *Engine) GetState() Snapshot {
	return Snapshot{
		Puck:   e.puck,
		Left:   e.paddles[0],
		Right:  e.paddles[1],
		Scores: e.scores,
	}
}

// SetState overwrites the simulation with a copy of s. Paddle sides are
// fixed by position in the snapshot, so a mislabelled paddle cannot swap
// halves.
func (e *Engine) SetState(s Snapshot) {
	e.puck = s.Puck
	e.paddles[0] = s.Left
	e.paddles[0].Side = field.SideLeft
	e.paddles[1] = s.Right
	e.paddles[1].Side = field.SideRight
	e.scores = s.Scores
}
