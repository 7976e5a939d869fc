package session

import (
	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
	"github.com/mo-shahab/go-hockey/protocol"
)

// DefaultInterpolation is the fraction of the remaining distance the
// follower's shadow puck and opponent paddle cover each frame.
const DefaultInterpolation = 0.3

// Follower keeps a shadow copy of the match and eases it toward the
// authority's snapshots. It never runs physics.
type Follower struct {
	side  field.Side
	alpha float64
	view  game.Snapshot

	hasPuck        bool
	puckX, puckY   float64
	hasOpponent    bool
	opponentX      float64
	opponentY      float64
	pendingGoal    field.Side
	lastSnapshotAt int64
}

// NewFollower creates the guest role for side. alpha outside (0, 1] falls
// back to DefaultInterpolation.
func NewFollower(side field.Side, alpha float64) *Follower {
	if !(alpha > 0 && alpha <= 1) {
		alpha = DefaultInterpolation
	}
	return &Follower{
		side:  side,
		alpha: alpha,
		view:  game.NewSnapshot(),
	}
}

func (f *Follower) Side() field.Side {
	return f.side
}

// Begin does nothing; the follower waits for the authority's start event.
func (f *Follower) Begin(Outbox) {}

func (f *Follower) MoveOwn(x, y, fraction float64) {
	f.view.PaddleRef(f.side).Follow(x, y, fraction)
}

func (f *Follower) Frame(_ float64, _ Outbox) game.CollisionResult {
	if f.hasPuck {
		p := &f.view.Puck
		p.X += (f.puckX - p.X) * f.alpha
		p.Y += (f.puckY - p.Y) * f.alpha
	}
	if f.hasOpponent {
		f.view.PaddleRef(f.side.Opponent()).Follow(f.opponentX, f.opponentY, f.alpha)
	}
	f.view.Left.Commit()
	f.view.Right.Commit()

	result := game.CollisionResult{GoalSide: f.pendingGoal}
	f.pendingGoal = field.SideNone
	return result
}

// Receive takes targets from state snapshots and opponent paddle updates.
// Scores and puck velocity are copied straight away; only positions are
// eased. Snapshots older than the newest one seen are dropped.
func (f *Follower) Receive(m protocol.Message, out Outbox) {
	switch m.Type {
	case protocol.KindState:
		if m.State.Millis() < f.lastSnapshotAt {
			return
		}
		f.lastSnapshotAt = m.State.Millis()

		s := m.State.Snapshot()
		f.puckX, f.puckY = s.Puck.X, s.Puck.Y
		f.hasPuck = true
		f.view.Puck.Vx, f.view.Puck.Vy = s.Puck.Vx, s.Puck.Vy
		f.view.Puck.SmashTime = s.Puck.SmashTime
		f.view.Scores = s.Scores

		opp, _ := s.Paddle(f.side.Opponent())
		f.opponentX, f.opponentY = opp.X, opp.Y
		f.hasOpponent = true

	case protocol.KindPaddle:
		if m.Paddle.Side != f.side.Opponent() {
			return
		}
		f.opponentX, f.opponentY = m.Paddle.Pos()
		f.hasOpponent = true

	case protocol.KindEvent:
		if m.Event.Kind == protocol.EventGoal {
			f.pendingGoal = m.Event.Side
		}
		out.Announce(*m.Event)
	}
}

func (f *Follower) View() game.Snapshot {
	return f.view
}
