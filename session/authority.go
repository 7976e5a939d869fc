package session

import (
	"log"
	"math/rand"
	"time"

	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
	"github.com/mo-shahab/go-hockey/protocol"
)

// Authority runs the physics engine and publishes its state.
type Authority struct {
	side   field.Side
	engine *game.Engine
	rng    *rand.Rand
	now    func() time.Time
}

// NewAuthority creates the host role for side. rng seeds the serve; nil
// uses the global source.
func NewAuthority(side field.Side, t game.Tuning, rng *rand.Rand) *Authority {
	return &Authority{
		side:   side,
		engine: game.New(t),
		rng:    rng,
		now:    time.Now,
	}
}

// Engine exposes the simulation, mainly for tests.
func (a *Authority) Engine() *game.Engine {
	return a.engine
}

func (a *Authority) Side() field.Side {
	return a.side
}

// Begin serves the puck and announces the start to both peers.
func (a *Authority) Begin(out Outbox) {
	a.engine.Serve(a.rng)
	ev := protocol.GameEvent{Kind: protocol.EventStart}
	out.Send(protocol.NewEventMessage(ev.Kind, ev.Side))
	out.Announce(ev)
}

func (a *Authority) MoveOwn(x, y, fraction float64) {
	a.engine.FollowPaddle(a.side, x, y, fraction)
}

func (a *Authority) Frame(dt float64, out Outbox) game.CollisionResult {
	result := a.engine.Step(dt)
	if result.GoalSide != field.SideNone {
		ev := protocol.GameEvent{Kind: protocol.EventGoal, Side: result.GoalSide}
		out.Send(protocol.NewEventMessage(ev.Kind, ev.Side))
		out.Announce(ev)
	}
	out.Send(protocol.NewStateMessage(a.engine.GetState(), a.now()))
	return result
}

// Receive applies the opponent's paddle immediately. The authority's own
// paddle is never taken from the wire, and it ignores state and events.
func (a *Authority) Receive(m protocol.Message, _ Outbox) {
	if m.Type != protocol.KindPaddle {
		return
	}
	if m.Paddle.Side != a.side.Opponent() {
		log.Printf("Ignoring paddle update for %s side from peer", m.Paddle.Side)
		return
	}
	x, y := m.Paddle.Pos()
	a.engine.UpdatePaddle(m.Paddle.Side, x, y)
}

func (a *Authority) View() game.Snapshot {
	return a.engine.GetState()
}
