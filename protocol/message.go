// Package protocol defines the messages the two peers exchange and how they
// are encoded. There are three kinds: each peer sends its own paddle every
// frame, the authority sends a full state snapshot every frame, and the
// authority announces discrete game events.
package protocol

import (
	"time"

	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
	"github.com/mo-shahab/go-hockey/paddle"
	"github.com/mo-shahab/go-hockey/puck"
	"github.com/mo-shahab/go-hockey/scores"
)

// Kind discriminates the payload of a Message.
type Kind string

const (
	KindPaddle Kind = "paddle"
	KindState  Kind = "state"
	KindEvent  Kind = "event"
)

// Kinds lists every message kind.
var Kinds = []Kind{KindPaddle, KindState, KindEvent}

// Message is the envelope for every frame on the wire. Exactly one payload
// matches Type. Seq is a per-kind sender sequence number; zero means
// unsequenced.
type Message struct {
	Type   Kind           `json:"type" msgpack:"type"`
	Seq    uint32         `json:"seq,omitempty" msgpack:"seq,omitempty"`
	Paddle *PaddleUpdate  `json:"paddle,omitempty" msgpack:"paddle,omitempty"`
	State  *StateSnapshot `json:"state,omitempty" msgpack:"state,omitempty"`
	Event  *GameEvent     `json:"event,omitempty" msgpack:"event,omitempty"`
}

// PaddleUpdate carries the sender's own paddle position. Required numbers
// are pointers throughout the payloads so that a field missing from the
// frame decodes to nil and fails Validate instead of reading as zero.
type PaddleUpdate struct {
	Side field.Side `json:"side" msgpack:"side"`
	X    *float64   `json:"x" msgpack:"x"`
	Y    *float64   `json:"y" msgpack:"y"`
}

// Pos returns the position of a validated update.
func (p *PaddleUpdate) Pos() (float64, float64) {
	return *p.X, *p.Y
}

type PuckState struct {
	X         *float64 `json:"x" msgpack:"x"`
	Y         *float64 `json:"y" msgpack:"y"`
	Vx        *float64 `json:"vx" msgpack:"vx"`
	Vy        *float64 `json:"vy" msgpack:"vy"`
	SmashTime float64  `json:"smashTime,omitempty" msgpack:"smashTime,omitempty"`
}

type PaddleState struct {
	X *float64 `json:"x" msgpack:"x"`
	Y *float64 `json:"y" msgpack:"y"`
}

type PaddleStates struct {
	Left  *PaddleState `json:"left" msgpack:"left"`
	Right *PaddleState `json:"right" msgpack:"right"`
}

type ScoreState struct {
	Left  *int `json:"left" msgpack:"left"`
	Right *int `json:"right" msgpack:"right"`
}

// StateSnapshot is the authority's full view of the simulation.
type StateSnapshot struct {
	Puck      *PuckState    `json:"puck" msgpack:"puck"`
	Paddles   *PaddleStates `json:"paddles" msgpack:"paddles"`
	Scores    *ScoreState   `json:"scores" msgpack:"scores"`
	Timestamp *int64        `json:"timestamp" msgpack:"timestamp"` // unix ms
}

// EventKind names a discrete game event.
type EventKind string

const (
	EventStart EventKind = "start"
	EventGoal  EventKind = "goal"
)

// GameEvent announces a match start or a goal. For goals, Side is the goal
// the puck entered.
type GameEvent struct {
	Kind EventKind  `json:"event" msgpack:"event"`
	Side field.Side `json:"side,omitempty" msgpack:"side,omitempty"`
}

// NewPaddleMessage wraps a paddle position.
func NewPaddleMessage(side field.Side, x, y float64) Message {
	return Message{
		Type:   KindPaddle,
		Paddle: &PaddleUpdate{Side: side, X: &x, Y: &y},
	}
}

// NewStateMessage wraps a copy of an engine snapshot stamped with now.
func NewStateMessage(s game.Snapshot, now time.Time) Message {
	return Message{
		Type: KindState,
		State: &StateSnapshot{
			Puck: &PuckState{
				X:         ref(s.Puck.X),
				Y:         ref(s.Puck.Y),
				Vx:        ref(s.Puck.Vx),
				Vy:        ref(s.Puck.Vy),
				SmashTime: s.Puck.SmashTime,
			},
			Paddles: &PaddleStates{
				Left:  &PaddleState{X: ref(s.Left.X), Y: ref(s.Left.Y)},
				Right: &PaddleState{X: ref(s.Right.X), Y: ref(s.Right.Y)},
			},
			Scores:    &ScoreState{Left: ref(s.Scores.Left), Right: ref(s.Scores.Right)},
			Timestamp: ref(now.UnixMilli()),
		},
	}
}

// NewEventMessage wraps a game event.
func NewEventMessage(kind EventKind, side field.Side) Message {
	return Message{
		Type:  KindEvent,
		Event: &GameEvent{Kind: kind, Side: side},
	}
}

// Snapshot converts a validated wire snapshot back into engine types.
// Positions are clamped into the field on the way in; the wire is trusted
// for shape (see Validate) but not for range.
func (s *StateSnapshot) Snapshot() game.Snapshot {
	p := puck.New()
	p.X = clampRange(*s.Puck.X, 0, field.TotalWidth)
	p.Y = clampRange(*s.Puck.Y, p.Radius, field.Height-p.Radius)
	p.Vx = *s.Puck.Vx
	p.Vy = *s.Puck.Vy
	p.SmashTime = max(s.Puck.SmashTime, 0)

	out := game.Snapshot{
		Puck:  p,
		Left:  paddleFrom(field.SideLeft, s.Paddles.Left),
		Right: paddleFrom(field.SideRight, s.Paddles.Right),
		Scores: scores.Scores{
			Left:  *s.Scores.Left,
			Right: *s.Scores.Right,
		},
	}
	return out
}

// Millis returns the snapshot's send time in unix milliseconds.
func (s *StateSnapshot) Millis() int64 {
	return *s.Timestamp
}

// Time returns the snapshot's send time.
func (s *StateSnapshot) Time() time.Time {
	return time.UnixMilli(s.Millis())
}

func paddleFrom(side field.Side, ps *PaddleState) paddle.Paddle {
	pd := paddle.New(side)
	pd.MoveTo(*ps.X, *ps.Y)
	pd.Commit()
	return pd
}

func ref[T any](v T) *T {
	return &v
}

func clampRange(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
