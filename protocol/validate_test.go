package protocol

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
)

func TestValidate(t *testing.T) {
	good := NewStateMessage(game.NewSnapshot(), time.Now())

	noPuck := NewStateMessage(game.NewSnapshot(), time.Now())
	noPuck.State.Puck = nil

	noRight := NewStateMessage(game.NewSnapshot(), time.Now())
	noRight.State.Paddles.Right = nil

	nanPuck := NewStateMessage(game.NewSnapshot(), time.Now())
	*nanPuck.State.Puck.Vx = math.NaN()

	negScore := NewStateMessage(game.NewSnapshot(), time.Now())
	*negScore.State.Scores.Right = -1

	noVelocity := NewStateMessage(game.NewSnapshot(), time.Now())
	noVelocity.State.Puck.Vy = nil

	noLeftX := NewStateMessage(game.NewSnapshot(), time.Now())
	noLeftX.State.Paddles.Left.X = nil

	noScore := NewStateMessage(game.NewSnapshot(), time.Now())
	noScore.State.Scores.Left = nil

	noTimestamp := NewStateMessage(game.NewSnapshot(), time.Now())
	noTimestamp.State.Timestamp = nil

	extraPayload := NewPaddleMessage(field.SideLeft, 10, 20)
	extraPayload.State = good.State

	cases := []struct {
		name string
		msg  Message
		want error
	}{
		{"paddle", NewPaddleMessage(field.SideLeft, 10, 20), nil},
		{"state", good, nil},
		{"start", NewEventMessage(EventStart, field.SideNone), nil},
		{"goal", NewEventMessage(EventGoal, field.SideRight), nil},
		{"unknown type", Message{Type: "chat"}, ErrUnknownType},
		{"empty type", Message{}, ErrUnknownType},
		{"missing paddle payload", Message{Type: KindPaddle}, ErrMalformed},
		{"mismatched payload", Message{Type: KindState, Paddle: &PaddleUpdate{Side: field.SideLeft}}, ErrMalformed},
		{"bad side", NewPaddleMessage("up", 10, 20), ErrMalformed},
		{"no side", NewPaddleMessage(field.SideNone, 10, 20), ErrMalformed},
		{"nan paddle", NewPaddleMessage(field.SideLeft, math.NaN(), 20), ErrMalformed},
		{"missing puck", noPuck, ErrMalformed},
		{"missing paddle", noRight, ErrMalformed},
		{"nan puck", nanPuck, ErrMalformed},
		{"negative score", negScore, ErrMalformed},
		{"paddle without position", Message{Type: KindPaddle, Paddle: &PaddleUpdate{Side: field.SideRight}}, ErrMalformed},
		{"puck without velocity", noVelocity, ErrMalformed},
		{"paddle state without x", noLeftX, ErrMalformed},
		{"missing score", noScore, ErrMalformed},
		{"missing timestamp", noTimestamp, ErrMalformed},
		{"second payload", extraPayload, ErrMalformed},
		{"goal without side", NewEventMessage(EventGoal, field.SideNone), ErrMalformed},
		{"unknown event", NewEventMessage("pause", field.SideNone), ErrMalformed},
	}
	for _, tc := range cases {
		err := tc.msg.Validate()
		if tc.want == nil && err != nil {
			t.Errorf("%s: expected valid, got %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestSnapshotClampsIntoField(t *testing.T) {
	s := game.NewSnapshot()
	m := NewStateMessage(s, time.Now())
	*m.State.Puck.X = -500
	*m.State.Puck.Y = 5000
	m.State.Puck.SmashTime = -3
	*m.State.Paddles.Left.X = 3000 // across the centre line
	*m.State.Paddles.Right.Y = -10

	got := m.State.Snapshot()
	if got.Puck.X != 0 {
		t.Errorf("expected puck x clamped to 0, got %v", got.Puck.X)
	}
	if got.Puck.Y != field.Height-field.PuckRadius {
		t.Errorf("expected puck y clamped to %v, got %v", field.Height-field.PuckRadius, got.Puck.Y)
	}
	if got.Puck.SmashTime != 0 {
		t.Errorf("expected negative smash time dropped, got %v", got.Puck.SmashTime)
	}
	if got.Left.X > field.ScreenWidth-field.PaddleRadius {
		t.Errorf("expected left paddle kept on its half, got x=%v", got.Left.X)
	}
	if got.Right.Y != field.PaddleRadius {
		t.Errorf("expected right paddle y clamped to %v, got %v", float64(field.PaddleRadius), got.Right.Y)
	}
	if got.Left.Side != field.SideLeft || got.Right.Side != field.SideRight {
		t.Errorf("expected paddle sides set, got %s/%s", got.Left.Side, got.Right.Side)
	}
}

func TestSnapshotPreservesState(t *testing.T) {
	s := game.NewSnapshot()
	s.Puck.X, s.Puck.Y, s.Puck.Vx, s.Puck.Vy = 1000, 400, 12, -9
	s.Left.MoveTo(300, 300)
	s.Left.Commit()
	s.Right.MoveTo(3500, 800)
	s.Right.Commit()
	s.Scores.Left = 2

	now := time.UnixMilli(1700000000000)
	m := NewStateMessage(s, now)
	if got := m.State.Snapshot(); got != s {
		t.Errorf("expected %+v, got %+v", s, got)
	}
	if !m.State.Time().Equal(now) {
		t.Errorf("expected timestamp %v, got %v", now, m.State.Time())
	}
}
