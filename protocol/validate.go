package protocol

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)

// Validate checks that a decoded message is complete and in range for its
// kind. Receivers drop anything that fails and keep their last good state.
func (m *Message) Validate() error {
	if err := m.payloadsMatch(); err != nil {
		return err
	}
	switch m.Type {
	case KindPaddle:
		if m.Paddle == nil {
			return fmt.Errorf("%w: paddle message without payload", ErrMalformed)
		}
		return m.Paddle.validate()
	case KindState:
		if m.State == nil {
			return fmt.Errorf("%w: state message without payload", ErrMalformed)
		}
		return m.State.validate()
	case KindEvent:
		if m.Event == nil {
			return fmt.Errorf("%w: event message without payload", ErrMalformed)
		}
		return m.Event.validate()
	}
	return fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
}

// payloadsMatch rejects a payload that belongs to a kind other than Type.
func (m *Message) payloadsMatch() error {
	present := map[Kind]bool{
		KindPaddle: m.Paddle != nil,
		KindState:  m.State != nil,
		KindEvent:  m.Event != nil,
	}
	for _, k := range Kinds {
		if present[k] && k != m.Type {
			return fmt.Errorf("%w: %s message carries a %s payload", ErrMalformed, m.Type, k)
		}
	}
	return nil
}

func (p *PaddleUpdate) validate() error {
	if !p.Side.Valid() {
		return fmt.Errorf("%w: paddle side %q", ErrMalformed, p.Side)
	}
	if p.X == nil || p.Y == nil {
		return fmt.Errorf("%w: paddle update missing x or y", ErrMalformed)
	}
	return finite("paddle", *p.X, *p.Y)
}

func (s *StateSnapshot) validate() error {
	if s.Puck == nil || s.Paddles == nil || s.Scores == nil {
		return fmt.Errorf("%w: state snapshot missing puck, paddles or scores", ErrMalformed)
	}
	if s.Timestamp == nil {
		return fmt.Errorf("%w: state snapshot missing timestamp", ErrMalformed)
	}
	p := s.Puck
	if p.X == nil || p.Y == nil || p.Vx == nil || p.Vy == nil {
		return fmt.Errorf("%w: puck missing position or velocity", ErrMalformed)
	}
	if err := finite("puck", *p.X, *p.Y, *p.Vx, *p.Vy, p.SmashTime); err != nil {
		return err
	}
	for name, ps := range map[string]*PaddleState{"left": s.Paddles.Left, "right": s.Paddles.Right} {
		if ps == nil || ps.X == nil || ps.Y == nil {
			return fmt.Errorf("%w: state snapshot missing %s paddle position", ErrMalformed, name)
		}
		if err := finite(name+" paddle", *ps.X, *ps.Y); err != nil {
			return err
		}
	}
	if s.Scores.Left == nil || s.Scores.Right == nil {
		return fmt.Errorf("%w: state snapshot missing a score", ErrMalformed)
	}
	if *s.Scores.Left < 0 || *s.Scores.Right < 0 {
		return fmt.Errorf("%w: negative score %d-%d", ErrMalformed, *s.Scores.Left, *s.Scores.Right)
	}
	return nil
}

func (e *GameEvent) validate() error {
	switch e.Kind {
	case EventStart:
		return nil
	case EventGoal:
		if !e.Side.Valid() {
			return fmt.Errorf("%w: goal event side %q", ErrMalformed, e.Side)
		}
		return nil
	}
	return fmt.Errorf("%w: event kind %q", ErrMalformed, e.Kind)
}

func finite(what string, vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has non-finite value %v", ErrMalformed, what, v)
		}
	}
	return nil
}
