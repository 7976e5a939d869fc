package protocol

import (
	"fmt"

	"github.com/mo-shahab/go-hockey/field"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// ProtoCodec encodes messages as protobuf (schema in hockey.proto). Every
// field is optional on the wire, so presence survives the trip and a
// missing number decodes to nil.
type ProtoCodec struct{}

func (ProtoCodec) Name() string { return "proto" }
func (ProtoCodec) Binary() bool { return true }

func (ProtoCodec) Marshal(m *Message) ([]byte, error) {
	msg := dynamicpb.NewMessage(envelopeDesc)
	setString(msg, "type", string(m.Type))
	if m.Seq != 0 {
		msg.Set(fieldOf(msg, "seq"), protoreflect.ValueOfUint32(m.Seq))
	}

	switch {
	case m.Paddle != nil:
		p := mutable(msg, "paddle")
		setString(p, "side", string(m.Paddle.Side))
		setDouble(p, "x", m.Paddle.X)
		setDouble(p, "y", m.Paddle.Y)
	case m.State != nil:
		marshalState(mutable(msg, "state"), m.State)
	case m.Event != nil:
		e := mutable(msg, "event")
		setString(e, "event", string(m.Event.Kind))
		setString(e, "side", string(m.Event.Side))
	}

	b, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("proto marshal %s: %w", m.Type, err)
	}
	return b, nil
}

func marshalState(msg protoreflect.Message, s *StateSnapshot) {
	if s.Puck != nil {
		p := mutable(msg, "puck")
		setDouble(p, "x", s.Puck.X)
		setDouble(p, "y", s.Puck.Y)
		setDouble(p, "vx", s.Puck.Vx)
		setDouble(p, "vy", s.Puck.Vy)
		setDouble(p, "smash_time", &s.Puck.SmashTime)
	}
	if s.Paddles != nil {
		pads := mutable(msg, "paddles")
		for name, ps := range map[string]*PaddleState{"left": s.Paddles.Left, "right": s.Paddles.Right} {
			if ps == nil {
				continue
			}
			pt := mutable(pads, name)
			setDouble(pt, "x", ps.X)
			setDouble(pt, "y", ps.Y)
		}
	}
	if s.Scores != nil {
		sc := mutable(msg, "scores")
		setInt(sc, "left", s.Scores.Left)
		setInt(sc, "right", s.Scores.Right)
	}
	if s.Timestamp != nil {
		msg.Set(fieldOf(msg, "timestamp"), protoreflect.ValueOfInt64(*s.Timestamp))
	}
}

func (ProtoCodec) Unmarshal(data []byte, m *Message) error {
	msg := dynamicpb.NewMessage(envelopeDesc)
	if err := proto.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	*m = Message{
		Type: Kind(getString(msg, "type")),
		Seq:  uint32(msg.Get(fieldOf(msg, "seq")).Uint()),
	}
	if p, ok := nested(msg, "paddle"); ok {
		m.Paddle = &PaddleUpdate{
			Side: field.Side(getString(p, "side")),
			X:    getDouble(p, "x"),
			Y:    getDouble(p, "y"),
		}
	}
	if s, ok := nested(msg, "state"); ok {
		m.State = unmarshalState(s)
	}
	if e, ok := nested(msg, "event"); ok {
		m.Event = &GameEvent{
			Kind: EventKind(getString(e, "event")),
			Side: field.Side(getString(e, "side")),
		}
	}
	return nil
}

func unmarshalState(msg protoreflect.Message) *StateSnapshot {
	s := &StateSnapshot{}
	if p, ok := nested(msg, "puck"); ok {
		s.Puck = &PuckState{
			X:  getDouble(p, "x"),
			Y:  getDouble(p, "y"),
			Vx: getDouble(p, "vx"),
			Vy: getDouble(p, "vy"),
		}
		if st := getDouble(p, "smash_time"); st != nil {
			s.Puck.SmashTime = *st
		}
	}
	if pads, ok := nested(msg, "paddles"); ok {
		s.Paddles = &PaddleStates{}
		if pt, ok := nested(pads, "left"); ok {
			s.Paddles.Left = &PaddleState{X: getDouble(pt, "x"), Y: getDouble(pt, "y")}
		}
		if pt, ok := nested(pads, "right"); ok {
			s.Paddles.Right = &PaddleState{X: getDouble(pt, "x"), Y: getDouble(pt, "y")}
		}
	}
	if sc, ok := nested(msg, "scores"); ok {
		s.Scores = &ScoreState{Left: getInt(sc, "left"), Right: getInt(sc, "right")}
	}
	if fd := fieldOf(msg, "timestamp"); msg.Has(fd) {
		s.Timestamp = ref(msg.Get(fd).Int())
	}
	return s
}

func fieldOf(msg protoreflect.Message, name string) protoreflect.FieldDescriptor {
	return msg.Descriptor().Fields().ByName(protoreflect.Name(name))
}

func mutable(msg protoreflect.Message, name string) protoreflect.Message {
	return msg.Mutable(fieldOf(msg, name)).Message()
}

func nested(msg protoreflect.Message, name string) (protoreflect.Message, bool) {
	fd := fieldOf(msg, name)
	if !msg.Has(fd) {
		return nil, false
	}
	return msg.Get(fd).Message(), true
}

func setString(msg protoreflect.Message, name, v string) {
	if v != "" {
		msg.Set(fieldOf(msg, name), protoreflect.ValueOfString(v))
	}
}

func getString(msg protoreflect.Message, name string) string {
	return msg.Get(fieldOf(msg, name)).String()
}

func setDouble(msg protoreflect.Message, name string, v *float64) {
	if v != nil {
		msg.Set(fieldOf(msg, name), protoreflect.ValueOfFloat64(*v))
	}
}

func getDouble(msg protoreflect.Message, name string) *float64 {
	fd := fieldOf(msg, name)
	if !msg.Has(fd) {
		return nil
	}
	return ref(msg.Get(fd).Float())
}

func setInt(msg protoreflect.Message, name string, v *int) {
	if v != nil {
		msg.Set(fieldOf(msg, name), protoreflect.ValueOfInt64(int64(*v)))
	}
}

func getInt(msg protoreflect.Message, name string) *int {
	fd := fieldOf(msg, name)
	if !msg.Has(fd) {
		return nil
	}
	return ref(int(msg.Get(fd).Int()))
}
