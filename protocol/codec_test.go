package protocol

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
)

func sampleMessages() []Message {
	s := game.NewSnapshot()
	s.Puck.X, s.Puck.Y, s.Puck.Vx, s.Puck.Vy = 1234.5, 321.25, -18, 6.5
	s.Puck.SmashTime = 0.75
	s.Left.MoveTo(400, 500)
	s.Right.MoveTo(3000, 700)
	s.Scores.Left, s.Scores.Right = 3, 6

	state := NewStateMessage(s, time.UnixMilli(1700000000123))
	state.Seq = 42

	paddle := NewPaddleMessage(field.SideRight, 2500.5, 99)
	paddle.Seq = 7

	return []Message{
		paddle,
		state,
		NewEventMessage(EventStart, field.SideNone),
		NewEventMessage(EventGoal, field.SideLeft),
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, name := range CodecNames() {
		c, err := CodecByName(name)
		if err != nil {
			t.Fatalf("CodecByName(%q): %v", name, err)
		}
		for _, m := range sampleMessages() {
			data, err := c.Marshal(&m)
			if err != nil {
				t.Fatalf("%s: marshal %s: %v", name, m.Type, err)
			}
			got, err := Decode(c, data)
			if err != nil {
				t.Fatalf("%s: decode %s: %v", name, m.Type, err)
			}
			if !reflect.DeepEqual(got, m) {
				t.Errorf("%s: %s round trip mismatch\nexpected %+v\ngot      %+v", name, m.Type, m, got)
			}
		}
	}
}

func TestCodecByName(t *testing.T) {
	c, err := CodecByName("")
	if err != nil || c.Name() != DefaultCodec {
		t.Errorf("expected default codec, got %v, %v", c, err)
	}
	if _, err := CodecByName("xml"); err == nil {
		t.Error("expected error for unknown codec")
	}
	want := []string{"json", "msgpack", "proto"}
	if got := CodecNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected codecs %v, got %v", want, got)
	}
}

func TestCodecFrameKind(t *testing.T) {
	cases := map[string]bool{"json": false, "msgpack": true, "proto": true}
	for name, binary := range cases {
		c, _ := CodecByName(name)
		if c.Binary() != binary {
			t.Errorf("%s: expected Binary() %v", name, binary)
		}
	}
}

// incompleteMessages are well-formed frames that leave out required fields.
func incompleteMessages() map[string]Message {
	emptyPuck := NewStateMessage(game.NewSnapshot(), time.Now())
	emptyPuck.State.Puck = &PuckState{}

	emptyScores := NewStateMessage(game.NewSnapshot(), time.Now())
	emptyScores.State.Scores = &ScoreState{}

	noTimestamp := NewStateMessage(game.NewSnapshot(), time.Now())
	noTimestamp.State.Timestamp = nil

	emptyPaddle := NewStateMessage(game.NewSnapshot(), time.Now())
	emptyPaddle.State.Paddles.Right = &PaddleState{}

	return map[string]Message{
		"paddle without position": {Type: KindPaddle, Paddle: &PaddleUpdate{Side: field.SideRight}},
		"empty puck":              emptyPuck,
		"empty scores":            emptyScores,
		"no timestamp":            noTimestamp,
		"empty paddle":            emptyPaddle,
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	type frame struct {
		codec string
		name  string
		data  []byte
	}
	frames := []frame{
		{"json", "truncated", []byte("{")},
		{"json", "wrong type", []byte(`{"type":"paddle","paddle":{"x":"left"}}`)},
		{"json", "paddle without position", []byte(`{"type":"paddle","paddle":{"side":"right"}}`)},
		{"json", "empty state", []byte(`{"type":"state","state":{"puck":{},"paddles":{"left":{},"right":{}},"scores":{}}}`)},
		{"json", "second payload", []byte(`{"type":"paddle","paddle":{"side":"right","x":1,"y":2},"event":{"event":"start"}}`)},
		{"msgpack", "reserved byte", []byte{0xc1}},
		{"msgpack", "truncated", []byte{0x81, 0xa4, 't', 'y'}},
		// field 3 claims 5 bytes, only 1 follows
		{"proto", "short payload", []byte{0x1a, 0x05, 0x0a}},
		{"proto", "truncated tag", []byte{0x80}},
	}
	for _, name := range CodecNames() {
		c, _ := CodecByName(name)
		for what, m := range incompleteMessages() {
			data, err := c.Marshal(&m)
			if err != nil {
				t.Fatalf("%s: marshal %s: %v", name, what, err)
			}
			frames = append(frames, frame{name, what, data})
		}
	}

	for _, f := range frames {
		c, _ := CodecByName(f.codec)
		if _, err := Decode(c, f.data); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s %s: expected ErrMalformed, got %v", f.codec, f.name, err)
		}
	}
}

func TestProtoPayloadIsExclusive(t *testing.T) {
	m := NewPaddleMessage(field.SideRight, 2000, 300)
	m.Event = &GameEvent{Kind: EventStart}

	// only one payload fits the wire union
	data, err := ProtoCodec{}.Marshal(&m)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(ProtoCodec{}, data)
	if err != nil {
		t.Fatalf("expected the paddle payload alone to decode, got %v", err)
	}
	if got.Event != nil || got.Paddle == nil {
		t.Errorf("expected only the paddle payload, got %+v", got)
	}
}

func TestProtoSkipsUnknownFields(t *testing.T) {
	m := NewEventMessage(EventGoal, field.SideRight)
	data, err := ProtoCodec{}.Marshal(&m)
	if err != nil {
		t.Fatal(err)
	}
	// field 15, varint 1
	data = append(data, 0x78, 0x01)
	got, err := Decode(ProtoCodec{}, data)
	if err != nil {
		t.Fatalf("expected unknown field to be skipped, got %v", err)
	}
	if got.Event.Side != field.SideRight {
		t.Errorf("expected side right, got %s", got.Event.Side)
	}
}

func TestDecodeValidates(t *testing.T) {
	m := NewPaddleMessage(field.SideLeft, math.Inf(1), 0)
	for _, name := range []string{"msgpack", "proto"} {
		c, _ := CodecByName(name)
		data, err := c.Marshal(&m)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, err := Decode(c, data); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected ErrMalformed for infinite x, got %v", name, err)
		}
	}
}
