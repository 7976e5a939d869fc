package protocol

import (
	"math"
	"testing"

	"github.com/mo-shahab/go-hockey/field"
)

func TestSequencerPerKind(t *testing.T) {
	var s Sequencer
	p1 := NewPaddleMessage(field.SideLeft, 0, 0)
	p2 := NewPaddleMessage(field.SideLeft, 0, 0)
	e1 := NewEventMessage(EventStart, field.SideNone)
	s.Stamp(&p1)
	s.Stamp(&p2)
	s.Stamp(&e1)
	if p1.Seq != 1 || p2.Seq != 2 || e1.Seq != 1 {
		t.Errorf("expected seqs 1,2,1, got %d,%d,%d", p1.Seq, p2.Seq, e1.Seq)
	}
}

func TestSequencerSkipsZeroOnWrap(t *testing.T) {
	s := Sequencer{next: map[Kind]uint32{KindState: math.MaxUint32}}
	m := Message{Type: KindState}
	if got := s.Stamp(&m); got != 1 {
		t.Errorf("expected wrap to 1, got %d", got)
	}
}

func TestSeqFilter(t *testing.T) {
	msg := func(k Kind, seq uint32) Message { return Message{Type: k, Seq: seq} }
	steps := []struct {
		msg  Message
		want bool
	}{
		{msg(KindState, 5), true},
		{msg(KindState, 5), false},  // duplicate
		{msg(KindState, 4), false},  // stale
		{msg(KindPaddle, 1), true},  // independent counter
		{msg(KindState, 9), true},   // gaps are fine
		{msg(KindState, 0), true},   // unsequenced
		{msg(KindEvent, 3), true},   //
		{msg(KindEvent, 3), false},  // repeated goal event
		{msg(KindPaddle, 1), false}, //
	}
	var f SeqFilter
	for i, st := range steps {
		if got := f.Accept(st.msg); got != st.want {
			t.Errorf("step %d (%s seq %d): expected %v, got %v", i, st.msg.Type, st.msg.Seq, st.want, got)
		}
	}
}

func TestSeqFilterWraps(t *testing.T) {
	var f SeqFilter
	f.Accept(Message{Type: KindState, Seq: math.MaxUint32 - 1})
	if !f.Accept(Message{Type: KindState, Seq: 2}) {
		t.Error("expected seq after wrap to be accepted")
	}
	if f.Accept(Message{Type: KindState, Seq: math.MaxUint32}) {
		t.Error("expected pre-wrap seq to be stale")
	}
	f.Reset()
	if !f.Accept(Message{Type: KindState, Seq: math.MaxUint32}) {
		t.Error("expected reset filter to accept anything")
	}
}
