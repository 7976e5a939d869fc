package protocol

// Sequencer stamps outgoing messages with a per-kind counter. The zero
// value is ready to use. It is not safe for concurrent use.
type Sequencer struct {
	next map[Kind]uint32
}

// Stamp assigns the next sequence number for m's kind and returns it.
// Zero is skipped on wrap since it means unsequenced.
func (s *Sequencer) Stamp(m *Message) uint32 {
	if s.next == nil {
		s.next = make(map[Kind]uint32, len(Kinds))
	}
	n := s.next[m.Type] + 1
	if n == 0 {
		n = 1
	}
	s.next[m.Type] = n
	m.Seq = n
	return n
}

// SeqFilter drops messages that are not newer than the last one accepted
// of the same kind. Comparison is serial arithmetic, so a counter that
// wraps past 2^32 keeps being accepted.
type SeqFilter struct {
	last map[Kind]uint32
}

// Accept reports whether m should be processed and records its sequence
// number if so. Unsequenced messages are always accepted.
func (f *SeqFilter) Accept(m Message) bool {
	if m.Seq == 0 {
		return true
	}
	if f.last == nil {
		f.last = make(map[Kind]uint32, len(Kinds))
	}
	last, seen := f.last[m.Type]
	if seen && int32(m.Seq-last) <= 0 {
		return false
	}
	f.last[m.Type] = m.Seq
	return true
}

// Reset forgets everything seen so far.
func (f *SeqFilter) Reset() {
	f.last = nil
}
