package scores

import "github.com/mo-shahab/go-hockey/field"

// Scores counts goals per side. Counts only ever grow during a match.
type Scores struct {
	Left  int
	Right int
}

// Award credits one goal to the side that scored.
func (s *Scores) Award(scorer field.Side) {
	switch scorer {
	case field.SideLeft:
		s.Left++
	case field.SideRight:
		s.Right++
	}
}

// Of returns a side's count.
func (s Scores) Of(side field.Side) int {
	if side == field.SideRight {
		return s.Right
	}
	if side == field.SideLeft {
		return s.Left
	}
	return 0
}

// Winner returns the first side to reach target, or SideNone. A target of
// zero or less disables the check.
func (s Scores) Winner(target int) field.Side {
	if target <= 0 {
		return field.SideNone
	}
	if s.Left >= target {
		return field.SideLeft
	}
	if s.Right >= target {
		return field.SideRight
	}
	return field.SideNone
}
