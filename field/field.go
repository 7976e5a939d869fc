// Package field holds the fixed geometry of the playing field. Both peers
// compile the same constants, so nothing here is ever sent over the wire.
package field

// The field is two screens wide: the left peer renders [0, ScreenWidth),
// the right peer renders [ScreenWidth, TotalWidth).
const (
	ScreenWidth = 1920.0
	Height      = 1080.0
	TotalWidth  = ScreenWidth * 2

	PuckRadius   = 30.0
	PaddleRadius = 70.0
	GoalWidth    = 20.0
	GoalHeight   = 300.0

	// distance of a paddle's start position from its back wall
	PaddleStartInset = 200.0
)

// Side identifies one half of the field and the player who defends it.
type Side string

const (
	SideNone  Side = ""
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Sides in resolution order.
var Sides = [2]Side{SideLeft, SideRight}

func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

// Opponent returns the other side, or SideNone for an invalid side.
func (s Side) Opponent() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideNone
}

func (s Side) String() string {
	if s == SideNone {
		return "none"
	}
	return string(s)
}

// Goal is the rectangle of a goal mouth.
type Goal struct {
	Side   Side
	X, Y   float64
	Width  float64
	Height float64
}

// Mouth reports whether y lies within the goal's opening.
func (g Goal) Mouth(y float64) bool {
	return y >= g.Y && y <= g.Y+g.Height
}

// GoalTop and GoalBottom bound the goal mouth vertically. They are the same
// for both sides.
func GoalTop() float64 {
	return (Height - GoalHeight) / 2
}

func GoalBottom() float64 {
	return GoalTop() + GoalHeight
}

// InGoalBand reports whether y lies within the goal mouth.
func InGoalBand(y float64) bool {
	return y >= GoalTop() && y <= GoalBottom()
}

// Goals returns both goal rectangles, left first.
func Goals() [2]Goal {
	return [2]Goal{
		{Side: SideLeft, X: 0, Y: GoalTop(), Width: GoalWidth, Height: GoalHeight},
		{Side: SideRight, X: TotalWidth - GoalWidth, Y: GoalTop(), Width: GoalWidth, Height: GoalHeight},
	}
}

// PaddleStart is where a side's paddle sits at the start of a match.
func PaddleStart(s Side) (x, y float64) {
	if s == SideRight {
		return TotalWidth - PaddleStartInset, Height / 2
	}
	return PaddleStartInset, Height / 2
}

// ServePoint is the puck position after a goal was scored against side s:
// the centre of the conceding half.
func ServePoint(s Side) (x, y float64) {
	if s == SideRight {
		return ScreenWidth + ScreenWidth/2, Height / 2
	}
	return ScreenWidth / 2, Height / 2
}

// ViewOffset is the x offset of the screen a side renders.
func ViewOffset(s Side) float64 {
	if s == SideRight {
		return ScreenWidth
	}
	return 0
}
