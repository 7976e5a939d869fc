package field

import "testing"

func TestGoalBand(t *testing.T) {
	if GoalTop() != 390 || GoalBottom() != 690 {
		t.Fatalf("expected goal band [390, 690], got [%v, %v]", GoalTop(), GoalBottom())
	}

	cases := []struct {
		y    float64
		want bool
	}{
		{389.9, false},
		{390, true},
		{540, true},
		{690, true},
		{690.1, false},
	}
	for _, tc := range cases {
		if got := InGoalBand(tc.y); got != tc.want {
			t.Errorf("InGoalBand(%v): expected %v, got %v", tc.y, tc.want, got)
		}
	}
}

func TestSideOpponent(t *testing.T) {
	if SideLeft.Opponent() != SideRight || SideRight.Opponent() != SideLeft {
		t.Error("left and right should be opponents")
	}
	if Side("top").Opponent() != SideNone {
		t.Error("unknown side should have no opponent")
	}
	if Side("top").Valid() || SideNone.Valid() {
		t.Error("only left and right are valid sides")
	}
}

func TestGoals(t *testing.T) {
	goals := Goals()
	if goals[0].Side != SideLeft || goals[0].X != 0 {
		t.Errorf("unexpected left goal %+v", goals[0])
	}
	if goals[1].Side != SideRight || goals[1].X != TotalWidth-GoalWidth {
		t.Errorf("unexpected right goal %+v", goals[1])
	}
}

func TestGoalMouth(t *testing.T) {
	g := Goals()[0]
	cases := []struct {
		y    float64
		want bool
	}{
		{GoalTop(), true},
		{Height / 2, true},
		{GoalBottom(), true},
		{GoalTop() - 1, false},
		{GoalBottom() + 1, false},
	}
	for _, tc := range cases {
		if got := g.Mouth(tc.y); got != tc.want {
			t.Errorf("Mouth(%v): expected %v, got %v", tc.y, tc.want, got)
		}
	}
}

func TestServePoint(t *testing.T) {
	if x, y := ServePoint(SideLeft); x != 960 || y != 540 {
		t.Errorf("expected left serve point (960, 540), got (%v, %v)", x, y)
	}
	if x, y := ServePoint(SideRight); x != 2880 || y != 540 {
		t.Errorf("expected right serve point (2880, 540), got (%v, %v)", x, y)
	}
}
