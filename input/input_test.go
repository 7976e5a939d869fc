package input

import (
	"testing"

	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
)

func TestIdleAndFixed(t *testing.T) {
	view := game.NewSnapshot()
	if _, _, active := (Idle{}).Target(view, field.SideLeft); active {
		t.Error("expected Idle to be inactive")
	}
	x, y, active := Fixed{X: 10, Y: 20}.Target(view, field.SideLeft)
	if !active || x != 10 || y != 20 {
		t.Errorf("expected 10,20 active, got %v,%v %v", x, y, active)
	}
}

func TestPointer(t *testing.T) {
	view := game.NewSnapshot()
	var p Pointer
	if _, _, active := p.Target(view, field.SideLeft); active {
		t.Error("expected zero Pointer to be inactive")
	}

	p.Nudge(view, field.SideLeft, 10, -5)
	x, y, active := p.Target(view, field.SideLeft)
	wantX, wantY := view.Left.X+10, view.Left.Y-5
	if !active || x != wantX || y != wantY {
		t.Errorf("expected nudge from paddle to %v,%v, got %v,%v", wantX, wantY, x, y)
	}

	p.Set(500, 600)
	p.Nudge(view, field.SideLeft, 1, 1)
	if x, y, _ := p.Target(view, field.SideLeft); x != 501 || y != 601 {
		t.Errorf("expected 501,601, got %v,%v", x, y)
	}

	p.Release()
	if _, _, active := p.Target(view, field.SideLeft); active {
		t.Error("expected released Pointer to be inactive")
	}
}

func TestBot(t *testing.T) {
	bot := NewBot()

	cases := []struct {
		name   string
		side   field.Side
		x, vx  float64
		charge bool
	}{
		{"left charges incoming puck", field.SideLeft, 600, -20, true},
		{"left guards when puck leaves", field.SideLeft, 600, 20, false},
		{"left guards when puck is away", field.SideLeft, 2500, -20, false},
		{"right charges incoming puck", field.SideRight, 3000, 20, true},
		{"right guards when puck is away", field.SideRight, 900, 20, false},
	}
	for _, tc := range cases {
		view := game.NewSnapshot()
		view.Puck.X, view.Puck.Y, view.Puck.Vx = tc.x, 200, tc.vx

		x, y, active := bot.Target(view, tc.side)
		if !active {
			t.Errorf("%s: expected bot to be active", tc.name)
			continue
		}
		if tc.charge {
			if y != 200 {
				t.Errorf("%s: expected to chase puck height 200, got %v", tc.name, y)
			}
			continue
		}
		if y != field.GoalTop() {
			t.Errorf("%s: expected guard height clamped to goal top %v, got %v", tc.name, field.GoalTop(), y)
		}
		home, _ := field.PaddleStart(tc.side)
		if (tc.side == field.SideLeft && x >= home) || (tc.side == field.SideRight && x <= home) {
			t.Errorf("%s: expected guard position behind start %v, got %v", tc.name, home, x)
		}
	}
}
