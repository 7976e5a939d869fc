package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
	"github.com/mo-shahab/go-hockey/protocol"
)

func newTestView(t *testing.T, side field.Side) (*View, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	v, err := NewWithScreen(screen, side)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	screen.SetSize(80, 25)
	t.Cleanup(v.Close)
	return v, screen
}

func row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestObserveDrawsPuckPaddlesAndScore(t *testing.T) {
	v, screen := newTestView(t, field.SideLeft)

	s := game.NewSnapshot()
	s.Puck.X, s.Puck.Y = 960, 540
	s.Scores.Left, s.Scores.Right = 2, 3
	v.Observe(game.CollisionResult{}, s)

	if r, _, _, _ := screen.GetContent(40, 13); r != 'o' {
		t.Errorf("expected puck at 40,13, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(8, 13); r != '#' {
		t.Errorf("expected own paddle at 8,13, got %q", r)
	}
	if status := row(screen, 0); !strings.Contains(status, "LEFT 2 : 3 RIGHT") {
		t.Errorf("expected score in status line, got %q", status)
	}
}

func TestObserveSkipsTheOtherHalf(t *testing.T) {
	v, screen := newTestView(t, field.SideRight)

	s := game.NewSnapshot()
	s.Puck.X, s.Puck.Y = 960, 540 // left half
	v.Observe(game.CollisionResult{}, s)

	for y := 1; y < 25; y++ {
		if strings.ContainsRune(row(screen, y), 'o') {
			t.Fatalf("expected puck on the other half to stay hidden, found it on row %d", y)
		}
	}
}

func TestBannerOnGoal(t *testing.T) {
	v, screen := newTestView(t, field.SideLeft)
	v.OnEvent(protocol.GameEvent{Kind: protocol.EventGoal, Side: field.SideRight})
	v.Observe(game.CollisionResult{}, game.NewSnapshot())
	if status := row(screen, 0); !strings.Contains(status, "GOAL!") {
		t.Errorf("expected goal banner, got %q", status)
	}

	v.OnEvent(protocol.GameEvent{Kind: protocol.EventGoal, Side: field.SideLeft})
	v.Observe(game.CollisionResult{}, game.NewSnapshot())
	if status := row(screen, 0); !strings.Contains(status, "GOAL AGAINST") {
		t.Errorf("expected conceded banner, got %q", status)
	}
}

func TestMouseSetsTarget(t *testing.T) {
	cases := []struct {
		side  field.Side
		wantX float64
	}{
		{field.SideLeft, 972},
		{field.SideRight, 1920 + 972},
	}
	for _, tc := range cases {
		v, _ := newTestView(t, tc.side)
		v.handle(tcell.NewEventMouse(40, 13, tcell.ButtonNone, tcell.ModNone))
		x, y, active := v.Target(game.NewSnapshot(), tc.side)
		if !active || x != tc.wantX || y != 562.5 {
			t.Errorf("%s: expected target %v,562.5, got %v,%v (active %v)", tc.side, tc.wantX, x, y, active)
		}
	}
}

func TestKeys(t *testing.T) {
	v, _ := newTestView(t, field.SideLeft)
	v.Observe(game.CollisionResult{}, game.NewSnapshot())

	v.handle(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	x, y, active := v.Target(game.NewSnapshot(), field.SideLeft)
	if !active || x != 200 || y != 540-keyStep {
		t.Errorf("expected arrow to nudge from the paddle to 200,%v, got %v,%v", 540-keyStep, x, y)
	}

	v.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if _, _, active := v.Target(game.NewSnapshot(), field.SideLeft); active {
		t.Error("expected space to release the target")
	}

	v.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	select {
	case <-v.Quit():
	default:
		t.Error("expected q to quit")
	}
	v.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) // second quit is harmless
}

func TestRunStopsOnCancel(t *testing.T) {
	v, _ := newTestView(t, field.SideLeft)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		v.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return after cancel")
	}
}
