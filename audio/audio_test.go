package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
	"github.com/mo-shahab/go-hockey/protocol"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestToneLengthAndLevel(t *testing.T) {
	rate := beep.SampleRate(44100)
	tone := Tone{Freq: 440, Duration: 100 * time.Millisecond, Wave: WaveSquare, Volume: 0.3, Delay: 50 * time.Millisecond}

	total, peak := drain(tone.Streamer(rate))
	if want := rate.N(150 * time.Millisecond); total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
	if peak > 0.3+1e-9 {
		t.Errorf("Expected peak at most 0.3, got %f", peak)
	}
	if peak < 0.29 {
		t.Errorf("Expected the attack near full volume, got peak %f", peak)
	}
}

func TestToneFades(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := Tone{Freq: 200, Duration: 100 * time.Millisecond, Wave: WaveSquare, Volume: 0.4}.Streamer(rate)

	total := rate.N(100 * time.Millisecond)
	buf := make([][2]float64, total)
	n, _ := osc.Stream(buf)
	if n != total {
		t.Fatalf("Expected %d samples, got %d", total, n)
	}
	if first, last := math.Abs(buf[0][0]), math.Abs(buf[n-1][0]); last >= first/10 {
		t.Errorf("Expected the tone to fade, first %f last %f", first, last)
	}
}

func TestEffectLength(t *testing.T) {
	rate := beep.SampleRate(48000)
	total, _ := drain(Goal.Streamer(rate))
	want := rate.N(400 * time.Millisecond)
	if total < want || total > want+512 {
		t.Errorf("Expected about %d samples for the goal arpeggio, got %d", want, total)
	}
}

func TestPlayerRoutesSounds(t *testing.T) {
	var played []string
	p := NewPlayer()
	p.play = func(name string, _ beep.Streamer) { played = append(played, name) }

	p.Observe(game.CollisionResult{WallHit: true}, game.Snapshot{})
	p.Observe(game.CollisionResult{PaddleHit: field.SideLeft, WallHit: true}, game.Snapshot{})
	p.Observe(game.CollisionResult{GoalSide: field.SideRight}, game.Snapshot{})
	p.Observe(game.CollisionResult{}, game.Snapshot{})
	p.OnEvent(protocol.GameEvent{Kind: protocol.EventStart})
	p.OnEvent(protocol.GameEvent{Kind: protocol.EventGoal, Side: field.SideLeft})

	want := []string{"wall", "paddle", "start", "goal"}
	if len(played) != len(want) {
		t.Fatalf("Expected %v, got %v", want, played)
	}
	for i := range want {
		if played[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, played[i])
		}
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer()
	p.Play(WallHit)
	p.Close()
}
