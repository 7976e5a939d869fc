package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
	"github.com/mo-shahab/go-hockey/protocol"
)

const sampleRate = beep.SampleRate(48000)

// Player turns collisions and game events into sounds. Until Init
// succeeds it is silent, so a machine without audio still plays.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool

	// play hands a finished effect to the output; tests replace it.
	play func(name string, s beep.Streamer)
}

func NewPlayer() *Player {
	p := &Player{mixer: &beep.Mixer{}}
	p.play = p.toSpeaker
	return p
}

// Init opens the output device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

func (p *Player) toSpeaker(_ string, s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *Player) Play(e Effect) {
	p.play(e.Name, e.Streamer(sampleRate))
}

// Observe plays wall and paddle hits. Goals come through OnEvent so the
// guest, which runs no physics, hears them too.
func (p *Player) Observe(result game.CollisionResult, _ game.Snapshot) {
	if result.PaddleHit != field.SideNone {
		p.Play(PaddleHit)
	} else if result.WallHit {
		p.Play(WallHit)
	}
}

func (p *Player) OnEvent(ev protocol.GameEvent) {
	switch ev.Kind {
	case protocol.EventStart:
		p.Play(Start)
	case protocol.EventGoal:
		p.Play(Goal)
	default:
		log.Printf("No sound for game event %q", ev.Kind)
	}
}
