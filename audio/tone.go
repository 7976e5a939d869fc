// Package audio synthesises the game's sound effects and plays them on the
// default output device.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
)

// floor is the gain a tone decays to by its end.
const floor = 0.001

// Tone is one note. It starts after Delay and fades exponentially from
// Volume to silence over Duration.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
	Volume   float64
	Delay    time.Duration
}

// Streamer renders the tone, including its leading silence.
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	osc := &oscillator{
		freq:   t.Freq,
		wave:   t.Wave,
		volume: t.Volume,
		total:  rate.N(t.Duration),
		rate:   rate,
	}
	if t.Delay <= 0 {
		return osc
	}
	return beep.Seq(beep.Silence(rate.N(t.Delay)), osc)
}

type oscillator struct {
	freq     float64
	phase    float64
	wave     Wave
	volume   float64
	position int
	total    int
	rate     beep.SampleRate
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.total {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.total {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		val *= o.gain()

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) gain() float64 {
	if o.volume <= floor {
		return o.volume
	}
	progress := float64(o.position) / float64(o.total)
	return o.volume * math.Pow(floor/o.volume, progress)
}

func (o *oscillator) Err() error { return nil }

// Effect is a named group of tones played together.
type Effect struct {
	Name  string
	Tones []Tone
}

var (
	WallHit = Effect{"wall", []Tone{
		{Freq: 200, Duration: 50 * time.Millisecond, Wave: WaveSine, Volume: 0.2},
	}}
	PaddleHit = Effect{"paddle", []Tone{
		{Freq: 400, Duration: 100 * time.Millisecond, Wave: WaveSquare, Volume: 0.3},
	}}
	Goal = Effect{"goal", []Tone{
		{Freq: 400, Duration: 150 * time.Millisecond, Wave: WaveSquare, Volume: 0.4},
		{Freq: 600, Duration: 150 * time.Millisecond, Wave: WaveSquare, Volume: 0.4, Delay: 100 * time.Millisecond},
		{Freq: 800, Duration: 200 * time.Millisecond, Wave: WaveSquare, Volume: 0.4, Delay: 200 * time.Millisecond},
	}}
	Start = Effect{"start", []Tone{
		{Freq: 523, Duration: 100 * time.Millisecond, Wave: WaveSine, Volume: 0.3},
		{Freq: 659, Duration: 100 * time.Millisecond, Wave: WaveSine, Volume: 0.3, Delay: 100 * time.Millisecond},
		{Freq: 784, Duration: 150 * time.Millisecond, Wave: WaveSine, Volume: 0.3, Delay: 200 * time.Millisecond},
	}}
)

// Streamer mixes the effect's tones. It ends when the last tone does.
func (e Effect) Streamer(rate beep.SampleRate) beep.Streamer {
	streamers := make([]beep.Streamer, len(e.Tones))
	for i, t := range e.Tones {
		streamers[i] = t.Streamer(rate)
	}
	return beep.Mix(streamers...)
}
