// Package input supplies the point the local paddle chases each frame.
package input

import (
	"sync"

	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
)

// Source reports where the local player wants their paddle. active is
// false when there is no target, in which case the paddle stays put.
type Source interface {
	Target(view game.Snapshot, side field.Side) (x, y float64, active bool)
}

// Idle never moves the paddle.
type Idle struct{}

func (Idle) Target(game.Snapshot, field.Side) (float64, float64, bool) {
	return 0, 0, false
}

// Fixed always aims at the same point.
type Fixed struct {
	X, Y float64
}

func (f Fixed) Target(game.Snapshot, field.Side) (float64, float64, bool) {
	return f.X, f.Y, true
}

// Pointer holds the latest pointer position reported by a UI goroutine.
// The zero value is inactive.
type Pointer struct {
	mu     sync.Mutex
	x, y   float64
	active bool
}

// Set records a pointer position in field coordinates.
func (p *Pointer) Set(x, y float64) {
	p.mu.Lock()
	p.x, p.y, p.active = x, y, true
	p.mu.Unlock()
}

// Nudge moves the target by (dx, dy) from where it is, starting at the
// paddle's own position if nothing was set yet.
func (p *Pointer) Nudge(view game.Snapshot, side field.Side, dx, dy float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		if pd, ok := view.Paddle(side); ok {
			p.x, p.y = pd.X, pd.Y
		}
		p.active = true
	}
	p.x += dx
	p.y += dy
}

// Release stops steering until the next Set.
func (p *Pointer) Release() {
	p.mu.Lock()
	p.active = false
	p.mu.Unlock()
}

func (p *Pointer) Target(game.Snapshot, field.Side) (float64, float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y, p.active
}
