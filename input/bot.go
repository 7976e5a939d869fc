package input

import (
	"math"

	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
)

// Bot plays a side on its own: it charges the puck while the puck is in
// its half and heading home, and otherwise falls back to guard its goal,
// shadowing the puck's height.
type Bot struct {
	// Depth is how far behind its start position the bot guards.
	Depth float64
}

func NewBot() *Bot {
	return &Bot{Depth: field.PaddleStartInset / 2}
}

func (b *Bot) Target(view game.Snapshot, side field.Side) (float64, float64, bool) {
	p := view.Puck
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return 0, 0, false
	}

	home, _ := field.PaddleStart(side)
	guardX := home - b.Depth
	if side == field.SideRight {
		guardX = home + b.Depth
	}

	ownHalf := p.X < field.ScreenWidth
	incoming := p.Vx <= 0
	if side == field.SideRight {
		ownHalf = !ownHalf
		incoming = p.Vx >= 0
	}

	if ownHalf && incoming {
		// aim slightly behind the puck so the hit sends it forward
		behind := -field.PuckRadius
		if side == field.SideRight {
			behind = field.PuckRadius
		}
		return p.X + behind, p.Y, true
	}

	// stay between the puck and the goal mouth
	y := math.Max(field.GoalTop(), math.Min(field.GoalBottom(), p.Y))
	return guardX, y, true
}
