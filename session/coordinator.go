package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mo-shahab/go-hockey/client"
	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
	"github.com/mo-shahab/go-hockey/input"
	"github.com/mo-shahab/go-hockey/protocol"
)

// Config holds the frame loop settings shared by both roles.
type Config struct {
	Name        string // log prefix, e.g. "host"
	FrameRate   int
	FollowSpeed float64
	WinScore    int
}

func DefaultConfig() Config {
	return Config{
		Name:        "session",
		FrameRate:   60,
		FollowSpeed: 0.5,
		WinScore:    7,
	}
}

// Coordinator runs the frame loop. It is the only goroutine that touches
// game state; the link's goroutines hand it messages over channels.
type Coordinator struct {
	role      Role
	link      Link
	input     input.Source
	observers []Observer
	listeners []EventObserver
	cfg       Config

	seq    protocol.Sequencer
	filter protocol.SeqFilter
	frames uint64
}

// New wires a role to a link. Observers that also implement EventObserver
// receive game events as well.
func New(role Role, link Link, src input.Source, cfg Config, observers ...Observer) *Coordinator {
	if src == nil {
		src = input.Idle{}
	}
	c := &Coordinator{
		role:  role,
		link:  link,
		input: src,
		cfg:   cfg,
	}
	for _, o := range observers {
		c.AddObserver(o)
	}
	return c
}

// AddObserver registers o before Run.
func (c *Coordinator) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
	if l, ok := o.(EventObserver); ok {
		c.listeners = append(c.listeners, l)
	}
}

// AddEventObserver registers an event-only observer before Run.
func (c *Coordinator) AddEventObserver(l EventObserver) {
	c.listeners = append(c.listeners, l)
}

// Send stamps m with the next sequence number for its kind and hands it to
// the link. Failures are logged; a dropped frame is superseded by the next.
func (c *Coordinator) Send(m protocol.Message) {
	c.seq.Stamp(&m)
	if err := c.link.Send(m); err != nil && !errors.Is(err, client.ErrQueueFull) {
		log.Printf("[%s] Failed to send %s message: %v", c.cfg.Name, m.Type, err)
	}
}

// Announce passes ev to the local event observers.
func (c *Coordinator) Announce(ev protocol.GameEvent) {
	switch ev.Kind {
	case protocol.EventStart:
		log.Printf("[%s] Match started", c.cfg.Name)
	case protocol.EventGoal:
		log.Printf("[%s] Goal! %s player scored", c.cfg.Name, ev.Side.Opponent())
	}
	for _, l := range c.listeners {
		l.OnEvent(ev)
	}
}

// Run plays until a side reaches the win score, the peer goes away or ctx
// ends. The returned Result always holds the last known score.
func (c *Coordinator) Run(ctx context.Context) (Result, error) {
	rate := c.cfg.FrameRate
	if rate <= 0 {
		rate = DefaultConfig().FrameRate
	}
	frame := time.Second / time.Duration(rate)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	log.Printf("[%s] Playing %s side at %d fps, first to %d", c.cfg.Name, c.role.Side(), rate, c.cfg.WinScore)
	c.role.Begin(c)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return c.result(), ctx.Err()

		case ev := <-c.link.Events():
			switch ev.Kind {
			case client.EventOpen:
				log.Printf("[%s] Link open", c.cfg.Name)
			case client.EventError:
				log.Printf("[%s] Link error: %v", c.cfg.Name, ev.Err)
			case client.EventClose:
				log.Printf("[%s] Peer left the match", c.cfg.Name)
				return c.result(), ErrPeerGone
			}

		case m := <-c.link.Messages():
			c.Receive(m)
			if r := c.result(); r.Winner != field.SideNone {
				return c.finish(r), nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			c.Step(dt)
			if r := c.result(); r.Winner != field.SideNone {
				return c.finish(r), nil
			}
		}
	}
}

// Receive hands an inbound message to the role unless it is incomplete or
// stale.
func (c *Coordinator) Receive(m protocol.Message) {
	if err := m.Validate(); err != nil {
		log.Printf("[%s] Dropping message: %v", c.cfg.Name, err)
		return
	}
	if !c.filter.Accept(m) {
		return
	}
	c.role.Receive(m, c)
}

// Step runs a single frame: the local paddle chases its input target and
// is reported to the peer, the role advances, and observers are notified.
func (c *Coordinator) Step(dt float64) game.CollisionResult {
	side := c.role.Side()
	if x, y, ok := c.input.Target(c.role.View(), side); ok {
		c.role.MoveOwn(x, y, c.cfg.FollowSpeed)
	}
	if own, ok := c.role.View().Paddle(side); ok {
		c.Send(protocol.NewPaddleMessage(side, own.X, own.Y))
	}

	result := c.role.Frame(dt, c)
	c.frames++

	view := c.role.View()
	for _, o := range c.observers {
		o.Observe(result, view)
	}
	return result
}

// Frames counts the frames stepped so far.
func (c *Coordinator) Frames() uint64 {
	return c.frames
}

func (c *Coordinator) result() Result {
	s := c.role.View().Scores
	return Result{Scores: s, Winner: s.Winner(c.cfg.WinScore)}
}

func (c *Coordinator) finish(r Result) Result {
	log.Printf("[%s] %s player wins! Final score: %d-%d", c.cfg.Name, r.Winner, r.Scores.Left, r.Scores.Right)
	return r
}
