// Package session runs a match between the local player and the remote
// peer. One Coordinator owns the frame loop; the peer's role decides what
// a frame does. The host is the Authority and runs the physics; the guest
// is a Follower that interpolates toward what the authority sends.
package session

import (
	"errors"

	"github.com/mo-shahab/go-hockey/client"
	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
	"github.com/mo-shahab/go-hockey/protocol"
	"github.com/mo-shahab/go-hockey/scores"
)

// ErrPeerGone ends a match whose link closed or failed.
var ErrPeerGone = errors.New("peer disconnected")

// Link carries messages to and from the other peer. *client.Client is the
// websocket implementation.
type Link interface {
	Send(m protocol.Message) error
	Messages() <-chan protocol.Message
	Events() <-chan client.Event
	Close() error
}

// Observer is notified once per frame with what happened in the frame and
// the state to render. It must not hold on to or modify view.
type Observer interface {
	Observe(result game.CollisionResult, view game.Snapshot)
}

// EventObserver is notified of match starts and goals.
type EventObserver interface {
	OnEvent(ev protocol.GameEvent)
}

// Outbox is how a role talks to the rest of the session: Send goes to the
// peer, Announce goes to local event observers.
type Outbox interface {
	Send(m protocol.Message)
	Announce(ev protocol.GameEvent)
}

// Role is the part of a frame that differs between host and guest.
type Role interface {
	Side() field.Side
	// Begin runs once before the first frame.
	Begin(out Outbox)
	// MoveOwn moves the local paddle a fraction of the way to (x, y).
	MoveOwn(x, y, fraction float64)
	// Frame advances one frame. dt is in seconds.
	Frame(dt float64, out Outbox) game.CollisionResult
	// Receive applies one inbound message.
	Receive(m protocol.Message, out Outbox)
	// View is the state to render and to report to the peer.
	View() game.Snapshot
}

// Result is how a match ended.
type Result struct {
	Scores scores.Scores
	Winner field.Side
}
