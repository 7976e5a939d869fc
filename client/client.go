// Package client wraps one websocket connection to the other peer. Frames
// are decoded and validated on a read goroutine and handed over on a
// channel; outgoing messages are encoded by the caller and drained to the
// socket by a write goroutine, so neither direction ever blocks the game
// loop.
package client

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024

	SendQueueSize = 100
	inboxSize     = 64
)

var (
	ErrQueueFull = errors.New("send queue full")
	ErrClosed    = errors.New("connection closed")
)

// EventKind is a connection lifecycle change.
type EventKind int

const (
	EventOpen EventKind = iota
	EventClose
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventError:
		return "error"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event reports a lifecycle change. Err is set for EventError.
type Event struct {
	Kind EventKind
	Err  error
}

// Client is one end of a peer connection.
type Client struct {
	Conn   *websocket.Conn
	ID     string
	RoomID string
	Side   field.Side // side the remote peer plays

	codec      protocol.Codec
	frameType  int
	sendQueue  chan []byte
	inbox      chan protocol.Message
	events     chan Event
	done       chan struct{}
	writerDone chan struct{}
	started    bool
	closeOnce  sync.Once
	startOnce  sync.Once
}

// New wraps an established connection. Call Start to begin pumping.
func New(conn *websocket.Conn, codec protocol.Codec, id string) *Client {
	frameType := websocket.TextMessage
	if codec.Binary() {
		frameType = websocket.BinaryMessage
	}
	return &Client{
		Conn:       conn,
		ID:         id,
		codec:      codec,
		frameType:  frameType,
		sendQueue:  make(chan []byte, SendQueueSize),
		inbox:      make(chan protocol.Message, inboxSize),
		events:     make(chan Event, 4),
		done:       make(chan struct{}),
		writerDone: make(chan struct{}),
	}
}

// Codec returns the codec frames are encoded with.
func (c *Client) Codec() protocol.Codec {
	return c.codec
}

// Start launches the read and write pumps and reports EventOpen.
func (c *Client) Start() {
	c.startOnce.Do(func() {
		c.started = true
		c.emit(Event{Kind: EventOpen})
		go c.writePump()
		go c.readPump()
	})
}

// Send encodes m and queues it for the write pump. It never blocks: a full
// queue drops the message and returns ErrQueueFull.
func (c *Client) Send(m protocol.Message) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	data, err := c.codec.Marshal(&m)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", m.Type, err)
	}

	select {
	case c.sendQueue <- data:
		return nil
	default:
		log.Printf("Dropping %s message, send queue full for client %s", m.Type, c.ID)
		return ErrQueueFull
	}
}

// Messages delivers decoded, validated inbound messages.
func (c *Client) Messages() <-chan protocol.Message {
	return c.inbox
}

// Events delivers lifecycle changes.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Done is closed once the connection is closed from either side.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close flushes whatever is still queued, sends a close frame and tears
// the connection down. It is safe to call more than once and from any
// goroutine.
func (c *Client) Close() error {
	return c.shutdown(true)
}

func (c *Client) shutdown(flush bool) error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		if flush && c.started {
			select {
			case <-c.writerDone:
			case <-time.After(writeWait):
			}
		}
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		// best effort; the peer may already be gone
		_ = c.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		err = c.Conn.Close()
	})
	return err
}

func (c *Client) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		log.Printf("Dropping %s event for client %s", ev.Kind, c.ID)
	}
}

func (c *Client) readPump() {
	defer c.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			c.readFailed(err)
			return
		}

		msg, err := protocol.Decode(c.codec, data)
		if err != nil {
			log.Printf("Discarding frame from client %s: %v", c.ID, err)
			continue
		}

		select {
		case c.inbox <- msg:
		case <-c.done:
			return
		}
	}
}

func (c *Client) readFailed(err error) {
	select {
	case <-c.done:
		// closed locally
		c.emit(Event{Kind: EventClose})
		return
	default:
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Printf("Client %s closed the connection", c.ID)
		c.emit(Event{Kind: EventClose})
		return
	}
	log.Printf("Error reading from client %s: %v", c.ID, err)
	c.emit(Event{Kind: EventError, Err: err})
	c.emit(Event{Kind: EventClose})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.writerDone)
	}()

	for {
		select {
		case <-c.done:
			c.drain()
			return
		case msg := <-c.sendQueue:
			if err := c.write(msg); err != nil {
				log.Printf("Write error for client %s: %v", c.ID, err)
				go c.shutdown(false)
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Printf("Ping error for client %s: %v", c.ID, err)
				go c.shutdown(false)
				return
			}
		}
	}
}

func (c *Client) write(msg []byte) error {
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(c.frameType, msg)
}

// drain writes out what was queued before Close.
func (c *Client) drain() {
	for {
		select {
		case msg := <-c.sendQueue:
			if err := c.write(msg); err != nil {
				return
			}
		default:
			return
		}
	}
}
