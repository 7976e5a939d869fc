// Package room tracks the matches a host has open and hands the guest that
// joins one over to the waiting host.
package room

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/mo-shahab/go-hockey/client"
)

// MaxPlayers is the host plus one guest.
const MaxPlayers = 2

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

// Room is one open match. The host is implicit; Clients holds the remote
// peers that joined.
type Room struct {
	ID         string
	HostID     string
	Codec      string
	MaxPlayers int
	Clients    map[string]*client.Client

	arrived chan *client.Client
	mu      sync.Mutex
}

// Players counts the host and every joined client.
func (r *Room) Players() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return 1 + len(r.Clients)
}

// Full reports whether another client would exceed MaxPlayers.
func (r *Room) Full() bool {
	return r.Players() >= r.MaxPlayers
}

// WaitForGuest blocks until a client joins or ctx ends.
func (r *Room) WaitForGuest(ctx context.Context) (*client.Client, error) {
	select {
	case c := <-r.arrived:
		return c, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for guest in room %s: %w", r.ID, ctx.Err())
	}
}

// Manager holds every open room.
type Manager struct {
	Rooms map[string]*Room
	mu    sync.Mutex
}

func NewManager() *Manager {
	return &Manager{
		Rooms: make(map[string]*Room),
	}
}

func generateRoomID() string {
	return uuid.New().String()[:6]
}

// Create opens a room for hostID whose guest must speak codec, and returns
// it. Room ids are six characters of a random uuid.
func (m *Manager) Create(hostID, codec string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := generateRoomID()
	for m.Rooms[id] != nil {
		id = generateRoomID()
	}

	r := &Room{
		ID:         id,
		HostID:     hostID,
		Codec:      codec,
		MaxPlayers: MaxPlayers,
		Clients:    make(map[string]*client.Client),
		arrived:    make(chan *client.Client, MaxPlayers),
	}
	m.Rooms[id] = r
	log.Printf("Created room %s for host %s (codec %s)", id, hostID, codec)
	return r
}

// Get returns the room with the given id.
func (m *Manager) Get(roomID string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.Rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRoomNotFound, roomID)
	}
	return r, nil
}

// Join adds c to the room and wakes the waiting host.
func (m *Manager) Join(roomID string, c *client.Client) error {
	r, err := m.Get(roomID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if 1+len(r.Clients) >= r.MaxPlayers {
		return fmt.Errorf("%w: %q", ErrRoomFull, roomID)
	}
	r.Clients[c.ID] = c
	c.RoomID = roomID
	r.arrived <- c
	log.Printf("Client %s joined room %s", c.ID, roomID)
	return nil
}

// RemoveClient drops a client from its room. The seat opens up again.
func (m *Manager) RemoveClient(roomID, clientID string) {
	r, err := m.Get(roomID)
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Clients, clientID)
}

// Close removes the room and closes every client in it.
func (m *Manager) Close(roomID string) {
	m.mu.Lock()
	r, ok := m.Rooms[roomID]
	delete(m.Rooms, roomID)
	m.mu.Unlock()
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.Clients {
		c.Close()
		delete(r.Clients, id)
	}
	log.Printf("Room %s has been closed", roomID)
}
