// Package wsserver connects the two peers. The host serves a websocket
// endpoint and opens a room; the guest dials it with the room id.
package wsserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mo-shahab/go-hockey/client"
	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/protocol"
	"github.com/mo-shahab/go-hockey/room"
)

// Path is where the host serves the peer endpoint.
const Path = "/ws"

// Handler upgrades guest connections and seats them in rooms.
type Handler struct {
	Upgrader    websocket.Upgrader
	RoomManager *room.Manager
}

func NewHandler() *Handler {
	return &Handler{
		Upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		RoomManager: room.NewManager(),
	}
}

// OpenRoom creates a room the host will play in. The guest must use the
// same codec.
func (h *Handler) OpenRoom(hostID string, codec protocol.Codec) *room.Room {
	return h.RoomManager.Create(hostID, codec.Name())
}

// ServeHTTP handles GET /ws?room=<id>&codec=<name>.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	codecName := r.URL.Query().Get("codec")
	if codecName == "" {
		codecName = protocol.DefaultCodec
	}

	rm, err := h.RoomManager.Get(roomID)
	if err != nil {
		log.Printf("Rejecting connection from %s: %v", r.RemoteAddr, err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if rm.Full() {
		log.Printf("Rejecting connection from %s: room %s is full", r.RemoteAddr, roomID)
		http.Error(w, room.ErrRoomFull.Error(), http.StatusConflict)
		return
	}
	if codecName != rm.Codec {
		log.Printf("Rejecting connection from %s: codec %q, room %s uses %q", r.RemoteAddr, codecName, roomID, rm.Codec)
		http.Error(w, fmt.Sprintf("room %s uses codec %q", roomID, rm.Codec), http.StatusBadRequest)
		return
	}
	codec, err := protocol.CodecByName(codecName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error %s when upgrading connection from %s", err, r.RemoteAddr)
		return
	}

	guest := client.New(conn, codec, conn.RemoteAddr().String())
	guest.Side = field.SideRight
	if err := h.RoomManager.Join(roomID, guest); err != nil {
		// lost a race for the last seat
		log.Printf("Rejecting client %s after upgrade: %v", guest.ID, err)
		guest.Close()
		return
	}
	go func() {
		<-guest.Done()
		h.Leave(guest)
	}()
}

// ListenAndServe serves the peer endpoint on addr until ctx ends.
func (h *Handler) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Host listening on ws://%s%s", addr, Path)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Leave frees the guest's seat so a new guest can join the room.
func (h *Handler) Leave(c *client.Client) {
	h.RoomManager.RemoveClient(c.RoomID, c.ID)
}

// Dial connects a guest to the host at addr (host:port) and joins roomID.
func Dial(ctx context.Context, addr, roomID string, codec protocol.Codec) (*client.Client, error) {
	u := url.URL{
		Scheme:   "ws",
		Host:     addr,
		Path:     Path,
		RawQuery: url.Values{"room": {roomID}, "codec": {codec.Name()}}.Encode(),
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("join room %s: %w", roomID, statusError(resp.StatusCode))
		}
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}

	c := client.New(conn, codec, "host@"+addr)
	c.RoomID = roomID
	c.Side = field.SideLeft
	return c, nil
}

// ErrCodecMismatch is returned by Dial when the room uses another codec.
var ErrCodecMismatch = errors.New("codec mismatch")

func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return room.ErrRoomNotFound
	case http.StatusConflict:
		return room.ErrRoomFull
	case http.StatusBadRequest:
		return ErrCodecMismatch
	}
	return fmt.Errorf("unexpected status %d", code)
}
