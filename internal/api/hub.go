package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pable/tennisdash/internal/model"
)

const writeWait = 5 * time.Second

// Message is pushed to every connected browser after a refresh attempt.
type Message struct {
	Type       string     `json:"type"` // "refresh" or "error"
	SnapshotID string     `json:"snapshot_id,omitempty"`
	FetchedAt  *time.Time `json:"fetched_at,omitempty"`
	Matches    int        `json:"matches,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Hub tracks websocket clients and broadcasts refresh notifications.
// It implements engine.Renderer.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

// client is one websocket connection. gorilla allows a single concurrent
// writer, so writes go through mu.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// NewHub creates a Hub. Origins are checked against allowed; a request with no
// Origin header, or one from the serving host, is always accepted.
func NewHub(logger *slog.Logger, allowed []string) *Hub {
	origins := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		origins[o] = struct{}{}
	}
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
				return true
			}
			_, ok := origins[origin]
			return ok
		}},
	}
}

// ServeWS upgrades the connection and holds it until the client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("ws upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("ws connect", "remote", r.RemoteAddr, "clients", n)

	// Clients never send anything meaningful; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
}

// snapshot copies the client set so writes happen without holding h.mu.
func (h *Hub) snapshot() []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

// Broadcast sends msg to every client concurrently, dropping the ones that
// fail. It returns once every write has finished or timed out.
func (h *Hub) Broadcast(msg Message) {
	var wg sync.WaitGroup
	for _, c := range h.snapshot() {
		wg.Add(1)
		go func(c *client) {
			defer wg.Done()
			if err := c.send(msg); err != nil {
				h.logger.Debug("ws write failed", "error", err)
				h.remove(c)
			}
		}(c)
	}
	wg.Wait()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()
	for c := range clients {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = c.conn.Close()
	}
}

func (h *Hub) OnRefresh(snap model.Snapshot) {
	h.Broadcast(Message{
		Type:       "refresh",
		SnapshotID: snap.ID,
		FetchedAt:  &snap.FetchedAt,
		Matches:    len(snap.Matches),
	})
}

func (h *Hub) OnError(err error) {
	h.Broadcast(Message{Type: "error", Error: err.Error()})
}
