// Package spectate fans game frames out to WebSocket spectators.
package spectate

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

// Frame is one game state pushed to spectators.
type Frame struct {
	Session  string         `json:"session"`
	Player   string         `json:"player,omitempty"`
	Mode     string         `json:"mode"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	CellSize int            `json:"cell_size"`
	State    snake.Snapshot `json:"state"`
}

type client struct {
	ws      *websocket.Conn
	send    chan []byte
	session string // Empty watches every session
}

// Hub tracks spectator connections. Publish never blocks: a client whose
// queue is full misses the frame.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool

	published atomic.Int64
	dropped   atomic.Int64

	upgrader websocket.Upgrader

	// readTimeout drops a spectator that stops answering pings.
	// Pings go out at 9/10 of it.
	readTimeout time.Duration
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*client]struct{}),
		readTimeout: readTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Publish queues f for every spectator watching its session.
func (h *Hub) Publish(f Frame) {
	msg, err := json.Marshal(f)
	if err != nil {
		return
	}
	h.published.Add(1)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.session != "" && c.session != f.Session {
			continue
		}
		select {
		case c.send <- msg:
		default:
			h.dropped.Add(1)
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a WebSocket and registers the
// spectator. The optional session query parameter narrows the feed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, "spectator feed closed", http.StatusServiceUnavailable)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{
		ws:      ws,
		send:    make(chan []byte, sendBuffer),
		session: r.URL.Query().Get("session"),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		ws.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

// remove unregisters c and closes its queue, which stops the write pump.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) writePump(c *client) {
	ping := time.NewTicker(h.readTimeout * 9 / 10)
	defer func() {
		ping.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.remove(c)
				return
			}

		case <-ping.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

// readPump discards client messages and notices disconnects. Spectators
// never write, so pongs are what keep the read deadline moving.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	c.ws.SetReadLimit(1 << 10)
	c.ws.SetReadDeadline(time.Now().Add(h.readTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(h.readTimeout))
		return nil
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(h.readTimeout))
	}
}

// Stats returns counters for the stats endpoint.
func (h *Hub) Stats() map[string]any {
	return map[string]any{
		"clients":   h.Clients(),
		"published": h.published.Load(),
		"dropped":   h.dropped.Load(),
	}
}

// Handler serves the feed on /ws and the counters on /stats.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h.Stats())
	})
	return mux
}

// Close disconnects every spectator and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
