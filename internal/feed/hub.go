// Package feed broadcasts recruitment activity to connected admin sockets.
package feed

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	sendBuffer = 32
)

type EventType string

const (
	EventSubmitted   EventType = "response.submitted"
	EventReviewed    EventType = "response.reviewed"
	EventDeleted     EventType = "response.deleted"
	EventFormDeleted EventType = "form.deleted"
)

type Event struct {
	Type       EventType `json:"type"`
	FormID     string    `json:"formId"`
	ResponseID string    `json:"responseId,omitempty"`
	Status     string    `json:"status,omitempty"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(e Event)
}

type Nop struct{}

func (Nop) Publish(Event) {}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub fans events out to every connected socket. Publish never blocks: a
// client whose buffer is full is disconnected.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- e:
		default:
			logger.Log.Warn("feed client too slow, dropping", zap.String("remote", c.conn.RemoteAddr().String()))
			h.removeLocked(c)
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve pumps events to conn until the peer goes away. It blocks.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan Event, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	done := make(chan struct{})
	go h.readPump(c, done)
	h.writePump(c, done)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump only handles control frames; admins never send data.
func (h *Hub) readPump(c *client, done chan<- struct{}) {
	defer close(done)
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.remove(c)
		_ = c.conn.Close()
	}()

	for {
		select {
		case e, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(e); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
