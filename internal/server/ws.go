package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// hubBuffer is how many pending messages the hub holds before dropping.
const hubBuffer = 16

const writeWait = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Hub fans live state out to websocket clients. Publish never blocks the
// caller: when clients fall behind, messages are dropped.
type Hub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
	send    chan []byte
	done    chan struct{}
	once    sync.Once
}

// NewHub creates a Hub and starts its broadcast goroutine.
func NewHub() *Hub {
	h := &Hub{
		clients: make(map[*websocket.Conn]bool),
		send:    make(chan []byte, hubBuffer),
		done:    make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues v, encoded as JSON, for every client. It reports whether
// the message was queued.
func (h *Hub) Publish(v any) bool {
	if h.Clients() == 0 {
		return false
	}

	msg, err := json.Marshal(v)
	if err != nil {
		log.Printf("encode live message: %v", err)
		return false
	}

	select {
	case h.send <- msg:
		return true
	default:
		return false
	}
}

// Close stops the broadcast goroutine and disconnects every client.
func (h *Hub) Close() {
	h.once.Do(func() {
		close(h.done)

		h.mu.Lock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
		h.mu.Unlock()
	})
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast writes queued messages to all connected clients.
func (h *Hub) broadcast() {
	for {
		select {
		case <-h.done:
			return
		case msg := <-h.send:
			h.mu.RLock()
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					conn.Close()
				}
			}
			h.mu.RUnlock()
		}
	}
}
