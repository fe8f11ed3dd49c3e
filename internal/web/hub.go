package web

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ytget/tunevault/internal/util"
)

// Hub fans session events out to connected websocket clients. Writes happen
// on the broadcasting goroutine; a failed write drops the client.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// Register adds a client connection
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

// Unregister removes and closes a client connection
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] {
		delete(h.clients, conn)
		if err := conn.Close(); err != nil {
			util.DebugLog("[ws] close: %v", err)
		}
	}
}

// Broadcast sends a JSON message to every connected client
func (h *Hub) Broadcast(v interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(v); err != nil {
			util.DebugLog("[ws] client disconnected: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
