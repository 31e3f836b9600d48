package activity

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub keeps one websocket connection per admin user and fans events out
// to all of them. Broadcast never blocks a request path: a connection
// that errors is dropped on the spot.
type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[userID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[userID] = conn
}

// Unregister removes conn only while it is still the mapped connection
// for the user. Cleanup of a replaced connection must not tear down its
// successor.
func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	current, exists := h.connections[userID]
	if !exists || current != conn {
		return
	}
	_ = current.Close()
	delete(h.connections, userID)
}

func (h *Hub) Broadcast(evt Event) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn == nil {
			delete(h.connections, userID)
			continue
		}
		if err := conn.WriteJSON(evt); err != nil {
			_ = conn.Close()
			delete(h.connections, userID)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}
