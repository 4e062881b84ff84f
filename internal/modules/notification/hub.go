package notification

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// AlertHub fans operator alerts out to every connected back-office session.
type AlertHub struct {
	connections map[string]*websocket.Conn
	mutex       sync.RWMutex
}

type Alert struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func NewAlertHub() *AlertHub {
	return &AlertHub{
		connections: make(map[string]*websocket.Conn),
	}
}

func (h *AlertHub) Register(userID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[userID]; exists && old != nil {
		_ = old.Close()
	}
	h.connections[userID] = conn
}

func (h *AlertHub) Unregister(userID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[userID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, userID)
	}
}

// Broadcast sends the alert to everyone online and returns how many
// sessions received it. Dead connections are dropped on write failure.
func (h *AlertHub) Broadcast(alert Alert) int {
	h.mutex.RLock()
	targets := make(map[string]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		targets[id] = conn
	}
	h.mutex.RUnlock()

	delivered := 0
	for id, conn := range targets {
		if err := conn.WriteJSON(alert); err != nil {
			h.Unregister(id)
			continue
		}
		delivered++
	}
	return delivered
}

func (h *AlertHub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.connections)
}

func (h *AlertHub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}
