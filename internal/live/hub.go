package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans committed activity events out to connected dashboard clients.
// Broadcasting is best-effort and happens only after the underlying
// transaction has committed; the feed is push-only, clients re-read the
// activity endpoint for history.
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan models.ActivityLog
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan models.ActivityLog, 64),
	}
}

// Run drains the broadcast channel and writes to all clients. Call in a
// goroutine at startup.
func (h *Hub) Run() {
	for activity := range h.broadcast {
		payload, err := json.Marshal(activity)
		if err != nil {
			continue
		}

		h.clientsMux.Lock()
		for conn := range h.clients {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.clientsMux.Unlock()
	}
}

// Publish queues an activity event for broadcast. Safe on a nil hub and
// never blocks the caller: if the queue is full the event is dropped.
func (h *Hub) Publish(activity models.ActivityLog) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- activity:
	default:
	}
}

// ServeWS upgrades the request and registers the client
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Live] websocket upgrade failed: %v", err)
		return
	}

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	// Reader loop exists only to detect disconnects
	go func() {
		defer func() {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
