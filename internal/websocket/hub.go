package websocket

import (
	"sync"

	"civic-voice-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub tracks open voice sessions.
type Hub struct {
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = client
			active := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Voice session opened", map[string]interface{}{
				"session_id": client.SessionID,
				"active":     active,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.SessionID]; ok {
				delete(h.clients, client.SessionID)
				close(client.Send)
			}
			active := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Voice session closed", map[string]interface{}{
				"session_id": client.SessionID,
				"active":     active,
			})
		}
	}
}

// Active is the number of open sessions.
func (h *Hub) Active() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
