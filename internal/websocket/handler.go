package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeVoice runs one voice session until the peer disconnects.
func ServeVoice(ctx context.Context, hub *Hub, c *websocket.Conn, language string, query QueryFunc) {
	client := &Client{
		Hub:       hub,
		Conn:      c,
		SessionID: uuid.New(),
		Language:  language,
		Send:      make(chan []byte, 16),
		query:     query,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump(ctx)
}
