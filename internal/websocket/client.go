package websocket

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// one voice query per binary frame
	maxMessageSize = 10 * 1024 * 1024
)

// QueryFunc answers one voice query with the JSON reply to send back.
type QueryFunc func(ctx context.Context, audio []byte, language string) ([]byte, error)

// controlMessage is a text frame that changes session settings.
type controlMessage struct {
	Language *string `json:"language"`
}

// Client is one voice socket. Frames are answered in arrival order.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	SessionID uuid.UUID

	// Language hint for every following query; empty means detect.
	Language string

	// Buffered channel of outbound replies.
	Send chan []byte

	query QueryFunc
}

// readPump reads frames and answers them until the peer goes away. Leaving
// cancels any query still running.
func (c *Client) readPump(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		kind, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("VoiceSocket", "Unexpected close", map[string]interface{}{
					"session_id": c.SessionID,
					"error":      err.Error(),
				})
			}
			return
		}

		switch kind {
		case websocket.TextMessage:
			c.applyControl(data)
		case websocket.BinaryMessage:
			c.answer(ctx, data)
		}
	}
}

func (c *Client) applyControl(data []byte) {
	var msg controlMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.enqueue(errorFrame("invalid control message"))
		return
	}
	if msg.Language != nil {
		c.Language = strings.TrimSpace(*msg.Language)
	}
}

func (c *Client) answer(ctx context.Context, audio []byte) {
	reply, err := c.query(ctx, audio, c.Language)
	if err != nil {
		c.Hub.logger.Error("VoiceSocket", "Voice query failed", map[string]interface{}{
			"session_id": c.SessionID,
			"error":      err.Error(),
		})
		c.enqueue(errorFrame("voice query failed"))
		return
	}
	c.enqueue(reply)
}

// enqueue drops the reply when the peer is too slow to drain its queue.
func (c *Client) enqueue(msg []byte) {
	select {
	case c.Send <- msg:
	default:
		c.Hub.logger.Warn("VoiceSocket", "Send buffer full, dropping reply", map[string]interface{}{"session_id": c.SessionID})
	}
}

// writePump sends replies, one per frame, and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func errorFrame(message string) []byte {
	b, _ := json.Marshal(map[string]string{"status": "error", "error": message})
	return b
}
