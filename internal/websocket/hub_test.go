package websocket

import (
	"testing"
	"time"

	"civic-voice-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHubTracksSessions(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())
	go hub.Run()

	a := &Client{Hub: hub, SessionID: uuid.New(), Send: make(chan []byte, 1)}
	b := &Client{Hub: hub, SessionID: uuid.New(), Send: make(chan []byte, 1)}

	hub.register <- a
	hub.register <- b
	assert.Eventually(t, func() bool { return hub.Active() == 2 }, time.Second, 5*time.Millisecond)

	hub.unregister <- a
	assert.Eventually(t, func() bool { return hub.Active() == 1 }, time.Second, 5*time.Millisecond)

	_, open := <-a.Send
	assert.False(t, open)
}

func TestErrorFrame(t *testing.T) {
	assert.JSONEq(t, `{"status":"error","error":"boom"}`, string(errorFrame("boom")))
}
