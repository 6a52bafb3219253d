package handler

import (
	"context"
	"encoding/json"

	"civic-voice-be/internal/pkg/logger"
	"civic-voice-be/internal/service"
	internalWS "civic-voice-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// VoiceHandler serves /ws/voice. Each binary frame is one voice query and
// each reply is the same JSON the REST voice endpoint returns.
type VoiceHandler struct {
	service service.IAgentService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewVoiceHandler(service service.IAgentService, hub *internalWS.Hub, log logger.ILogger) *VoiceHandler {
	return &VoiceHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

func (h *VoiceHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/voice", h.ServeWs)
}

func (h *VoiceHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	language := c.Query("language")
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("VoiceHandler", "Starting voice session", map[string]interface{}{"language": language})
		internalWS.ServeVoice(context.Background(), h.hub, conn, language, h.answer)
	})(c)
}

func (h *VoiceHandler) answer(ctx context.Context, audio []byte, language string) ([]byte, error) {
	res, err := h.service.Voice(ctx, audio, language)
	if err != nil {
		return nil, err
	}
	return json.Marshal(res)
}
