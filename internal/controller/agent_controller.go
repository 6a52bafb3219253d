package controller

import (
	"errors"
	"io"

	"civic-voice-be/internal/dto"
	"civic-voice-be/internal/pkg/serverutils"
	"civic-voice-be/internal/service"
	"civic-voice-be/pkg/rag/executor"

	"github.com/gofiber/fiber/v2"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Voice(ctx *fiber.Ctx) error
	DraftReport(ctx *fiber.Ctx) error
}

type agentController struct {
	service service.IAgentService
}

func NewAgentController(service service.IAgentService) IAgentController {
	return &agentController{service: service}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agent/v1")
	h.Post("/query", c.Query)
	h.Post("/voice", c.Voice)
	h.Post("/report-draft", c.DraftReport)
}

func (c *agentController) Query(ctx *fiber.Ctx) error {
	var req dto.TextQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Query(ctx.UserContext(), &req)
	if errors.Is(err, executor.ErrEmptyQuery) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Query resolved", res))
}

// Voice accepts multipart form data: an "audio" file and an optional
// "language" code. A request without audio is answered with status
// no_audio rather than an error.
func (c *agentController) Voice(ctx *fiber.Ctx) error {
	var audio []byte
	if file, err := ctx.FormFile("audio"); err == nil {
		f, err := file.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unreadable audio file")
		}
		defer f.Close()

		audio, err = io.ReadAll(f)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unreadable audio file")
		}
	}

	res, err := c.service.Voice(ctx.UserContext(), audio, ctx.FormValue("language"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Voice query processed", res))
}

func (c *agentController) DraftReport(ctx *fiber.Ctx) error {
	var req dto.ReportDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.DraftReport(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Report draft", res))
}
