package controller

import (
	"errors"

	"civic-voice-be/internal/dto"
	"civic-voice-be/internal/pkg/serverutils"
	"civic-voice-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	service   service.IKnowledgeService
	jwtSecret string
}

func NewKnowledgeController(service service.IKnowledgeService, jwtSecret string) IKnowledgeController {
	return &knowledgeController{service: service, jwtSecret: jwtSecret}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/knowledge/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Post("/reindex", c.Reindex)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *knowledgeController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all articles", res))
}

func (c *knowledgeController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateArticleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return mapKnowledgeError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create article", res))
}

func (c *knowledgeController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Article not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show article", res))
}

func (c *knowledgeController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateArticleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return mapKnowledgeError(err)
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Article not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update article", res))
}

func (c *knowledgeController) Delete(ctx *fiber.Ctx) error {
	deleted, err := c.service.Delete(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "Article not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete article", nil))
}

func (c *knowledgeController) Reindex(ctx *fiber.Ctx) error {
	res, err := c.service.Reindex(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Reindex finished", res))
}

func mapKnowledgeError(err error) error {
	if errors.Is(err, service.ErrArticleTitleRequired) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
