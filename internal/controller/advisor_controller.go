package controller

import (
	"trade-advisor-be/internal/dto"
	"trade-advisor-be/internal/pkg/serverutils"
	"trade-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdvisorController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Context(ctx *fiber.Ctx) error
	Moderate(ctx *fiber.Ctx) error
}

type advisorController struct {
	advisorService service.IAdvisorService
	auth           fiber.Handler
}

func NewAdvisorController(advisorService service.IAdvisorService, auth fiber.Handler) IAdvisorController {
	return &advisorController{
		advisorService: advisorService,
		auth:           auth,
	}
}

func (c *advisorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/advisor/v1")
	h.Use(c.auth, serverutils.RequestMetaMiddleware)
	h.Post("chat", c.Chat)
	h.Post("context", c.Context)
	h.Post("moderate", c.Moderate)
}

func (c *advisorController) Chat(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.AdvisorChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisorService.Reply(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reply", res))
}

func (c *advisorController) Context(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.AdvisorChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisorService.PreviewContext(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success assemble context", res))
}

func (c *advisorController) Moderate(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.ModerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisorService.Moderate(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success moderate", res))
}
