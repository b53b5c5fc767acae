package controller

import (
	"ai-websearch-be/internal/pkg/serverutils"
	"ai-websearch-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHistoryController interface {
	GetSessionHistory(ctx *fiber.Ctx) error
	SearchSimilar(ctx *fiber.Ctx) error
}

type historyController struct {
	historyService service.IHistoryService
}

func NewHistoryController(historyService service.IHistoryService) IHistoryController {
	return &historyController{
		historyService: historyService,
	}
}

// GetSessionHistory returns the ordered stage events recorded for a session.
func (c *historyController) GetSessionHistory(ctx *fiber.Ctx) error {
	sessionID, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.historyService.GetSessionHistory(ctx.Context(), sessionID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session history", res))
}

// SearchSimilar returns past answers ranked by query similarity.
func (c *historyController) SearchSimilar(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing query param 'q'"))
	}
	limit := ctx.QueryInt("k", 5)

	res, err := c.historyService.SearchSimilar(ctx.Context(), query, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search similar answers", res))
}
