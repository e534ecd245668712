package controller

import (
	"strings"

	"ai-pitch-evaluator-be/internal/constant"
	"ai-pitch-evaluator-be/internal/dto"
	"ai-pitch-evaluator-be/internal/pkg/serverutils"
	"ai-pitch-evaluator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResultController interface {
	RegisterRoutes(r fiber.Router)
	Update(ctx *fiber.Ctx) error
	Leaderboard(ctx *fiber.Ctx) error
	Messages(ctx *fiber.Ctx) error
}

type resultController struct {
	service service.IResultService
}

func NewResultController(service service.IResultService) IResultController {
	return &resultController{service: service}
}

func (c *resultController) RegisterRoutes(r fiber.Router) {
	r.Post("/result_update", c.Update)
	r.Get("/leaderboard", c.Leaderboard)
	r.Get("/data_fetching", c.Messages)
	r.Post("/data_fetching", c.Messages)
}

func (c *resultController) Update(ctx *fiber.Ctx) error {
	var req dto.ResultUpdateRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	rec, err := c.service.Upsert(ctx.UserContext(), req.UserName, req.ToPatch())
	if err != nil {
		return serverutils.RespondError(ctx, err, constant.ResultUpdateError, true)
	}
	return ctx.JSON(dto.ResultUpdateResponse{Success: true, Data: rec})
}

func (c *resultController) Leaderboard(ctx *fiber.Ctx) error {
	entries, err := c.service.Leaderboard(ctx.UserContext())
	if err != nil {
		return serverutils.RespondError(ctx, err, constant.LeaderboardError, false)
	}
	return ctx.JSON(dto.LeaderboardResponse{Entries: entries, TotalCount: len(entries)})
}

// Messages reads userName from the query string, falling back to a JSON
// body. GET bodies are dropped by fasthttp, so body callers use POST.
func (c *resultController) Messages(ctx *fiber.Ctx) error {
	req := dto.DataFetchingRequest{UserName: strings.TrimSpace(ctx.Query("userName"))}
	if req.UserName == "" && len(ctx.Body()) > 0 {
		if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
			return err
		}
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	messages, err := c.service.GetMessages(ctx.UserContext(), req.UserName)
	if err != nil {
		return serverutils.RespondError(ctx, err, constant.DataFetchingError, false)
	}
	return ctx.JSON(dto.DataFetchingResponse{Messages: messages})
}
