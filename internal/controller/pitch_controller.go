package controller

import (
	"ai-pitch-evaluator-be/internal/constant"
	"ai-pitch-evaluator-be/internal/dto"
	"ai-pitch-evaluator-be/internal/pkg/apperr"
	"ai-pitch-evaluator-be/internal/pkg/serverutils"
	"ai-pitch-evaluator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPitchController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	VCAnalyze(ctx *fiber.Ctx) error
	Helper(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	Readiness(ctx *fiber.Ctx) error
}

type pitchController struct {
	service service.IPitchService
}

func NewPitchController(service service.IPitchService) IPitchController {
	return &pitchController{service: service}
}

func (c *pitchController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Post("/vc_analyzer", c.VCAnalyze)
	r.Post("/helper", c.Helper)
	r.Post("/analyzer", c.Analyze)
	r.Post("/readiness", c.Readiness)
}

// Chat answers a failed extraction with the apology envelope, never a
// partial analysis.
func (c *pitchController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.UserContext(), req.Messages)
	if err != nil {
		if apperr.Is(err, apperr.KindValidation) {
			return err
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ChatResponse{
			Analysis: nil,
			Message:  constant.ChatApologyMessage,
		})
	}

	return ctx.JSON(dto.ChatResponse{Analysis: &res.Analysis, Message: res.Message})
}

func (c *pitchController) VCAnalyze(ctx *fiber.Ctx) error {
	var req dto.VCAnalyzerRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	analysis, err := c.service.Score(ctx.UserContext(), *req.AnalysisInput)
	if err != nil {
		return serverutils.RespondError(ctx, err, constant.VCAnalyzerErrorMessage, false)
	}
	return ctx.JSON(dto.VCAnalyzerResponse{Analysis: analysis})
}

func (c *pitchController) Helper(ctx *fiber.Ctx) error {
	var req dto.HelperRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	suggestion, err := c.service.Suggest(ctx.UserContext(), *req.CurrentStatus, req.UserPrompt)
	if err != nil {
		return serverutils.RespondError(ctx, err, constant.HelperErrorMessage, false)
	}
	return ctx.JSON(dto.HelperResponse{Suggestion: suggestion})
}

func (c *pitchController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzerRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	verdict, err := c.service.Verdict(ctx.UserContext(), req.UserIdea)
	if err != nil {
		return serverutils.RespondError(ctx, err, constant.AnalyzerErrorMessage, false)
	}
	return ctx.JSON(dto.AnalyzerResponse{Verdict: verdict})
}

func (c *pitchController) Readiness(ctx *fiber.Ctx) error {
	var req dto.ReadinessRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	return ctx.JSON(c.service.Readiness(*req.AnalysisInput, req.Override))
}
