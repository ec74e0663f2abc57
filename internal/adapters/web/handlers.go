package web

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"shinz/internal/access"
	"shinz/internal/command"
	"shinz/internal/domain"
	"shinz/internal/scheduler"
	"shinz/internal/usecases"
	"shinz/pkg/log"
)

// requestTimeout bounds every collaborator call made on behalf of one
// HTTP request.
const requestTimeout = 30 * time.Second

// Handlers contains the HTTP handlers for the bot's JSON API.
type Handlers struct {
	gate          *access.Gate
	runCommand    *usecases.RunCommandUseCase
	postHourly    *usecases.PostHourlyUseCase
	postGM        *usecases.PostGMUseCase
	replyMentions *usecases.ReplyMentionsUseCase
	insights      usecases.InsightsFetcher
	sched         *scheduler.Scheduler
}

// NewHandlers creates a Handlers instance.
func NewHandlers(
	gate *access.Gate,
	runCommand *usecases.RunCommandUseCase,
	postHourly *usecases.PostHourlyUseCase,
	postGM *usecases.PostGMUseCase,
	replyMentions *usecases.ReplyMentionsUseCase,
	insights usecases.InsightsFetcher,
	sched *scheduler.Scheduler,
) *Handlers {
	return &Handlers{
		gate:          gate,
		runCommand:    runCommand,
		postHourly:    postHourly,
		postGM:        postGM,
		replyMentions: replyMentions,
		insights:      insights,
		sched:         sched,
	}
}

func (h *Handlers) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// commandRequest is the POST /api/command body.
type commandRequest struct {
	Command string `json:"command"`
	DryRun  bool   `json:"dryRun"`
}

// PostCommand runs one free-text command.
func (h *Handlers) PostCommand(c *fiber.Ctx) error {
	var req commandRequest
	if err := c.BodyParser(&req); err != nil || req.Command == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": domain.ErrCommandRequired.Error(),
			"help":  command.HelpText(),
		})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.runCommand.Execute(ctx, req.Command, req.DryRun)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": h.gate.RestrictionMessage(),
			})
		}
		log.GlobalErrorCtx(ctx, "command failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	resp := fiber.Map{"ok": true, "action": result.Action, "posted": result.Posted}
	if result.Content != "" {
		resp["content"] = result.Content
	}
	if result.Err != "" {
		resp["error"] = result.Err
	}
	return c.JSON(resp)
}

// GetCommand returns the command help text.
func (h *Handlers) GetCommand(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"help": command.HelpText()})
}

// accessRequest is the POST /api/access body.
type accessRequest struct {
	Code string `json:"code"`
}

// SubmitAccessCode activates a grant for this process.
func (h *Handlers) SubmitAccessCode(c *fiber.Ctx) error {
	var req accessRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code required"})
	}

	if !h.gate.SetAccessCode(req.Code) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": domain.ErrInvalidAccessCode.Error(),
		})
	}

	stats := h.gate.UsageStats()
	return c.JSON(fiber.Map{
		"ok":         true,
		"accessType": stats.AccessType,
		"info":       h.gate.GrantInfo(req.Code),
	})
}

// ClearAccessCode returns the gate to the unauthenticated state.
func (h *Handlers) ClearAccessCode(c *fiber.Ctx) error {
	h.gate.Clear()
	return c.JSON(fiber.Map{"ok": true})
}

// AccessStats returns the current usage counters.
func (h *Handlers) AccessStats(c *fiber.Ctx) error {
	return c.JSON(h.gate.UsageStats())
}

// AccessCodes lists the known access codes.
func (h *Handlers) AccessCodes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"codes": h.gate.AvailableCodes()})
}

// AccessInfo describes one code's permissions.
func (h *Handlers) AccessInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"info": h.gate.GrantInfo(c.Params("code"))})
}

// Insights returns the current Shape topic hints. Gated on getData when a
// grant is active.
func (h *Handlers) Insights(c *fiber.Ctx) error {
	if !h.gate.CanPerformAction(domain.ActionGetData) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": h.gate.RestrictionMessage(),
		})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	hints, err := h.insights.FetchInsights(ctx, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"hints": hints})
}

// CronTweetHourly triggers the hourly update tweet.
func (h *Handlers) CronTweetHourly(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	status, err := h.postHourly.Execute(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": status})
}

// CronReplyMentions triggers the mention reply pass.
func (h *Handlers) CronReplyMentions(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	status, count, err := h.replyMentions.Execute(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if status == usecases.StatusReplied {
		return c.JSON(fiber.Map{"status": status, "count": count})
	}
	return c.JSON(fiber.Map{"status": status})
}

// CronGMTweet triggers the daily GM tweet.
func (h *Handlers) CronGMTweet(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	status, err := h.postGM.Execute(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": status})
}

// SchedulerStatus reports the task table.
func (h *Handlers) SchedulerStatus(c *fiber.Ctx) error {
	return c.JSON(h.sched.Status())
}

// schedulerRequest is the POST /api/scheduler body.
type schedulerRequest struct {
	Action string `json:"action"`
}

// SchedulerControl starts or stops the tick loop.
func (h *Handlers) SchedulerControl(c *fiber.Ctx) error {
	var req schedulerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "action required"})
	}

	switch req.Action {
	case "start":
		h.sched.Start(context.Background())
	case "stop":
		h.sched.Stop()
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "action must be start or stop"})
	}
	return c.JSON(fiber.Map{"ok": true, "running": h.sched.Running()})
}

// Health is the liveness endpoint.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
