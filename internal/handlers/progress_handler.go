package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/services"
)

type progressLedger interface {
	RecordCompletion(ctx context.Context, userID, routineItemID int64, date string) (*services.CompletionResult, error)
	GetCompletionsForDate(ctx context.Context, userID int64, date string) ([]models.RoutineCompletion, error)
	GetDashboardStats(ctx context.Context, userID int64) (*models.DashboardStats, error)
}

type ProgressHandler struct {
	service progressLedger
}

func NewProgressHandler(service *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

type completeRoutineItemRequest struct {
	RoutineItemID int64 `json:"routineItemId"`
}

func (h *ProgressHandler) CompleteRoutineItem(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req completeRoutineItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.RoutineItemID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "routineItemId must be greater than 0"})
	}

	result, err := h.service.RecordCompletion(c.Context(), userID, req.RoutineItemID, services.Today())
	if err != nil {
		return mapProgressError(c, err)
	}

	return c.JSON(result)
}

func (h *ProgressHandler) GetCompletionsForDate(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	completions, err := h.service.GetCompletionsForDate(c.Context(), userID, c.Params("date"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be in YYYY-MM-DD format"})
		}
		return mapProgressError(c, err)
	}

	return c.JSON(completions)
}

func (h *ProgressHandler) GetDashboardStats(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	stats, err := h.service.GetDashboardStats(c.Context(), userID)
	if err != nil {
		return mapProgressError(c, err)
	}

	return c.JSON(stats)
}

func mapProgressError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyCompleted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Routine item already completed today"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Routine item not found"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process completion request"})
	}
}
