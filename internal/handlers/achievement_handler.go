package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

type achievementReader interface {
	ListWithStatus(ctx context.Context, userID int64) ([]models.AchievementStatus, error)
}

type AchievementHandler struct {
	achievementRepo achievementReader
}

func NewAchievementHandler(achievementRepo achievementReader) *AchievementHandler {
	return &AchievementHandler{achievementRepo: achievementRepo}
}

func (h *AchievementHandler) ListAchievements(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	achievements, err := h.achievementRepo.ListWithStatus(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(achievements)
}
