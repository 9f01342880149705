package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/repository"
)

type routineStore interface {
	Create(ctx context.Context, input repository.CreateRoutineInput) (*models.Routine, error)
	GetByID(ctx context.Context, routineID int64) (*models.Routine, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Routine, error)
	CreateItem(ctx context.Context, input repository.CreateRoutineItemInput) (*models.RoutineItem, error)
	ListItems(ctx context.Context, routineID int64) ([]models.RoutineItem, error)
}

type RoutineHandler struct {
	routineRepo routineStore
}

func NewRoutineHandler(routineRepo routineStore) *RoutineHandler {
	return &RoutineHandler{routineRepo: routineRepo}
}

type createRoutineRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	TimeOfDay   *string `json:"timeOfDay"`
}

type createRoutineItemRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	OrderIndex  int     `json:"orderIndex"`
	XPReward    *int    `json:"xpReward"`
}

func (h *RoutineHandler) ListRoutines(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	routines, err := h.routineRepo.ListByUserID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch routines"})
	}

	for i := range routines {
		items, err := h.routineRepo.ListItems(c.Context(), routines[i].ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch routine items"})
		}
		routines[i].Items = items
	}

	return c.JSON(routines)
}

func (h *RoutineHandler) CreateRoutine(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createRoutineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateCreateRoutineRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	routine, err := h.routineRepo.Create(c.Context(), repository.CreateRoutineInput{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		TimeOfDay:   req.TimeOfDay,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create routine"})
	}

	return c.Status(fiber.StatusCreated).JSON(routine)
}

func (h *RoutineHandler) CreateRoutineItem(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	routineID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || routineID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid routine id"})
	}

	var req createRoutineItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateCreateRoutineItemRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	routine, err := h.routineRepo.GetByID(c.Context(), routineID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Routine not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch routine"})
	}
	if routine.UserID != userID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Routine not found"})
	}

	item, err := h.routineRepo.CreateItem(c.Context(), repository.CreateRoutineItemInput{
		RoutineID:   routineID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
		XPReward:    req.XPReward,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create routine item"})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}
