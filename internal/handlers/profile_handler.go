package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/repository"
)

type profileStore interface {
	UpdateProfile(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.User, error)
}

type ProfileHandler struct {
	userRepo profileStore
}

func NewProfileHandler(userRepo profileStore) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo}
}

type updateProfileRequest struct {
	FirstName           *string   `json:"firstName"`
	LastName            *string   `json:"lastName"`
	ProfileImageURL     *string   `json:"profileImageUrl"`
	Age                 *int      `json:"age"`
	Gender              *string   `json:"gender"`
	Height              *int      `json:"height"`
	Weight              *float64  `json:"weight"`
	SkinType            *string   `json:"skinType"`
	HairType            *string   `json:"hairType"`
	Goals               *[]string `json:"goals"`
	OnboardingCompleted *bool     `json:"onboardingCompleted"`
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	user, err := h.userRepo.UpdateProfile(c.Context(), userID, repository.UpdateUserProfileInput{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		ProfileImageURL:     req.ProfileImageURL,
		Age:                 req.Age,
		Gender:              req.Gender,
		Height:              req.Height,
		Weight:              req.Weight,
		SkinType:            req.SkinType,
		HairType:            req.HairType,
		Goals:               req.Goals,
		OnboardingCompleted: req.OnboardingCompleted,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}
