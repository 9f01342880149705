package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/services"
)

type productStore interface {
	List(ctx context.Context, category string) ([]models.Product, error)
}

type productRecommender interface {
	GetRecommendations(ctx context.Context, user *models.User, limit int) ([]models.ProductWithScore, error)
}

type userFetcher interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type ProductHandler struct {
	productRepo productStore
	userRepo    userFetcher
	recommender productRecommender
}

func NewProductHandler(productRepo productStore, userRepo userFetcher, recommender *services.RecommendationService) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
		userRepo:    userRepo,
		recommender: recommender,
	}
}

func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))

	products, err := h.productRepo.List(c.Context(), category)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch products"})
	}

	return c.JSON(products)
}

func (h *ProductHandler) GetRecommendations(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	recommendations, err := h.recommender.GetRecommendations(c.Context(), user, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch product recommendations"})
	}

	return c.JSON(recommendations)
}
