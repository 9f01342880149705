package handlers

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/services"
)

const maxPhotoSizeBytes = 5 * 1024 * 1024

type photoUploader interface {
	Upload(ctx context.Context, userID int64, input services.UploadPhotoInput) (*models.ProgressPhoto, error)
	List(ctx context.Context, userID int64) ([]models.ProgressPhoto, error)
}

type PhotoHandler struct {
	service photoUploader
}

func NewPhotoHandler(service *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

func (h *PhotoHandler) ListPhotos(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	photos, err := h.service.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch progress photos"})
	}

	return c.JSON(photos)
}

func (h *PhotoHandler) UploadPhoto(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No photo uploaded"})
	}
	if fileHeader.Size <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No photo uploaded"})
	}
	if fileHeader.Size > maxPhotoSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Photo exceeds 5MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open photo"})
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSizeBytes+1))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read photo"})
	}
	if len(data) > maxPhotoSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Photo exceeds 5MB limit"})
	}

	var caption *string
	if value := strings.TrimSpace(c.FormValue("caption")); value != "" {
		caption = &value
	}
	var tags *[]string
	if value := strings.TrimSpace(c.FormValue("tags")); value != "" {
		parsed := splitTags(value)
		tags = &parsed
	}

	photo, err := h.service.Upload(c.Context(), userID, services.UploadPhotoInput{
		Data:     data,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Caption:  caption,
		Tags:     tags,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No photo uploaded"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload progress photo"})
	}

	return c.JSON(photo)
}

func splitTags(value string) []string {
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
