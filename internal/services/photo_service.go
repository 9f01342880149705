package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/repository"
)

const photoFolder = "progress-photos"

// degradedAnalysis is stored when the vision model cannot be reached; photo
// uploads never fail because of the analysis.
var degradedAnalysis = json.RawMessage(`{"skinClarity":0,"overallScore":0,"improvements":[],"suggestions":["Unable to analyze image at this time."]}`)

type photoStore interface {
	Create(ctx context.Context, input repository.CreateProgressPhotoInput) (*models.ProgressPhoto, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.ProgressPhoto, error)
}

type PhotoService struct {
	photoRepo photoStore
	ai        AIClient
	storage   StorageService
}

// NewPhotoService builds the photo pipeline. storage may be nil, in which case
// images are kept inline as data URLs.
func NewPhotoService(photoRepo photoStore, ai AIClient, storage StorageService) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		ai:        ai,
		storage:   storage,
	}
}

type UploadPhotoInput struct {
	Data     []byte
	MimeType string
	Caption  *string
	Tags     *[]string
}

func (s *PhotoService) Upload(ctx context.Context, userID int64, input UploadPhotoInput) (*models.ProgressPhoto, error) {
	if userID <= 0 || len(input.Data) == 0 {
		return nil, ErrInvalidInput
	}

	analysis, err := s.ai.AnalyzePhoto(ctx, input.Data, input.MimeType)
	if err != nil {
		log.Printf("photo analysis for user %d degraded: %v", userID, err)
		analysis = degradedAnalysis
	}

	imageURL, err := s.storeImage(ctx, input.Data, input.MimeType)
	if err != nil {
		return nil, err
	}

	return s.photoRepo.Create(ctx, repository.CreateProgressPhotoInput{
		UserID:       userID,
		ImageURL:     imageURL,
		Caption:      input.Caption,
		Tags:         input.Tags,
		AnalysisData: analysis,
	})
}

func (s *PhotoService) List(ctx context.Context, userID int64) ([]models.ProgressPhoto, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.photoRepo.ListByUserID(ctx, userID)
}

func (s *PhotoService) storeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if s.storage == nil {
		return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
	}
	filename := uuid.NewString() + extensionForMime(mimeType)
	return s.storage.UploadBytes(ctx, data, filename, photoFolder)
}

func extensionForMime(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
