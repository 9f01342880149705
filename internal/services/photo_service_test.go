package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/repository"
)

type stubPhotoStore struct {
	created []repository.CreateProgressPhotoInput
	photos  []models.ProgressPhoto
}

func (s *stubPhotoStore) Create(_ context.Context, input repository.CreateProgressPhotoInput) (*models.ProgressPhoto, error) {
	s.created = append(s.created, input)
	return &models.ProgressPhoto{
		ID:           int64(len(s.created)),
		UserID:       input.UserID,
		ImageURL:     input.ImageURL,
		Caption:      input.Caption,
		AnalysisData: input.AnalysisData,
	}, nil
}

func (s *stubPhotoStore) ListByUserID(_ context.Context, _ int64) ([]models.ProgressPhoto, error) {
	return s.photos, nil
}

type stubStorage struct {
	lastData     []byte
	lastFilename string
	lastFolder   string
	err          error
}

func (s *stubStorage) UploadBytes(_ context.Context, data []byte, filename, folder string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.lastData = data
	s.lastFilename = filename
	s.lastFolder = folder
	return "https://cdn.example.com/" + folder + "/" + filename, nil
}

func (s *stubStorage) DeleteFile(_ context.Context, _ string) error { return nil }

func (s *stubStorage) GetSignedURL(_ context.Context, _ string) (string, error) {
	return "", nil
}

func TestUploadStoresAnalysisAndObject(t *testing.T) {
	store := &stubPhotoStore{}
	analysis := json.RawMessage(`{"skinClarity":72,"overallScore":68,"improvements":["hydration"],"suggestions":["Use SPF daily"]}`)
	storage := &stubStorage{}
	service := NewPhotoService(store, &stubAIClient{analysis: analysis}, storage)

	caption := "week 4"
	photo, err := service.Upload(context.Background(), 42, UploadPhotoInput{
		Data:     []byte("fake-png-bytes"),
		MimeType: "image/png",
		Caption:  &caption,
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected one stored photo, got %d", len(store.created))
	}
	if string(store.created[0].AnalysisData) != string(analysis) {
		t.Fatalf("unexpected analysis payload: %s", store.created[0].AnalysisData)
	}
	if storage.lastFolder != "progress-photos" {
		t.Fatalf("expected progress-photos folder, got %q", storage.lastFolder)
	}
	if !strings.HasSuffix(storage.lastFilename, ".png") {
		t.Fatalf("expected .png object name, got %q", storage.lastFilename)
	}
	if len(strings.TrimSuffix(storage.lastFilename, ".png")) != 36 {
		t.Fatalf("expected uuid object name, got %q", storage.lastFilename)
	}
	if !strings.HasPrefix(photo.ImageURL, "https://cdn.example.com/progress-photos/") {
		t.Fatalf("unexpected image URL: %q", photo.ImageURL)
	}
}

func TestUploadDegradesWhenAnalysisFails(t *testing.T) {
	store := &stubPhotoStore{}
	service := NewPhotoService(store, &stubAIClient{err: errors.New("model unavailable")}, &stubStorage{})

	_, err := service.Upload(context.Background(), 42, UploadPhotoInput{
		Data:     []byte("fake-jpeg-bytes"),
		MimeType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("expected degraded upload to succeed, got %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected photo to be stored despite analysis failure")
	}
	var payload struct {
		OverallScore int      `json:"overallScore"`
		Suggestions  []string `json:"suggestions"`
	}
	if err := json.Unmarshal(store.created[0].AnalysisData, &payload); err != nil {
		t.Fatalf("degraded analysis is not valid JSON: %v", err)
	}
	if payload.OverallScore != 0 || len(payload.Suggestions) != 1 {
		t.Fatalf("unexpected degraded payload: %+v", payload)
	}
}

func TestUploadFallsBackToDataURLWithoutStorage(t *testing.T) {
	store := &stubPhotoStore{}
	service := NewPhotoService(store, &stubAIClient{analysis: json.RawMessage(`{}`)}, nil)

	photo, err := service.Upload(context.Background(), 42, UploadPhotoInput{
		Data:     []byte("fake-webp-bytes"),
		MimeType: "image/webp",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if !strings.HasPrefix(photo.ImageURL, "data:image/webp;base64,") {
		t.Fatalf("expected inline data URL, got %q", photo.ImageURL)
	}
}

func TestUploadRejectsEmptyImage(t *testing.T) {
	service := NewPhotoService(&stubPhotoStore{}, &stubAIClient{}, nil)

	if _, err := service.Upload(context.Background(), 42, UploadPhotoInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Upload(context.Background(), 0, UploadPhotoInput{Data: []byte("x")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad user, got %v", err)
	}
}
