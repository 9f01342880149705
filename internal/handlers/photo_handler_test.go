package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/services"
)

type stubPhotoUploader struct {
	photo  *models.ProgressPhoto
	photos []models.ProgressPhoto
	err    error

	uploads   int
	lastInput services.UploadPhotoInput
}

func (s *stubPhotoUploader) Upload(_ context.Context, _ int64, input services.UploadPhotoInput) (*models.ProgressPhoto, error) {
	s.uploads++
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.photo, nil
}

func (s *stubPhotoUploader) List(_ context.Context, _ int64) ([]models.ProgressPhoto, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.photos, nil
}

func newPhotoApp(uploader *stubPhotoUploader) *fiber.App {
	app := fiber.New()
	withTestUser(app, "42")
	handler := &PhotoHandler{service: uploader}
	app.Get("/api/progress-photos", handler.ListPhotos)
	app.Post("/api/progress-photos", handler.UploadPhoto)
	return app
}

func multipartPhotoRequest(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("photo", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/progress-photos", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadPhotoWithoutFileIsRejected(t *testing.T) {
	uploader := &stubPhotoUploader{}
	app := newPhotoApp(uploader)

	resp, err := app.Test(multipartPhotoRequest(t, nil, "", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	var payload map[string]string
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response %s: %v", raw, err)
	}
	if payload["error"] != "No photo uploaded" {
		t.Fatalf("unexpected error message: %q", payload["error"])
	}
	if uploader.uploads != 0 {
		t.Fatalf("expected no service call, got %d", uploader.uploads)
	}
}

func TestUploadPhotoPassesCaptionAndTags(t *testing.T) {
	uploader := &stubPhotoUploader{photo: &models.ProgressPhoto{ID: 1, UserID: 42, ImageURL: "https://cdn.example.com/p/1.jpg"}}
	app := newPhotoApp(uploader)

	req := multipartPhotoRequest(t, map[string]string{
		"caption": "week 4",
		"tags":    "skin, jawline",
	}, "selfie.jpg", []byte("fake-jpeg-bytes"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, raw)
	}

	if uploader.uploads != 1 {
		t.Fatalf("expected one upload, got %d", uploader.uploads)
	}
	input := uploader.lastInput
	if string(input.Data) != "fake-jpeg-bytes" {
		t.Fatalf("unexpected image bytes: %q", input.Data)
	}
	if input.Caption == nil || *input.Caption != "week 4" {
		t.Fatalf("unexpected caption: %+v", input.Caption)
	}
	if input.Tags == nil || len(*input.Tags) != 2 || (*input.Tags)[0] != "skin" || (*input.Tags)[1] != "jawline" {
		t.Fatalf("unexpected tags: %+v", input.Tags)
	}
}

func TestUploadPhotoRejectsOversizedFile(t *testing.T) {
	uploader := &stubPhotoUploader{}
	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	withTestUser(app, "42")
	handler := &PhotoHandler{service: uploader}
	app.Post("/api/progress-photos", handler.UploadPhoto)

	req := multipartPhotoRequest(t, nil, "big.jpg", make([]byte, maxPhotoSizeBytes+1))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if uploader.uploads != 0 {
		t.Fatalf("expected no service call for oversized photo")
	}
}

func TestListPhotos(t *testing.T) {
	uploader := &stubPhotoUploader{photos: []models.ProgressPhoto{
		{ID: 1, UserID: 42, ImageURL: "https://cdn.example.com/p/1.jpg"},
		{ID: 2, UserID: 42, ImageURL: "https://cdn.example.com/p/2.jpg"},
	}}
	app := newPhotoApp(uploader)

	req := httptest.NewRequest(http.MethodGet, "/api/progress-photos", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var photos []models.ProgressPhoto
	if err := json.NewDecoder(resp.Body).Decode(&photos); err != nil {
		t.Fatalf("decode photos: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}
}
