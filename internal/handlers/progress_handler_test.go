package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/services"
)

// withTestUser injects the authenticated user id the way the auth middleware
// does, so handlers can be exercised without real tokens.
func withTestUser(app *fiber.App, userID string) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	payload := map[string]json.RawMessage{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("decode response %s: %v", raw, err)
		}
	}
	return resp, payload
}

func errorMessage(t *testing.T, payload map[string]json.RawMessage) string {
	t.Helper()
	var message string
	if raw, ok := payload["error"]; ok {
		if err := json.Unmarshal(raw, &message); err != nil {
			t.Fatalf("decode error field: %v", err)
		}
	}
	return message
}

type stubProgressLedger struct {
	result      *services.CompletionResult
	completions []models.RoutineCompletion
	stats       *models.DashboardStats
	err         error

	lastUserID int64
	lastItemID int64
	lastDate   string
}

func (s *stubProgressLedger) RecordCompletion(_ context.Context, userID, routineItemID int64, date string) (*services.CompletionResult, error) {
	s.lastUserID = userID
	s.lastItemID = routineItemID
	s.lastDate = date
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubProgressLedger) GetCompletionsForDate(_ context.Context, userID int64, date string) ([]models.RoutineCompletion, error) {
	s.lastUserID = userID
	s.lastDate = date
	if s.err != nil {
		return nil, s.err
	}
	return s.completions, nil
}

func (s *stubProgressLedger) GetDashboardStats(_ context.Context, userID int64) (*models.DashboardStats, error) {
	s.lastUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func newProgressApp(ledger *stubProgressLedger) *fiber.App {
	app := fiber.New()
	withTestUser(app, "42")
	handler := &ProgressHandler{service: ledger}
	app.Post("/api/routines/complete", handler.CompleteRoutineItem)
	app.Get("/api/routines/completions/:date", handler.GetCompletionsForDate)
	app.Get("/api/dashboard/stats", handler.GetDashboardStats)
	return app
}

func TestCompleteRoutineItemReturnsProgress(t *testing.T) {
	ledger := &stubProgressLedger{result: &services.CompletionResult{
		Completion: &models.RoutineCompletion{ID: 7, UserID: 42, RoutineItemID: 11, Date: "2030-01-02"},
		Progress:   &models.ProgressSnapshot{TotalXP: 105, Level: 2, CurrentStreak: 1, LeveledUp: true},
	}}
	app := newProgressApp(ledger)

	resp, payload := doJSON(t, app, http.MethodPost, "/api/routines/complete", fiber.Map{"routineItemId": 11})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if ledger.lastUserID != 42 || ledger.lastItemID != 11 {
		t.Fatalf("unexpected service call: user=%d item=%d", ledger.lastUserID, ledger.lastItemID)
	}
	if ledger.lastDate != services.Today() {
		t.Fatalf("expected completion for today, got %q", ledger.lastDate)
	}

	var progress models.ProgressSnapshot
	if err := json.Unmarshal(payload["progress"], &progress); err != nil {
		t.Fatalf("decode progress: %v", err)
	}
	if progress.TotalXP != 105 || !progress.LeveledUp {
		t.Fatalf("unexpected progress payload: %+v", progress)
	}
}

func TestCompleteRoutineItemValidation(t *testing.T) {
	app := newProgressApp(&stubProgressLedger{})

	resp, payload := doJSON(t, app, http.MethodPost, "/api/routines/complete", fiber.Map{"routineItemId": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if errorMessage(t, payload) != "routineItemId must be greater than 0" {
		t.Fatalf("unexpected error message: %q", errorMessage(t, payload))
	}
}

func TestCompleteRoutineItemErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"duplicate", services.ErrAlreadyCompleted, http.StatusConflict, "Routine item already completed today"},
		{"unknown item", services.ErrNotFound, http.StatusNotFound, "Routine item not found"},
		{"unknown user", services.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"database down", context.DeadlineExceeded, http.StatusInternalServerError, "Failed to process completion request"},
	}

	for _, tc := range cases {
		app := newProgressApp(&stubProgressLedger{err: tc.err})
		resp, payload := doJSON(t, app, http.MethodPost, "/api/routines/complete", fiber.Map{"routineItemId": 11})
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, resp.StatusCode)
		}
		if got := errorMessage(t, payload); got != tc.message {
			t.Fatalf("%s: unexpected error message %q", tc.name, got)
		}
	}
}

func TestGetCompletionsForDateRejectsBadDate(t *testing.T) {
	app := newProgressApp(&stubProgressLedger{err: services.ErrInvalidInput})

	resp, payload := doJSON(t, app, http.MethodGet, "/api/routines/completions/02-01-2030", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if errorMessage(t, payload) != "date must be in YYYY-MM-DD format" {
		t.Fatalf("unexpected error message: %q", errorMessage(t, payload))
	}
}

func TestGetDashboardStats(t *testing.T) {
	lastPhoto := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	ledger := &stubProgressLedger{stats: &models.DashboardStats{
		CurrentStreak:       4,
		TotalXP:             315,
		Level:               4,
		TodayCompletions:    3,
		TotalProgressPhotos: 9,
		LastPhotoDate:       &lastPhoto,
	}}
	app := newProgressApp(ledger)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/dashboard/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var streak int
	if err := json.Unmarshal(payload["currentStreak"], &streak); err != nil || streak != 4 {
		t.Fatalf("unexpected currentStreak: %s", payload["currentStreak"])
	}
	if ledger.lastUserID != 42 {
		t.Fatalf("expected stats for user 42, got %d", ledger.lastUserID)
	}
}

func TestProgressEndpointsRequireAuth(t *testing.T) {
	app := fiber.New()
	handler := &ProgressHandler{service: &stubProgressLedger{}}
	app.Get("/api/dashboard/stats", handler.GetDashboardStats)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/dashboard/stats", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if errorMessage(t, payload) != "Invalid token" {
		t.Fatalf("unexpected error message: %q", errorMessage(t, payload))
	}
}
