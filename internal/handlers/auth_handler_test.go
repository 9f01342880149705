package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/repository"
	"github.com/looksmaxxai/LooksMaxxBack/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

const testJWTSecret = "test-secret"

type userRow struct {
	user *models.User
	err  error
}

func (r userRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	values := []any{
		r.user.ID,
		r.user.Email,
		r.user.PasswordHash,
		r.user.FirstName,
		r.user.LastName,
		r.user.ProfileImageURL,
		r.user.Age,
		r.user.Gender,
		r.user.Height,
		r.user.Weight,
		r.user.SkinType,
		r.user.HairType,
		r.user.Goals,
		r.user.OnboardingCompleted,
		r.user.CurrentStreak,
		r.user.TotalXP,
		r.user.Level,
		r.user.LastCompletionDate,
		r.user.CreatedAt,
		r.user.UpdatedAt,
	}
	for i := range dest {
		switch target := dest[i].(type) {
		case *int64:
			*target = values[i].(int64)
		case *string:
			*target = values[i].(string)
		case **string:
			*target = values[i].(*string)
		case **int:
			*target = values[i].(*int)
		case **float64:
			*target = values[i].(*float64)
		case **[]string:
			*target = values[i].(*[]string)
		case *bool:
			*target = values[i].(bool)
		case *int:
			*target = values[i].(int)
		case **time.Time:
			*target = values[i].(*time.Time)
		case *time.Time:
			*target = values[i].(time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type insertedUserRow struct {
	id  int64
	err error
}

func (r insertedUserRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	*dest[1].(*bool) = false
	*dest[2].(*int) = 0
	*dest[3].(*int) = 0
	*dest[4].(*int) = 1
	*dest[5].(*time.Time) = time.Now()
	*dest[6].(*time.Time) = time.Now()
	return nil
}

// stubUserDB answers the user repository's SQL against an in-memory account.
type stubUserDB struct {
	user      *models.User
	insertErr error
}

func (s *stubUserDB) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (s *stubUserDB) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query: " + query)
}

func (s *stubUserDB) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	switch {
	case strings.Contains(query, "INSERT INTO users"):
		if s.insertErr != nil {
			return insertedUserRow{err: s.insertErr}
		}
		return insertedUserRow{id: 42}
	case strings.Contains(query, "WHERE email"):
		if s.user == nil || s.user.Email != args[0].(string) {
			return userRow{err: pgx.ErrNoRows}
		}
		return userRow{user: s.user}
	case strings.Contains(query, "WHERE id"):
		if s.user == nil || s.user.ID != args[0].(int64) {
			return userRow{err: pgx.ErrNoRows}
		}
		return userRow{user: s.user}
	default:
		return userRow{err: errors.New("unexpected query: " + query)}
	}
}

func newAuthApp(db *stubUserDB) *fiber.App {
	app := fiber.New()
	handler := NewAuthHandler(repository.NewUserRepository(db), testJWTSecret)
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	return app
}

func TestRegisterIssuesToken(t *testing.T) {
	app := newAuthApp(&stubUserDB{})

	resp, payload := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "New.User@Example.com",
		"password": "supersecret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var token string
	if err := json.Unmarshal(payload["token"], &token); err != nil || token == "" {
		t.Fatalf("expected a token, got %s", payload["token"])
	}
	claims, err := utils.ValidateToken(token, testJWTSecret)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != "42" {
		t.Fatalf("expected subject 42, got %q", claims.UserID)
	}

	var user models.User
	if err := json.Unmarshal(payload["user"], &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Email != "new.user@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Level != 1 {
		t.Fatalf("expected new accounts to start at level 1, got %d", user.Level)
	}
}

func TestRegisterValidation(t *testing.T) {
	app := newAuthApp(&stubUserDB{})

	cases := []struct {
		name    string
		body    fiber.Map
		message string
	}{
		{"bad email", fiber.Map{"email": "not-an-email", "password": "supersecret"}, "Invalid email format"},
		{"short password", fiber.Map{"email": "a@b.com", "password": "short"}, "Password must be at least 8 characters"},
	}
	for _, tc := range cases {
		resp, payload := doJSON(t, app, http.MethodPost, "/api/auth/register", tc.body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, resp.StatusCode)
		}
		if got := errorMessage(t, payload); got != tc.message {
			t.Fatalf("%s: unexpected error message %q", tc.name, got)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newAuthApp(&stubUserDB{insertErr: &pgconn.PgError{Code: "23505"}})

	resp, payload := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "taken@example.com",
		"password": "supersecret",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if errorMessage(t, payload) != "Email already exists" {
		t.Fatalf("unexpected error message: %q", errorMessage(t, payload))
	}
}

func TestLoginChecksPassword(t *testing.T) {
	hash, err := utils.HashPassword("supersecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	db := &stubUserDB{user: &models.User{
		ID:           42,
		Email:        "user@example.com",
		PasswordHash: hash,
		Level:        1,
	}}
	app := newAuthApp(db)

	resp, payload := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "user@example.com",
		"password": "supersecret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var token string
	if err := json.Unmarshal(payload["token"], &token); err != nil || token == "" {
		t.Fatalf("expected a token, got %s", payload["token"])
	}
	if _, ok := payload["user"]; !ok {
		t.Fatalf("expected user in response")
	}
	if strings.Contains(string(payload["user"]), hash) {
		t.Fatalf("password hash leaked in response")
	}

	resp, payload = doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "user@example.com",
		"password": "wrong-password",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.StatusCode)
	}
	if errorMessage(t, payload) != "Invalid email or password" {
		t.Fatalf("unexpected error message: %q", errorMessage(t, payload))
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	app := newAuthApp(&stubUserDB{})

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "ghost@example.com",
		"password": "supersecret",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
