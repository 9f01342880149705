package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const userColumns = `id, email, password_hash, first_name, last_name, profile_image_url,
	   age, gender, height_cm, weight_kg, skin_type, hair_type, goals,
	   onboarding_completed, current_streak, total_xp, level, last_completion_date,
	   created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.ProfileImageURL,
		&user.Age,
		&user.Gender,
		&user.Height,
		&user.Weight,
		&user.SkinType,
		&user.HairType,
		&user.Goals,
		&user.OnboardingCompleted,
		&user.CurrentStreak,
		&user.TotalXP,
		&user.Level,
		&user.LastCompletionDate,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, onboarding_completed, current_streak, total_xp, level, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, user.Email, user.PasswordHash).Scan(
		&user.ID,
		&user.OnboardingCompleted,
		&user.CurrentStreak,
		&user.TotalXP,
		&user.Level,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

type UpdateUserProfileInput struct {
	FirstName           *string
	LastName            *string
	ProfileImageURL     *string
	Age                 *int
	Gender              *string
	Height              *int
	Weight              *float64
	SkinType            *string
	HairType            *string
	Goals               *[]string
	OnboardingCompleted *bool
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, req UpdateUserProfileInput) (*models.User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			profile_image_url = COALESCE($3, profile_image_url),
			age = COALESCE($4, age),
			gender = COALESCE($5, gender),
			height_cm = COALESCE($6, height_cm),
			weight_kg = COALESCE($7, weight_kg),
			skin_type = COALESCE($8, skin_type),
			hair_type = COALESCE($9, hair_type),
			goals = COALESCE($10, goals),
			onboarding_completed = COALESCE($11, onboarding_completed),
			updated_at = NOW()
		WHERE id = $12
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query,
		req.FirstName,
		req.LastName,
		req.ProfileImageURL,
		req.Age,
		req.Gender,
		req.Height,
		req.Weight,
		req.SkinType,
		req.HairType,
		req.Goals,
		req.OnboardingCompleted,
		userID,
	))
}

// ApplyCompletion folds one completion into the user's gamification state in a
// single server-side update, so concurrent completions never lose increments.
// The streak holds on a same-day repeat, increments when the previous
// completion was yesterday, and resets to 1 after any gap.
func (r *UserRepository) ApplyCompletion(ctx context.Context, userID int64, xpDelta int, date string) (*models.ProgressSnapshot, error) {
	query := `
		UPDATE users
		SET total_xp = total_xp + $2,
			level = (total_xp + $2) / 100 + 1,
			current_streak = CASE
				WHEN last_completion_date = $3::date THEN current_streak
				WHEN last_completion_date = $3::date - 1 THEN current_streak + 1
				ELSE 1
			END,
			last_completion_date = $3::date,
			updated_at = NOW()
		WHERE id = $1
		RETURNING total_xp, level, current_streak
	`
	var snapshot models.ProgressSnapshot
	err := r.db.QueryRow(ctx, query, userID, xpDelta, date).Scan(
		&snapshot.TotalXP,
		&snapshot.Level,
		&snapshot.CurrentStreak,
	)
	if err != nil {
		return nil, err
	}
	previousLevel := (snapshot.TotalXP-xpDelta)/100 + 1
	snapshot.LeveledUp = snapshot.Level > previousLevel
	return &snapshot, nil
}
