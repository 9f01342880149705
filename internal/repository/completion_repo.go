package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

type CompletionRepository struct {
	db DBTX
}

func NewCompletionRepository(db DBTX) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// Create inserts one completion fact. A (user, item, date) row may exist only
// once; on conflict no row is inserted and Create reports inserted=false.
func (r *CompletionRepository) Create(ctx context.Context, userID, routineItemID int64, date string) (*models.RoutineCompletion, bool, error) {
	query := `
		INSERT INTO routine_completions (user_id, routine_item_id, date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, routine_item_id, date) DO NOTHING
		RETURNING id, user_id, routine_item_id, completed_at, date
	`
	var completion models.RoutineCompletion
	err := r.db.QueryRow(ctx, query, userID, routineItemID, date).Scan(
		&completion.ID,
		&completion.UserID,
		&completion.RoutineItemID,
		&completion.CompletedAt,
		&completion.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &completion, true, nil
}

func (r *CompletionRepository) ListForDate(ctx context.Context, userID int64, date string) ([]models.RoutineCompletion, error) {
	query := `
		SELECT id, user_id, routine_item_id, completed_at, date
		FROM routine_completions
		WHERE user_id = $1 AND date = $2
		ORDER BY completed_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completions := make([]models.RoutineCompletion, 0)
	for rows.Next() {
		var completion models.RoutineCompletion
		if err := rows.Scan(
			&completion.ID,
			&completion.UserID,
			&completion.RoutineItemID,
			&completion.CompletedAt,
			&completion.Date,
		); err != nil {
			return nil, err
		}
		completions = append(completions, completion)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *CompletionRepository) CountForDate(ctx context.Context, userID int64, date string) (int, error) {
	query := `SELECT COUNT(*) FROM routine_completions WHERE user_id = $1 AND date = $2`
	var count int
	if err := r.db.QueryRow(ctx, query, userID, date).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CompletionRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM routine_completions WHERE user_id = $1`
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
