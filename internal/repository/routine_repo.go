package repository

import (
	"context"

	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

type CreateRoutineInput struct {
	UserID      int64
	Title       string
	Description *string
	Category    string
	TimeOfDay   *string
}

type CreateRoutineItemInput struct {
	RoutineID   int64
	Title       string
	Description *string
	OrderIndex  int
	XPReward    *int
}

type RoutineRepository struct {
	db DBTX
}

func NewRoutineRepository(db DBTX) *RoutineRepository {
	return &RoutineRepository{db: db}
}

func (r *RoutineRepository) Create(ctx context.Context, input CreateRoutineInput) (*models.Routine, error) {
	query := `
		INSERT INTO routines (user_id, title, description, category, time_of_day)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, description, category, time_of_day, is_active, created_at, updated_at
	`
	var routine models.Routine
	err := r.db.QueryRow(ctx, query,
		input.UserID,
		input.Title,
		input.Description,
		input.Category,
		input.TimeOfDay,
	).Scan(
		&routine.ID,
		&routine.UserID,
		&routine.Title,
		&routine.Description,
		&routine.Category,
		&routine.TimeOfDay,
		&routine.IsActive,
		&routine.CreatedAt,
		&routine.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *RoutineRepository) GetByID(ctx context.Context, routineID int64) (*models.Routine, error) {
	query := `
		SELECT id, user_id, title, description, category, time_of_day, is_active, created_at, updated_at
		FROM routines
		WHERE id = $1
	`
	var routine models.Routine
	err := r.db.QueryRow(ctx, query, routineID).Scan(
		&routine.ID,
		&routine.UserID,
		&routine.Title,
		&routine.Description,
		&routine.Category,
		&routine.TimeOfDay,
		&routine.IsActive,
		&routine.CreatedAt,
		&routine.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *RoutineRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Routine, error) {
	query := `
		SELECT id, user_id, title, description, category, time_of_day, is_active, created_at, updated_at
		FROM routines
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY time_of_day ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := make([]models.Routine, 0)
	for rows.Next() {
		var routine models.Routine
		if err := rows.Scan(
			&routine.ID,
			&routine.UserID,
			&routine.Title,
			&routine.Description,
			&routine.Category,
			&routine.TimeOfDay,
			&routine.IsActive,
			&routine.CreatedAt,
			&routine.UpdatedAt,
		); err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return routines, nil
}

func (r *RoutineRepository) CreateItem(ctx context.Context, input CreateRoutineItemInput) (*models.RoutineItem, error) {
	query := `
		INSERT INTO routine_items (routine_id, title, description, order_index, xp_reward)
		VALUES ($1, $2, $3, $4, COALESCE($5, 5))
		RETURNING id, routine_id, title, description, order_index, xp_reward, created_at
	`
	var item models.RoutineItem
	err := r.db.QueryRow(ctx, query,
		input.RoutineID,
		input.Title,
		input.Description,
		input.OrderIndex,
		input.XPReward,
	).Scan(
		&item.ID,
		&item.RoutineID,
		&item.Title,
		&item.Description,
		&item.OrderIndex,
		&item.XPReward,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *RoutineRepository) ListItems(ctx context.Context, routineID int64) ([]models.RoutineItem, error) {
	query := `
		SELECT id, routine_id, title, description, order_index, xp_reward, created_at
		FROM routine_items
		WHERE routine_id = $1
		ORDER BY order_index ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, routineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.RoutineItem, 0)
	for rows.Next() {
		var item models.RoutineItem
		if err := rows.Scan(
			&item.ID,
			&item.RoutineID,
			&item.Title,
			&item.Description,
			&item.OrderIndex,
			&item.XPReward,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemForUser resolves a routine item together with its owner, so the
// completion path can reject items that belong to another user's routine.
func (r *RoutineRepository) GetItemForUser(ctx context.Context, itemID int64, userID int64) (*models.RoutineItem, error) {
	query := `
		SELECT ri.id, ri.routine_id, ri.title, ri.description, ri.order_index, ri.xp_reward, ri.created_at
		FROM routine_items ri
		JOIN routines ro ON ro.id = ri.routine_id
		WHERE ri.id = $1 AND ro.user_id = $2
	`
	var item models.RoutineItem
	err := r.db.QueryRow(ctx, query, itemID, userID).Scan(
		&item.ID,
		&item.RoutineID,
		&item.Title,
		&item.Description,
		&item.OrderIndex,
		&item.XPReward,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
