package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

type CreateProgressPhotoInput struct {
	UserID       int64
	ImageURL     string
	Caption      *string
	Tags         *[]string
	AnalysisData json.RawMessage
}

type PhotoRepository struct {
	db DBTX
}

func NewPhotoRepository(db DBTX) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(ctx context.Context, input CreateProgressPhotoInput) (*models.ProgressPhoto, error) {
	query := `
		INSERT INTO progress_photos (user_id, image_url, caption, tags, analysis_data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, image_url, caption, tags, analysis_data, created_at
	`
	var photo models.ProgressPhoto
	err := r.db.QueryRow(ctx, query,
		input.UserID,
		input.ImageURL,
		input.Caption,
		input.Tags,
		input.AnalysisData,
	).Scan(
		&photo.ID,
		&photo.UserID,
		&photo.ImageURL,
		&photo.Caption,
		&photo.Tags,
		&photo.AnalysisData,
		&photo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepository) ListByUserID(ctx context.Context, userID int64) ([]models.ProgressPhoto, error) {
	query := `
		SELECT id, user_id, image_url, caption, tags, analysis_data, created_at
		FROM progress_photos
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]models.ProgressPhoto, 0)
	for rows.Next() {
		var photo models.ProgressPhoto
		if err := rows.Scan(
			&photo.ID,
			&photo.UserID,
			&photo.ImageURL,
			&photo.Caption,
			&photo.Tags,
			&photo.AnalysisData,
			&photo.CreatedAt,
		); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}

// Stats returns the photo count and the most recent capture time in one query
// for the dashboard read side.
func (r *PhotoRepository) Stats(ctx context.Context, userID int64) (int, *time.Time, error) {
	query := `SELECT COUNT(*), MAX(created_at) FROM progress_photos WHERE user_id = $1`
	var count int
	var last *time.Time
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count, &last); err != nil {
		return 0, nil, err
	}
	return count, last, nil
}
