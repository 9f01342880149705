package repository

import (
	"context"

	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

type AchievementRepository struct {
	db DBTX
}

func NewAchievementRepository(db DBTX) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// ListLocked returns the achievements the user has not unlocked yet.
func (r *AchievementRepository) ListLocked(ctx context.Context, userID int64) ([]models.Achievement, error) {
	query := `
		SELECT a.id, a.title, a.description, a.icon_name, a.xp_reward, a.criteria
		FROM achievements a
		WHERE NOT EXISTS (
			SELECT 1 FROM user_achievements ua
			WHERE ua.achievement_id = a.id AND ua.user_id = $1
		)
		ORDER BY a.id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := make([]models.Achievement, 0)
	for rows.Next() {
		var achievement models.Achievement
		if err := rows.Scan(
			&achievement.ID,
			&achievement.Title,
			&achievement.Description,
			&achievement.IconName,
			&achievement.XPReward,
			&achievement.Criteria,
		); err != nil {
			return nil, err
		}
		achievements = append(achievements, achievement)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *AchievementRepository) ListWithStatus(ctx context.Context, userID int64) ([]models.AchievementStatus, error) {
	query := `
		SELECT a.id, a.title, a.description, a.icon_name, a.xp_reward, a.criteria,
			   ua.unlocked_at
		FROM achievements a
		LEFT JOIN user_achievements ua
			ON ua.achievement_id = a.id AND ua.user_id = $1
		ORDER BY a.id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]models.AchievementStatus, 0)
	for rows.Next() {
		var status models.AchievementStatus
		if err := rows.Scan(
			&status.ID,
			&status.Title,
			&status.Description,
			&status.IconName,
			&status.XPReward,
			&status.Criteria,
			&status.UnlockedAt,
		); err != nil {
			return nil, err
		}
		status.Unlocked = status.UnlockedAt != nil
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// Unlock records an achievement for the user. Reports false when it was
// already unlocked.
func (r *AchievementRepository) Unlock(ctx context.Context, userID, achievementID int64) (bool, error) {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, userID, achievementID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
