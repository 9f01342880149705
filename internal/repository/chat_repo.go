package repository

import (
	"context"

	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

type ChatRepository struct {
	db DBTX
}

func NewChatRepository(db DBTX) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(ctx context.Context, userID int64, message string, response *string) (*models.ChatMessage, error) {
	query := `
		INSERT INTO chat_messages (user_id, message, response)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, message, response, created_at
	`
	var chatMessage models.ChatMessage
	err := r.db.QueryRow(ctx, query, userID, message, response).Scan(
		&chatMessage.ID,
		&chatMessage.UserID,
		&chatMessage.Message,
		&chatMessage.Response,
		&chatMessage.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &chatMessage, nil
}

func (r *ChatRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, user_id, message, response, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0)
	for rows.Next() {
		var chatMessage models.ChatMessage
		if err := rows.Scan(
			&chatMessage.ID,
			&chatMessage.UserID,
			&chatMessage.Message,
			&chatMessage.Response,
			&chatMessage.Timestamp,
		); err != nil {
			return nil, err
		}
		messages = append(messages, chatMessage)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
