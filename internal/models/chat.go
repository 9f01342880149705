package models

import "time"

// ChatMessage is one user prompt paired with the coach's generated response.
type ChatMessage struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	Response  *string   `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
