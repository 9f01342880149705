package models

import "time"

type Routine struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"userId"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Category    string        `json:"category"`
	TimeOfDay   *string       `json:"timeOfDay"`
	IsActive    bool          `json:"isActive"`
	Items       []RoutineItem `json:"items,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type RoutineItem struct {
	ID          int64     `json:"id"`
	RoutineID   int64     `json:"routineId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OrderIndex  int       `json:"orderIndex"`
	XPReward    int       `json:"xpReward"`
	CreatedAt   time.Time `json:"createdAt"`
}
