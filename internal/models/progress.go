package models

import "time"

// RoutineCompletion is an append-only fact: one routine item done on one
// calendar date. The date is the user-facing YYYY-MM-DD day, completed_at the
// exact instant.
type RoutineCompletion struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	RoutineItemID int64     `json:"routineItemId"`
	CompletedAt   time.Time `json:"completedAt"`
	Date          string    `json:"date"`
}

// ProgressSnapshot is the user's gamification state right after a completion
// was applied.
type ProgressSnapshot struct {
	TotalXP       int  `json:"totalXP"`
	Level         int  `json:"level"`
	CurrentStreak int  `json:"currentStreak"`
	LeveledUp     bool `json:"leveledUp"`
}

type DashboardStats struct {
	CurrentStreak       int        `json:"currentStreak"`
	TotalXP             int        `json:"totalXP"`
	Level               int        `json:"level"`
	TodayCompletions    int        `json:"todayCompletions"`
	TotalProgressPhotos int        `json:"totalProgressPhotos"`
	LastPhotoDate       *time.Time `json:"lastPhotoDate"`
}
