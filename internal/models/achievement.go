package models

import "time"

const (
	CriterionLevel       = "level"
	CriterionStreak      = "streak"
	CriterionXP          = "xp"
	CriterionCompletions = "completions"
)

type AchievementCriteria struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

type Achievement struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	IconName    string              `json:"iconName"`
	XPReward    int                 `json:"xpReward"`
	Criteria    AchievementCriteria `json:"criteria"`
}

type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}
