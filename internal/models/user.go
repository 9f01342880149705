package models

import "time"

type User struct {
	ID                  int64      `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	FirstName           *string    `json:"firstName"`
	LastName            *string    `json:"lastName"`
	ProfileImageURL     *string    `json:"profileImageUrl"`
	Age                 *int       `json:"age"`
	Gender              *string    `json:"gender"`
	Height              *int       `json:"height"`
	Weight              *float64   `json:"weight"`
	SkinType            *string    `json:"skinType"`
	HairType            *string    `json:"hairType"`
	Goals               *[]string  `json:"goals"`
	OnboardingCompleted bool       `json:"onboardingCompleted"`
	CurrentStreak       int        `json:"currentStreak"`
	TotalXP             int        `json:"totalXP"`
	Level               int        `json:"level"`
	LastCompletionDate  *time.Time `json:"lastCompletionDate"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
