package models

import (
	"encoding/json"
	"time"
)

type ProgressPhoto struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	ImageURL     string          `json:"imageUrl"`
	Caption      *string         `json:"caption"`
	Tags         *[]string       `json:"tags"`
	AnalysisData json.RawMessage `json:"analysisData"`
	CreatedAt    time.Time       `json:"createdAt"`
}
