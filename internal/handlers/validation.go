package handlers

import "strings"

var allowedGenders = map[string]struct{}{
	"male":              {},
	"female":            {},
	"other":             {},
	"prefer_not_to_say": {},
}

var allowedSkinTypes = map[string]struct{}{
	"oily":        {},
	"dry":         {},
	"combination": {},
	"normal":      {},
	"sensitive":   {},
}

var allowedCategories = map[string]struct{}{
	"skincare":  {},
	"fitness":   {},
	"nutrition": {},
	"grooming":  {},
	"style":     {},
}

var allowedTimesOfDay = map[string]struct{}{
	"morning": {},
	"evening": {},
	"any":     {},
}

func validateProfileUpdateRequest(req updateProfileRequest) string {
	if req.Age != nil && *req.Age <= 0 {
		return "age must be greater than 0"
	}
	if req.Gender != nil {
		if _, ok := allowedGenders[strings.ToLower(strings.TrimSpace(*req.Gender))]; !ok {
			return "gender must be one of male, female, other, prefer_not_to_say"
		}
	}
	if req.Height != nil && *req.Height <= 0 {
		return "height must be greater than 0"
	}
	if req.Weight != nil && *req.Weight <= 0 {
		return "weight must be greater than 0"
	}
	if req.SkinType != nil {
		if _, ok := allowedSkinTypes[strings.ToLower(strings.TrimSpace(*req.SkinType))]; !ok {
			return "skinType must be one of oily, dry, combination, normal, sensitive"
		}
	}
	if req.Goals != nil {
		for _, goal := range *req.Goals {
			if strings.TrimSpace(goal) == "" {
				return "goals must not contain empty values"
			}
		}
	}
	return ""
}

func validateCreateRoutineRequest(req createRoutineRequest) string {
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if _, ok := allowedCategories[strings.ToLower(strings.TrimSpace(req.Category))]; !ok {
		return "category must be one of skincare, fitness, nutrition, grooming, style"
	}
	if req.TimeOfDay != nil {
		if _, ok := allowedTimesOfDay[strings.ToLower(strings.TrimSpace(*req.TimeOfDay))]; !ok {
			return "timeOfDay must be one of morning, evening, any"
		}
	}
	return ""
}

func validateCreateRoutineItemRequest(req createRoutineItemRequest) string {
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if req.OrderIndex < 0 {
		return "orderIndex must not be negative"
	}
	if req.XPReward != nil && *req.XPReward <= 0 {
		return "xpReward must be greater than 0"
	}
	return ""
}
