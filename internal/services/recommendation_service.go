package services

import (
	"context"
	"sort"
	"strings"

	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

const defaultRecommendationLimit = 10

type productLister interface {
	List(ctx context.Context, category string) ([]models.Product, error)
}

// RecommendationService ranks the product catalog against a user's skin type
// and stated goals.
type RecommendationService struct {
	productRepo productLister
}

func NewRecommendationService(productRepo productLister) *RecommendationService {
	return &RecommendationService{productRepo: productRepo}
}

func (s *RecommendationService) GetRecommendations(
	ctx context.Context,
	user *models.User,
	limit int,
) ([]models.ProductWithScore, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	products, err := s.productRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	scored := make([]models.ProductWithScore, 0, len(products))
	for _, product := range products {
		scored = append(scored, models.ProductWithScore{
			Product:    product,
			MatchScore: scoreProduct(user, &product),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore == scored[j].MatchScore {
			return ratingValue(scored[i].Rating) > ratingValue(scored[j].Rating)
		}
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func scoreProduct(user *models.User, product *models.Product) int {
	if user == nil {
		return 0
	}

	score := 0
	if skinType := normalizeTag(stringValue(user.SkinType)); skinType != "" {
		for _, target := range sliceValue(product.TargetSkinTypes) {
			if normalizeTag(target) == skinType {
				score += 40
				break
			}
		}
	}

	categories := goalCategories(user.Goals)
	if _, ok := categories[normalizeTag(product.Category)]; ok {
		score += 25
	}

	if ratingValue(product.Rating) > 4.0 {
		score += 20
	}
	if len(sliceValue(product.Ingredients)) > 0 {
		score += 5
	}

	return score
}

// goalCategories maps the user's free-form goals onto product categories.
func goalCategories(goals *[]string) map[string]struct{} {
	categories := make(map[string]struct{})
	for _, goal := range sliceValue(goals) {
		switch normalizeTag(goal) {
		case "clear_skin", "skincare", "acne", "glass_skin":
			categories["skincare"] = struct{}{}
		case "muscle_gain", "fitness", "weight_loss", "lean_physique":
			categories["fitness"] = struct{}{}
		case "nutrition", "diet":
			categories["nutrition"] = struct{}{}
		case "hair", "hair_growth", "grooming", "beard":
			categories["grooming"] = struct{}{}
		case "style", "fashion":
			categories["style"] = struct{}{}
		default:
			if key := normalizeTag(goal); key != "" {
				categories[key] = struct{}{}
			}
		}
	}
	return categories
}

func normalizeTag(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, " ", "_")
	value = strings.ReplaceAll(value, "-", "_")
	return value
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func sliceValue(values *[]string) []string {
	if values == nil {
		return nil
	}
	return *values
}

func ratingValue(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
