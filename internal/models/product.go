package models

import "time"

type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Category        string    `json:"category"`
	Brand           *string   `json:"brand"`
	Price           *float64  `json:"price"`
	ImageURL        *string   `json:"imageUrl"`
	Ingredients     *[]string `json:"ingredients"`
	TargetSkinTypes *[]string `json:"targetSkinTypes"`
	AffiliateURL    *string   `json:"affiliateUrl"`
	Rating          *float64  `json:"rating"`
	CreatedAt       time.Time `json:"createdAt"`
}

type ProductWithScore struct {
	Product
	MatchScore int `json:"matchScore"`
}
