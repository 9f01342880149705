package repository

import (
	"context"

	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
)

type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns the catalog, optionally filtered by category.
func (r *ProductRepository) List(ctx context.Context, category string) ([]models.Product, error) {
	query := `
		SELECT id, name, description, category, brand, price, image_url,
			   ingredients, target_skin_types, affiliate_url, rating, created_at
		FROM products
	`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Category,
			&product.Brand,
			&product.Price,
			&product.ImageURL,
			&product.Ingredients,
			&product.TargetSkinTypes,
			&product.AffiliateURL,
			&product.Rating,
			&product.CreatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}
