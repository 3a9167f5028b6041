package seeders

import (
	"context"

	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/app/repositories"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts a small starter catalogue. Skips when products
// already exist so repeated runs stay idempotent.
func SeedProducts(ctx context.Context) error {
	repo := repositories.NewProductRepository()

	existing, err := repo.All(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	return repo.InsertMany(ctx, []models.Product{
		{
			Name:        "Potato 500g",
			Description: []string{"Fresh and organic", "Rich in carbohydrates"},
			Category:    "Vegetables",
			Price:       25,
			OfferPrice:  20,
			InStock:     true,
		},
		{
			Name:        "Tomato 1kg",
			Description: []string{"Juicy and ripe", "Perfect for salads"},
			Category:    "Vegetables",
			Price:       40,
			OfferPrice:  35,
			InStock:     true,
		},
		{
			Name:        "Apple 1kg",
			Description: []string{"Crisp and sweet", "Rich in fiber"},
			Category:    "Fruits",
			Price:       120,
			OfferPrice:  105,
			InStock:     true,
		},
		{
			Name:        "Amul Milk 1L",
			Description: []string{"Pure and fresh", "Rich in calcium"},
			Category:    "Dairy",
			Price:       60,
			OfferPrice:  55,
			InStock:     true,
		},
		{
			Name:        "Brown Bread 400g",
			Description: []string{"Soft and healthy", "Whole wheat"},
			Category:    "Bakery",
			Price:       40,
			OfferPrice:  35,
			InStock:     false,
		},
	})
}
