package services

import (
	"context"
	"io"
	"time"

	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/app/repositories"
	"github.com/siddharthaBojanki/greenCart/pkg/cache"
	"github.com/siddharthaBojanki/greenCart/pkg/event"
	"github.com/siddharthaBojanki/greenCart/pkg/logger"
	"github.com/siddharthaBojanki/greenCart/pkg/metrics"
	"github.com/siddharthaBojanki/greenCart/pkg/storage"
)

const (
	catalogueCacheKey = "greencart:catalogue"
	catalogueCacheTTL = 5 * time.Minute
)

// CatalogueService reads and mutates the product catalogue. Reads go through
// a Redis cache; every mutation busts it and fires a catalogue event for
// whoever listens (the websocket hub, wired at boot).
type CatalogueService struct {
	products *repositories.ProductRepository
}

func NewCatalogueService() *CatalogueService {
	return &CatalogueService{products: repositories.NewProductRepository()}
}

// List returns the full catalogue, cache-first.
func (s *CatalogueService) List(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(catalogueCacheKey, &cached) {
		metrics.CatalogueCacheHits.Inc()
		return cached, nil
	}
	metrics.CatalogueCacheMisses.Inc()

	products, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}
	cache.Set(catalogueCacheKey, products, catalogueCacheTTL)
	return products, nil
}

// Find returns a single product by id.
func (s *CatalogueService) Find(ctx context.Context, id string) (models.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Add stores the product images on the configured disk and inserts the
// product.
func (s *CatalogueService) Add(ctx context.Context, product *models.Product, images []NamedReader) error {
	disk := storage.Default()
	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := storage.PutImage(disk, "products", img.Filename, img.Reader)
		if err != nil {
			return err
		}
		urls = append(urls, url)
	}
	product.Image = urls
	product.InStock = true

	if err := s.products.Create(ctx, product); err != nil {
		return err
	}

	s.catalogueChanged("product.added", product)
	return nil
}

// SetStock flips a product's availability.
func (s *CatalogueService) SetStock(ctx context.Context, id string, inStock bool) error {
	if err := s.products.SetStock(ctx, id, inStock); err != nil {
		return err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		// the update landed; broadcast with what we have
		product = models.Product{InStock: inStock}
	}
	s.catalogueChanged("product.updated", &product)
	return nil
}

// WarmCache refreshes the catalogue cache. Wired to the scheduler.
func (s *CatalogueService) WarmCache(ctx context.Context) {
	products, err := s.products.All(ctx)
	if err != nil {
		logger.Warn("catalogue: cache warm failed", "error", err)
		return
	}
	cache.Set(catalogueCacheKey, products, catalogueCacheTTL)
	logger.Debug("catalogue: cache warmed", "count", len(products))
}

func (s *CatalogueService) catalogueChanged(eventName string, product *models.Product) {
	cache.Del(catalogueCacheKey)
	event.Fire(eventName, product)
}

// NamedReader pairs an upload stream with its original filename.
type NamedReader struct {
	Filename string
	Reader   io.Reader
}
