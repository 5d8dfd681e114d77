package services

import (
	"context"
	"fmt"
	"strings"

	"storefront-service/cart"
	"storefront-service/catalog"

	awspkg "storefront-service/pkg/aws"

	"go.uber.org/zap"
)

// CatalogService serves products and pricing plans.
type CatalogService interface {
	ListProducts(ctx context.Context, category string) ([]cart.Product, error)
	GetProduct(ctx context.Context, id string) (*cart.Product, error)
	Categories() []string
	Plans(billing string) ([]catalog.PlanView, error)
}

type catalogServiceImpl struct {
	catalog *catalog.Catalog
	images  awspkg.ImageSigner
	logger  *zap.Logger
}

// NewCatalogService creates a CatalogService. When images is nil the image
// references from the catalog are returned unchanged.
func NewCatalogService(cat *catalog.Catalog, images awspkg.ImageSigner, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{catalog: cat, images: images, logger: logger}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, category string) ([]cart.Product, error) {
	products := s.catalog.Products(strings.TrimSpace(category))
	for i := range products {
		products[i].Image = s.imageURL(ctx, products[i].Image)
	}
	return products, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id string) (*cart.Product, error) {
	p, ok := s.catalog.Product(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	p.Image = s.imageURL(ctx, p.Image)
	return &p, nil
}

func (s *catalogServiceImpl) Categories() []string {
	return s.catalog.Categories()
}

func (s *catalogServiceImpl) Plans(billing string) ([]catalog.PlanView, error) {
	b, err := catalog.ParseBilling(billing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBilling, err)
	}
	return s.catalog.Plans(b), nil
}

// imageURL signs object keys. Absolute URLs and failures fall back to the
// stored reference.
func (s *catalogServiceImpl) imageURL(ctx context.Context, ref string) string {
	if s.images == nil || ref == "" || strings.Contains(ref, "://") {
		return ref
	}
	url, err := s.images.SignImage(ctx, strings.TrimPrefix(ref, "/"))
	if err != nil {
		s.logger.Warn("Failed to sign product image", zap.String("image", ref), zap.Error(err))
		return ref
	}
	return url
}
