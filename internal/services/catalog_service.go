package services

import (
	"context"
	"fmt"

	"sokoni-backend/database"
	"sokoni-backend/internal/models"
	"sokoni-backend/internal/utils"
)

// CatalogService manages the product, category and offer collections.
type CatalogService struct {
	store *database.Store
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *database.Store) *CatalogService {
	return &CatalogService{store: store}
}

// CreateProduct lists a product for an existing vendor. A product is unique
// per (name, vendor, manufacturer); the search keywords come from the name
// and brand.
func (s *CatalogService) CreateProduct(ctx context.Context, req *models.ProductCreate) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	if _, err := s.store.Get(ctx, database.CollectionUsers, req.VID); err != nil {
		if err == database.ErrNoDocument {
			return "", NewNotFoundError("Vendor does not exist or wrong id")
		}
		return "", fmt.Errorf("failed to get vendor: %w", err)
	}

	count, err := s.store.Count(ctx, database.CollectionProducts, []database.Filter{
		{Field: "name", Value: req.Name},
		{Field: "vid", Value: req.VID},
		{Field: "manufacturer", Value: req.Manufacturer},
	})
	if err != nil {
		return "", fmt.Errorf("failed to check product uniqueness: %w", err)
	}
	if count > 0 {
		return "", NewDuplicateError("Product with same attributes already exist")
	}

	keywords := utils.MergeKeywords(req.Name, req.Brand)

	id, err := s.store.Add(ctx, database.CollectionProducts, models.NewProductDocument(req, keywords))
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}

	return id, nil
}

// ListProducts returns up to 50 products ordered by name.
func (s *CatalogService) ListProducts(ctx context.Context) ([]database.Document, error) {
	return s.store.Query(ctx, database.CollectionProducts, nil, "name", 50)
}

// UpdateProduct merges the non-nil fields of a listing update. The derived
// code and keywords are not recomputed on rename.
func (s *CatalogService) UpdateProduct(ctx context.Context, req *models.ProductUpdate) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.store.Get(ctx, database.CollectionProducts, req.ID); err != nil {
		if err == database.ErrNoDocument {
			return NewNotFoundError("Product does not exist or wrong id")
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	patch := utils.BuildPatch(req)
	if err := s.store.Set(ctx, database.CollectionProducts, req.ID, patch); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// CreateCategory adds a category. Names are unique.
func (s *CatalogService) CreateCategory(ctx context.Context, req *models.CategoryCreate) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	count, err := s.store.Count(ctx, database.CollectionCategories, []database.Filter{
		{Field: "name", Value: req.Name},
	})
	if err != nil {
		return "", fmt.Errorf("failed to check category uniqueness: %w", err)
	}
	if count > 0 {
		return "", NewDuplicateError("Category with same attributes already exist")
	}

	id, err := s.store.Add(ctx, database.CollectionCategories, models.NewCategoryDocument(req))
	if err != nil {
		return "", fmt.Errorf("failed to create category: %w", err)
	}

	return id, nil
}

// ListCategories returns up to 50 categories ordered by name.
func (s *CatalogService) ListCategories(ctx context.Context) ([]database.Document, error) {
	return s.store.Query(ctx, database.CollectionCategories, nil, "name", 50)
}

// DeleteCategory removes a category by id.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, database.CollectionCategories, id); err != nil {
		if err == database.ErrNoDocument {
			return NewNotFoundError("Category does not exist or wrong id")
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// CreateOffer adds a discount offer. Offers are unique per (name, code).
func (s *CatalogService) CreateOffer(ctx context.Context, req *models.OfferCreate) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	count, err := s.store.Count(ctx, database.CollectionOffers, []database.Filter{
		{Field: "name", Value: req.Name},
		{Field: "code", Value: req.Code},
	})
	if err != nil {
		return "", fmt.Errorf("failed to check offer uniqueness: %w", err)
	}
	if count > 0 {
		return "", NewDuplicateError("Offer with same attributes already exist")
	}

	id, err := s.store.Add(ctx, database.CollectionOffers, models.NewOfferDocument(req))
	if err != nil {
		return "", fmt.Errorf("failed to create offer: %w", err)
	}

	return id, nil
}

// ListOffers returns up to 50 offers ordered by name.
func (s *CatalogService) ListOffers(ctx context.Context) ([]database.Document, error) {
	return s.store.Query(ctx, database.CollectionOffers, nil, "name", 50)
}

// DeleteOffer removes an offer by id.
func (s *CatalogService) DeleteOffer(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, database.CollectionOffers, id); err != nil {
		if err == database.ErrNoDocument {
			return NewNotFoundError("Offer does not exist or wrong id")
		}
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	return nil
}
