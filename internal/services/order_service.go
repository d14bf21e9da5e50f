package services

import (
	"context"
	"fmt"

	"sokoni-backend/database"
	"sokoni-backend/internal/models"
	"sokoni-backend/internal/utils"
)

// OrderService manages orders and the per-customer cart and saved lists.
type OrderService struct {
	store *database.Store
}

// NewOrderService creates a new order service
func NewOrderService(store *database.Store) *OrderService {
	return &OrderService{store: store}
}

// CreateOrder places an order for an existing customer. Search keywords come
// from the customer name, contact and email; the stored order starts in
// PLACED with zeroed ratings regardless of what the payload carries.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.OrderCreate) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	if _, err := s.store.Get(ctx, database.CollectionUsers, req.CID); err != nil {
		if err == database.ErrNoDocument {
			return "", NewNotFoundError("Customer does not exist or wrong id")
		}
		return "", fmt.Errorf("failed to get customer: %w", err)
	}

	keywords := utils.MergeKeywords(req.CustomerName, req.Contact, req.Email)

	id, err := s.store.Add(ctx, database.CollectionOrders, models.NewOrderDocument(req, keywords))
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	return id, nil
}

// ListOrders returns up to 50 orders, oldest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]database.Document, error) {
	return s.store.Query(ctx, database.CollectionOrders, nil, "createdAt", 50)
}

// UpdateOrder merges the non-nil fields of a fulfilment update into the
// stored order.
func (s *OrderService) UpdateOrder(ctx context.Context, req *models.OrderUpdate) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.store.Get(ctx, database.CollectionOrders, req.ID); err != nil {
		if err == database.ErrNoDocument {
			return NewNotFoundError("Order does not exist or wrong id")
		}
		return fmt.Errorf("failed to get order: %w", err)
	}

	patch := utils.BuildPatch(req)
	if err := s.store.Set(ctx, database.CollectionOrders, req.ID, patch); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// UpdateCart merges new contents into a customer's cart.
func (s *OrderService) UpdateCart(ctx context.Context, req *models.CartUpdate) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.store.Get(ctx, database.CollectionCarts, req.ID); err != nil {
		if err == database.ErrNoDocument {
			return NewNotFoundError("Cart does not exist or wrong id")
		}
		return fmt.Errorf("failed to get cart: %w", err)
	}

	patch := utils.BuildPatch(req)
	if err := s.store.Set(ctx, database.CollectionCarts, req.ID, patch); err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}

	return nil
}

// UpdateSaved merges new contents into a customer's saved list.
func (s *OrderService) UpdateSaved(ctx context.Context, req *models.SavedUpdate) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.store.Get(ctx, database.CollectionSaved, req.ID); err != nil {
		if err == database.ErrNoDocument {
			return NewNotFoundError("Saved list does not exist or wrong id")
		}
		return fmt.Errorf("failed to get saved list: %w", err)
	}

	patch := utils.BuildPatch(req)
	if err := s.store.Set(ctx, database.CollectionSaved, req.ID, patch); err != nil {
		return fmt.Errorf("failed to update saved list: %w", err)
	}

	return nil
}
