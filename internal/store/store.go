//go:generate mockgen -source ./store.go -destination=./mocks/store.go -package=mock_store -exclude_interfaces=Store

// Package store defines the persistence contracts for products, orders and tracking records.
// Implementations return *apperrors.Error values: NotFound when a key does not resolve,
// Conflict on a unique-key violation and StoreUnavailable for connectivity failures.
package store

import (
	"context"
	"fmt"

	"github.com/javajoker/storefront-backend/internal/models"
)

type SortOrder int

const (
	// NewestFirst orders records by creation time, most recent first.
	NewestFirst SortOrder = iota
	OldestFirst
)

func (s SortOrder) String() string {
	if s == OldestFirst {
		return "oldest"
	}
	return "newest"
}

// ParseSortOrder maps the configured policy name to a SortOrder.
func ParseSortOrder(name string) (SortOrder, error) {
	switch name {
	case "", "newest":
		return NewestFirst, nil
	case "oldest":
		return OldestFirst, nil
	default:
		return NewestFirst, fmt.Errorf("unknown sort order %q", name)
	}
}

type ProductStore interface {
	FindProducts(ctx context.Context, order SortOrder) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	InsertProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (*models.Product, error)
}

type OrderStore interface {
	FindOrders(ctx context.Context, order SortOrder) ([]models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	InsertOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, orderID string, patch models.OrderPatch) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID string) (*models.Order, error)
}

type TrackingStore interface {
	FindTracking(ctx context.Context, order SortOrder) ([]models.TrackingRecord, error)
	GetTracking(ctx context.Context, qrID string) (*models.TrackingRecord, error)
	InsertTracking(ctx context.Context, record *models.TrackingRecord) error
	UpdateTracking(ctx context.Context, qrID string, patch models.TrackingPatch) (*models.TrackingRecord, error)
	DeleteTracking(ctx context.Context, qrID string) (*models.TrackingRecord, error)
}

// Store bundles the three record stores behind one backend.
type Store interface {
	ProductStore
	OrderStore
	TrackingStore
	Ping(ctx context.Context) error
	Close() error
}
