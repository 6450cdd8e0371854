// Package memstore is an in-process implementation of store.Store, used for local
// development (DB_DRIVER=memory) and by service and handler tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/javajoker/storefront-backend/internal/apperrors"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

type row[T any] struct {
	seq int64
	val T
}

type table[T any] struct {
	rows map[string]*row[T]
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*row[T])}
}

// sorted returns rows by insertion sequence, oldest first.
func (t *table[T]) sorted() []*row[T] {
	out := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

type Store struct {
	mu       sync.RWMutex
	seq      int64
	nextID   uint
	products *table[models.Product]
	orders   *table[models.Order]
	tracking *table[models.TrackingRecord]
	now      func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		products: newTable[models.Product](),
		orders:   newTable[models.Order](),
		tracking: newTable[models.TrackingRecord](),
		now:      time.Now,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return checkContext(ctx)
}

func (s *Store) Close() error {
	return nil
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperrors.StoreUnavailable(err)
	}
	return nil
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func (s *Store) nextRowID() uint {
	s.nextID++
	return s.nextID
}

// Products

func (s *Store) FindProducts(ctx context.Context, order store.SortOrder) ([]models.Product, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.products.sorted()
	products := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.val.Clone())
	}
	if order == store.NewestFirst {
		reverse(products)
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.products.rows[id]
	if !ok {
		return nil, apperrors.NotFound("product")
	}
	product := r.val.Clone()
	return &product, nil
}

func (s *Store) InsertProduct(ctx context.Context, product *models.Product) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products.rows[product.ID]; exists {
		return apperrors.Conflict("product id already exists", nil)
	}
	now := s.now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	s.products.rows[product.ID] = &row[models.Product]{seq: s.next(), val: product.Clone()}
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.products.rows[id]
	if !ok {
		return nil, apperrors.NotFound("product")
	}
	patch.Apply(&r.val)
	if !patch.IsEmpty() {
		r.val.UpdatedAt = s.now().UTC()
	}
	product := r.val.Clone()
	return &product, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.products.rows[id]
	if !ok {
		return nil, apperrors.NotFound("product")
	}
	delete(s.products.rows, id)
	return &r.val, nil
}

// Orders

func (s *Store) FindOrders(ctx context.Context, order store.SortOrder) ([]models.Order, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.orders.sorted()
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].val.OrderDate.Before(rows[j].val.OrderDate) })
	orders := make([]models.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, r.val.Clone())
	}
	if order == store.NewestFirst {
		reverse(orders)
	}
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.orders.rows[orderID]
	if !ok {
		return nil, apperrors.NotFound("order")
	}
	order := r.val.Clone()
	return &order, nil
}

func (s *Store) InsertOrder(ctx context.Context, order *models.Order) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders.rows[order.OrderID]; exists {
		return apperrors.Conflict("order id already exists", nil)
	}
	now := s.now().UTC()
	order.ID = s.nextRowID()
	order.CreatedAt = now
	order.UpdatedAt = now
	s.orders.rows[order.OrderID] = &row[models.Order]{seq: s.next(), val: order.Clone()}
	return nil
}

func (s *Store) UpdateOrder(ctx context.Context, orderID string, patch models.OrderPatch) (*models.Order, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.orders.rows[orderID]
	if !ok {
		return nil, apperrors.NotFound("order")
	}
	patch.Apply(&r.val)
	if !patch.IsEmpty() {
		r.val.UpdatedAt = s.now().UTC()
	}
	order := r.val.Clone()
	return &order, nil
}

func (s *Store) DeleteOrder(ctx context.Context, orderID string) (*models.Order, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.orders.rows[orderID]
	if !ok {
		return nil, apperrors.NotFound("order")
	}
	delete(s.orders.rows, orderID)
	return &r.val, nil
}

// Tracking

func (s *Store) FindTracking(ctx context.Context, order store.SortOrder) ([]models.TrackingRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.tracking.sorted()
	records := make([]models.TrackingRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.val)
	}
	if order == store.NewestFirst {
		reverse(records)
	}
	return records, nil
}

func (s *Store) GetTracking(ctx context.Context, qrID string) (*models.TrackingRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.tracking.rows[qrID]
	if !ok {
		return nil, apperrors.NotFound("tracking")
	}
	record := r.val
	return &record, nil
}

func (s *Store) InsertTracking(ctx context.Context, record *models.TrackingRecord) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tracking.rows[record.QRID]; exists {
		return apperrors.Conflict("tracking qr id already exists", nil)
	}
	record.ID = s.nextRowID()
	s.tracking.rows[record.QRID] = &row[models.TrackingRecord]{seq: s.next(), val: *record}
	return nil
}

func (s *Store) UpdateTracking(ctx context.Context, qrID string, patch models.TrackingPatch) (*models.TrackingRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.tracking.rows[qrID]
	if !ok {
		return nil, apperrors.NotFound("tracking")
	}
	patch.Apply(&r.val)
	record := r.val
	return &record, nil
}

func (s *Store) DeleteTracking(ctx context.Context, qrID string) (*models.TrackingRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.tracking.rows[qrID]
	if !ok {
		return nil, apperrors.NotFound("tracking")
	}
	delete(s.tracking.rows, qrID)
	return &r.val, nil
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
