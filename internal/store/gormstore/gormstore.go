// Package gormstore implements store.Store on PostgreSQL through gorm.
package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/apperrors"
	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/store"
)

type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ store.Store = (*Store)(nil)

// New wraps an initialized connection. Every call is bounded by queryTimeout.
func New(db *gorm.DB, queryTimeout time.Duration) *Store {
	return &Store{db: db, timeout: queryTimeout}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.StoreUnavailable(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.StoreUnavailable(err)
	}
	return nil
}

func (s *Store) Close() error {
	database.Close(s.db)
	return nil
}

func orderClause(order store.SortOrder, column string) string {
	if order == store.OldestFirst {
		return column + " ASC, id ASC"
	}
	return column + " DESC, id DESC"
}

// classify maps gorm and driver errors onto the application taxonomy.
func classify(err error, resource string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict(resource+" already exists", err)
	default:
		return apperrors.StoreUnavailable(err)
	}
}
