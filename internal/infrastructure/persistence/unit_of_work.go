package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/lupon/backend/internal/domain/shared"
)

type txContextKey struct{}

// GormUnitOfWork implements shared.UnitOfWork on a GORM transaction.
// The transaction handle travels through the context so every repository
// write inside the function joins the same transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a transaction. Any error rolls everything back.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested Execute calls join the enclosing transaction
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// txFromContext returns the transaction stored in the context, if any
func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// session returns the DB handle repositories should use: the transaction
// from the context when inside a unit of work, the base connection otherwise.
func session(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

var _ shared.UnitOfWork = (*GormUnitOfWork)(nil)
