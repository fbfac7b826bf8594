package database

import (
	"context"
	"errors"

	"board/internal/config"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor implements tx.Transactor on top of gorm.
type Transactor struct{}

func NewTransactor() *Transactor {
	return &Transactor{}
}

// WithinTransaction runs fn in a gorm transaction. A call made while a
// transaction is already open in ctx joins it instead of nesting.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or the shared handle.
func conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return config.DB.WithContext(ctx)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
