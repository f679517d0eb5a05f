package repository

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey int

const dbKey ctxKey = iota

// TransactionManager runs a function inside a database transaction,
// propagating the transactional handle through the context so repositories
// called within the closure share it.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type txManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &txManager{db: db}
}

func (m *txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, dbKey, tx))
	})
}

// GetDB returns the transaction bound to ctx when one is active, otherwise
// the root handle. Repositories always go through this so the same method
// works inside and outside RunInTx.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(dbKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
