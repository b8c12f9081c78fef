package mysql

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager 把 gorm 事务放进 context，仓储通过 conn 取用
type TxManager struct {
	DB *gorm.DB
}

// Transaction fn 返回错误或 panic 时回滚；已在事务中时直接复用外层事务
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
