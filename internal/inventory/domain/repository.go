package domain

import (
	"context"

	"gorm.io/gorm"
)

// ItemRepository 存货仓储
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	List(ctx context.Context) ([]Item, error)

	// FindByID 在事务内读取，找不到返回 (nil, nil)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Item, error)

	// UpdateStock 乐观锁更新数量和平均成本
	// 版本号不匹配时返回 ErrConflict
	UpdateStock(ctx context.Context, db *gorm.DB, item *Item, version int64) error
}

// TxnRepository 库存交易仓储
type TxnRepository interface {
	Create(ctx context.Context, db *gorm.DB, txn *InventoryTxn) error
	ListByItem(ctx context.Context, itemID int64) ([]InventoryTxn, error)
}
