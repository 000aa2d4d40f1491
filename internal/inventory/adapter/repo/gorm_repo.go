package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xxz807/bookkeeping/internal/inventory/domain"
	"github.com/xxz807/bookkeeping/internal/platform/apperr"
)

type GormItemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) *GormItemRepo {
	return &GormItemRepo{db: db}
}

func (r *GormItemRepo) Create(ctx context.Context, item *domain.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("creating item: %w", err)
	}
	return nil
}

func (r *GormItemRepo) List(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

func (r *GormItemRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Item, error) {
	var item domain.Item
	err := db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding item %d: %w", id, err)
	}
	return &item, nil
}

// UpdateStock 实现乐观锁更新
// SQL: UPDATE items SET qty = ?, avg_cost = ?, version = version + 1 WHERE id = ? AND version = ?
func (r *GormItemRepo) UpdateStock(ctx context.Context, db *gorm.DB, item *domain.Item, version int64) error {
	// 注意：必须使用传入的 db (事务会话)，而不是 r.db
	result := db.WithContext(ctx).Model(&domain.Item{}).
		Where("id = ? AND version = ?", item.ID, version).
		Updates(map[string]interface{}{
			"qty":      item.Qty,
			"avg_cost": item.AvgCost,
			"version":  gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("updating item %d: %w", item.ID, result.Error)
	}

	// 关键点：如果没有行被更新，说明 version 不匹配（被别人改过了）
	if result.RowsAffected == 0 {
		return apperr.Conflict("item %d was modified concurrently", item.ID)
	}
	item.Version = version + 1
	return nil
}

// ---------------------------------------------------------

type GormTxnRepo struct {
	db *gorm.DB
}

func NewTxnRepo(db *gorm.DB) *GormTxnRepo {
	return &GormTxnRepo{db: db}
}

func (r *GormTxnRepo) Create(ctx context.Context, db *gorm.DB, txn *domain.InventoryTxn) error {
	if err := db.WithContext(ctx).Create(txn).Error; err != nil {
		return fmt.Errorf("creating inventory txn: %w", err)
	}
	return nil
}

func (r *GormTxnRepo) ListByItem(ctx context.Context, itemID int64) ([]domain.InventoryTxn, error) {
	var txns []domain.InventoryTxn
	if err := r.db.WithContext(ctx).Where("item_id = ?", itemID).Order("id").Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("listing inventory txns: %w", err)
	}
	return txns, nil
}

var (
	_ domain.ItemRepository = (*GormItemRepo)(nil)
	_ domain.TxnRepository  = (*GormTxnRepo)(nil)
)
