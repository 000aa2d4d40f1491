package domain

import (
	"github.com/shopspring/decimal"
)

// TxnType 库存变动类型
type TxnType string

const (
	Purchase TxnType = "purchase"
	Sale     TxnType = "sale"
)

// IsValid 校验类型合法性
func (t TxnType) IsValid() bool {
	return t == Purchase || t == Sale
}

// Item 存货
// 对应数据库表: items
// Qty 和 AvgCost 只能由库存交易修改
type Item struct {
	ID      int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU     *string         `gorm:"column:sku;type:varchar(64)" json:"sku"`
	Name    string          `gorm:"type:varchar(200);not null" json:"name"`
	Qty     decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"qty"`
	AvgCost decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"avg_cost"`
	Version int64           `gorm:"not null;default:1" json:"-"` // 乐观锁
}

func (Item) TableName() string {
	return "items"
}

// InventoryTxn 库存交易，与一张凭证一一对应
// 对应数据库表: inventory_txns
type InventoryTxn struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID    int64           `gorm:"not null;index" json:"item_id"`
	Type      TxnType         `gorm:"type:varchar(16);not null" json:"type"`
	Qty       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"qty"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"unit_cost"`
	Date      string          `gorm:"type:varchar(10);not null" json:"date"`
	JournalID int64           `gorm:"not null;uniqueIndex" json:"journal_id"`
}

func (InventoryTxn) TableName() string {
	return "inventory_txns"
}

// Models 需要建表的实体
func Models() []any {
	return []any{&Item{}, &InventoryTxn{}}
}
