package domain

import (
	"context"

	"gorm.io/gorm"
)

// AccountRepository 定义账户仓储接口
// 这是一个 Port (端口)，Adapter (适配器) 将在基础设施层实现它
// 带 db 参数的方法必须使用传入的事务会话
type AccountRepository interface {
	// List 全部科目，按 code 排序
	List(ctx context.Context) ([]Account, error)

	// FindByCode 根据科目代码查询 (用于服务端生成分录)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Account, error)

	// ExistingIDs 返回 ids 中真实存在的科目
	ExistingIDs(ctx context.Context, db *gorm.DB, ids []int64) (map[int64]bool, error)

	// Count 科目数量 (用于判断是否需要初始化)
	Count(ctx context.Context, db *gorm.DB) (int64, error)

	// Create 批量新建科目
	Create(ctx context.Context, db *gorm.DB, accounts ...*Account) error
}

// EntryRepository 定义凭证仓储接口
type EntryRepository interface {
	// Create 保存凭证主表和分录 (在一个事务中)
	Create(ctx context.Context, db *gorm.DB, entry *JournalEntry) error

	// List 全部凭证 (日期倒序)，分录带出科目代码和名称
	List(ctx context.Context) ([]JournalEntry, error)

	// SumByAccount 按科目汇总借贷，没有分录的科目也返回 0
	SumByAccount(ctx context.Context) ([]TrialBalanceRow, error)
}
