package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xxz807/bookkeeping/internal/inventory/domain"
	ledgerdomain "github.com/xxz807/bookkeeping/internal/ledger/domain"
	ledger "github.com/xxz807/bookkeeping/internal/ledger/service"
	"github.com/xxz807/bookkeeping/internal/platform/apperr"
	"github.com/xxz807/bookkeeping/internal/platform/config"
)

// JournalPoster 库存交易借用总账的过账能力，必须在同一个事务里完成
type JournalPoster interface {
	PostInTx(ctx context.Context, tx *gorm.DB, req ledger.PostingRequest) (*ledgerdomain.JournalEntry, error)
	ResolveAccountCode(ctx context.Context, tx *gorm.DB, code string) (int64, error)
	Now() time.Time
}

// CreateItemRequest 新建存货，Qty / AvgCost 缺省为 0
type CreateItemRequest struct {
	SKU     string
	Name    string
	Qty     decimal.Decimal
	AvgCost decimal.Decimal
}

// RecordTxnRequest 库存交易
// JournalLines 为空时按配置的科目代码在服务端生成分录
type RecordTxnRequest struct {
	ItemID       int64
	Type         domain.TxnType
	Qty          decimal.Decimal
	UnitCost     decimal.Decimal
	Date         string
	JournalLines []ledger.PostingLine
}

// InventoryService 永续盘存 + 移动加权平均成本
type InventoryService struct {
	db      *gorm.DB
	items   domain.ItemRepository
	txns    domain.TxnRepository
	journal JournalPoster
	policy  config.InventoryConfig
	logger  *zap.Logger
}

func NewInventoryService(
	db *gorm.DB,
	items domain.ItemRepository,
	txns domain.TxnRepository,
	journal JournalPoster,
	policy config.InventoryConfig,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		db:      db,
		items:   items,
		txns:    txns,
		journal: journal,
		policy:  policy,
		logger:  logger,
	}
}

// CreateItem 新建存货
func (s *InventoryService) CreateItem(ctx context.Context, req CreateItemRequest) (int64, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return 0, apperr.Invalid("name", "is required")
	}
	if req.AvgCost.IsNegative() {
		return 0, apperr.Invalid("avg_cost", "must not be negative")
	}

	item := &domain.Item{
		Name:    name,
		Qty:     req.Qty,
		AvgCost: req.AvgCost,
	}
	if sku := strings.TrimSpace(req.SKU); sku != "" {
		item.SKU = &sku
	}
	if err := s.items.Create(ctx, item); err != nil {
		return 0, err
	}
	return item.ID, nil
}

// ListItems 按 id 排序
func (s *InventoryService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.items.List(ctx)
}

// ListTxns 某个存货的交易记录
func (s *InventoryService) ListTxns(ctx context.Context, itemID int64) ([]domain.InventoryTxn, error) {
	if itemID <= 0 {
		return nil, apperr.Invalid("item_id", "is required")
	}
	item, err := s.items.FindByID(ctx, s.db, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("item %d", itemID)
	}
	return s.txns.ListByItem(ctx, itemID)
}

func (r RecordTxnRequest) validate() error {
	if r.ItemID <= 0 {
		return apperr.Invalid("item_id", "is required")
	}
	if r.Type == "" {
		return apperr.Invalid("type", "is required")
	}
	if !r.Type.IsValid() {
		return apperr.Invalid("type", "must be purchase or sale, got %q", r.Type)
	}
	if !r.Qty.IsPositive() {
		return apperr.Invalid("qty", "must be positive")
	}
	if r.UnitCost.IsNegative() {
		return apperr.Invalid("unit_cost", "must not be negative")
	}
	return nil
}

// RecordTxn 记一笔库存交易，三步在同一个事务里：
// 1. 过账凭证  2. 写库存交易  3. 更新数量和平均成本 (乐观锁)
func (s *InventoryService) RecordTxn(ctx context.Context, req RecordTxnRequest) (int64, error) {
	if err := req.validate(); err != nil {
		return 0, err
	}
	date, err := ledgerdomain.NormalizeDate(req.Date, s.journal.Now())
	if err != nil {
		return 0, err
	}

	var entryID int64
	var item *domain.Item
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err = s.items.FindByID(ctx, tx, req.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.NotFound("item %d", req.ItemID)
		}

		if req.Type == domain.Sale && !s.policy.AllowNegativeStock && item.Qty.LessThan(req.Qty) {
			return apperr.Invalid("qty", "insufficient stock: on hand %s, requested %s", item.Qty, req.Qty)
		}

		lines := req.JournalLines
		if len(lines) == 0 {
			lines, err = s.defaultLines(ctx, tx, req)
			if err != nil {
				return err
			}
		}

		// A. 过账 (与普通凭证同样的校验)
		entry, err := s.journal.PostInTx(ctx, tx, ledger.PostingRequest{
			Date:        date,
			Description: fmt.Sprintf("Inventory %s for item %d", req.Type, req.ItemID),
			Lines:       lines,
		})
		if err != nil {
			return err
		}
		entryID = entry.ID

		// B. 库存交易与凭证一一对应
		if err := s.txns.Create(ctx, tx, &domain.InventoryTxn{
			ItemID:    req.ItemID,
			Type:      req.Type,
			Qty:       req.Qty,
			UnitCost:  req.UnitCost,
			Date:      date,
			JournalID: entry.ID,
		}); err != nil {
			return err
		}

		// C. 更新存货 (如果失败，Transaction 函数会自动回滚整个事务)
		version := item.Version
		item.Apply(req.Type, req.Qty, req.UnitCost)
		return s.items.UpdateStock(ctx, tx, item, version)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("inventory txn recorded",
		zap.Int64("item_id", req.ItemID),
		zap.String("type", string(req.Type)),
		zap.String("qty", req.Qty.String()),
		zap.Int64("entry_id", entryID),
		zap.String("new_qty", item.Qty.String()),
		zap.String("avg_cost", item.AvgCost.String()),
	)
	return entryID, nil
}

// defaultLines 服务端生成分录，金额 = qty * unit_cost
// 进货: 借 采购 / 贷 供应商；销货: 借 现金 / 贷 销售收入
func (s *InventoryService) defaultLines(ctx context.Context, tx *gorm.DB, req RecordTxnRequest) ([]ledger.PostingLine, error) {
	debitCode, creditCode := s.policy.PurchaseDebitCode, s.policy.PurchaseCreditCode
	if req.Type == domain.Sale {
		debitCode, creditCode = s.policy.SaleDebitCode, s.policy.SaleCreditCode
	}

	debitID, err := s.journal.ResolveAccountCode(ctx, tx, debitCode)
	if err != nil {
		return nil, err
	}
	creditID, err := s.journal.ResolveAccountCode(ctx, tx, creditCode)
	if err != nil {
		return nil, err
	}

	amount := req.Qty.Mul(req.UnitCost)
	return []ledger.PostingLine{
		{AccountID: debitID, Debit: amount},
		{AccountID: creditID, Credit: amount},
	}, nil
}
