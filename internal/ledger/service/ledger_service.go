package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xxz807/bookkeeping/internal/ledger/domain"
	"github.com/xxz807/bookkeeping/internal/platform/apperr"
)

// PostingRequest 定义记账请求的 DTO (Input)
type PostingRequest struct {
	Date        string // YYYY-MM-DD 或 RFC3339，空值取当天
	Description string
	Lines       []PostingLine
}

type PostingLine struct {
	AccountID int64
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// LedgerService 核心服务
type LedgerService struct {
	db          *gorm.DB // 用于开启事务
	accountRepo domain.AccountRepository
	entryRepo   domain.EntryRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewLedgerService(db *gorm.DB, accRepo domain.AccountRepository, entryRepo domain.EntryRepository, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		db:          db,
		accountRepo: accRepo,
		entryRepo:   entryRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock 替换时钟 (测试用)
func (s *LedgerService) SetClock(now func() time.Time) {
	s.now = now
}

// Now 服务当前时间，库存模块共用同一个时钟
func (s *LedgerService) Now() time.Time {
	return s.now()
}

// PostEntry 执行记账 (ACID Transaction Script)
func (s *LedgerService) PostEntry(ctx context.Context, req PostingRequest) (int64, error) {
	var entry *domain.JournalEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.PostInTx(ctx, tx, req)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("journal entry posted",
		zap.Int64("entry_id", entry.ID),
		zap.String("date", entry.Date),
		zap.Int("lines", len(entry.Lines)),
	)
	return entry.ID, nil
}

// PostInTx 在调用方的事务里过账，调用方负责提交或回滚
// 校验顺序：结构 (行数、非负、借贷平衡) -> 科目存在
func (s *LedgerService) PostInTx(ctx context.Context, tx *gorm.DB, req PostingRequest) (*domain.JournalEntry, error) {
	date, err := domain.NormalizeDate(req.Date, s.now())
	if err != nil {
		return nil, err
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}

	// 1. 试算平衡检查 (In-Memory Check)
	if err := domain.ValidateLines(lines); err != nil {
		return nil, err
	}

	// 2. 科目必须存在
	if err := s.checkAccounts(ctx, tx, lines); err != nil {
		return nil, err
	}

	// 3. 保存凭证主表和分录
	entry := &domain.JournalEntry{
		Date:        date,
		Description: req.Description,
		Lines:       lines,
	}
	if err := s.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *LedgerService) checkAccounts(ctx context.Context, tx *gorm.DB, lines []domain.JournalLine) error {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}

	existing, err := s.accountRepo.ExistingIDs(ctx, tx, ids)
	if err != nil {
		return err
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var missing []string
	for _, id := range ids {
		if !existing[id] {
			missing = append(missing, fmt.Sprint(id))
		}
	}
	if len(missing) > 0 {
		return apperr.Invalid("account_id", "unknown account(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// ResolveAccountCode 按科目代码查 ID，服务端生成分录时使用
// 代码来自配置，查不到属于部署问题，不归为请求错误
func (s *LedgerService) ResolveAccountCode(ctx context.Context, tx *gorm.DB, code string) (int64, error) {
	acc, err := s.accountRepo.FindByCode(ctx, tx, code)
	if err != nil {
		return 0, err
	}
	if acc == nil {
		return 0, fmt.Errorf("no account with code %s in chart of accounts", code)
	}
	return acc.ID, nil
}

// ListEntries 凭证列表 (日期倒序)
func (s *LedgerService) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	return s.entryRepo.List(ctx)
}
