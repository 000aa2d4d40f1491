package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xxz807/bookkeeping/internal/ledger/domain"
)

type GormAccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *GormAccountRepo {
	return &GormAccountRepo{db: db}
}

func (r *GormAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := r.db.WithContext(ctx).Order("code, id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return accounts, nil
}

// FindByCode 找不到时返回 (nil, nil)
func (r *GormAccountRepo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Account, error) {
	var account domain.Account
	err := db.WithContext(ctx).Where("code = ?", code).Order("id").First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding account %s: %w", code, err)
	}
	return &account, nil
}

func (r *GormAccountRepo) ExistingIDs(ctx context.Context, db *gorm.DB, ids []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var existing []int64
	if err := db.WithContext(ctx).Model(&domain.Account{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return nil, fmt.Errorf("checking accounts: %w", err)
	}
	for _, id := range existing {
		found[id] = true
	}
	return found, nil
}

func (r *GormAccountRepo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Account{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting accounts: %w", err)
	}
	return count, nil
}

func (r *GormAccountRepo) Create(ctx context.Context, db *gorm.DB, accounts ...*domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Create(accounts).Error; err != nil {
		return fmt.Errorf("creating accounts: %w", err)
	}
	return nil
}

// ---------------------------------------------------------

type GormEntryRepo struct {
	db *gorm.DB
}

func NewEntryRepo(db *gorm.DB) *GormEntryRepo {
	return &GormEntryRepo{db: db}
}

func (r *GormEntryRepo) Create(ctx context.Context, db *gorm.DB, entry *domain.JournalEntry) error {
	// GORM 会自动处理 JournalEntry -> Lines 的关联插入
	if err := db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("creating journal entry: %w", err)
	}
	return nil
}

func (r *GormEntryRepo) List(ctx context.Context) ([]domain.JournalEntry, error) {
	db := r.db.WithContext(ctx)

	var entries []domain.JournalEntry
	if err := db.Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	var lines []domain.JournalLine
	err := db.Table("journal_lines AS jl").
		Select("jl.id, jl.entry_id, jl.account_id, jl.debit, jl.credit, a.code, a.name").
		Joins("LEFT JOIN accounts a ON a.id = jl.account_id").
		Where("jl.entry_id IN ?", ids).
		Order("jl.id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("listing journal lines: %w", err)
	}

	byEntry := make(map[int64][]domain.JournalLine, len(entries))
	for _, l := range lines {
		byEntry[l.EntryID] = append(byEntry[l.EntryID], l)
	}
	for i := range entries {
		entries[i].Lines = byEntry[entries[i].ID]
		if entries[i].Lines == nil {
			entries[i].Lines = []domain.JournalLine{}
		}
	}
	return entries, nil
}

func (r *GormEntryRepo) SumByAccount(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	var rows []domain.TrialBalanceRow
	err := r.db.WithContext(ctx).
		Table("accounts AS a").
		Select("a.id, a.code, a.name, a.type, " +
			"COALESCE(SUM(jl.debit), 0) AS total_debit, " +
			"COALESCE(SUM(jl.credit), 0) AS total_credit").
		Joins("LEFT JOIN journal_lines jl ON jl.account_id = a.id").
		Group("a.id, a.code, a.name, a.type").
		Order("a.code, a.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summing journal lines: %w", err)
	}
	return rows, nil
}

var (
	_ domain.AccountRepository = (*GormAccountRepo)(nil)
	_ domain.EntryRepository   = (*GormEntryRepo)(nil)
)
