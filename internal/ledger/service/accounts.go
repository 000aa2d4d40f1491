package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xxz807/bookkeeping/internal/ledger/domain"
	"github.com/xxz807/bookkeeping/internal/platform/apperr"
)

// CreateAccountRequest 新建科目
type CreateAccountRequest struct {
	Code string
	Name string
	Type domain.AccountType
}

// ListAccounts 科目表，按 code 排序
func (s *LedgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.List(ctx)
}

// CreateAccount 新建科目，code 重复视为冲突
func (s *LedgerService) CreateAccount(ctx context.Context, req CreateAccountRequest) (int64, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" {
		return 0, apperr.Invalid("code", "is required")
	}
	if name == "" {
		return 0, apperr.Invalid("name", "is required")
	}
	if !req.Type.IsValid() {
		return 0, apperr.Invalid("type", "unknown account type %q", req.Type)
	}

	account := &domain.Account{Code: code, Name: name, Type: req.Type}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.accountRepo.FindByCode(ctx, tx, code)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Conflict("account code %s already exists", code)
		}
		return s.accountRepo.Create(ctx, tx, account)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("account created", zap.Int64("account_id", account.ID), zap.String("code", code))
	return account.ID, nil
}

// SeedChart accounts 表为空时写入标准科目表，返回写入条数
func (s *LedgerService) SeedChart(ctx context.Context) (int, error) {
	seeded := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.accountRepo.Count(ctx, tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		chart := domain.StandardChart()
		accounts := make([]*domain.Account, len(chart))
		for i := range chart {
			accounts[i] = &chart[i]
		}
		if err := s.accountRepo.Create(ctx, tx, accounts...); err != nil {
			return err
		}
		seeded = len(accounts)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if seeded > 0 {
		s.logger.Info("seeded chart of accounts", zap.Int("accounts", seeded))
	}
	return seeded, nil
}
