package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xxz807/bookkeeping/internal/ledger/adapter/repo"
	"github.com/xxz807/bookkeeping/internal/ledger/domain"
	"github.com/xxz807/bookkeeping/internal/platform/dbtest"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock() time.Time {
	return time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
}

// newSeededService 内存库 + 标准科目表
func newSeededService(t *testing.T) (*LedgerService, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t, domain.Models()...)
	svc := NewLedgerService(db, repo.NewAccountRepo(db), repo.NewEntryRepo(db), zap.NewNop())
	svc.SetClock(fixedClock)

	_, err := svc.SeedChart(context.Background())
	require.NoError(t, err)
	return svc, db
}

// accountID 按 code 查科目 ID
func accountID(t *testing.T, db *gorm.DB, code string) int64 {
	t.Helper()
	var acc domain.Account
	require.NoError(t, db.Where("code = ?", code).First(&acc).Error)
	return acc.ID
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
