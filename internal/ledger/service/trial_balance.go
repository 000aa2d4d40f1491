package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xxz807/bookkeeping/internal/ledger/domain"
)

// amountScale 与 decimal(20,4) 列精度一致，吸收 SQLite REAL 求和的浮点尾差
const amountScale = 4

// TrialBalance 按科目汇总借贷，纯读操作
func (s *LedgerService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	rows, err := s.entryRepo.SumByAccount(ctx)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, len(rows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, r := range rows {
		r.TotalDebit = r.TotalDebit.Round(amountScale)
		r.TotalCredit = r.TotalCredit.Round(amountScale)
		tb.TotalDebit = tb.TotalDebit.Add(r.TotalDebit)
		tb.TotalCredit = tb.TotalCredit.Add(r.TotalCredit)
		tb.Rows = append(tb.Rows, r)
	}
	return tb, nil
}
