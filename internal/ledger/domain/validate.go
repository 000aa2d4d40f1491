package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xxz807/bookkeeping/internal/platform/apperr"
)

// Totals 汇总借方和贷方
func Totals(lines []JournalLine) (debit, credit decimal.Decimal) {
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// ValidateLines 过账前的结构校验：至少一行、金额非负、借贷相等
func ValidateLines(lines []JournalLine) error {
	if len(lines) == 0 {
		return apperr.Invalid("lines", "at least one line is required")
	}
	for i, l := range lines {
		if l.AccountID <= 0 {
			return apperr.Invalid(fmt.Sprintf("lines[%d].account_id", i), "is required")
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return apperr.Invalid(fmt.Sprintf("lines[%d]", i), "debit and credit must not be negative")
		}
	}
	return CheckBalance(lines)
}

// CheckBalance 核心逻辑：借贷必相等 (容差 0.001)
func CheckBalance(lines []JournalLine) error {
	debit, credit := Totals(lines)
	if debit.Sub(credit).Abs().GreaterThan(BalanceTolerance) {
		return &ImbalancedEntryError{Debit: debit, Credit: credit}
	}
	return nil
}

// NormalizeDate 把请求里的日期统一成 YYYY-MM-DD，空值取 now 当天
func NormalizeDate(raw string, now time.Time) (string, error) {
	if raw == "" {
		return now.Format(DateLayout), nil
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(DateLayout), nil
	}
	return "", apperr.Invalid("date", "%q is not a valid date (want YYYY-MM-DD)", raw)
}
