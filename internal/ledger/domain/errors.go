package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xxz807/bookkeeping/internal/platform/apperr"
)

// BalanceTolerance 借贷差额容忍度
var BalanceTolerance = decimal.RequireFromString("0.001")

// ImbalancedEntryError 借贷不平
type ImbalancedEntryError struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

func (e *ImbalancedEntryError) Error() string {
	return fmt.Sprintf("imbalanced entry: debit=%s, credit=%s", e.Debit.StringFixed(2), e.Credit.StringFixed(2))
}

func (e *ImbalancedEntryError) Unwrap() error {
	return apperr.ErrInvalid
}
