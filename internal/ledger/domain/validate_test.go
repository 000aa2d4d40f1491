package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxz807/bookkeeping/internal/platform/apperr"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(account int64, debit, credit string) JournalLine {
	return JournalLine{AccountID: account, Debit: dec(debit), Credit: dec(credit)}
}

func TestValidateLines_Balanced(t *testing.T) {
	lines := []JournalLine{
		line(1, "100.00", "0"),
		line(2, "0", "60.00"),
		line(3, "0", "40.00"),
	}
	assert.NoError(t, ValidateLines(lines))
}

func TestValidateLines_WithinTolerance(t *testing.T) {
	lines := []JournalLine{
		line(1, "100.0005", "0"),
		line(2, "0", "100"),
	}
	assert.NoError(t, ValidateLines(lines))
}

func TestValidateLines_Imbalanced(t *testing.T) {
	lines := []JournalLine{
		line(1, "100", "0"),
		line(2, "0", "50"),
	}
	err := ValidateLines(lines)
	require.Error(t, err)

	var imb *ImbalancedEntryError
	require.True(t, errors.As(err, &imb))
	assert.True(t, imb.Debit.Equal(dec("100")))
	assert.True(t, imb.Credit.Equal(dec("50")))
	assert.ErrorIs(t, err, apperr.ErrInvalid)
	assert.Equal(t, "imbalanced entry: debit=100.00, credit=50.00", err.Error())
}

func TestValidateLines_JustOverTolerance(t *testing.T) {
	lines := []JournalLine{
		line(1, "100.0011", "0"),
		line(2, "0", "100"),
	}
	var imb *ImbalancedEntryError
	assert.True(t, errors.As(ValidateLines(lines), &imb))
}

func TestValidateLines_Empty(t *testing.T) {
	err := ValidateLines(nil)
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "lines", ve.Field)
}

func TestValidateLines_Negative(t *testing.T) {
	lines := []JournalLine{
		line(1, "-10", "0"),
		line(2, "0", "-10"),
	}
	err := ValidateLines(lines)
	assert.ErrorIs(t, err, apperr.ErrInvalid)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestValidateLines_MissingAccount(t *testing.T) {
	lines := []JournalLine{
		line(0, "10", "0"),
		line(2, "0", "10"),
	}
	err := ValidateLines(lines)
	assert.ErrorIs(t, err, apperr.ErrInvalid)
	assert.Contains(t, err.Error(), "lines[0].account_id")
}

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	tests := []struct {
		raw  string
		want string
	}{
		{"", "2025-03-14"},
		{"2024-12-31", "2024-12-31"},
		{"2024-02-29T10:00:00Z", "2024-02-29"},
	}
	for _, tt := range tests {
		got, err := NormalizeDate(tt.raw, now)
		require.NoError(t, err, "NormalizeDate(%q)", tt.raw)
		assert.Equal(t, tt.want, got, "NormalizeDate(%q)", tt.raw)
	}

	_, err := NormalizeDate("14/03/2025", now)
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestAccountTypeIsValid(t *testing.T) {
	for _, at := range []AccountType{Asset, ContraAsset, Liability, Equity, Revenue, Expense} {
		assert.True(t, at.IsValid(), "%q should be valid", at)
	}
	assert.False(t, AccountType("income").IsValid())
	assert.False(t, AccountType("").IsValid())
}

func TestStandardChart(t *testing.T) {
	chart := StandardChart()
	require.Len(t, chart, 10)

	codes := make(map[string]bool)
	for _, a := range chart {
		assert.True(t, a.Type.IsValid(), "account %s has invalid type", a.Code)
		assert.NotEmpty(t, a.Name, "account %s missing name", a.Code)
		assert.False(t, codes[a.Code], "duplicate code %s", a.Code)
		codes[a.Code] = true
	}
	assert.True(t, codes["1201"], "expected accumulated depreciation (1201)")
}
