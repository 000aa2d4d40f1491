package service

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrialBalance_EmptyLedger(t *testing.T) {
	svc, _ := newSeededService(t)

	tb, err := svc.TrialBalance(context.Background())
	require.NoError(t, err)
	require.Len(t, tb.Rows, 10, "every account appears even without lines")

	for _, r := range tb.Rows {
		assert.True(t, r.TotalDebit.IsZero(), "account %s", r.Code)
		assert.True(t, r.TotalCredit.IsZero(), "account %s", r.Code)
	}
	assert.True(t, tb.TotalDebit.IsZero())
	assert.True(t, tb.TotalCredit.IsZero())
}

func TestTrialBalance_SortedByCode(t *testing.T) {
	svc, _ := newSeededService(t)

	tb, err := svc.TrialBalance(context.Background())
	require.NoError(t, err)

	codes := make([]string, len(tb.Rows))
	for i, r := range tb.Rows {
		codes[i] = r.Code
	}
	assert.True(t, sort.StringsAreSorted(codes), "codes not sorted: %v", codes)
	// 1201 排在 1200 和 2000 之间 (字符串顺序)
	assert.Equal(t, []string{"1000", "1100", "1200", "1201", "2000", "3000", "4000", "5000", "5100", "5200"}, codes)
}

func TestTrialBalance_Totals(t *testing.T) {
	svc, db := newSeededService(t)
	ctx := context.Background()
	cash := accountID(t, db, "1000")
	capital := accountID(t, db, "3000")
	sales := accountID(t, db, "4000")
	purchases := accountID(t, db, "5000")

	_, err := svc.PostEntry(ctx, PostingRequest{Lines: []PostingLine{
		{AccountID: cash, Debit: dec("1000")},
		{AccountID: capital, Credit: dec("1000")},
	}})
	require.NoError(t, err)
	_, err = svc.PostEntry(ctx, PostingRequest{Lines: []PostingLine{
		{AccountID: purchases, Debit: dec("300.25")},
		{AccountID: cash, Credit: dec("300.25")},
	}})
	require.NoError(t, err)
	_, err = svc.PostEntry(ctx, PostingRequest{Lines: []PostingLine{
		{AccountID: cash, Debit: dec("120.10")},
		{AccountID: sales, Credit: dec("120.10")},
	}})
	require.NoError(t, err)

	tb, err := svc.TrialBalance(ctx)
	require.NoError(t, err)

	byCode := make(map[string]int)
	for i, r := range tb.Rows {
		byCode[r.Code] = i
	}

	cashRow := tb.Rows[byCode["1000"]]
	assert.Equal(t, "1120.1", cashRow.TotalDebit.String())
	assert.Equal(t, "300.25", cashRow.TotalCredit.String())

	salesRow := tb.Rows[byCode["4000"]]
	assert.True(t, salesRow.TotalDebit.IsZero())
	assert.Equal(t, "120.1", salesRow.TotalCredit.String())

	assert.True(t, tb.Rows[byCode["5200"]].TotalDebit.IsZero())

	assert.Equal(t, "1420.35", tb.TotalDebit.String())
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit), "balanced postings keep grand totals equal")
}

func TestTrialBalance_Idempotent(t *testing.T) {
	svc, db := newSeededService(t)
	ctx := context.Background()
	_, err := svc.PostEntry(ctx, PostingRequest{Lines: []PostingLine{
		{AccountID: accountID(t, db, "1000"), Debit: dec("42")},
		{AccountID: accountID(t, db, "4000"), Credit: dec("42")},
	}})
	require.NoError(t, err)

	first, err := svc.TrialBalance(ctx)
	require.NoError(t, err)
	second, err := svc.TrialBalance(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
