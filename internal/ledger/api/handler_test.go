package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xxz807/bookkeeping/internal/ledger/adapter/repo"
	"github.com/xxz807/bookkeeping/internal/ledger/domain"
	"github.com/xxz807/bookkeeping/internal/ledger/service"
	"github.com/xxz807/bookkeeping/internal/platform/config"
	"github.com/xxz807/bookkeeping/internal/platform/dbtest"
	"github.com/xxz807/bookkeeping/internal/platform/server"
)

type testAPI struct {
	t       *testing.T
	db      *gorm.DB
	handler http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := dbtest.New(t, domain.Models()...)
	svc := service.NewLedgerService(db, repo.NewAccountRepo(db), repo.NewEntryRepo(db), zap.NewNop())
	_, err := svc.SeedChart(context.Background())
	require.NoError(t, err)

	srv := server.NewServer(zap.NewNop(), config.ServerConfig{Mode: "test"}, NewLedgerHandler(svc, zap.NewNop()))
	return &testAPI{t: t, db: db, handler: srv.Handler()}
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testAPI) accountID(code string) int64 {
	a.t.Helper()
	var acc domain.Account
	require.NoError(a.t, a.db.Where("code = ?", code).First(&acc).Error)
	return acc.ID
}

func (a *testAPI) entryCount() int64 {
	a.t.Helper()
	var n int64
	require.NoError(a.t, a.db.Model(&domain.JournalEntry{}).Count(&n).Error)
	return n
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestPostJournalThenList(t *testing.T) {
	a := newTestAPI(t)
	cash, capital := a.accountID("1000"), a.accountID("3000")

	w := a.do(http.MethodPost, "/api/journal", jsonBody(t, map[string]any{
		"date":        "2025-01-02",
		"description": "Owner investment",
		"lines": []map[string]any{
			{"account_id": cash, "debit": 1000},
			{"account_id": capital, "credit": 1000},
		},
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	posted := decode[struct {
		OK      bool  `json:"ok"`
		EntryID int64 `json:"entryId"`
	}](t, w)
	assert.True(t, posted.OK)
	assert.Positive(t, posted.EntryID)

	w = a.do(http.MethodGet, "/api/journal", "")
	require.Equal(t, http.StatusOK, w.Code)

	entries := decode[[]domain.JournalEntry](t, w)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, posted.EntryID, entry.ID)
	assert.Equal(t, "2025-01-02", entry.Date)
	assert.Equal(t, "Owner investment", entry.Description)
	require.Len(t, entry.Lines, 2)

	assert.Equal(t, "1000", entry.Lines[0].Code)
	assert.Equal(t, "Cash", entry.Lines[0].Name)
	assert.True(t, decimal.NewFromInt(1000).Equal(entry.Lines[0].Debit))
	assert.Equal(t, "3000", entry.Lines[1].Code)
	assert.Equal(t, "Capital", entry.Lines[1].Name)
	assert.True(t, decimal.NewFromInt(1000).Equal(entry.Lines[1].Credit))
}

func TestPostJournal_Rejected(t *testing.T) {
	a := newTestAPI(t)
	cash, sales := a.accountID("1000"), a.accountID("4000")

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "imbalanced",
			body: jsonBody(t, map[string]any{"lines": []map[string]any{
				{"account_id": cash, "debit": 100},
				{"account_id": sales, "credit": 50},
			}}),
			want: "imbalanced entry",
		},
		{
			name: "empty lines",
			body: `{"lines": []}`,
			want: "invalid request",
		},
		{
			name: "missing lines",
			body: `{"description": "nothing"}`,
			want: "invalid request",
		},
		{
			name: "unknown account",
			body: `{"lines": [{"account_id": 9999, "debit": 5}, {"account_id": 9998, "credit": 5}]}`,
			want: "unknown account",
		},
		{
			name: "malformed json",
			body: `{"lines": `,
			want: "invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(http.MethodPost, "/api/journal", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			resp := decode[map[string]string](t, w)
			assert.Contains(t, resp["error"], tt.want)
		})
	}
	assert.Zero(t, a.entryCount(), "rejected postings leave no rows")
}

func TestTrialBalance(t *testing.T) {
	a := newTestAPI(t)
	cash, sales := a.accountID("1000"), a.accountID("4000")

	w := a.do(http.MethodPost, "/api/journal", jsonBody(t, map[string]any{"lines": []map[string]any{
		{"account_id": cash, "debit": 250.5},
		{"account_id": sales, "credit": 250.5},
	}}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	first := a.do(http.MethodGet, "/api/trial-balance", "")
	require.Equal(t, http.StatusOK, first.Code)
	second := a.do(http.MethodGet, "/api/trial-balance", "")
	assert.Equal(t, first.Body.String(), second.Body.String(), "repeated reads are identical")

	tb := decode[domain.TrialBalance](t, first)
	require.Len(t, tb.Rows, 10)
	assert.Equal(t, "1000", tb.Rows[0].Code)
	assert.True(t, decimal.RequireFromString("250.5").Equal(tb.Rows[0].TotalDebit))
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit))
	assert.True(t, decimal.RequireFromString("250.5").Equal(tb.TotalDebit))

	assert.Contains(t, first.Body.String(), `"totalDebit":250.5`, "decimals encode as numbers")
}

func TestAccounts(t *testing.T) {
	a := newTestAPI(t)

	first := a.do(http.MethodGet, "/api/accounts", "")
	require.Equal(t, http.StatusOK, first.Code)
	accounts := decode[[]domain.Account](t, first)
	require.Len(t, accounts, 10)
	assert.Equal(t, first.Body.String(), a.do(http.MethodGet, "/api/accounts", "").Body.String())

	w := a.do(http.MethodPost, "/api/accounts", `{"code":"1300","name":"Prepaid Rent","type":"asset"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[map[string]int64](t, w)
	assert.Positive(t, created["id"])

	w = a.do(http.MethodPost, "/api/accounts", `{"code":"1300","name":"Again","type":"asset"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/api/accounts", `{"code":"1400","name":"Odd","type":"mystery"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/api/accounts", `{"code":"1400"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
