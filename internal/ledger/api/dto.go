package api

import "github.com/shopspring/decimal"

// PostJournalReq 对应前端发来的 JSON
type PostJournalReq struct {
	Date        string           `json:"date"`        // 可选，默认当天
	Description string           `json:"description"` // 可选，默认空串
	Lines       []JournalLineReq `json:"lines" binding:"required,min=1,dive"`
}

type JournalLineReq struct {
	AccountID int64           `json:"account_id" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`  // 缺省为 0
	Credit    decimal.Decimal `json:"credit"` // 缺省为 0
}

type CreateAccountReq struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}
