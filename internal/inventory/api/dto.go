package api

import "github.com/shopspring/decimal"

type CreateItemReq struct {
	SKU     string          `json:"sku"`
	Name    string          `json:"name" binding:"required"`
	Qty     decimal.Decimal `json:"qty"`
	AvgCost decimal.Decimal `json:"avg_cost"`
}

// RecordTxnReq 库存交易
// journal_lines 可省略，省略时由服务端按配置生成
type RecordTxnReq struct {
	ItemID       int64            `json:"item_id" binding:"required"`
	Type         string           `json:"type" binding:"required,oneof=purchase sale"`
	Qty          decimal.Decimal  `json:"qty"`
	UnitCost     decimal.Decimal  `json:"unit_cost"`
	Date         string           `json:"date"`
	JournalLines []TxnJournalLine `json:"journal_lines" binding:"dive"`
}

type TxnJournalLine struct {
	AccountID int64           `json:"account_id" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}
