package domain

import (
	"github.com/shopspring/decimal"
)

// Account 会计科目实体
// 对应数据库表: accounts
type Account struct {
	ID   int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code string      `gorm:"type:varchar(32);index;not null" json:"code"`
	Name string      `gorm:"type:varchar(100);not null" json:"name"`
	Type AccountType `gorm:"type:varchar(20);not null" json:"type"`
}

func (Account) TableName() string {
	return "accounts"
}

// JournalEntry 凭证主表，过账后不可修改
// 对应数据库表: journal_entries
type JournalEntry struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Date        string `gorm:"type:varchar(10);not null;index" json:"date"`
	Description string `gorm:"type:text" json:"description"`

	// 关联关系 (一对多)
	Lines []JournalLine `gorm:"foreignKey:EntryID" json:"lines"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

// JournalLine 分录行
// 对应数据库表: journal_lines
type JournalLine struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	EntryID   int64           `gorm:"not null;index" json:"entry_id"`
	AccountID int64           `gorm:"not null;index" json:"account_id"`
	Debit     decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"debit"`
	Credit    decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"credit"`

	// 查询时 JOIN accounts 带出，不落库
	Code string `gorm:"->;-:migration" json:"code,omitempty"`
	Name string `gorm:"->;-:migration" json:"name,omitempty"`
}

func (JournalLine) TableName() string {
	return "journal_lines"
}

// TrialBalanceRow 试算平衡表的一行
type TrialBalanceRow struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// TrialBalance 试算平衡表
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// Models 需要建表的实体
func Models() []any {
	return []any{&Account{}, &JournalEntry{}, &JournalLine{}}
}
