package domain

// AccountType 科目类别
type AccountType string

const (
	Asset       AccountType = "asset"
	ContraAsset AccountType = "contra_asset" // 资产备抵，例如累计折旧
	Liability   AccountType = "liability"
	Equity      AccountType = "equity"
	Revenue     AccountType = "revenue"
	Expense     AccountType = "expense"
)

// IsValid 校验类别合法性
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, ContraAsset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// DateLayout 分录日期统一存成 YYYY-MM-DD，字符串排序即日期排序
const DateLayout = "2006-01-02"
