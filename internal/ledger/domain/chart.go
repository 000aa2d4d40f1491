package domain

// StandardChart 首次启动时写入的标准科目表
func StandardChart() []Account {
	return []Account{
		{Code: "1000", Name: "Cash", Type: Asset},
		{Code: "1100", Name: "Inventory", Type: Asset},
		{Code: "1200", Name: "Notes Receivable", Type: Asset},
		{Code: "2000", Name: "Suppliers", Type: Liability},
		{Code: "3000", Name: "Capital", Type: Equity},
		{Code: "4000", Name: "Sales", Type: Revenue},
		{Code: "5000", Name: "Purchases", Type: Expense},
		{Code: "5100", Name: "Depreciation Expense", Type: Expense},
		{Code: "1201", Name: "Accumulated Depreciation", Type: ContraAsset},
		{Code: "5200", Name: "Discount Allowed", Type: Expense},
	}
}
