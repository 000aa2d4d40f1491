package domain

import "github.com/shopspring/decimal"

// CostScale 平均成本保留 4 位小数 (与 decimal(20,4) 列一致)
const CostScale = 4

// ApplyPurchase 移动加权平均：
// newQty = oldQty + qty
// newAvg = (oldQty*oldAvg + qty*unitCost) / newQty，newQty 为 0 时取 0
func (it *Item) ApplyPurchase(qty, unitCost decimal.Decimal) {
	newQty := it.Qty.Add(qty)
	if newQty.IsZero() {
		it.Qty = newQty
		it.AvgCost = decimal.Zero
		return
	}
	total := it.Qty.Mul(it.AvgCost).Add(qty.Mul(unitCost))
	it.Qty = newQty
	it.AvgCost = total.Div(newQty).Round(CostScale)
}

// ApplySale 只减数量，平均成本不变；数量允许变成负数 (是否允许由调用方决定)
func (it *Item) ApplySale(qty decimal.Decimal) {
	it.Qty = it.Qty.Sub(qty)
}

// Apply 按类型分派
func (it *Item) Apply(t TxnType, qty, unitCost decimal.Decimal) {
	switch t {
	case Purchase:
		it.ApplyPurchase(qty, unitCost)
	case Sale:
		it.ApplySale(qty)
	}
}
