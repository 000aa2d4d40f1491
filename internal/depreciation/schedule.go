// Package depreciation 直线法折旧计算，纯函数，不访问数据库
package depreciation

import (
	"github.com/shopspring/decimal"

	"github.com/xxz807/bookkeeping/internal/platform/apperr"
)

// Scale 金额输出保留 2 位小数，四舍五入 (远离零)
const Scale = 2

// Params 折旧参数，Salvage 缺省为 0
type Params struct {
	AssetValue decimal.Decimal
	LifeYears  int
	Salvage    decimal.Decimal
}

// Row 折旧表中的一年
type Row struct {
	Year      int             `json:"year"`
	Expense   decimal.Decimal `json:"expense"`
	Accum     decimal.Decimal `json:"accum"`
	BookValue decimal.Decimal `json:"book_value"`
}

func (p Params) validate() error {
	if !p.AssetValue.IsPositive() {
		return apperr.Invalid("asset_value", "must be positive")
	}
	if p.LifeYears <= 0 {
		return apperr.Invalid("life_years", "must be positive")
	}
	if p.Salvage.IsNegative() {
		return apperr.Invalid("salvage", "must not be negative")
	}
	if p.Salvage.GreaterThan(p.AssetValue) {
		return apperr.Invalid("salvage", "must not exceed asset_value")
	}
	return nil
}

// Schedule 生成 1..LifeYears 的折旧表
// 每年折旧额 = (原值 - 残值) / 年限；每个输出字段各自从未舍入的中间值舍入
func Schedule(p Params) ([]Row, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	annual := p.AssetValue.Sub(p.Salvage).Div(decimal.NewFromInt(int64(p.LifeYears)))
	rows := make([]Row, 0, p.LifeYears)
	for year := 1; year <= p.LifeYears; year++ {
		accum := annual.Mul(decimal.NewFromInt(int64(year)))
		book := p.AssetValue.Sub(accum)
		if book.IsNegative() {
			book = decimal.Zero
		}
		rows = append(rows, Row{
			Year:      year,
			Expense:   annual.Round(Scale),
			Accum:     accum.Round(Scale),
			BookValue: book.Round(Scale),
		})
	}
	return rows, nil
}
