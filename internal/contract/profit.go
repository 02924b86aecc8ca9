package contract

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Profit holds profit and margin for a contract value and its spend.
type Profit struct {
	Profit        decimal.Decimal
	MarginPercent decimal.Decimal
}

// ComputeProfit returns value - spent and the profit as a percentage of
// value. The margin is zero when value is not positive.
func ComputeProfit(value, spent decimal.Decimal) Profit {
	profit := value.Sub(spent)

	margin := decimal.Zero
	if value.IsPositive() {
		margin = profit.Div(value).Mul(hundred)
	}

	return Profit{
		Profit:        profit,
		MarginPercent: margin,
	}
}
