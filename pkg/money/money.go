// Package money holds the fixed-point decimal helpers used for all receipt
// arithmetic. Monetary values are exact decimals end to end; the 2-decimal
// contract applies only when a value is formatted for output.
package money

import (
	"github.com/shopspring/decimal"
)

// LineTotal returns price multiplied by quantity, exactly.
func LineTotal(price, quantity decimal.Decimal) decimal.Decimal {
	return price.Mul(quantity)
}

// Sum adds up the given amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Change returns payment minus total. The result may be negative; callers
// validating a payment check the sign themselves.
func Change(payment, total decimal.Decimal) decimal.Decimal {
	return payment.Sub(total)
}

// ClampZero floors a negative amount at zero.
func ClampZero(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Format renders an amount as a fixed 2-decimal-place string, e.g. "6.50".
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
