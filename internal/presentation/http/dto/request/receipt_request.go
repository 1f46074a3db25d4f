package request

import (
	"github.com/shopspring/decimal"
)

// ProductInfo is one basket line of a checkout request. Price and quantity
// accept decimal strings and are parsed exactly.
type ProductInfo struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// PaymentInfo carries the payment for a checkout request
type PaymentInfo struct {
	Type   string          `json:"type" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateReceiptRequest represents a checkout request
type CreateReceiptRequest struct {
	Products []ProductInfo `json:"products" binding:"required"`
	Payment  PaymentInfo   `json:"payment" binding:"required"`
}
