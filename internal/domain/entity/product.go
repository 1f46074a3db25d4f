package entity

import (
	"github.com/shopspring/decimal"
)

// Product represents a sellable product. Products are created on first
// reference by name at checkout time and are never updated afterwards.
type Product struct {
	ID    uint            `gorm:"primaryKey" json:"id"`
	Name  string          `gorm:"size:255;not null;index" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
