package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt represents one checkout transaction: its total, payment and the
// change given back. A receipt owns its line items and is never updated or
// deleted once written.
type Receipt struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	PaymentType   string          `gorm:"size:50" json:"payment_type"`
	PaymentAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"payment_amount"`
	ChangeGiven   decimal.Decimal `gorm:"type:decimal(10,2)" json:"change_given"`

	// Relationships
	User  User          `gorm:"foreignKey:UserID" json:"-"`
	Items []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptItem is one basket line linking a receipt to a product and the
// quantity sold. TotalPrice is the line total recorded at creation time.
type ReceiptItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ReceiptID  uint            `gorm:"not null;index" json:"receipt_id"`
	ProductID  uint            `gorm:"not null;index" json:"product_id"`
	Quantity   decimal.Decimal `gorm:"type:decimal(10,2)" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_price"`

	// Relationships
	Receipt Receipt `gorm:"foreignKey:ReceiptID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}
