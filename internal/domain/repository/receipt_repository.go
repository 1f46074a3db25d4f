package repository

import (
	"context"
	"time"

	"github.com/akozlenko/kasa-api/internal/domain/entity"
	"github.com/akozlenko/kasa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	// Create persists a receipt and its line items in a single transaction.
	Create(ctx context.Context, receipt *entity.Receipt) error
	// ListByUser returns the user's receipts matching the filters, line items
	// and products preloaded, in ascending id order.
	ListByUser(ctx context.Context, userID uint, params *ReceiptFilterParams) ([]entity.Receipt, error)
	// FirstByUser returns the user's first receipt (ascending id) with line
	// items and products preloaded, or nil when the user has none.
	FirstByUser(ctx context.Context, userID uint) (*entity.Receipt, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries.
// All filters are optional and combined with AND.
type ReceiptFilterParams struct {
	Pagination  *pagination.Params
	ReceiptID   *uint
	StartDate   *time.Time
	EndDate     *time.Time
	MinTotal    *decimal.Decimal
	MaxTotal    *decimal.Decimal
	PaymentType *string
}
