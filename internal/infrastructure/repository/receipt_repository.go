package repository

import (
	"context"
	"errors"

	"github.com/akozlenko/kasa-api/internal/domain/entity"
	domainRepo "github.com/akozlenko/kasa-api/internal/domain/repository"
	"github.com/akozlenko/kasa-api/pkg/pagination"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

// Create inserts the receipt together with its line items. GORM cascades the
// Items association inside one transaction, so checkout is all-or-nothing.
func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) ListByUser(ctx context.Context, userID uint, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, error) {
	var receipts []entity.Receipt

	query := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("user_id = ?", userID)

	if params.ReceiptID != nil {
		query = query.Where("id = ?", *params.ReceiptID)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}
	if params.MinTotal != nil {
		query = query.Where("total >= ?", *params.MinTotal)
	}
	if params.MaxTotal != nil {
		query = query.Where("total <= ?", *params.MaxTotal)
	}
	if params.PaymentType != nil {
		query = query.Where("payment_type = ?", *params.PaymentType)
	}

	if params.Pagination == nil {
		params.Pagination = pagination.Default()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset).Limit(params.Pagination.Limit).
		Preload("Items.Product").
		Order("id ASC").
		Find(&receipts).Error

	return receipts, err
}

func (r *receiptRepository) FirstByUser(ctx context.Context, userID uint) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Order("id ASC").
		First(&receipt, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}
