package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/akozlenko/kasa-api/internal/domain/entity"
	"github.com/akozlenko/kasa-api/internal/domain/repository"
	"github.com/akozlenko/kasa-api/pkg/apperror"
	"github.com/akozlenko/kasa-api/pkg/money"
	"github.com/akozlenko/kasa-api/pkg/printer"
	"github.com/akozlenko/kasa-api/pkg/receipttext"
	"github.com/shopspring/decimal"
)

// ReceiptService handles receipt creation, querying and formatting
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	productRepo repository.ProductRepository
	printer     printer.Printer
	shopName    string
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	productRepo repository.ProductRepository,
	p printer.Printer,
	shopName string,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		productRepo: productRepo,
		printer:     p,
		shopName:    shopName,
	}
}

// BasketItemInput is one basket line of a checkout request
type BasketItemInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// PaymentInput carries the payment tendered for a basket
type PaymentInput struct {
	Type   string
	Amount decimal.Decimal
}

// CreateReceiptInput represents the checkout input
type CreateReceiptInput struct {
	Products []BasketItemInput
	Payment  PaymentInput
}

// ProductDisplay is one formatted basket line of a receipt response
type ProductDisplay struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Total    string `json:"total"`
}

// PaymentDisplay is the formatted payment block of a receipt response
type PaymentDisplay struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// ReceiptDisplay is the receipt representation returned over the API.
// All monetary fields are fixed 2-decimal-place strings.
type ReceiptDisplay struct {
	ID        uint             `json:"id"`
	Products  []ProductDisplay `json:"products"`
	Payment   PaymentDisplay   `json:"payment"`
	Total     string           `json:"total"`
	Rest      string           `json:"rest"`
	CreatedAt time.Time        `json:"created_at"`
}

// CreateReceipt computes the basket total and change, persists the receipt
// with its line items in one transaction and returns the display
// representation built from the request payload. Fails without persisting
// anything when the payment does not cover the total.
func (s *ReceiptService) CreateReceipt(ctx context.Context, userID uint, input *CreateReceiptInput) (*ReceiptDisplay, error) {
	total := decimal.Zero
	for _, item := range input.Products {
		total = total.Add(money.LineTotal(item.Price, item.Quantity))
	}
	rest := money.Change(input.Payment.Amount, total)

	if rest.IsNegative() {
		return nil, apperror.NewBadRequestError("Payment amount is less than the total price of products.")
	}

	items := make([]entity.ReceiptItem, 0, len(input.Products))
	for _, item := range input.Products {
		productID, err := s.getOrCreateProduct(ctx, item.Name, item.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.ReceiptItem{
			ProductID:  productID,
			Quantity:   item.Quantity,
			TotalPrice: money.LineTotal(item.Price, item.Quantity),
		})
	}

	receipt := &entity.Receipt{
		UserID:        userID,
		CreatedAt:     time.Now().UTC(),
		Total:         total,
		PaymentType:   input.Payment.Type,
		PaymentAmount: input.Payment.Amount,
		ChangeGiven:   rest,
		Items:         items,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	products := make([]ProductDisplay, 0, len(input.Products))
	for _, item := range input.Products {
		products = append(products, ProductDisplay{
			Name:     item.Name,
			Price:    money.Format(item.Price),
			Quantity: money.Format(item.Quantity),
			Total:    money.Format(money.LineTotal(item.Price, item.Quantity)),
		})
	}

	return &ReceiptDisplay{
		ID:       receipt.ID,
		Products: products,
		Payment: PaymentDisplay{
			Type:   input.Payment.Type,
			Amount: money.Format(input.Payment.Amount),
		},
		Total:     money.Format(total),
		Rest:      money.Format(rest),
		CreatedAt: receipt.CreatedAt,
	}, nil
}

// getOrCreateProduct resolves a product id by name, creating the product on
// first reference.
func (s *ReceiptService) getOrCreateProduct(ctx context.Context, name string, price decimal.Decimal) (uint, error) {
	product, err := s.productRepo.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if product != nil {
		return product.ID, nil
	}

	product = &entity.Product{Name: name, Price: price}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return 0, err
	}
	return product.ID, nil
}

// ListReceipts returns the user's receipts matching the filters, projected
// into display form. Line totals are recomputed from each product's current
// price; the stored receipt total is what the total field prints, while rest
// is payment amount minus the recomputed sum. An empty result is an error,
// not an empty list.
func (s *ReceiptService) ListReceipts(ctx context.Context, userID uint, params *repository.ReceiptFilterParams) ([]ReceiptDisplay, error) {
	receipts, err := s.receiptRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	if len(receipts) == 0 {
		return nil, apperror.NewAppError(http.StatusNotFound, "No receipts found matching the criteria")
	}

	displays := make([]ReceiptDisplay, 0, len(receipts))
	for _, receipt := range receipts {
		products := make([]ProductDisplay, 0, len(receipt.Items))
		recomputed := decimal.Zero
		for _, item := range receipt.Items {
			lineTotal := money.LineTotal(item.Product.Price, item.Quantity)
			recomputed = recomputed.Add(lineTotal)
			products = append(products, ProductDisplay{
				Name:     item.Product.Name,
				Price:    money.Format(item.Product.Price),
				Quantity: money.Format(item.Quantity),
				Total:    money.Format(lineTotal),
			})
		}

		displays = append(displays, ReceiptDisplay{
			ID:       receipt.ID,
			Products: products,
			Payment: PaymentDisplay{
				Type:   receipt.PaymentType,
				Amount: money.Format(receipt.PaymentAmount),
			},
			Total:     money.Format(receipt.Total),
			Rest:      money.Format(money.Change(receipt.PaymentAmount, recomputed)),
			CreatedAt: receipt.CreatedAt,
		})
	}

	return displays, nil
}

// FormatReceipt renders the printable text document for the first receipt
// owned by the given user.
func (s *ReceiptService) FormatReceipt(ctx context.Context, userID uint) (string, error) {
	receipt, err := s.receiptRepo.FirstByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if receipt == nil {
		return "", apperror.NewNotFoundError("Receipt")
	}

	return receipttext.Render(receipt, s.shopName, time.Now()), nil
}

// PrintReceipt renders the receipt text and pushes it to the configured
// printer. With a null printer this degrades to render-only.
func (s *ReceiptService) PrintReceipt(ctx context.Context, userID uint) (string, error) {
	text, err := s.FormatReceipt(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := s.printer.Print(append([]byte(text), '\n')); err != nil {
		log.Printf("Printer error (user %d): %v", userID, err)
		return text, apperror.NewAppError(http.StatusBadGateway, fmt.Sprintf("failed to print receipt: %v", err))
	}

	return text, nil
}
