package handler

import (
	"strconv"
	"time"

	"github.com/akozlenko/kasa-api/internal/application/service"
	"github.com/akozlenko/kasa-api/internal/domain/repository"
	"github.com/akozlenko/kasa-api/internal/presentation/http/dto/request"
	"github.com/akozlenko/kasa-api/internal/presentation/http/dto/response"
	"github.com/akozlenko/kasa-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create handles checkout: computes totals and change, persists the receipt
// and returns its display representation.
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	products := make([]service.BasketItemInput, len(req.Products))
	for i, item := range req.Products {
		products[i] = service.BasketItemInput{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	display, err := h.receiptService.CreateReceipt(c.Request.Context(), userID, &service.CreateReceiptInput{
		Products: products,
		Payment: service.PaymentInput{
			Type:   req.Payment.Type,
			Amount: req.Payment.Amount,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, display)
}

// List handles listing and filtering the caller's receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		response.BadRequest(c, "Invalid limit")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.BadRequest(c, "Invalid offset")
		return
	}

	params := &repository.ReceiptFilterParams{
		Pagination: &pagination.Params{
			Limit:  limit,
			Offset: offset,
		},
	}

	if receiptIDStr := c.Query("receipt_id"); receiptIDStr != "" {
		receiptID, err := strconv.ParseUint(receiptIDStr, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid receipt_id")
			return
		}
		id := uint(receiptID)
		params.ReceiptID = &id
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			response.BadRequest(c, "Invalid start_date")
			return
		}
		params.StartDate = &startDate
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			response.BadRequest(c, "Invalid end_date")
			return
		}
		params.EndDate = &endDate
	}

	if minTotalStr := c.Query("min_total"); minTotalStr != "" {
		minTotal, err := decimal.NewFromString(minTotalStr)
		if err != nil {
			response.BadRequest(c, "Invalid min_total")
			return
		}
		params.MinTotal = &minTotal
	}

	if maxTotalStr := c.Query("max_total"); maxTotalStr != "" {
		maxTotal, err := decimal.NewFromString(maxTotalStr)
		if err != nil {
			response.BadRequest(c, "Invalid max_total")
			return
		}
		params.MaxTotal = &maxTotal
	}

	if paymentType := c.Query("payment_type"); paymentType != "" {
		params.PaymentType = &paymentType
	}

	displays, err := h.receiptService.ListReceipts(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, displays)
}

// GetText handles the public plain-text receipt view for a user
func (h *ReceiptHandler) GetText(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	text, err := h.receiptService.FormatReceipt(c.Request.Context(), uint(userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.String(200, text)
}

// Print handles pushing a user's receipt to the configured printer
func (h *ReceiptHandler) Print(c *gin.Context) {
	if _, ok := GetUserID(c); !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if _, err := h.receiptService.PrintReceipt(c.Request.Context(), uint(userID)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, gin.H{"printed": true})
}
