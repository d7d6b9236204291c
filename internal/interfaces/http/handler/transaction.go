package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerapp "github.com/fintrack/backend/internal/application/ledger"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
)

// TransactionHandler handles transaction, transfer and receipt
// attachment endpoints
type TransactionHandler struct {
	BaseHandler
	txService         *ledgerapp.TransactionService
	attachmentService *ledgerapp.AttachmentService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(txService *ledgerapp.TransactionService, attachmentService *ledgerapp.AttachmentService) *TransactionHandler {
	return &TransactionHandler{
		txService:         txService,
		attachmentService: attachmentService,
	}
}

// RegisterRoutes registers transaction routes on the API group
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	txs := rg.Group("/transactions")
	{
		txs.POST("", h.Create)
		txs.GET("", h.List)
		txs.GET("/summary", h.MonthlySummary)
		txs.GET("/:id", h.Get)
		txs.PUT("/:id", h.Update)
		txs.DELETE("/:id", h.Delete)

		txs.POST("/:id/attachment/upload-url", h.RequestAttachmentUpload)
		txs.POST("/:id/attachment", h.Attach)
		txs.GET("/:id/attachment", h.AttachmentDownloadURL)
		txs.DELETE("/:id/attachment", h.RemoveAttachment)
	}
	rg.POST("/transfers", h.CreateTransfer)
}

// ListTransactionsRequest holds transaction list filters
type ListTransactionsRequest struct {
	dto.ListRequest
	AccountID  string `form:"account_id" binding:"omitempty,uuid"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Type       string `form:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	DateFrom   string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	// Amount bounds compare magnitudes, so positive values match
	// expenses as well as income.
	MinAmount string `form:"min_amount"`
	MaxAmount string `form:"max_amount"`
}

func (r *ListTransactionsRequest) toFilter() (ledger.TransactionFilter, error) {
	r.ApplyDefaults()

	filter := ledger.TransactionFilter{}
	filter.Page = r.Page
	filter.PageSize = r.PageSize
	filter.OrderBy = r.OrderBy
	filter.OrderDir = r.OrderDir
	filter.Search = r.Search

	if r.AccountID != "" {
		id, err := uuid.Parse(r.AccountID)
		if err != nil {
			return filter, err
		}
		filter.AccountID = &id
	}
	if r.CategoryID != "" {
		id, err := uuid.Parse(r.CategoryID)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &id
	}
	if r.Type != "" {
		t := ledger.TransactionType(r.Type)
		filter.Type = &t
	}
	if r.DateFrom != "" {
		from, err := time.Parse("2006-01-02", r.DateFrom)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &from
	}
	if r.DateTo != "" {
		to, err := time.Parse("2006-01-02", r.DateTo)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &to
	}
	if r.MinAmount != "" {
		min, err := decimal.NewFromString(r.MinAmount)
		if err != nil {
			return filter, err
		}
		filter.MinAmount = &min
	}
	if r.MaxAmount != "" {
		max, err := decimal.NewFromString(r.MaxAmount)
		if err != nil {
			return filter, err
		}
		filter.MaxAmount = &max
	}
	return filter, nil
}

// Create records a new income or expense entry
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input ledgerapp.CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.txService.CreateTransaction(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tx)
}

// CreateTransfer records both legs of a transfer between accounts
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input ledgerapp.CreateTransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.txService.CreateTransfer(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a filtered, paginated transaction page
func (h *TransactionHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := req.toFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.txService.ListTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// MonthlySummary returns income, expense and net totals for a month.
// The month defaults to the current one.
func (h *TransactionHandler) MonthlySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	month := time.Now().UTC()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			h.BadRequest(c, "Invalid month format, expected YYYY-MM")
			return
		}
		month = parsed
	}

	summary, err := h.txService.MonthlySummary(c.Request.Context(), userID, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Get returns one transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	txID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	tx, err := h.txService.GetTransaction(c.Request.Context(), userID, txID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}

// Update changes mutable transaction fields
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	txID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	var input ledgerapp.UpdateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.txService.UpdateTransaction(c.Request.Context(), userID, txID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}

// Delete removes a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	txID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	if err := h.txService.DeleteTransaction(c.Request.Context(), userID, txID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AttachmentUploadRequest describes the receipt file to upload
type AttachmentUploadRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"omitempty,max=100"`
}

// RequestAttachmentUpload returns a presigned upload URL for a receipt
func (h *TransactionHandler) RequestAttachmentUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	txID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	var req AttachmentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	upload, err := h.attachmentService.RequestUpload(c.Request.Context(), userID, txID, req.Filename, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, upload)
}

// AttachRequest links an uploaded object to the transaction
type AttachRequest struct {
	StorageKey string `json:"storage_key" binding:"required,max=512"`
}

// Attach links an uploaded receipt to the transaction
func (h *TransactionHandler) Attach(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	txID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	var req AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.attachmentService.Attach(c.Request.Context(), userID, txID, req.StorageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}

// AttachmentDownloadURL returns a presigned download URL for the receipt
func (h *TransactionHandler) AttachmentDownloadURL(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	txID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	url, err := h.attachmentService.DownloadURL(c.Request.Context(), userID, txID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"download_url": url})
}

// RemoveAttachment deletes the receipt from storage and clears the link
func (h *TransactionHandler) RemoveAttachment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	txID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	if err := h.attachmentService.Remove(c.Request.Context(), userID, txID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
