package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/logger"
	"budgettracker/internal/models"
	"budgettracker/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	walletService      services.WalletServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, walletService services.WalletServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, walletService: walletService}
}

// TransactionRequest represents the request payload for creating or editing
// a transaction. The sign of Money decides between income and expense.
type TransactionRequest struct {
	Description string  `json:"description" binding:"required,max=500"`
	Money       string  `json:"money" binding:"required,decimal_amount"`
	Date        *string `json:"date"`
	CategoryID  *string `json:"category_id" binding:"omitempty,uuid"`
}

// SearchQuery holds the search query parameters. The first populated field in
// the order category_id, date, description, amount selects the search.
type SearchQuery struct {
	CategoryID  string `form:"category_id" binding:"omitempty,uuid"`
	Date        string `form:"date"`
	Description string `form:"description"`
	Amount      string `form:"amount" binding:"omitempty,decimal_amount"`
}

func (r *TransactionRequest) toModel() (*models.Transaction, error) {
	money, err := parseAmount(r.Money)
	if err != nil {
		return nil, err
	}
	tx := &models.Transaction{
		Description: r.Description,
		Money:       money,
		CategoryID:  r.CategoryID,
	}
	if r.Date != nil && *r.Date != "" {
		date, err := parseFlexibleTime(*r.Date)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		tx.Date = date
	}
	return tx, nil
}

func (h *TransactionHandler) callerWallet(c *gin.Context) (*models.Wallet, bool) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	wallet, err := h.walletService.GetWalletByUserID(userID)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	return wallet, true
}

// ownedTransaction loads the transaction named by the id path parameter and
// hides transactions of other wallets behind a not found error.
func (h *TransactionHandler) ownedTransaction(c *gin.Context, wallet *models.Wallet) (*models.Transaction, bool) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	tx, err := h.transactionService.FindTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	if tx.WalletID != wallet.ID {
		respondWithError(c, apperrors.ErrTransactionNotFound)
		return nil, false
	}
	return tx, true
}

// CreateTransaction books a transaction against the caller's wallet
// @Summary     Create a transaction
// @Description Positive money is income, negative money is an expense. The wallet balance moves by the amount.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} map[string]interface{} "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	tx, err := req.toModel()
	if err != nil {
		respondWithError(c, err)
		return
	}
	tx.WalletID = wallet.ID

	created, err := h.transactionService.PerformTransaction(tx)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": created})
}

// SearchTransactions searches the caller's transactions
// @Summary     Search transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       category_id query string false "Category ID"
// @Param       date        query string false "Day (YYYY-MM-DD or RFC 3339)"
// @Param       description query string false "Exact description"
// @Param       amount      query string false "Exact amount"
// @Success     200 {object} map[string]interface{} "Matching transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions [get]
func (h *TransactionHandler) SearchTransactions(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	criteria := services.SearchCriteria{WalletID: wallet.ID, Description: q.Description}
	if q.CategoryID != "" {
		criteria.CategoryID = &q.CategoryID
	}
	if q.Date != "" {
		date, err := parseFlexibleTime(q.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		criteria.Date = &date
	}
	if q.Amount != "" {
		amount, err := parseAmount(q.Amount)
		if err != nil {
			respondWithError(c, err)
			return
		}
		criteria.Amount = &amount
	}

	txs, err := h.transactionService.SearchTransactions(criteria)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// GetTransaction returns one of the caller's transactions
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]interface{} "Transaction"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}
	tx, ok := h.ownedTransaction(c, wallet)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// UpdateTransaction edits one of the caller's transactions
// @Summary     Edit a transaction
// @Description Replaces description, money, date and category. The wallet balance is left as is unless reconciliation is enabled.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "New values"
// @Success     200 {object} map[string]interface{} "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}
	existing, ok := h.ownedTransaction(c, wallet)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	updated, err := req.toModel()
	if err != nil {
		respondWithError(c, err)
		return
	}
	updated.ID = existing.ID
	updated.WalletID = existing.WalletID

	tx, err := h.transactionService.EditTransaction(updated)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// DeleteTransaction removes one of the caller's transactions
// @Summary     Delete a transaction
// @Description The wallet balance is not reversed.
// @Tags        transactions
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}
	tx, ok := h.ownedTransaction(c, wallet)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(tx.ID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTotals returns the caller's total income and expenses
// @Summary     Income and expense totals
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Totals"
// @Router      /transactions/totals [get]
func (h *TransactionHandler) GetTotals(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	income, err := h.transactionService.CalculateTotalIncome(wallet)
	if err != nil {
		respondWithError(c, err)
		return
	}
	expenses, err := h.transactionService.CalculateTotalExpenses(wallet)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_income":   income,
		"total_expenses": expenses,
		"net":            income.Sub(expenses),
	})
}

// ExportTransactions writes every transaction in the system to the export
// file and streams it back
// @Summary     Export all transactions
// @Tags        admin
// @Produce     plain
// @Security    ApiKeyAuth
// @Success     200 {string} string "Export file"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Export failed"
// @Router      /admin/transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	f, err := h.transactionService.ExportTransactions()
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Get().Warnw("Failed to close export file", "error", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrExportFailed, err))
		return
	}

	c.DataFromReader(http.StatusOK, info.Size(), "text/plain; charset=utf-8", f, map[string]string{
		"Content-Disposition": `attachment; filename="` + filepath.Base(f.Name()) + `"`,
		"Last-Modified":       info.ModTime().UTC().Format(http.TimeFormat),
	})
}
