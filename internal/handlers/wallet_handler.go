package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/models"
	"budgettracker/internal/pagination"
	"budgettracker/internal/services"
)

// WalletHandler exposes the caller's wallet. Every route resolves the wallet
// from the authenticated user, so no wallet id is ever taken from the request.
type WalletHandler struct {
	walletService services.WalletServicer
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletService services.WalletServicer) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// UpdateWalletRequest represents the request payload for updating a wallet
type UpdateWalletRequest struct {
	Name        string  `json:"name" binding:"max=100"`
	BudgetLimit *string `json:"budget_limit" binding:"omitempty,decimal_amount"`
}

// AmountRequest carries a signed decimal amount as a string.
type AmountRequest struct {
	Amount string `json:"amount" binding:"required,decimal_amount"`
}

// ChangeCurrencyRequest represents the request payload for a currency change
type ChangeCurrencyRequest struct {
	Currency models.Currency `json:"currency" binding:"required,currency"`
}

// GoalRequest represents the request payload for adding a goal
type GoalRequest struct {
	Goal      string `json:"goal" binding:"required,max=255"`
	MoneyGoal string `json:"money_goal" binding:"required,decimal_amount"`
}

func (h *WalletHandler) callerWallet(c *gin.Context) (*models.Wallet, bool) {
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

// GetWallet returns the caller's wallet
// @Summary     Get wallet
// @Tags        wallet
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Wallet"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": wallet})
}

// UpdateWallet renames the wallet or changes its budget limit
// @Summary     Update wallet
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateWalletRequest true "Wallet changes"
// @Success     200 {object} map[string]interface{} "Updated wallet"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /wallet [put]
func (h *WalletHandler) UpdateWallet(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	var req UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var limit *decimal.Decimal
	if req.BudgetLimit != nil {
		parsed, err := parseAmount(*req.BudgetLimit)
		if err != nil {
			respondWithError(c, err)
			return
		}
		limit = &parsed
	}

	updated, err := h.walletService.UpdateWallet(wallet.ID, req.Name, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": updated})
}

// Deposit adds money to the wallet; a negative amount withdraws
// @Summary     Add money
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AmountRequest true "Signed amount"
// @Success     200 {object} map[string]interface{} "Updated wallet"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /wallet/deposit [post]
func (h *WalletHandler) Deposit(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.walletService.AddMoney(wallet, amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": updated})
}

// ChangeCurrency converts the wallet into another currency
// @Summary     Change wallet currency
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChangeCurrencyRequest true "Target currency"
// @Success     200 {object} map[string]interface{} "Converted wallet"
// @Failure     400 {object} ErrorResponse "Unsupported currency"
// @Router      /wallet/currency [post]
func (h *WalletHandler) ChangeCurrency(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	var req ChangeCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrUnsupportedCurrency, err.Error()))
		return
	}

	updated, err := h.walletService.ChangeCurrency(req.Currency, wallet)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": updated})
}

// GetBalance returns the stored wallet amount
// @Summary     Get balance
// @Tags        wallet
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Balance and currency"
// @Router      /wallet/balance [get]
func (h *WalletHandler) GetBalance(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	balance, err := h.walletService.GetTotalBalance(wallet.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance, "currency": wallet.Currency})
}

// GetProgress returns income, expenses and balance derived from transactions
// @Summary     Get budget progress
// @Tags        wallet
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.BudgetProgress "Budget progress"
// @Router      /wallet/progress [get]
func (h *WalletHandler) GetProgress(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	progress, err := h.walletService.CalculateBudgetProgress(wallet.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetTransactions returns a page of the wallet's transactions, newest first
// unless order=oldest is requested
// @Summary     List wallet transactions
// @Tags        wallet
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       order     query string false "newest or oldest"
// @Success     200 {object} map[string]interface{} "Paginated transactions"
// @Router      /wallet/transactions [get]
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.walletService.GetTransactionsPage(wallet.ID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetGoals lists the wallet's savings goals
// @Summary     List goals
// @Tags        wallet
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Goals"
// @Router      /wallet/goals [get]
func (h *WalletHandler) GetGoals(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	goals, err := h.walletService.GetGoals(wallet.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// AddGoal attaches a savings goal to the wallet
// @Summary     Add goal
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GoalRequest true "Goal"
// @Success     201 {object} map[string]interface{} "Created goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /wallet/goals [post]
func (h *WalletHandler) AddGoal(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	target, err := parseAmount(req.MoneyGoal)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.walletService.AddGoal(wallet.ID, req.Goal, target)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// RemoveGoal deletes one of the wallet's goals
// @Summary     Remove goal
// @Tags        wallet
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     204 "Goal removed"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /wallet/goals/{id} [delete]
func (h *WalletHandler) RemoveGoal(c *gin.Context) {
	wallet, ok := h.callerWallet(c)
	if !ok {
		return
	}
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.walletService.RemoveGoal(wallet.ID, goalID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
