package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/budget_ledger/internal/core/money"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
	"github.com/SscSPs/budget_ledger/internal/dto"
	"github.com/SscSPs/budget_ledger/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService     portssvc.AccountSvcFacade
	fundamentalService portssvc.FundamentalAccountSvc
	balanceService     portssvc.AccountBalanceQuerySvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, fs portssvc.FundamentalAccountSvc, bs portssvc.AccountBalanceQuerySvc) *accountHandler {
	return &accountHandler{
		accountService:     as,
		fundamentalService: fs,
		balanceService:     bs,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, fs portssvc.FundamentalAccountSvc, bs portssvc.AccountBalanceQuerySvc) {
	h := newAccountHandler(as, fs, bs)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.POST("/fundamental", h.ensureFundamentalAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/balance", h.getAccountBalance)
		accounts.POST("/:id/archive", h.archiveAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account for the acting user. Names are unique per user and the fundamental account names are reserved.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 409 {object} map[string]string "Account name already taken"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security UserID
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("currency_code", req.CurrencyCode))

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Description Returns one account of the acting user.
// @Tags accounts
// @Produce  json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to get account"
// @Security UserID
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the acting user's accounts, archived ones only on request.
// @Tags accounts
// @Produce  json
// @Param includeArchived query bool false "Include archived accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security UserID
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID, params.IncludeArchived)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list accounts")
		return
	}

	logger.Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// ensureFundamentalAccounts godoc
// @Summary Ensure fundamental accounts
// @Description Creates, or returns, the External Expense and External Income accounts of a currency.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param request body dto.EnsureFundamentalAccountsRequest true "Currency"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 500 {object} map[string]string "Failed to ensure fundamental accounts"
// @Security UserID
// @Router /accounts/fundamental [post]
func (h *accountHandler) ensureFundamentalAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EnsureFundamentalAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EnsureFundamentalAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	accounts, err := h.fundamentalService.EnsureFundamentalAccounts(c.Request.Context(), userID, req.CurrencyCode)
	if err != nil {
		respondWithError(c, logger, err, "Failed to ensure fundamental accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Returns the current balance of one account in its own currency.
// @Tags accounts
// @Produce  json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to get balance"
// @Security UserID
// @Router /accounts/{id}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	// ownership check first; the balance query itself is not user scoped
	account, err := h.accountService.GetAccount(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve account")
		return
	}

	balance, err := h.balanceService.BalanceForAccount(c.Request.Context(), account.AccountID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to calculate balance")
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountID:    account.AccountID,
		CurrencyCode: account.CurrencyCode,
		Balance:      money.String(balance),
		Display:      money.Format(balance, account.CurrencyCode),
	})
}

// archiveAccount godoc
// @Summary Archive an account
// @Description Archives an account so it no longer accepts entries. Fundamental accounts cannot be archived.
// @Tags accounts
// @Produce  json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Fundamental account"
// @Failure 500 {object} map[string]string "Failed to archive account"
// @Security UserID
// @Router /accounts/{id}/archive [post]
func (h *accountHandler) archiveAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	account, err := h.accountService.ArchiveAccount(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to archive account")
		return
	}

	logger.Info("Account archived", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account that has no entries and is not fundamental.
// @Tags accounts
// @Produce  json
// @Param id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account has entries or is fundamental"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Security UserID
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	accountID := c.Param("id")
	if err := h.accountService.DeleteAccount(c.Request.Context(), userID, accountID); err != nil {
		respondWithError(c, logger, err, "Failed to delete account")
		return
	}

	logger.Info("Account deleted successfully", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}
