package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/budget_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
	"github.com/SscSPs/budget_ledger/internal/dto"
	"github.com/SscSPs/budget_ledger/internal/middleware"
)

// actionsHandler exposes the simplified money-flow operations.
type actionsHandler struct {
	actionService portssvc.LedgerActionSvc
}

func registerActionRoutes(rg *gin.RouterGroup, as portssvc.LedgerActionSvc) {
	h := &actionsHandler{actionService: as}

	actions := rg.Group("/actions")
	{
		actions.POST("/expense", h.registerExpense)
		actions.POST("/income", h.registerIncome)
		actions.POST("/transfer", h.transferFunds)
		actions.POST("/debt", h.recordDebt)
	}
}

// registerExpense godoc
// @Summary Register an expense
// @Description Posts an expense from an account to the External Expense account of its currency.
// @Tags actions
// @Accept  json
// @Produce  json
// @Param expense body dto.RegisterFlowRequest true "Expense details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to register expense"
// @Security UserID
// @Router /actions/expense [post]
func (h *actionsHandler) registerExpense(c *gin.Context) {
	var req dto.RegisterFlowRequest
	bindAndRun(c, "RegisterExpense", &req, func(userID string) (*domain.Transaction, error) {
		return h.actionService.RegisterExpense(c.Request.Context(), userID, req)
	})
}

// registerIncome godoc
// @Summary Register an income
// @Description Posts an income from the External Income account of the currency to an account.
// @Tags actions
// @Accept  json
// @Produce  json
// @Param income body dto.RegisterFlowRequest true "Income details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to register income"
// @Security UserID
// @Router /actions/income [post]
func (h *actionsHandler) registerIncome(c *gin.Context) {
	var req dto.RegisterFlowRequest
	bindAndRun(c, "RegisterIncome", &req, func(userID string) (*domain.Transaction, error) {
		return h.actionService.RegisterIncome(c.Request.Context(), userID, req)
	})
}

// transferFunds godoc
// @Summary Transfer funds
// @Description Moves value between two accounts. Cross-currency transfers route through the Currency Exchange accounts.
// @Tags actions
// @Accept  json
// @Produce  json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to transfer funds"
// @Security UserID
// @Router /actions/transfer [post]
func (h *actionsHandler) transferFunds(c *gin.Context) {
	var req dto.TransferRequest
	bindAndRun(c, "TransferFunds", &req, func(userID string) (*domain.Transaction, error) {
		return h.actionService.TransferFunds(c.Request.Context(), userID, req)
	})
}

// recordDebt godoc
// @Summary Record a debt movement
// @Description Lends, collects, borrows or repays against a loan account.
// @Tags actions
// @Accept  json
// @Produce  json
// @Param debt body dto.DebtRequest true "Debt details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record debt"
// @Security UserID
// @Router /actions/debt [post]
func (h *actionsHandler) recordDebt(c *gin.Context) {
	var req dto.DebtRequest
	bindAndRun(c, "RecordDebt", &req, func(userID string) (*domain.Transaction, error) {
		return h.actionService.RecordDebt(c.Request.Context(), userID, req)
	})
}

// bindAndRun binds the JSON body into req, then runs the action for the acting user.
func bindAndRun(c *gin.Context, action string, req any, run func(userID string) (*domain.Transaction, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("action", action))
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Failed to bind JSON for action", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := run(userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to run "+action)
		return
	}

	logger.Info("Action recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
