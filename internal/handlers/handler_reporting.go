package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
	"github.com/SscSPs/budget_ledger/internal/dto"
	"github.com/SscSPs/budget_ledger/internal/middleware"
)

// reportingHandler serves balances and budget period summaries.
type reportingHandler struct {
	balanceService      portssvc.AccountBalanceQuerySvc
	budgetPeriodService portssvc.BudgetPeriodSvc
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(bs portssvc.AccountBalanceQuerySvc, ps portssvc.BudgetPeriodSvc) *reportingHandler {
	return &reportingHandler{
		balanceService:      bs,
		budgetPeriodService: ps,
	}
}

// registerReportingRoutes registers balance and budget period routes.
func registerReportingRoutes(rg *gin.RouterGroup, bs portssvc.AccountBalanceQuerySvc, ps portssvc.BudgetPeriodSvc) {
	h := newReportingHandler(bs, ps)

	rg.GET("/balances", h.getBalances)

	periods := rg.Group("/budget-periods")
	{
		periods.GET("/:id/summary", h.getBudgetPeriodSummary)
		periods.POST("/:id/refresh", h.refreshBudgetPeriodSummary)
	}
}

// parseAsOf accepts RFC 3339 timestamps or plain dates. A plain date covers the whole day.
func parseAsOf(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("asOf must be YYYY-MM-DD or RFC 3339, got %q", raw)
	}
	endOfDay := day.Add(24*time.Hour - time.Nanosecond)
	return &endOfDay, nil
}

// getBalances godoc
// @Summary Get account balances
// @Description Returns one row per account, optionally as of a date. A plain date covers the whole day.
// @Tags reporting
// @Produce  json
// @Param asOf query string false "RFC 3339 timestamp or YYYY-MM-DD"
// @Success 200 {object} dto.BalancesResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 500 {object} map[string]string "Failed to get balances"
// @Security UserID
// @Router /balances [get]
func (h *reportingHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	asOfStr := c.Query("asOf")
	asOf, err := parseAsOf(asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.balanceService.TotalsForUser(c.Request.Context(), userID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute balances")
		return
	}

	logger.Info("Balances computed", slog.Int("accounts", len(rows)))
	c.JSON(http.StatusOK, dto.ToBalancesResponse(asOf, rows))
}

// getBudgetPeriodSummary godoc
// @Summary Get a budget period summary
// @Description Returns the cached, possibly stale, spend of a budget period.
// @Tags reporting
// @Produce  json
// @Param id path string true "Budget period ID"
// @Success 200 {object} dto.BudgetPeriodSummaryResponse
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 404 {object} map[string]string "Budget period not found"
// @Failure 500 {object} map[string]string "Failed to get summary"
// @Security UserID
// @Router /budget-periods/{id}/summary [get]
func (h *reportingHandler) getBudgetPeriodSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	summary, err := h.budgetPeriodService.GetSummary(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to load budget period summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetPeriodSummaryResponse(summary))
}

// refreshBudgetPeriodSummary godoc
// @Summary Refresh a budget period summary
// @Description Recomputes the spend of a budget period now and returns the new summary.
// @Tags reporting
// @Produce  json
// @Param id path string true "Budget period ID"
// @Success 200 {object} dto.BudgetPeriodSummaryResponse
// @Failure 401 {object} map[string]string "X-User-ID header missing"
// @Failure 404 {object} map[string]string "Budget period not found"
// @Failure 500 {object} map[string]string "Failed to refresh summary"
// @Security UserID
// @Router /budget-periods/{id}/refresh [post]
func (h *reportingHandler) refreshBudgetPeriodSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	summary, err := h.budgetPeriodService.RefreshSummary(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to refresh budget period summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetPeriodSummaryResponse(summary))
}
