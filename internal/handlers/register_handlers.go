package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/budget_ledger/internal/core/ports/services"
	"github.com/SscSPs/budget_ledger/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// apiMiddleware runs on /api/v1 after the user identity has been resolved.
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, services, apiMiddleware)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	service *portssvc.ServiceContainer,
	apiMiddleware []gin.HandlerFunc,
) {
	chain := append([]gin.HandlerFunc{middleware.UserIdentity()}, apiMiddleware...)
	v1 := r.Group("/api/v1", chain...)

	registerAccountRoutes(v1, service.Account, service.Fundamental, service.Balances)
	registerLedgerRoutes(v1, service.Ledger)
	registerActionRoutes(v1, service.Actions)
	registerReportingRoutes(v1, service.Balances, service.BudgetPeriods)
	registerExchangeRateRoutes(v1, service.ExchangeRate)
}
