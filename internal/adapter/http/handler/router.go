package handler

import (
	"settlement-gateway/internal/adapter/http/middleware"
	"settlement-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	OrderSvc       ports.OrderService
	PayoutSvc      ports.PayoutService
	ReconSvc       ports.ReconciliationService
	MerchantRepo   ports.MerchantRepository
	PayinRepo      ports.PayinOrderRepository
	PayoutRepo     ports.PayoutOrderRepository
	HealthCheckers []ports.HealthChecker
	MetricsReg     prometheus.Gatherer // nil = /metrics disabled
	AdminAPIKey    string              // empty = admin routes disabled
	Mode           string              // gin mode: debug, release, test
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.MetricsReg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.MetricsReg, promhttp.HandlerOpts{})))
	}

	// --- Channel webhooks (signature inside the payload, no API auth) ---
	webhookHandler := NewWebhookHandler(deps.ReconSvc, deps.Logger)
	callbacks := r.Group("/callback")
	{
		callbacks.POST("/:channel", webhookHandler.Payin)
		callbacks.POST("/:channel/payout", webhookHandler.Payout)
	}

	// --- Merchant API (access-key authenticated) ---
	accessAuth := middleware.AccessKeyAuth(deps.MerchantRepo, deps.Logger)
	orderHandler := NewOrderHandler(deps.OrderSvc, deps.ReconSvc, deps.PayinRepo)
	payoutHandler := NewPayoutHandler(deps.PayoutSvc, deps.PayoutRepo)

	v1 := r.Group("/api/v1", accessAuth)
	{
		v1.POST("/orders", orderHandler.CreatePayin)
		v1.GET("/orders/:orderId", orderHandler.GetOrder)
		v1.POST("/orders/utr", orderHandler.SubmitUTR)
		v1.POST("/payouts", payoutHandler.CreatePayout)
		v1.GET("/payouts/:orderId", payoutHandler.GetPayout)
	}

	// --- Back office (shared operator key) ---
	if deps.AdminAPIKey != "" {
		adminHandler := NewAdminHandler(deps.PayoutSvc)
		admin := r.Group("/admin/v1", middleware.AdminAuth(deps.AdminAPIKey))
		{
			admin.POST("/payouts", adminHandler.CreatePayout)
			admin.POST("/payouts/:id/approve", adminHandler.ApprovePayout)
			admin.POST("/payouts/:id/reject", adminHandler.RejectPayout)
		}
	}

	return r
}
