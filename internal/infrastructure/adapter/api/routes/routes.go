package routes

import (
	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Delivery     *handler.DeliveryHandler
	Account      *handler.AccountHandler
	Payment      *handler.PaymentHandler
	Notification *handler.NotificationHandler
	Health       *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, tokens *auth.TokenService, logger coreport.Logger) {
	router.GET("/health", h.Health.Health)

	// Gateway callbacks authenticate by signature, not by bearer token
	router.POST("/webhooks/payment", h.Payment.Webhook)

	api := router.Group("/api/v1", middleware.Auth(tokens, logger))

	agents := middleware.RequireRole(entity.RoleDeliveryAgent, entity.RoleAdmin)

	deliveries := api.Group("/deliveries")
	{
		deliveries.POST("", h.Delivery.Create)
		deliveries.GET("/available", agents, h.Delivery.ListAvailable)
		deliveries.GET("/assigned", agents, h.Delivery.ListAssigned)
		deliveries.GET("/:id", h.Delivery.Get)
		deliveries.GET("/:id/code", h.Delivery.RevealCode)
		deliveries.PATCH("/:id/assign", agents, h.Delivery.Claim)
		deliveries.POST("/:id/verify", agents, h.Delivery.VerifyCode)
		deliveries.PATCH("/:id/status", agents, h.Delivery.UpdateStatus)
		deliveries.POST("/:id/return", h.Delivery.CreateReturn)
	}

	api.POST("/borrow-requests/:id/accept", h.Account.AcceptBorrow)

	accounts := api.Group("/accounts")
	{
		accounts.POST("", h.Account.Open)
		accounts.GET("/me", h.Account.Me)
		accounts.GET("/me/ledger", h.Account.Ledger)
		accounts.GET("/me/reconcile", h.Account.Reconcile)
	}

	payments := api.Group("/payments")
	{
		payments.GET("/packages", h.Payment.Packages)
		payments.POST("/create-order", h.Payment.CreateOrder)
		payments.POST("/verify", h.Payment.Verify)
	}

	api.GET("/notifications", h.Notification.List)
}

// SetupMiddlewares configures global middlewares for the API. observer may be nil.
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, observer middleware.RequestObserver) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	if observer != nil {
		router.Use(middleware.Metrics(observer))
	}
}
