package router

import (
	"net/http"

	"fulfillment-service/internal/controller"
	"fulfillment-service/internal/logger"
	"fulfillment-service/internal/metrics"
	"fulfillment-service/internal/middleware"
	"fulfillment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Log        *logger.Logger
	Auth       *service.AuthService
	Categories *service.CategoryService
	Shipping   *service.ShippingService
	Returns    *service.ReturnService
}

func New(d Deps) *gin.Engine {
	categories := controller.NewCategoryController(d.Categories)
	shipping := controller.NewShippingController(d.Shipping)
	returns := controller.NewReturnController(d.Returns)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Rutas públicas
	r.GET("/categories", categories.List)
	r.GET("/categories/:id", categories.Get)

	// Rutas protegidas (requieren token)
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(d.Auth))

	auth.GET("/shipping/:orderId", shipping.Get)
	auth.POST("/returns", returns.Create)
	auth.GET("/returns/mine", returns.Mine)
	auth.GET("/returns/:id", returns.Get)
	auth.PATCH("/returns/:id/shipping", returns.UpdateShipping)

	// Rutas admin
	admin := auth.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.POST("/categories", categories.Create)
	admin.PATCH("/categories/:id/deactivate", categories.Deactivate)
	admin.POST("/shipping", shipping.Create)
	admin.GET("/shipping", shipping.List)
	admin.PATCH("/shipping/:orderId", shipping.Update)
	admin.PATCH("/shipping/:orderId/status", shipping.UpdateStatus)
	admin.GET("/returns", returns.List)
	admin.PATCH("/returns/:id/process", returns.Process)

	return r
}
