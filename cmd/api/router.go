package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupShopRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Profile)
	}
}

// setupShopRoutes wires the customer-facing storefront. Everything
// here needs a logged-in account linked to a customer record.
func setupShopRoutes(v1 *gin.RouterGroup, c *container.Container) {
	shop := v1.Group("/shop")
	shop.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		shop.GET("/products", c.StorefrontHandler.ListProducts)
		shop.GET("/products/:id/price", c.StorefrontHandler.EffectivePrice)
		shop.POST("/purchases", c.StorefrontHandler.RecordPurchase)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		// Catalog
		admin.POST("/products", c.CatalogHandler.CreateProduct)
		admin.GET("/products", c.CatalogHandler.ListProducts)
		admin.GET("/products/:id", c.CatalogHandler.GetProduct)
		admin.PUT("/products/:id", c.CatalogHandler.UpdateProduct)
		admin.DELETE("/products/:id", c.CatalogHandler.DeleteProduct)

		admin.POST("/vendors", c.CatalogHandler.CreateVendor)
		admin.GET("/vendors", c.CatalogHandler.ListVendors)
		admin.DELETE("/vendors/:id", c.CatalogHandler.DeleteVendor)
		admin.GET("/vendors/:id/performance", c.CatalogHandler.VendorPerformance)
		admin.GET("/vendors/:id/supplies", c.CatalogHandler.ListSuppliedProducts)
		admin.DELETE("/vendors/:id/supplies/:productID", c.CatalogHandler.UnlinkSupply)
		admin.POST("/supplies", c.CatalogHandler.LinkSupply)

		// Customers
		admin.POST("/customers", c.CustomerHandler.CreateCustomer)
		admin.GET("/customers", c.CustomerHandler.ListCustomers)
		admin.GET("/customers/:id", c.CustomerHandler.GetCustomer)
		admin.PUT("/customers/:id", c.CustomerHandler.UpdateCustomer)
		admin.DELETE("/customers/:id", c.CustomerHandler.DeleteCustomer)
		admin.GET("/customers/:id/purchases", c.CustomerHandler.PurchaseHistory)

		// Discounts and rewards
		admin.GET("/discounts", c.AdminHandler.ListDiscounts)
		admin.POST("/discounts/promotional", c.AdminHandler.CreatePromotional)
		admin.DELETE("/discounts/:id", c.AdminHandler.DeleteDiscount)
		admin.POST("/rewards/recompute/:customerID", c.AdminHandler.RecomputeRewards)
		admin.POST("/rewards/manual-allocations", c.AdminHandler.AllocateManualTier)
		admin.GET("/rewards/recommendations/:customerID", c.AdminHandler.Recommendations)

		// Flat-file snapshot
		admin.POST("/export", c.ExportHandler.Export)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"services":  gin.H{},
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Redis being down degrades nothing; caching just switches off
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
