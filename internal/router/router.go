// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/orbitcart/orbitcart-backend/internal/config"
	"github.com/orbitcart/orbitcart-backend/internal/handlers"
	"github.com/orbitcart/orbitcart-backend/internal/middleware"
	"github.com/orbitcart/orbitcart-backend/internal/services"
	"github.com/orbitcart/orbitcart-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	mailerService := services.NewMailerService(cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage service: %w", err)
	}

	authService := services.NewAuthService(db, cfg, mailerService)
	productService := services.NewProductService(db, storageService)
	categoryService := services.NewCategoryService(db)
	orderService := services.NewOrderService(db, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Set JWT secrets
	utils.SetJWTSecrets(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Locally stored product images (development fallback)
	r.Static("/uploads", "./"+services.LocalUploadDir)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/verify-otp", authHandler.VerifyOTP)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleLogin)
			auth.POST("/refresh-token", authHandler.RefreshToken)
			auth.POST("/change-password", middleware.AuthRequired(), authHandler.ChangePassword)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/top-selling", productHandler.TopSelling)
			products.GET("/new-arrivals", productHandler.Newest)
			products.GET("/best-discounts", productHandler.MostDiscounted)
			products.GET("/cart-filtering", productHandler.CartFilteringData)
			products.GET("/:id", productHandler.GetByID)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.POST("", productHandler.Create)
				protected.PATCH("", productHandler.Update)
				protected.POST("/upload-images", middleware.UploadRateLimit(), productHandler.UploadImages)
				protected.DELETE("/:id", productHandler.Delete)
			}
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)

			protected := categories.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.POST("", categoryHandler.Create)
				protected.PATCH("/:id/toggle", categoryHandler.Toggle)
			}
		}

		// Order routes
		orders := v1.Group("/orders")
		{
			orders.POST("/checkout-session", orderHandler.CreateCheckoutSession)
			orders.POST("", orderHandler.Create)

			admin := orders.Group("")
			admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				admin.GET("/pending", orderHandler.ListPending)
				admin.GET("/confirmed", orderHandler.ListConfirmed)
				admin.GET("/delivery", orderHandler.ListDelivery)
				admin.GET("/returned", orderHandler.ListReturned)
				admin.GET("/admin", orderHandler.ListForAdmin)
				admin.GET("/:id", orderHandler.GetByID)
				admin.PATCH("/delivery-discount", orderHandler.UpdateDeliveryAndDiscount)
				admin.PATCH("/:id/status", orderHandler.UpdateStatus)
				admin.PATCH("/:id/pdf", orderHandler.MarkPdfDownloaded)
				admin.DELETE("/:id", orderHandler.Delete)
			}
		}
	}

	return r, nil
}
