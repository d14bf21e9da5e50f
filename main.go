package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sokoni-backend/config"
	"sokoni-backend/database"
	"sokoni-backend/internal/api"
	"sokoni-backend/internal/middleware"
	"sokoni-backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	store := database.NewStore(db)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Log slow requests
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		if duration > 5*time.Second {
			log.Printf("SLOW REQUEST: %s %s took %v", c.Request.Method, c.Request.URL.Path, duration)
		}
	})

	// CORS middleware
	router.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := cfg.AllowAllOrigins
		if !allowed {
			for _, o := range cfg.AllowedOrigins {
				if o == origin {
					allowed = true
					break
				}
			}
		}

		if allowed && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	securityConfig := &middleware.SecurityConfig{
		MaxRequestSize:    cfg.MaxRequestSize,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   time.Duration(cfg.RateLimitWindow) * time.Second,
	}
	router.Use(middleware.SecurityMiddleware(securityConfig))

	// Initialize services
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiration)
	userService := services.NewUserService(store, authService, cfg.BcryptCost)
	catalogService := services.NewCatalogService(store)
	orderService := services.NewOrderService(store)

	// Initialize handlers
	authHandlers := api.NewAuthHandlers(userService)
	userHandlers := api.NewUserHandlers(userService)
	catalogHandlers := api.NewCatalogHandlers(catalogService)
	orderHandlers := api.NewOrderHandlers(orderService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "sokoni-backend",
		})
	})

	apiGroup := router.Group("/api/v1")
	{
		auth := apiGroup.Group("/auth")
		auth.Use(middleware.AuthRateLimitMiddleware())
		{
			auth.POST("/register", authHandlers.Register)
			auth.POST("/login", authHandlers.Login)
			auth.POST("/forgot-password", authHandlers.ForgotPassword)
			auth.POST("/reset-password", authHandlers.ResetPassword)
		}

		protected := apiGroup.Group("")
		protected.Use(authMiddleware.AuthRequired())
		{
			users := protected.Group("/users")
			{
				users.GET("", userHandlers.GetUsers)
				users.PUT("", userHandlers.UpdateUser)
			}

			products := protected.Group("/products")
			{
				products.POST("", catalogHandlers.CreateProduct)
				products.GET("", catalogHandlers.GetProducts)
				products.PUT("", catalogHandlers.UpdateProduct)
			}

			categories := protected.Group("/categories")
			{
				categories.POST("", catalogHandlers.CreateCategory)
				categories.GET("", catalogHandlers.GetCategories)
				categories.DELETE("/:id", catalogHandlers.DeleteCategory)
			}

			offers := protected.Group("/offers")
			{
				offers.POST("", catalogHandlers.CreateOffer)
				offers.GET("", catalogHandlers.GetOffers)
				offers.DELETE("/:id", catalogHandlers.DeleteOffer)
			}

			orders := protected.Group("/orders")
			{
				orders.POST("", orderHandlers.CreateOrder)
				orders.GET("", orderHandlers.GetOrders)
				orders.PUT("", orderHandlers.UpdateOrder)
			}

			protected.PUT("/cart", orderHandlers.UpdateCart)
			protected.PUT("/saved", orderHandlers.UpdateSaved)
		}
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Sokoni API server starting on port %s", cfg.Port)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server shutdown complete")
}
