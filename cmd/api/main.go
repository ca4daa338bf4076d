package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nareshwadi/market/market-backend/internal/config"
	"github.com/nareshwadi/market/market-backend/internal/handler"
	"github.com/nareshwadi/market/market-backend/internal/middleware"
	"github.com/nareshwadi/market/market-backend/internal/report"
	"github.com/nareshwadi/market/market-backend/internal/repository/postgres"
	"github.com/nareshwadi/market/market-backend/internal/repository/storage"
	"github.com/nareshwadi/market/market-backend/internal/service"
	"github.com/nareshwadi/market/market-backend/internal/store"
	"github.com/nareshwadi/market/market-backend/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Apply schema
	if err := postgres.RunMigrations(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize repositories
	cartRepo := postgres.NewCartItemRepository(pool)
	wishlistRepo := postgres.NewWishlistItemRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	// Image storage is optional; the portal runs without uploads if S3 is not
	// configured
	var imageRepo storage.ImageRepository
	if cfg.S3.AccessKeyID != "" && cfg.S3.SecretAccessKey != "" {
		s3Repo, err := storage.NewS3ImageRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
		}
		imageRepo = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Image storage enabled")
	} else {
		log.Warn().Msg("S3 credentials missing, image uploads disabled")
	}

	// Initialize services
	reporter := report.NewZerologReporter(log.Logger)
	cartService := service.NewCartService(cartRepo, reporter)
	wishlistService := service.NewWishlistService(wishlistRepo, reporter)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo)
	dashboardService := service.NewDashboardService(orderRepo, productRepo)
	imageService := service.NewImageService(imageRepo)

	// Per-user collection state containers shared by REST and WebSocket
	registry := store.NewRegistry(cartService, wishlistService, reporter)

	// WebSocket hub
	hub := websocket.NewHub()

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// Per-user rate limiter
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// JWT validator for WebSocket connections (token via query param)
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, middleware.UserIDFromSubject)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create WebSocket JWT validator")
	}

	// Initialize handlers
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(registry)
	wishlistHandler := handler.NewWishlistHandler(registry)
	orderHandler := handler.NewOrderHandler(orderService, hub)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	imageHandler := handler.NewImageHandler(imageService)
	wsHandler := handler.NewWebSocketHandler(hub, wsValidator, registry, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, productHandler, cartHandler, wishlistHandler, orderHandler, dashboardHandler, imageHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
