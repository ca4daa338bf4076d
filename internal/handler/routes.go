package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nareshwadi/market/market-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, productHandler *ProductHandler, cartHandler *CartHandler, wishlistHandler *WishlistHandler, orderHandler *OrderHandler, dashboardHandler *DashboardHandler, imageHandler *ImageHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Catalog routes (public)
	products := api.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)

	// Cart routes (protected)
	cart := api.Group("/cart")
	cart.Use(authMiddleware.Authenticate())
	cart.Use(middleware.RateLimitMiddleware(rateLimiter))
	cart.GET("", cartHandler.GetCart)
	cart.POST("", cartHandler.AddToCart)
	cart.PUT("/:lineId", cartHandler.UpdateQuantity)
	cart.DELETE("/:lineId", cartHandler.RemoveFromCart)
	cart.DELETE("", cartHandler.ClearCart)

	// Wishlist routes (protected)
	wishlist := api.Group("/wishlist")
	wishlist.Use(authMiddleware.Authenticate())
	wishlist.Use(middleware.RateLimitMiddleware(rateLimiter))
	wishlist.GET("", wishlistHandler.GetWishlist)
	wishlist.POST("", wishlistHandler.AddToWishlist)
	wishlist.DELETE("/:lineId", wishlistHandler.RemoveFromWishlist)
	wishlist.DELETE("", wishlistHandler.ClearWishlist)

	// Order routes (protected)
	orders := api.Group("/orders")
	orders.Use(authMiddleware.Authenticate())
	orders.Use(middleware.RateLimitMiddleware(rateLimiter))
	orders.POST("", orderHandler.PlaceOrder)
	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:id", orderHandler.GetOrder)

	// Image URL routes (protected)
	images := api.Group("/images")
	images.Use(authMiddleware.Authenticate())
	images.GET("/url", imageHandler.GetImageURL)

	// Farmer portal routes (protected)
	seller := api.Group("/seller")
	seller.Use(authMiddleware.Authenticate())
	seller.Use(middleware.RateLimitMiddleware(rateLimiter))
	seller.GET("/products", productHandler.ListMyProducts)
	seller.POST("/products", productHandler.CreateProduct)
	seller.PUT("/products/:id", productHandler.UpdateProduct)
	seller.PATCH("/products/:id/stock", productHandler.UpdateStock)
	seller.DELETE("/products/:id", productHandler.DeleteProduct)
	seller.POST("/products/:id/image", imageHandler.UploadImage)
	seller.DELETE("/images", imageHandler.DeleteImage)
	seller.GET("/orders/:id", orderHandler.GetSellerOrder)
	seller.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	seller.GET("/dashboard", dashboardHandler.GetStats)

	// WebSocket endpoint (token auth via query param)
	e.GET("/ws", wsHandler.HandleWS)
}
