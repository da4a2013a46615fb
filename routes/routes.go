package routes

import (
	"delivrya/handlers"
	"delivrya/middleware"
	"delivrya/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/login", handlers.Login)
		public.POST("/clients", handlers.Signup)
		public.GET("/cities", handlers.ListCities)

		// Catalog
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)
		public.GET("/restaurants/:id/reviews", handlers.GetReviews)
		public.GET("/search", handlers.Search)
		public.GET("/categories", handlers.ListCategories)
		public.GET("/checkout/options", handlers.GetCheckoutOptions)

		// Localization
		public.GET("/translations/:locale", handlers.GetTranslations)

		// State machine info
		public.GET("/state-machine", handlers.GetStateMachineInfo)

		// Tracking link
		public.GET("/orders/:id/qrcode", handlers.GetOrderQRCode)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Client order routes ────────────────────────────────────────
	orders := r.Group("/api/orders")
	orders.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleClient))
	{
		orders.POST("", handlers.PlaceOrder)
		orders.GET("", handlers.GetMyOrders)
		orders.GET("/:id", handlers.GetOrderDetail)
		orders.PUT("/:id/cancel", handlers.CancelOrder)
	}
}
