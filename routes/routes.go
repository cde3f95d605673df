package routes

import (
	"food-ordering-api/auth"
	"food-ordering-api/handlers"
	"food-ordering-api/logger"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Log          *logrus.Entry
	CORSOrigins  []string
	AdminLimiter *middleware.IPRateLimiter
}

// NewRouter builds the engine with the shared middleware and every route.
func NewRouter(h *handlers.Handler, authn *auth.Authenticator, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(opts.Log), middleware.CORS(opts.CORSOrigins))
	r.NoRoute(middleware.NoRoute)
	r.GET("/health", handlers.Health)
	SetupRoutes(r, h, authn, opts.AdminLimiter)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, authn *auth.Authenticator, adminLimiter *middleware.IPRateLimiter) {
	requireAuth := middleware.AuthRequired(authn)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/signup", h.Signup)
		public.POST("/auth/login", h.Login)
		public.POST("/auth/admin/login", adminLimiter.Middleware(), h.AdminLogin)

		// Restaurants & dishes (no auth needed)
		public.GET("/restaurants", h.ListRestaurants)
		public.GET("/restaurants/:id/dishes", h.GetDishes)
		public.GET("/restaurants/:id/rating", h.GetRestaurantRating)
		public.GET("/orders/:id/feedback", h.ListFeedback)

		public.GET("/state-machine", h.GetStateMachineInfo)
		public.GET("/health", handlers.Health)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/api")
	authed.Use(requireAuth)
	{
		authed.POST("/auth/logout", h.Logout)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(requireAuth, middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/profile", h.GetProfile)
		customer.PUT("/profile", h.UpdateProfile)

		customer.POST("/orders", h.PlaceOrder)
		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", h.CancelOrder)
		customer.POST("/orders/:id/feedback", h.SubmitFeedback)
	}

	// ── Restaurant routes ──────────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(requireAuth, middleware.RoleRequired(models.RoleRestaurant))
	{
		restaurant.GET("/profile", h.GetMyRestaurant)
		restaurant.PUT("/profile", h.UpdateRestaurant)

		// Dish management
		restaurant.GET("/dishes", h.GetMyDishes)
		restaurant.POST("/dishes", h.AddDish)
		restaurant.PUT("/dishes/:id", h.UpdateDish)
		restaurant.DELETE("/dishes/:id", h.DeleteDish)

		// Order management
		restaurant.GET("/orders", h.GetRestaurantOrders)
		restaurant.PUT("/orders/:id/status", h.UpdateOrderStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(requireAuth, middleware.RoleRequired(models.RoleAdmin, models.RoleSuperAdmin))
	{
		admin.GET("/dashboard", h.AdminDashboard)
		admin.GET("/profile", h.AdminProfile)
	}

	super := r.Group("/api/admin")
	super.Use(requireAuth, middleware.RoleRequired(models.RoleSuperAdmin))
	{
		super.PUT("/orders/:id", h.AdminSetOrderStatus)
		super.DELETE("/orders/:id", h.AdminDeleteOrder)
		super.GET("/logs", h.AdminLogs)
		super.POST("/users", h.AdminCreateUser)
	}
}
