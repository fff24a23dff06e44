package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-service/config"
	"github.com/jwtpizza/pizza-service/internal/app/controller"
	"github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	authController      *controller.AuthController
	orderController     *controller.OrderController
	franchiseController *controller.FranchiseController
	userController      *controller.UserController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	ready               func() bool
	config              *config.Config
}

// NewRouter wires the controllers. uploadController may be nil when S3 is not configured.
func NewRouter(
	authController *controller.AuthController,
	orderController *controller.OrderController,
	franchiseController *controller.FranchiseController,
	userController *controller.UserController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	ready func() bool,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		orderController:     orderController,
		franchiseController: franchiseController,
		userController:      userController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		ready:               ready,
		config:              cfg,
	}
}

// route is one API endpoint; the same table drives registration and /api/docs.
type route struct {
	method      string
	path        string
	auth        bool
	description string
	handler     gin.HandlerFunc
}

func (r *Router) routes() []route {
	routes := []route{
		{http.MethodPost, "/api/auth", false, "Register a new user", r.authController.Register},
		{http.MethodPut, "/api/auth", false, "Login existing user", r.authController.Login},
		{http.MethodDelete, "/api/auth", true, "Logout a user", r.authController.Logout},

		{http.MethodGet, "/api/order/menu", false, "Get the pizza menu", r.orderController.GetMenu},
		{http.MethodPut, "/api/order/menu", true, "Add an item to the menu", r.orderController.AddMenuItem},
		{http.MethodGet, "/api/order", true, "Get the orders for the authenticated user", r.orderController.GetOrders},
		{http.MethodPost, "/api/order", true, "Create a order for the authenticated user", r.orderController.PlaceOrder},

		{http.MethodGet, "/api/franchise", false, "List all the franchises", r.franchiseController.ListFranchises},
		{http.MethodGet, "/api/franchise/:userId", true, "List a user's franchises", r.franchiseController.ListUserFranchises},
		{http.MethodPost, "/api/franchise", true, "Create a new franchise", r.franchiseController.CreateFranchise},
		{http.MethodDelete, "/api/franchise/:franchiseId", true, "Delete a franchise", r.franchiseController.DeleteFranchise},
		{http.MethodPost, "/api/franchise/:franchiseId/store", true, "Create a new franchise store", r.franchiseController.CreateStore},
		{http.MethodDelete, "/api/franchise/:franchiseId/store/:storeId", true, "Delete a store", r.franchiseController.DeleteStore},

		{http.MethodGet, "/api/user/me", true, "Get authenticated user", r.userController.GetMe},
		{http.MethodPut, "/api/user/:userId", true, "Update user", r.userController.UpdateUser},
		{http.MethodGet, "/api/user", true, "Gets a list of users", r.userController.ListUsers},
		{http.MethodDelete, "/api/user/:userId", true, "Delete user", r.userController.DeleteUser},
	}

	if r.uploadController != nil {
		routes = append(routes, route{http.MethodPost, "/api/order/menu/image", true, "Get an upload URL for a menu image", r.uploadController.PresignMenuImage})
	}
	return routes
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"ready":  r.ready(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/")
	api.Use(middleware.RequireReady(r.ready))
	api.Use(r.authMiddleware.SetAuthUser())

	routes := r.routes()
	endpoints := make([]controller.Endpoint, 0, len(routes))
	for _, rt := range routes {
		handlers := []gin.HandlerFunc{}
		if rt.auth {
			handlers = append(handlers, r.authMiddleware.AuthenticateToken())
		}
		api.Handle(rt.method, rt.path, append(handlers, rt.handler)...)

		endpoints = append(endpoints, controller.Endpoint{
			Method:       rt.method,
			Path:         rt.path,
			RequiresAuth: rt.auth,
			Description:  rt.description,
		})
	}

	docs := controller.NewDocsController(config.Version, r.config.Factory.URL, endpoints)
	router.GET("/api/docs", docs.GetDocs)

	router.NoRoute(func(c *gin.Context) {
		errors.RespondWithMessage(c, http.StatusNotFound, "unknown endpoint")
	})

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed && origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
