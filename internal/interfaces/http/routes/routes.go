// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/cart"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/identity"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/menu"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/tracking"
	"github.com/cryai2821/pizza-wale-fe/internal/interfaces/http/handlers"
	"github.com/cryai2821/pizza-wale-fe/internal/interfaces/http/middleware"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services are the domain services the routes dispatch to
type Services struct {
	Menu     *menu.Service
	Cart     *cart.Service
	Identity *identity.Service
	Order    *order.Service
	Tracking *tracking.Service
	Receipts *pdf.Service
}

// SetupMenuRoutes sets up catalog routes
func SetupMenuRoutes(rg *gin.RouterGroup, svc *Services) {
	menuHandler := handlers.NewMenuHandler(svc.Menu)

	menuGroup := rg.Group("/menu")
	{
		menuGroup.GET("", menuHandler.GetMenu)
		menuGroup.GET("/products/:id/customize", menuHandler.CustomizeProduct)
	}
}

// SetupCartRoutes sets up cart routes. The cart belongs to the browser
// session, signed in or not.
func SetupCartRoutes(rg *gin.RouterGroup, svc *Services) {
	cartHandler := handlers.NewCartHandler(svc.Cart, svc.Menu)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.PUT("/items", cartHandler.UpdateItem)
		cartGroup.DELETE("/items", cartHandler.RemoveItem)
		cartGroup.POST("/products/:id/decrement", cartHandler.DecrementProduct)
		cartGroup.POST("/toggle", cartHandler.ToggleCart)
	}
}

// SetupAuthRoutes sets up login routes
func SetupAuthRoutes(rg *gin.RouterGroup, svc *Services) {
	authHandler := handlers.NewAuthHandler(svc.Identity)

	auth := rg.Group("/auth")
	{
		auth.POST("/otp/send", authHandler.SendOTP)
		auth.POST("/otp/verify", authHandler.VerifyOTP)
		auth.GET("/me", authHandler.Me)
		auth.POST("/logout", authHandler.Logout)
	}
}

// SetupOrderRoutes sets up checkout and order routes
func SetupOrderRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config, logger *logrus.Logger) {
	checkoutHandler := handlers.NewCheckoutHandler(svc.Order, cfg)
	orderHandler := handlers.NewOrderHandler(svc.Order, svc.Receipts, cfg, logger)
	liveHandler := handlers.NewLiveHandler(svc.Order, svc.Tracking, cfg, logger)

	requireLogin := middleware.RequireIdentity(svc.Identity, cfg)

	rg.POST("/checkout", requireLogin, checkoutHandler.PlaceOrder)

	orders := rg.Group("/orders")
	orders.Use(requireLogin) // All order routes require authentication
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/receipt", orderHandler.GetReceipt)
		orders.GET("/:id/live", liveHandler.Live)
	}
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config, logger *logrus.Logger) {
	rg.Use(middleware.Session(cfg))

	SetupMenuRoutes(rg, svc)
	SetupCartRoutes(rg, svc)
	SetupAuthRoutes(rg, svc)
	SetupOrderRoutes(rg, svc, cfg, logger)
}
