package httpserver

import (
	"log"

	"sunnyside-shop/internal/service/cart"
	"sunnyside-shop/internal/service/catalog"
	"sunnyside-shop/internal/service/checkout"
	"sunnyside-shop/internal/service/user"
	"sunnyside-shop/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the handlers dispatch to.
type Deps struct {
	Sessions    *session.Store
	UserSvc     *user.Service
	CatalogSvc  *catalog.Service
	CartSvc     *cart.Service
	CheckoutSvc *checkout.Service
	OrderReader OrderReader
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	router.POST("/signup", h.signup)
	router.POST("/login", h.login)

	authed := router.Group("/", sessionMiddleware(deps.Sessions))
	{
		authed.POST("/logout", h.logout)

		authed.GET("/products", h.listProducts)
		authed.GET("/products/:id", h.getProduct)

		authed.GET("/cart", h.viewCart)
		authed.POST("/cart/items/:id", h.addToCart)
		authed.PATCH("/cart/items/:id", h.updateCartItem)
		authed.DELETE("/cart/items/:id", h.removeCartItem)

		authed.POST("/checkout", h.beginCheckout)
		authed.POST("/checkout/confirm", h.confirmCheckout)

		authed.GET("/orders", h.listOrders)

		admin := authed.Group("/inventory", requireAdmin())
		{
			admin.GET("/products", h.listProducts)
			admin.POST("/products", h.createProduct)
			admin.PUT("/products/:id", h.updateProduct)
			admin.DELETE("/products/:id", h.deleteProduct)
		}
	}

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
