package httpserver

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-engine/internal/checkout"
	"storefront-engine/internal/gateway"
	"storefront-engine/internal/session"
	cartstore "storefront-engine/internal/store/cart"
	shippingstore "storefront-engine/internal/store/shipping"
	voucherstore "storefront-engine/internal/store/voucher"
)

// Deps carries the wired stores and collaborators.
type Deps struct {
	Cart     *cartstore.Store
	Voucher  *voucherstore.Store
	Shipping *shippingstore.Store
	Checkout *checkout.Controller
	Gateway  *gateway.Client
	Session  *session.Manager
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if deps.Cart == nil || deps.Voucher == nil || deps.Shipping == nil || deps.Checkout == nil || deps.Gateway == nil {
		return nil, fmt.Errorf("httpserver: missing dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = corsOrigins
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, validate: newValidator(), logger: logger}

	router.GET("/cart", h.getCart)
	router.POST("/cart/items", h.addCartItem)
	router.PATCH("/cart/items/:id", h.updateCartItem)
	router.DELETE("/cart/items/:id", h.removeCartItem)

	router.GET("/products/:id/availability", h.productAvailability)

	router.GET("/checkout", h.getCheckout)
	router.POST("/checkout/lines/:id/toggle", h.toggleLine)
	router.POST("/checkout/toggle-all", h.toggleAll)
	router.POST("/checkout/voucher", h.applyVoucher)
	router.POST("/checkout/proceed", h.proceed)

	router.GET("/shipping", h.getShipping)
	router.GET("/shipping/cities", h.listCities)
	router.PUT("/shipping/city", h.selectCity)
	router.PUT("/shipping/district", h.selectDistrict)
	router.PUT("/shipping/ward", h.selectWard)
	router.POST("/shipping/fee", h.calculateFee)

	admin := router.Group("/admin")
	admin.GET("/vouchers", h.listVouchers)
	admin.POST("/vouchers", h.createVoucher)
	admin.PUT("/vouchers/:code", h.updateVoucher)
	admin.DELETE("/vouchers/:code", h.deleteVoucher)

	if deps.Session != nil {
		router.DELETE("/session", h.resetSession)
	}

	return router, nil
}
