package routes

import (
	"net/http"
	"time"

	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/common/middleware"
	"storefront-service/controllers"
	awspkg "storefront-service/pkg/aws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options configures the shared middleware chain.
type Options struct {
	ServiceName    string
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
	Metrics        awspkg.MetricsRecorder
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	SecureCookies  bool
	Logger         *zap.Logger
}

// Controllers groups every HTTP handler set the router serves.
type Controllers struct {
	Catalog  *controllers.CatalogController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Contact  *controllers.ContactController
}

// NewRouter builds the gin engine with middleware and all storefront routes.
func NewRouter(opts Options, c Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.MetricsMiddleware(opts.Metrics, opts.ServiceName))
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())
	if opts.RateLimiter != nil {
		r.Use(middleware.RateLimitMiddleware(opts.RateLimiter))
	}
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}
	r.Use(apperrors.ErrorMiddleware())

	r.NoRoute(func(ctx *gin.Context) {
		ctx.AbortWithStatusJSON(http.StatusNotFound, apperrors.ErrNotFound)
	})

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "OK", "service": opts.ServiceName})
	})

	RegisterCatalogRoutes(r, c.Catalog)
	RegisterContactRoutes(r, c.Contact)

	// Cart and checkout state is keyed by the shopper session.
	shop := r.Group("")
	shop.Use(middleware.Session(opts.SessionTTL, opts.SecureCookies))
	RegisterCartRoutes(shop, c.Cart)
	RegisterCheckoutRoutes(shop, c.Checkout)

	return r
}

// RegisterCatalogRoutes sets up product and plan routes.
func RegisterCatalogRoutes(r gin.IRouter, cc *controllers.CatalogController) {
	r.GET("/products", cc.ListProducts)
	r.GET("/products/:id", cc.GetProduct)
	r.GET("/plans", cc.ListPlans)
}

// RegisterCartRoutes sets up all cart-related routes.
func RegisterCartRoutes(r gin.IRouter, cc *controllers.CartController) {
	cartRoutes := r.Group("/cart")
	cartRoutes.GET("", cc.GetCart)
	cartRoutes.DELETE("", cc.ClearCart)
	cartRoutes.POST("/items", cc.AddItem)
	cartRoutes.PUT("/items/:id", cc.UpdateQuantity)
	cartRoutes.DELETE("/items/:id", cc.RemoveItem)
	cartRoutes.POST("/open", cc.OpenCart)
	cartRoutes.POST("/close", cc.CloseCart)
}

// RegisterCheckoutRoutes sets up the checkout flow routes.
func RegisterCheckoutRoutes(r gin.IRouter, cc *controllers.CheckoutController) {
	checkoutRoutes := r.Group("/checkout")
	checkoutRoutes.GET("", cc.GetCheckout)
	checkoutRoutes.POST("/open", cc.OpenCheckout)
	checkoutRoutes.POST("/close", cc.CloseCheckout)

	checkoutRoutes.PATCH("/shipping", cc.EditShippingField)
	checkoutRoutes.POST("/shipping", cc.SubmitShipping)
	checkoutRoutes.PATCH("/payment", cc.EditPaymentField)
	checkoutRoutes.POST("/payment", cc.SubmitPayment)
	checkoutRoutes.PUT("/payment/type", cc.SelectPaymentType)

	checkoutRoutes.POST("/back", cc.Back)
	checkoutRoutes.POST("/edit/shipping", cc.EditShipping)
	checkoutRoutes.POST("/edit/payment", cc.EditPayment)

	checkoutRoutes.POST("/place-order", cc.PlaceOrder)
	checkoutRoutes.GET("/confirmation", cc.GetConfirmation)
	checkoutRoutes.GET("/receipt", cc.GetReceipt)
	checkoutRoutes.POST("/start-over", cc.StartOver)
}

// RegisterContactRoutes sets up the contact form and booking routes.
func RegisterContactRoutes(r gin.IRouter, cc *controllers.ContactController) {
	r.POST("/contact", cc.SubmitContact)
	r.GET("/calendar", cc.GetCalendar)
	r.POST("/bookings", cc.CreateBooking)
}
