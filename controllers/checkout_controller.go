package controllers

import (
	"context"
	"net/http"

	"storefront-service/checkout"
	"storefront-service/common/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// CheckoutController handles HTTP requests for the three step checkout.
type CheckoutController struct {
	storefront services.StorefrontService
}

func NewCheckoutController(storefront services.StorefrontService) *CheckoutController {
	return &CheckoutController{storefront: storefront}
}

type checkoutAction func(ctx context.Context, sessionID string) (*models.CheckoutView, error)

// run adapts a session-only service call into a handler.
func (cc *CheckoutController) run(action checkoutAction) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		view, err := action(ctx.Request.Context(), middleware.SessionID(ctx))
		cc.respond(ctx, view, err)
	}
}

func (cc *CheckoutController) respond(ctx *gin.Context, view *models.CheckoutView, err error) {
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// GetCheckout handles GET /checkout
func (cc *CheckoutController) GetCheckout(ctx *gin.Context) {
	cc.run(cc.storefront.GetCheckout)(ctx)
}

// OpenCheckout handles POST /checkout/open
func (cc *CheckoutController) OpenCheckout(ctx *gin.Context) {
	cc.run(cc.storefront.OpenCheckout)(ctx)
}

// CloseCheckout handles POST /checkout/close
func (cc *CheckoutController) CloseCheckout(ctx *gin.Context) {
	cc.run(cc.storefront.CloseCheckout)(ctx)
}

// EditShippingField handles PATCH /checkout/shipping
func (cc *CheckoutController) EditShippingField(ctx *gin.Context) {
	var req models.FieldEditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	view, err := cc.storefront.EditShippingField(ctx.Request.Context(), middleware.SessionID(ctx), req.Field, req.Value)
	cc.respond(ctx, view, err)
}

// EditPaymentField handles PATCH /checkout/payment
func (cc *CheckoutController) EditPaymentField(ctx *gin.Context) {
	var req models.FieldEditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	view, err := cc.storefront.EditPaymentField(ctx.Request.Context(), middleware.SessionID(ctx), req.Field, req.Value)
	cc.respond(ctx, view, err)
}

// SelectPaymentType handles PUT /checkout/payment/type
func (cc *CheckoutController) SelectPaymentType(ctx *gin.Context) {
	var req models.PaymentTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	view, err := cc.storefront.SelectPaymentType(ctx.Request.Context(), middleware.SessionID(ctx), req.Type)
	cc.respond(ctx, view, err)
}

// SubmitShipping handles POST /checkout/shipping. The body, when present,
// replaces the whole shipping draft before it is validated.
func (cc *CheckoutController) SubmitShipping(ctx *gin.Context) {
	var addr checkout.ShippingAddress
	ok, err := bindOptionalJSON(ctx, &addr)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	var draft *checkout.ShippingAddress
	if ok {
		draft = &addr
	}
	view, err := cc.storefront.SubmitShipping(ctx.Request.Context(), middleware.SessionID(ctx), draft)
	cc.respond(ctx, view, err)
}

// SubmitPayment handles POST /checkout/payment. The body, when present,
// replaces the whole payment draft before it is validated.
func (cc *CheckoutController) SubmitPayment(ctx *gin.Context) {
	var details checkout.PaymentDetails
	ok, err := bindOptionalJSON(ctx, &details)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	var draft *checkout.PaymentDetails
	if ok {
		draft = &details
	}
	view, err := cc.storefront.SubmitPayment(ctx.Request.Context(), middleware.SessionID(ctx), draft)
	cc.respond(ctx, view, err)
}

// Back handles POST /checkout/back
func (cc *CheckoutController) Back(ctx *gin.Context) {
	cc.run(cc.storefront.Back)(ctx)
}

// EditShipping handles POST /checkout/edit/shipping
func (cc *CheckoutController) EditShipping(ctx *gin.Context) {
	cc.run(cc.storefront.EditShipping)(ctx)
}

// EditPayment handles POST /checkout/edit/payment
func (cc *CheckoutController) EditPayment(ctx *gin.Context) {
	cc.run(cc.storefront.EditPayment)(ctx)
}

// PlaceOrder handles POST /checkout/place-order
func (cc *CheckoutController) PlaceOrder(ctx *gin.Context) {
	conf, err := cc.storefront.PlaceOrder(ctx.Request.Context(), middleware.SessionID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":      "Your order has been placed successfully",
		"confirmation": conf,
	})
}

// GetConfirmation handles GET /checkout/confirmation
func (cc *CheckoutController) GetConfirmation(ctx *gin.Context) {
	conf, err := cc.storefront.Confirmation(ctx.Request.Context(), middleware.SessionID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"confirmation": conf})
}

// GetReceipt handles GET /checkout/receipt and serves the printable receipt.
func (cc *CheckoutController) GetReceipt(ctx *gin.Context) {
	receipt, err := cc.storefront.Receipt(ctx.Request.Context(), middleware.SessionID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `inline; filename="receipt.txt"`)
	ctx.String(http.StatusOK, receipt)
}

// StartOver handles POST /checkout/start-over
func (cc *CheckoutController) StartOver(ctx *gin.Context) {
	cc.run(cc.storefront.StartOver)(ctx)
}
