package controllers

import (
	"net/http"

	"storefront-service/common/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// CartController handles HTTP requests for the shopper's cart.
type CartController struct {
	storefront services.StorefrontService
}

func NewCartController(storefront services.StorefrontService) *CartController {
	return &CartController{storefront: storefront}
}

func (cc *CartController) respond(ctx *gin.Context, view *models.CartView, err error) {
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// GetCart handles GET /cart
func (cc *CartController) GetCart(ctx *gin.Context) {
	view, err := cc.storefront.GetCart(ctx.Request.Context(), middleware.SessionID(ctx))
	cc.respond(ctx, view, err)
}

// AddItem handles POST /cart/items
func (cc *CartController) AddItem(ctx *gin.Context) {
	var req models.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	view, err := cc.storefront.AddItem(ctx.Request.Context(), middleware.SessionID(ctx), req.ProductID, req.Quantity)
	cc.respond(ctx, view, err)
}

// UpdateQuantity handles PUT /cart/items/:id. A quantity of zero or less
// removes the item.
func (cc *CartController) UpdateQuantity(ctx *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	view, err := cc.storefront.UpdateQuantity(ctx.Request.Context(), middleware.SessionID(ctx), ctx.Param("id"), *req.Quantity)
	cc.respond(ctx, view, err)
}

// RemoveItem handles DELETE /cart/items/:id
func (cc *CartController) RemoveItem(ctx *gin.Context) {
	view, err := cc.storefront.RemoveItem(ctx.Request.Context(), middleware.SessionID(ctx), ctx.Param("id"))
	cc.respond(ctx, view, err)
}

// ClearCart handles DELETE /cart
func (cc *CartController) ClearCart(ctx *gin.Context) {
	view, err := cc.storefront.ClearCart(ctx.Request.Context(), middleware.SessionID(ctx))
	cc.respond(ctx, view, err)
}

func (cc *CartController) OpenCart(ctx *gin.Context) {
	view, err := cc.storefront.OpenCart(ctx.Request.Context(), middleware.SessionID(ctx))
	cc.respond(ctx, view, err)
}

func (cc *CartController) CloseCart(ctx *gin.Context) {
	view, err := cc.storefront.CloseCart(ctx.Request.Context(), middleware.SessionID(ctx))
	cc.respond(ctx, view, err)
}
