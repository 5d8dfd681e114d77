package controllers

import (
	"net/http"

	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// CatalogController handles HTTP requests for products and pricing plans.
type CatalogController struct {
	catalogService services.CatalogService
}

func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListProducts handles GET /products?category=
func (cc *CatalogController) ListProducts(ctx *gin.Context) {
	products, err := cc.catalogService.ListProducts(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"products":   products,
		"categories": cc.catalogService.Categories(),
	})
}

// GetProduct handles GET /products/:id
func (cc *CatalogController) GetProduct(ctx *gin.Context) {
	product, err := cc.catalogService.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// ListPlans handles GET /plans?billing=monthly|yearly
func (cc *CatalogController) ListPlans(ctx *gin.Context) {
	billing := ctx.DefaultQuery("billing", "monthly")
	plans, err := cc.catalogService.Plans(billing)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"billing": billing, "plans": plans})
}
