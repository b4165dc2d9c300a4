package handlers

import (
	"net/http"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// --- Public Product Routes ---

// ListProducts handles GET /v1/products. Filters are ANDed:
// ?slug=, ?category=<slug>, ?subcategory=<slug>, ?bestseller=, ?is_new=
func (h *Handlers) ListProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Slug:            c.Query("slug"),
		CategorySlug:    c.Query("category"),
		SubCategorySlug: c.Query("subcategory"),
		Bestseller:      queryBool(c, "bestseller"),
		IsNew:           queryBool(c, "is_new"),
	}

	products, err := h.Products.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "product")
	if !ok {
		return
	}
	product, err := h.Products.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- Staff Product Routes ---

// CreateProduct handles POST /v1/products with the core fields and any of
// the images, videos, colors, sizes and styles lists.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.Products.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct serves PUT and PATCH. Supplied core fields are merged;
// each supplied child list replaces the stored one.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "product")
	if !ok {
		return
	}
	var input models.ProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := h.Products.ReplaceProduct(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "product")
	if !ok {
		return
	}
	if err := h.Products.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
