package handlers

import (
	"net/http"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// --- Category Handlers ---

// ListCategories handles GET /v1/categories?slug=
func (h *Handlers) ListCategories(c *gin.Context) {
	cats, err := h.Taxonomy.ListCategories(c.Request.Context(), models.CategoryFilter{Slug: c.Query("slug")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handlers) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}
	cat, err := h.Taxonomy.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// CreateCategory (Staff Only)
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	cat, err := h.Taxonomy.CreateCategory(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory serves both PUT and PATCH as a merge-patch. (Staff Only)
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}
	var input models.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	cat, err := h.Taxonomy.UpdateCategory(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DeleteCategory removes the category with its subcategories and products. (Staff Only)
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}
	if err := h.Taxonomy.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- SubCategory Handlers ---

// ListSubCategories handles GET /v1/subcategories?category=<id>
func (h *Handlers) ListSubCategories(c *gin.Context) {
	categoryID, err := queryID(c, "category")
	if err != nil {
		respondError(c, err)
		return
	}
	subs, err := h.Taxonomy.ListSubCategories(c.Request.Context(), models.SubCategoryFilter{CategoryID: categoryID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *Handlers) GetSubCategory(c *gin.Context) {
	id, ok := pathID(c, "subcategory")
	if !ok {
		return
	}
	sub, err := h.Taxonomy.GetSubCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handlers) CreateSubCategory(c *gin.Context) {
	var input models.SubCategoryInput
	if !bindJSON(c, &input) {
		return
	}
	sub, err := h.Taxonomy.CreateSubCategory(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *Handlers) UpdateSubCategory(c *gin.Context) {
	id, ok := pathID(c, "subcategory")
	if !ok {
		return
	}
	var input models.SubCategoryInput
	if !bindJSON(c, &input) {
		return
	}
	sub, err := h.Taxonomy.UpdateSubCategory(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// DeleteSubCategory detaches its products rather than deleting them.
func (h *Handlers) DeleteSubCategory(c *gin.Context) {
	id, ok := pathID(c, "subcategory")
	if !ok {
		return
	}
	if err := h.Taxonomy.DeleteSubCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Collection Handlers ---

func (h *Handlers) ListCollections(c *gin.Context) {
	cols, err := h.Taxonomy.ListCollections(c.Request.Context(), models.CollectionFilter{Slug: c.Query("slug")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cols)
}

func (h *Handlers) GetCollection(c *gin.Context) {
	id, ok := pathID(c, "collection")
	if !ok {
		return
	}
	col, err := h.Taxonomy.GetCollection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, col)
}

func (h *Handlers) CreateCollection(c *gin.Context) {
	var input models.CollectionInput
	if !bindJSON(c, &input) {
		return
	}
	col, err := h.Taxonomy.CreateCollection(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, col)
}

// UpdateCollection replaces membership only when "products" is sent.
func (h *Handlers) UpdateCollection(c *gin.Context) {
	id, ok := pathID(c, "collection")
	if !ok {
		return
	}
	var input models.CollectionInput
	if !bindJSON(c, &input) {
		return
	}
	col, err := h.Taxonomy.UpdateCollection(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, col)
}

func (h *Handlers) DeleteCollection(c *gin.Context) {
	id, ok := pathID(c, "collection")
	if !ok {
		return
	}
	if err := h.Taxonomy.DeleteCollection(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
