package handlers

import (
	"net/http"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// ListReviews handles GET /v1/reviews?product=<id>&approved=<bool>
func (h *Handlers) ListReviews(c *gin.Context) {
	productID, err := queryID(c, "product")
	if err != nil {
		respondError(c, err)
		return
	}
	filter := models.ReviewFilter{ProductID: productID, Approved: queryBool(c, "approved")}

	list, err := h.Reviews.ListReviews(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) GetReview(c *gin.Context) {
	id, ok := pathID(c, "review")
	if !ok {
		return
	}
	review, err := h.Reviews.GetReview(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// CreateReview (Staff Only). New reviews start unapproved unless the
// payload says otherwise.
func (h *Handlers) CreateReview(c *gin.Context) {
	var input models.ReviewInput
	if !bindJSON(c, &input) {
		return
	}
	review, err := h.Reviews.CreateReview(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *Handlers) UpdateReview(c *gin.Context) {
	id, ok := pathID(c, "review")
	if !ok {
		return
	}
	var input models.ReviewInput
	if !bindJSON(c, &input) {
		return
	}
	review, err := h.Reviews.UpdateReview(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *Handlers) DeleteReview(c *gin.Context) {
	id, ok := pathID(c, "review")
	if !ok {
		return
	}
	if err := h.Reviews.DeleteReview(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
