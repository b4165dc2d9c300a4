package handlers

import (
	"context"
	"net/http"

	"github.com/01moynul/storefront-golang/internal/middleware"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// CreateOrder handles POST /v1/orders. Guests may check out; a signed-in
// caller becomes the order's owner.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var input models.OrderInput
	if !bindJSON(c, &input) {
		return
	}

	order, err := h.Orders.CreateOrder(c.Request.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders returns every order to staff and the caller's own otherwise.
func (h *Handlers) ListOrders(c *gin.Context) {
	list, err := h.Orders.ListOrders(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}
	order, err := h.Orders.GetOrder(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder serves PUT and PATCH as a merge-patch of the scalar fields.
func (h *Handlers) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}
	var patch models.OrderPatch
	if !bindJSON(c, &patch) {
		return
	}
	order, err := h.Orders.UpdateOrder(c.Request.Context(), middleware.CurrentUser(c), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handlers) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}
	if err := h.Orders.DeleteOrder(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Status Actions ---

type statusAction func(ctx context.Context, caller *models.User, id int64) (*models.Order, error)

// markStatus builds the POST /v1/orders/:id/mark_<status> handler. The
// status is overwritten regardless of the current one.
func (h *Handlers) markStatus(status models.OrderStatus, action statusAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "order")
		if !ok {
			return
		}
		if _, err := action(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "order marked as " + string(status)})
	}
}

func (h *Handlers) MarkOrderPaid() gin.HandlerFunc {
	return h.markStatus(models.StatusPaid, h.Orders.MarkPaid)
}

func (h *Handlers) MarkOrderShipped() gin.HandlerFunc {
	return h.markStatus(models.StatusShipped, h.Orders.MarkShipped)
}

func (h *Handlers) MarkOrderDelivered() gin.HandlerFunc {
	return h.markStatus(models.StatusDelivered, h.Orders.MarkDelivered)
}

func (h *Handlers) MarkOrderCancelled() gin.HandlerFunc {
	return h.markStatus(models.StatusCancelled, h.Orders.MarkCancelled)
}
