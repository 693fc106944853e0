package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/michaelgivor/stackshop-app/internal/query"
	"github.com/michaelgivor/stackshop-app/pkg/ctxmanage"
	"github.com/michaelgivor/stackshop-app/pkg/logkey"
)

func (h *Handler) GetCartItems(c *gin.Context) {
	// Get the traceId for logging
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	// Fetch the cart view; unlike product reads, cart failures surface
	view, err := h.q.CartItems(c.Request.Context())
	if err != nil {
		slog.Error("error fetching cart items", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart items"})
		return
	}

	slog.Info("fetched cart items", slog.String(logkey.TraceID, traceId), slog.Int("Count", len(view.Items)))
	c.JSON(http.StatusOK, view)
}

func (h *Handler) MutateCart(c *gin.Context) {
	// Get the traceId for logging
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	// Parse the tagged mutation input
	var input query.MutateCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		slog.Error("invalid request body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		slog.Error("invalid cart action", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Action must be one of add, remove, update, clear"})
		return
	}

	// A clear carries no product; everything else addresses one by uuid.
	// Malformed ids are rejected before any storage access.
	if input.Action != query.ActionClear {
		if err := uuid.Validate(input.ProductID); err != nil {
			slog.Error("invalid product id", slog.String(logkey.TraceID, traceId), slog.String(logkey.ProductID, input.ProductID))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Product ID must be a valid uuid"})
			return
		}
	}

	qty := 0
	if input.Quantity != nil {
		qty = *input.Quantity
	}

	err := h.q.MutateCart(c.Request.Context(), input)
	if err != nil {
		slog.Error("error mutating cart", slog.String(logkey.TraceID, traceId),
			slog.String("Action", input.Action), slog.String(logkey.ProductID, input.ProductID),
			slog.Int(logkey.Quantity, qty), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
		return
	}

	slog.Info("cart mutation applied", slog.String(logkey.TraceID, traceId),
		slog.String("Action", input.Action), slog.String(logkey.ProductID, input.ProductID),
		slog.Int(logkey.Quantity, qty))
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated successfully"})
}
