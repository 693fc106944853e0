package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/michaelgivor/stackshop-app/internal/products"
	"github.com/michaelgivor/stackshop-app/internal/query"
	"github.com/michaelgivor/stackshop-app/pkg/ctxmanage"
	"github.com/michaelgivor/stackshop-app/pkg/logkey"
)

func (h *Handler) ListProducts(c *gin.Context) {
	// Get the traceId from the request for tracking logs
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	// Catalog reads never fail outward; a storage failure degrades to an
	// empty list inside the product service.
	allProducts := h.q.Products(c.Request.Context())

	slog.Info("fetched product list", slog.String(logkey.TraceID, traceId), slog.Int("Count", len(allProducts)))
	c.JSON(http.StatusOK, gin.H{"products": allProducts})
}

func (h *Handler) RecommendedProducts(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	recommended := h.q.RecommendedProducts(c.Request.Context())

	slog.Info("fetched recommended products", slog.String(logkey.TraceID, traceId), slog.Int("Count", len(recommended)))
	c.JSON(http.StatusOK, gin.H{"products": recommended})
}

func (h *Handler) GetProduct(c *gin.Context) {
	// Get the traceId from the request for tracking logs
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	// Extract the product ID from the URL parameter and reject malformed
	// ids before any storage access happens.
	productID := c.Param("id")
	if err := uuid.Validate(productID); err != nil {
		slog.Error("invalid product id", slog.String(logkey.TraceID, traceId), slog.String(logkey.ProductID, productID))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Product ID must be a valid uuid"})
		return
	}

	product, err := h.q.ProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			slog.Error("product not found", slog.String(logkey.TraceID, traceId), slog.String(logkey.ProductID, productID))
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			slog.Error("error in retrieving product", slog.String(logkey.TraceID, traceId),
				slog.String(logkey.ProductID, productID), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {

	// Get the traceId from the request for tracking logs
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	// Check if the size of the request body exceeds 5 KB
	if c.Request.ContentLength > 5*1024 {
		slog.Error("request body limit breached", slog.String(logkey.TraceID, traceId), slog.Int64("Size Received", c.Request.ContentLength))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Request body too large."})
		return
	}

	// Variable to store the decoded request body
	var newProduct products.NewProduct

	// Bind JSON payload to the newProduct struct
	err := c.ShouldBindJSON(&newProduct)
	if err != nil {
		slog.Error("json validation error", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest)})
		return
	}

	// Use the validator package to validate the struct
	err = h.validate.Struct(newProduct)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			for _, vErr := range vErrs {
				switch vErr.Tag() {
				case "required":
					slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": vErr.Field() + " value missing"})
					return
				case "max":
					slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": vErr.Field() + " value is longer than " + vErr.Param()})
					return
				case "oneof":
					slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": vErr.Field() + " must be one of " + vErr.Param()})
					return
				default:
					slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest)})
					return
				}
			}
		}

		slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest)})
		return
	}

	// Save the product to the database
	insertedProduct, err := h.p.CreateProduct(c.Request.Context(), newProduct)
	if err != nil {
		slog.Error("error in inserting the product", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Product Creation Failed"})
		return
	}

	// The catalog changed, force the next listing reads to refetch
	h.q.Invalidate(query.KeyProducts)
	h.q.Invalidate(query.KeyRecommendedProducts)

	// Publish the product-created event without holding up the response
	if h.k != nil {
		go func(product products.Product) {
			err := h.k.ProduceProductCreated(context.Background(), product)
			if err != nil {
				slog.Error("error in producing product created event", slog.String(logkey.TraceID, traceId),
					slog.String(logkey.ProductID, product.ID), slog.String(logkey.ERROR, err.Error()))
			}
		}(insertedProduct)
	}

	// Respond with the inserted product
	c.JSON(http.StatusOK, insertedProduct)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	// Get the traceId from the request for tracking logs
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	productID := c.Param("id")
	if err := uuid.Validate(productID); err != nil {
		slog.Error("invalid product id", slog.String(logkey.TraceID, traceId), slog.String(logkey.ProductID, productID))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Product ID must be a valid uuid"})
		return
	}

	err := h.p.DeleteProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			slog.Error("product not found", slog.String(logkey.TraceID, traceId), slog.String(logkey.ProductID, productID))
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			slog.Error("error in deleting the product", slog.String(logkey.TraceID, traceId),
				slog.String(logkey.ProductID, productID), slog.String(logkey.ERROR, err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Product deletion failed"})
		}
		return
	}

	// The delete cascades into cart_items, so both families go stale
	h.q.Invalidate(query.KeyProducts)
	h.q.Invalidate(query.KeyRecommendedProducts)
	h.q.Invalidate(query.KeyProductDetail(productID))
	h.q.Invalidate(query.KeyCart)

	c.JSON(http.StatusOK, gin.H{"message": "Product successfully deleted"})
}
