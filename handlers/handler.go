package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/michaelgivor/stackshop-app/internal/products"
	"github.com/michaelgivor/stackshop-app/internal/query"
	"github.com/michaelgivor/stackshop-app/internal/stores/kafka"
	"github.com/michaelgivor/stackshop-app/middleware"
	"github.com/michaelgivor/stackshop-app/pkg/ctxmanage"
)

type Handler struct {
	q        *query.Client
	p        products.Service
	k        *kafka.Conf // nil when kafka is not configured
	validate *validator.Validate
}

func NewHandler(q *query.Client, p products.Service, k *kafka.Conf) *Handler {
	return &Handler{
		q:        q,
		p:        p,
		k:        k,
		validate: validator.New(),
	}
}

func API(endpointPrefix string, q *query.Client, p products.Service, k *kafka.Conf) *gin.Engine {

	r := gin.New()
	mode := os.Getenv("GIN_MODE")
	if mode == gin.ReleaseMode {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	h := NewHandler(q, p, k)
	//apply middleware to all the endpoints using r.Use
	r.Use(middleware.Logger(), gin.Recovery())
	r.GET("/ping", healthCheck)
	v1 := r.Group(endpointPrefix)
	{
		pr := v1.Group("/products")
		pr.GET("/list", h.ListProducts)               // GET {prefix}/products/list - Lists the whole catalog.
		pr.GET("/recommended", h.RecommendedProducts) // GET {prefix}/products/recommended - Bounded recommendation strip.
		pr.GET("/view/:id", h.GetProduct)             // GET {prefix}/products/view/:id - Retrieves a product by its unique ID.
		pr.POST("/create", h.CreateProduct)
		pr.DELETE("/delete/:id", h.DeleteProduct)

		ct := v1.Group("/cart")
		ct.GET("/items", h.GetCartItems)
		ct.POST("/mutate", h.MutateCart)
	}

	return r
}

func healthCheck(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	fmt.Println("healthCheck handler ", traceId)
	//JSON serializes the given struct as JSON into the response body. It also sets the Content-Type as "application/json".
	c.JSON(http.StatusOK, gin.H{"status": "ok"})

}
