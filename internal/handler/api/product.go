package api

import (
	"net/http"

	"tillpoint/internal/pkg/errs"
	"tillpoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products *queries.ProductQuery
}

func NewProductHandler(products *queries.ProductQuery) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns the catalog, or a single product when ?sku= is given.
func (h *ProductHandler) List(c *gin.Context) {
	if sku := c.Query("sku"); sku != "" {
		view, err := h.products.BySKU(c.Request.Context(), sku)
		if err != nil {
			if errs.Is(err, errs.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}

	views, err := h.products.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": views})
}
