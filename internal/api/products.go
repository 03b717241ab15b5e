package api

import (
	"net/http" // HTTP status codes

	"ecorewards/internal/cache"
	"ecorewards/internal/domain"
	"ecorewards/internal/rewards"
	"ecorewards/internal/store"

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListProductsHandler returns catalog items, optionally filtered by category
// and active flag. Only the unfiltered listing is cached.
func ListProductsHandler(svc *rewards.Service, cch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		category := c.Query("category")
		active := c.Query("active")

		unfiltered := category == "" && active == ""
		if unfiltered {
			var cached []domain.Product
			if found, err := cch.Get(ctx, cache.ProductListKey(), &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{"products": cached, "cached": true})
				return
			}
		}
		filter := store.ProductFilter{Category: category}
		if active != "" {
			isActive := active == "true"
			filter.Active = &isActive
		}
		products, err := svc.ListProducts(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		if unfiltered {
			_ = cch.Set(ctx, cache.ProductListKey(), products)
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "cached": false})
	}
}
