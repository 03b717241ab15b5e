package api

import (
	"encoding/json"
	"errors"
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"ecorewards/internal/cache"
	"ecorewards/internal/rewards"
	"ecorewards/internal/store"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Admin endpoints manage products and bins through a single resource with a
// type discriminator: ?type=products|bins on reads, {"type": ...} in bodies.
// An unknown discriminator is a bad request.

// adminCreateRequest wraps a typed creation payload.
type adminCreateRequest struct {
	Type string          `json:"type" binding:"required"` // Resource type: product or bin
	Data json.RawMessage `json:"data" binding:"required"` // Type-specific payload
}

// adminUpdateRequest wraps a typed partial edit.
type adminUpdateRequest struct {
	Type string          `json:"type" binding:"required"` // Resource type: product or bin
	ID   uint            `json:"id" binding:"required"`   // Internal record id
	Data json.RawMessage `json:"data" binding:"required"` // Partial fields to merge
}

// AdminListHandler returns the full product catalog or all bins.
func AdminListHandler(svc *rewards.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if c.Query("type") == "bins" {
			bins, err := svc.ListBins(ctx)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bins"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"bins": bins})
			return
		}
		products, err := svc.ListProducts(ctx, store.ProductFilter{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// AdminCreateHandler creates a product or registers a bin.
func AdminCreateHandler(svc *rewards.Service, cch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Type and data are required"})
			return
		}
		ctx := c.Request.Context()
		switch req.Type {
		case "product":
			var input rewards.ProductInput
			if err := json.Unmarshal(req.Data, &input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
				return
			}
			product, err := svc.CreateProduct(ctx, input)
			if err != nil {
				if errors.Is(err, rewards.ErrInvalidInput) {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
				return
			}
			_ = cch.Delete(ctx, cache.ProductListKey())
			logrus.WithFields(logrus.Fields{
				"product_id": product.ID,
				"name":       product.Name,
			}).Info("Product created")
			c.JSON(http.StatusCreated, gin.H{
				"message":   "Product created successfully",
				"productId": product.ID,
			})
		case "bin":
			var input rewards.BinInput
			if err := json.Unmarshal(req.Data, &input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bin payload"})
				return
			}
			bin, err := svc.RegisterBin(ctx, input)
			if err != nil {
				if errors.Is(err, rewards.ErrInvalidInput) {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bin"})
				return
			}
			c.JSON(http.StatusCreated, gin.H{
				"message":       "Bin created successfully",
				"binId":         bin.ID,
				"binIdentifier": bin.BinID,
				"qrCode":        bin.QRCode,
			})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type"})
		}
	}
}

// AdminUpdateHandler merges a partial edit into a product or bin. A missing
// target is a no-op, matching the store contract.
func AdminUpdateHandler(svc *rewards.Service, cch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Type, id, and data are required"})
			return
		}
		ctx := c.Request.Context()
		switch req.Type {
		case "product":
			var update store.ProductUpdate
			if err := json.Unmarshal(req.Data, &update); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
				return
			}
			if _, err := svc.UpdateProduct(ctx, req.ID, update); err != nil {
				if errors.Is(err, rewards.ErrInvalidInput) {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
			_ = cch.Delete(ctx, cache.ProductListKey())
			c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
		case "bin":
			var update store.BinUpdate
			if err := json.Unmarshal(req.Data, &update); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bin payload"})
				return
			}
			bin, err := svc.UpdateBin(ctx, req.ID, update)
			if err != nil {
				if errors.Is(err, rewards.ErrInvalidInput) {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bin"})
				return
			}
			if bin != nil {
				// Verification responses for this bin are stale now
				_ = cch.Delete(ctx, cache.BinVerifyKey(bin.BinID))
			}
			c.JSON(http.StatusOK, gin.H{"message": "Bin updated successfully"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type"})
		}
	}
}

// AdminDeleteHandler removes a product or bin by internal id.
func AdminDeleteHandler(svc *rewards.Service, st store.Store, cch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		typ := c.Query("type")
		idStr := c.Query("id")
		if typ == "" || idStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Type and ID are required"})
			return
		}
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
			return
		}
		ctx := c.Request.Context()
		switch typ {
		case "product":
			if _, err := svc.DeleteProduct(ctx, uint(id)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
				return
			}
			_ = cch.Delete(ctx, cache.ProductListKey())
			c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
		case "bin":
			// Look the bin up first so its verify cache entry can be dropped
			if bin, err := st.Bins().ByID(ctx, uint(id)); err == nil {
				_ = cch.Delete(ctx, cache.BinVerifyKey(bin.BinID))
			}
			if _, err := svc.DeleteBin(ctx, uint(id)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bin"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Bin deleted successfully"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type"})
		}
	}
}
