package api

import (
	"errors"
	"net/http" // HTTP status codes

	"ecorewards/internal/cache"
	"ecorewards/internal/domain"
	"ecorewards/internal/middleware"
	"ecorewards/internal/rewards"

	"github.com/gin-gonic/gin" // Gin web framework
)

// VerifyBinRequest identifies the scanned bin.
type VerifyBinRequest struct {
	BinID string `json:"binId" binding:"required"` // External bin identifier from the QR code
}

// SettleRequest submits a disposal. The user is taken from the JWT
// principal, never from the body.
type SettleRequest struct {
	BinID     string `json:"binId" binding:"required"`     // External bin identifier
	ProductID uint   `json:"productId" binding:"required"` // Catalog product being disposed
}

// binView is the public slice of a bin returned to scanning clients.
type binView struct {
	BinID         string                  `json:"binId"`
	Location      domain.Location         `json:"location"`
	AcceptedTypes []domain.RecyclableType `json:"acceptedTypes"`
}

// VerifyBinHandler resolves a scanned bin for display. Read-only.
func VerifyBinHandler(svc *rewards.Service, cch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyBinRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bin ID is required"})
			return
		}
		ctx := c.Request.Context()
		var cached binView
		if found, err := cch.Get(ctx, cache.BinVerifyKey(req.BinID), &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"bin": cached, "cached": true})
			return
		}
		bin, err := svc.VerifyBin(ctx, req.BinID)
		if errors.Is(err, rewards.ErrBinNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bin not found or inactive"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		view := binView{BinID: bin.BinID, Location: bin.Location, AcceptedTypes: bin.AcceptedTypes}
		_ = cch.Set(ctx, cache.BinVerifyKey(req.BinID), view)
		c.JSON(http.StatusOK, gin.H{"bin": view, "cached": false})
	}
}

// SettleHandler verifies a disposal and credits the reward to the
// authenticated user's wallet.
func SettleHandler(svc *rewards.Service, cch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req SettleRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bin ID and Product ID are required"})
			return
		}
		ctx := c.Request.Context()
		result, err := svc.Settle(ctx, req.BinID, req.ProductID, userID)
		if err != nil {
			var mismatch *rewards.MaterialMismatchError
			switch {
			case errors.As(err, &mismatch):
				// Report the accepted set so the client can explain the rejection
				c.JSON(http.StatusBadRequest, gin.H{
					"error":         mismatch.Error(),
					"acceptedTypes": mismatch.AcceptedTypes,
				})
			case errors.Is(err, rewards.ErrBinNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or inactive bin"})
			case errors.Is(err, rewards.ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or inactive product"})
			case errors.Is(err, rewards.ErrUserNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}
		// The wallet response is stale now
		_ = cch.Delete(ctx, cache.WalletKey(userID))
		c.JSON(http.StatusOK, gin.H{
			"message":     "Disposal verified successfully",
			"reward":      result.Reward,
			"binLocation": result.BinLocation,
			"productName": result.ProductName,
		})
	}
}
