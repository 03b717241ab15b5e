package api

import (
	"errors"
	"net/http" // HTTP status codes

	"ecorewards/internal/cache"
	"ecorewards/internal/middleware"
	"ecorewards/internal/rewards"

	"github.com/gin-gonic/gin" // Gin web framework
)

// GetWalletHandler returns the authenticated user's balance and their most
// recent reward transactions, newest first, at most 50.
func GetWalletHandler(svc *rewards.Service, cch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := cache.WalletKey(userID)
		var cached rewards.WalletSummary
		if found, err := cch.Get(ctx, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"walletBalance": cached.WalletBalance,
				"transactions":  cached.Transactions,
				"cached":        true,
			})
			return
		}
		summary, err := svc.Rewards(ctx, userID)
		if errors.Is(err, rewards.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rewards"})
			return
		}
		_ = cch.Set(ctx, cacheKey, summary)
		c.JSON(http.StatusOK, gin.H{
			"walletBalance": summary.WalletBalance,
			"transactions":  summary.Transactions,
			"cached":        false,
		})
	}
}
