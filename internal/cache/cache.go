package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9" // Redis client
)

// TTL applied to every cached response.
const TTL = 60 * time.Second

// Cache is a thin JSON cache over Redis. A Cache with a nil client is valid
// and behaves as a permanent miss, so the API keeps working without Redis.
type Cache struct {
	rdb *redis.Client
}

// New wraps a Redis client. rdb may be nil.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Get retrieves a value and unmarshals it into dest. The bool reports
// whether the key was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// Set stores a value under key for TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, TTL).Err()
}

// Delete removes keys, ignoring ones that are already absent.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Key builders shared by the handlers. Product listings are only cached for
// the unfiltered query, which keeps invalidation to a single key.

// WalletKey is the cache key for a user's wallet/rewards response.
func WalletKey(userID uint) string {
	return "wallet:user:" + strconv.Itoa(int(userID))
}

// ProductListKey is the cache key for the unfiltered product listing.
func ProductListKey() string {
	return "products:all"
}

// BinVerifyKey is the cache key for a bin verification response.
func BinVerifyKey(binID string) string {
	return "bin:verify:" + binID
}
