package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Claims carried by every issued token. The settlement and wallet endpoints
// trust the user id from here, never from a request body.
type Claims struct {
	UserID               uint   `json:"user_id"` // Authenticated user ID
	Role                 string `json:"role"`    // Role at issue time, re-checked for admin routes
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a signed token for a user, valid for 24 hours.
func GenerateJWT(userID uint, role, secret string) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Token expires in 24 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),                     // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a token string.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
