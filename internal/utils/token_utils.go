package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// AuthClaims are the JWT claims issued at login. Role gates the client/agent/
// admin route groups without a DB round trip per request.
type AuthClaims struct {
	Role domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new signed JWT for the given user.
func GenerateJWT(userID string, role domain.UserRole, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string and validates its signature
// and standard claims. It returns the AuthClaims if the token is valid.
func ParseAndValidateJWT(tokenString string, secretKey string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
