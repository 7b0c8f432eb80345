package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tamilsociety/tls-platform/internal/apierrors"
	"github.com/tamilsociety/tls-platform/internal/config"
	"github.com/tamilsociety/tls-platform/pkg/types"
)

var jwtKey []byte

var errNoToken = errors.New("authorization required (header or cookie)")

// Init sets the JWT signing key.
func Init() {
	jwtKey = []byte(config.JwtSecret)
}

// GenerateToken issues a signed token. The site's auth service is the
// real issuer; this is used by tests and local tooling.
var GenerateToken = func(userID uint, username string, isAdmin bool, expireDuration time.Duration) (string, error) {
	claims := &types.Claims{
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expireDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ParseToken validates and extracts claims.
func ParseToken(tokenStr string) (*types.Claims, error) {
	claims := &types.Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// tokenFromRequest reads a Bearer token from the Authorization header, or
// the token cookie when there is no header.
func tokenFromRequest(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errors.New("authorization header format must be Bearer {token}")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errNoToken
}

// JWTAuthMiddleware validates Bearer token in Authorization header or cookie.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := tokenFromRequest(c)
		if err != nil {
			abort(c, apierrors.Unauthorized("%s", err.Error()))
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			abort(c, apierrors.Unauthorized("invalid token"))
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// OptionalJWT attaches claims when a valid token is presented and lets
// anonymous requests through untouched.
func OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, err := tokenFromRequest(c); err == nil {
			if claims, err := ParseToken(tokenStr); err == nil {
				c.Set("claims", claims)
			}
		}
		c.Next()
	}
}
