package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/pkg/types"
)

var ErrEmptyParameter = errors.New("parameter is empty")

var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}

	return claims, nil
}

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// OptionalUserID returns the caller's id when a valid token was presented.
func OptionalUserID(c *gin.Context) *uint {
	id, err := GetUserIDFromContext(c)
	if err != nil {
		return nil
	}
	return &id
}

func ParseQueryUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, ErrEmptyParameter
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func ParseUintParam(c *gin.Context, key string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// IDFromPathOrQuery reads "id" from the route, then from the query string.
func IDFromPathOrQuery(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return c.Query("id")
}
