package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of tokens issued by the site's auth service.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
