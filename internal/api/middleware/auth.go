package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/internal/apierrors"
	"github.com/tamilsociety/tls-platform/internal/config"
	"github.com/tamilsociety/tls-platform/pkg/utils"
)

// Admin lets through callers whose token carries the admin claim. It must
// run after JWTAuthMiddleware.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.GetClaimsFromContext(c)
		if err != nil {
			abort(c, apierrors.Unauthorized("invalid token claims"))
			return
		}
		if !claims.IsAdmin {
			abort(c, apierrors.Forbidden("admin only"))
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, err *apierrors.DefinedError) {
	c.AbortWithStatusJSON(err.StatusCode, err)
}

// AllowedOrigin reports whether a browser origin may make credentialed
// requests: one of CORS_ORIGINS, or a localhost port outside production.
func AllowedOrigin(origin string) bool {
	origin = strings.TrimRight(origin, "/")
	for _, o := range config.CorsOrigins {
		if strings.TrimRight(o, "/") == origin {
			return true
		}
	}
	if strings.EqualFold(config.AppEnv, "production") {
		return false
	}
	return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
}

// CORSMiddleware applies AllowedOrigin. Websocket upgrades skip it and are
// checked by the upgrader instead.
func CORSMiddleware() gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOriginFunc:  AllowedOrigin,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	corsHandler := cors.New(corsConfig)
	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}
		corsHandler(c)
	}
}
