package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/internal/apierrors"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"github.com/tamilsociety/tls-platform/pkg/response"
	"go.uber.org/zap"
)

const internalError = "internal server error"

// respondError writes a defined error with its own status. Anything else is
// a store or programming failure: logged, and hidden behind a fixed message.
func respondError(c *gin.Context, err error) {
	if de, ok := apierrors.As(err); ok {
		c.JSON(de.StatusCode, de)
		return
	}
	_ = c.Error(err)
	logger.Log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: internalError})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: msg})
}
