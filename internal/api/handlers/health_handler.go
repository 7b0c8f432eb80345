package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/pkg/response"
)

type HealthHandler struct {
	repos *repository.Repos
}

func NewHealthHandler(repos *repository.Repos) *HealthHandler {
	return &HealthHandler{repos: repos}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.repos.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, response.OKResponse{OK: true})
}
