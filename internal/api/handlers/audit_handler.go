package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/internal/application"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/pkg/utils"
)

type AuditHandler struct {
	svc *application.AuditService
}

func NewAuditHandler(svc *application.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// GetAuditLogs godoc
// @Summary      Query audit logs
// @Description  Filter by user, resource, action and time range, with pagination.
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        user_id       query     uint     false  "User ID"
// @Param        resource_type query     string   false  "recruitment_form or recruitment_response"
// @Param        resource_id   query     string   false  "Resource ID"
// @Param        action        query     string   false  "create, update, review or delete"
// @Param        start_time    query     string   false  "RFC3339"
// @Param        end_time      query     string   false  "RFC3339"
// @Param        limit         query     int      false  "Max records (default 100, max 1000)"
// @Param        offset        query     int      false  "Offset"
// @Failure      400 {object}  response.ErrorResponse "Invalid query parameters"
// @Router       /audit/logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	var params repository.AuditQueryParams

	if uid, err := utils.ParseQueryUintParam(c, "user_id"); err != nil {
		if !errors.Is(err, utils.ErrEmptyParameter) {
			badRequest(c, "Invalid user_id")
			return
		}
	} else {
		params.UserID = &uid
	}

	if rt := c.Query("resource_type"); rt != "" {
		params.ResourceType = &rt
	}
	if rid := c.Query("resource_id"); rid != "" {
		params.ResourceID = &rid
	}
	if act := c.Query("action"); act != "" {
		params.Action = &act
	}

	if start := c.Query("start_time"); start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			badRequest(c, "Invalid start_time")
			return
		}
		params.StartTime = &t
	}
	if end := c.Query("end_time"); end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			badRequest(c, "Invalid end_time")
			return
		}
		params.EndTime = &t
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	params.Limit = limit
	params.Offset = offset

	logs, err := h.svc.QueryAuditLogs(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
