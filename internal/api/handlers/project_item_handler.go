package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/internal/application"
	"github.com/tamilsociety/tls-platform/internal/domain/project"
)

type ProjectItemHandler struct {
	svc *application.ProjectItemService
}

func NewProjectItemHandler(svc *application.ProjectItemService) *ProjectItemHandler {
	return &ProjectItemHandler{svc: svc}
}

func (h *ProjectItemHandler) CreateProjectItem(c *gin.Context) {
	var input project.CreateProjectItemDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProjectItemHandler) ListProjectItems(c *gin.Context) {
	q := project.ListQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	q.Page, q.Limit = pageParams(c)

	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProjectItemHandler) GetProjectItem(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
