package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/internal/application"
	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/pkg/response"
	"github.com/tamilsociety/tls-platform/pkg/utils"
)

type RecruitmentFormHandler struct {
	svc       *application.RecruitmentFormService
	reconcile *application.ReconcileService
}

func NewRecruitmentFormHandler(svc *application.RecruitmentFormService, reconcile *application.ReconcileService) *RecruitmentFormHandler {
	return &RecruitmentFormHandler{svc: svc, reconcile: reconcile}
}

// actorFrom builds the acting admin from the verified token.
func actorFrom(c *gin.Context) application.Actor {
	a := application.Actor{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	if id, err := utils.GetUserIDFromContext(c); err == nil {
		a.UserID = id
	}
	return a
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}

// ListForms godoc
// @Summary List recruitment forms with live response counts
// @Tags recruitment
// @Security BearerAuth
// @Produce json
// @Param search query string false "Title search"
// @Param role query string false "crew, participants or volunteer"
// @Param isActive query bool false "Active flag"
// @Param projectItemId query string false "Linked project"
// @Router /recruitment-forms [get]
func (h *RecruitmentFormHandler) ListForms(c *gin.Context) {
	q := repository.FormQuery{
		Search: c.Query("search"),
	}
	q.Page, q.Limit = pageParams(c)

	if raw := c.Query("role"); raw != "" {
		role, ok := recruitment.ParseRole(raw)
		if !ok {
			badRequest(c, "invalid role")
			return
		}
		q.Role = &role
	}
	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "invalid isActive")
			return
		}
		q.IsActive = &active
	}
	if raw := c.Query("projectItemId"); raw != "" {
		q.ProjectItemID = &raw
	}

	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecruitmentFormHandler) GetForm(c *gin.Context) {
	f, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// CreateForm godoc
// @Summary Create a recruitment form
// @Tags recruitment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} recruitment.Form
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} apierrors.DefinedError "Overlapping form window"
// @Router /recruitment-forms [post]
func (h *RecruitmentFormHandler) CreateForm(c *gin.Context) {
	var input recruitment.CreateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	f, err := h.svc.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// UpdateForm accepts the id either in the path or in the body.
func (h *RecruitmentFormHandler) UpdateForm(c *gin.Context) {
	var input recruitment.UpdateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	id := c.Param("id")
	if id == "" {
		id = input.ID
	}
	if id == "" {
		badRequest(c, "form id is required")
		return
	}

	f, err := h.svc.Update(c.Request.Context(), actorFrom(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *RecruitmentFormHandler) DeleteForm(c *gin.Context) {
	id := utils.IDFromPathOrQuery(c)
	if id == "" {
		badRequest(c, "form id is required")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKResponse{OK: true})
}

// Recount rewrites the stored counter from the live response count.
func (h *RecruitmentFormHandler) Recount(c *gin.Context) {
	id := c.Param("id")
	n, err := h.reconcile.Recount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "currentResponses": n})
}

func (h *RecruitmentFormHandler) RecountAll(c *gin.Context) {
	report, err := h.reconcile.RecountAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetProjectRecruitment is public: it tells the site whether a project is
// recruiting right now.
func (h *RecruitmentFormHandler) GetProjectRecruitment(c *gin.Context) {
	res, err := h.svc.GetActiveFormForProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *RecruitmentFormHandler) CreateProjectRecruitment(c *gin.Context) {
	var input recruitment.CreateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	f, err := h.svc.CreateForProject(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}
