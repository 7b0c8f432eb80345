package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/internal/application"
	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/pkg/response"
	"github.com/tamilsociety/tls-platform/pkg/utils"
)

type RecruitmentResponseHandler struct {
	svc       *application.RecruitmentResponseService
	reconcile *application.ReconcileService
}

func NewRecruitmentResponseHandler(svc *application.RecruitmentResponseService, reconcile *application.ReconcileService) *RecruitmentResponseHandler {
	return &RecruitmentResponseHandler{svc: svc, reconcile: reconcile}
}

// ListResponses godoc
// @Summary List applications; stats cover every response
// @Tags recruitment
// @Security BearerAuth
// @Produce json
// @Param formId query string false "Form"
// @Param status query string false "pending, reviewed, approved, rejected or shortlisted"
// @Param priority query string false "low, medium, high or urgent"
// @Param search query string false "Applicant name or email"
// @Router /recruitment-responses [get]
func (h *RecruitmentResponseHandler) ListResponses(c *gin.Context) {
	q := repository.ResponseQuery{
		FormID: c.Query("formId"),
		Search: c.Query("search"),
	}
	q.Page, q.Limit = pageParams(c)

	if raw := c.Query("status"); raw != "" {
		status, ok := recruitment.ParseStatus(raw)
		if !ok {
			badRequest(c, "invalid status")
			return
		}
		q.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority, ok := recruitment.ParsePriority(raw)
		if !ok {
			badRequest(c, "invalid priority")
			return
		}
		q.Priority = &priority
	}

	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponsePage(page))
}

func (h *RecruitmentResponseHandler) GetResponse(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponseView(*resp))
}

// ListOrphans reports responses whose form no longer exists.
func (h *RecruitmentResponseHandler) ListOrphans(c *gin.Context) {
	orphans, err := h.reconcile.FindOrphans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponseViews(orphans))
}

// SubmitResponse is the admin-side entry: the form id comes in the body.
func (h *RecruitmentResponseHandler) SubmitResponse(c *gin.Context) {
	var input recruitment.SubmitResponseDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if input.FormID == "" {
		badRequest(c, "formId is required")
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponseView(*resp))
}

// SubmitProjectApplication godoc
// @Summary Apply through a project's current recruitment form
// @Tags recruitment
// @Accept json
// @Produce json
// @Param id path string true "Project item ID"
// @Success 200 {object} response.OKResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /project-items/{id}/recruitment/submit [post]
func (h *RecruitmentResponseHandler) SubmitProjectApplication(c *gin.Context) {
	var input recruitment.SubmitResponseDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	// Only a verified token may attach an account to the application.
	input.UserRef = utils.OptionalUserID(c)

	if _, err := h.svc.SubmitForProject(c.Request.Context(), c.Param("id"), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKResponse{OK: true})
}

// ReviewResponse takes {id, status?, rating?, reviewNotes?, priority?}.
func (h *RecruitmentResponseHandler) ReviewResponse(c *gin.Context) {
	var input recruitment.ReviewResponseDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if id := c.Param("id"); id != "" {
		input.ID = id
	}
	if input.ID == "" {
		badRequest(c, "response id is required")
		return
	}

	resp, err := h.svc.Review(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponseView(*resp))
}

func (h *RecruitmentResponseHandler) DeleteResponse(c *gin.Context) {
	id := utils.IDFromPathOrQuery(c)
	if id == "" {
		badRequest(c, "response id is required")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OKResponse{OK: true})
}
