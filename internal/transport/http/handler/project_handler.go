package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"him-backend/internal/domain"
	"him-backend/internal/service"
	resp "him-backend/internal/transport/http/response"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

type projectIn struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	ProjectURL  string     `json:"projectUrl"`
	GithubURL   string     `json:"githubUrl"`
}

func (in projectIn) entity() *domain.Project {
	return &domain.Project{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		ProjectURL:  in.ProjectURL,
		GithubURL:   in.GithubURL,
	}
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var in projectIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}
	p, err := h.svc.Create(c.Request.Context(), in.entity())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, p)
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if p == nil {
		resp.Error(c, resp.CodeNotFound, "project not found")
		return
	}
	resp.OK(c, p)
}

// GET /api/projects/status/:status
func (h *ProjectHandler) ListByStatus(c *gin.Context) {
	items, err := h.svc.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/projects/date-range?start=&end=
func (h *ProjectHandler) ListByDateRange(c *gin.Context) {
	start, err1 := time.Parse(time.RFC3339, c.Query("start"))
	end, err2 := time.Parse(time.RFC3339, c.Query("end"))
	if err1 != nil || err2 != nil {
		resp.Error(c, resp.CodeBadRequest, "start/end must be RFC3339 timestamps")
		return
	}
	items, err := h.svc.ListByStartDateRange(c.Request.Context(), start, end)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/projects/member/:memberId
func (h *ProjectHandler) ListByMember(c *gin.Context) {
	id, ok := idParam(c, "memberId")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	items, err := h.svc.ListByMember(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/projects/search?keyword=
func (h *ProjectHandler) Search(c *gin.Context) {
	items, err := h.svc.SearchByTitle(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	var in projectIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, in.entity())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, p)
}

// POST /api/projects/:id/members/:memberId
func (h *ProjectHandler) AddMember(c *gin.Context) {
	id, ok1 := idParam(c, "id")
	memberID, ok2 := idParam(c, "memberId")
	if !ok1 || !ok2 {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	p, err := h.svc.AddMember(c.Request.Context(), id, memberID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, p)
}

// DELETE /api/projects/:id/members/:memberId
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	id, ok1 := idParam(c, "id")
	memberID, ok2 := idParam(c, "memberId")
	if !ok1 || !ok2 {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	p, err := h.svc.RemoveMember(c.Request.Context(), id, memberID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, p)
}

// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Project deleted successfully"})
}
