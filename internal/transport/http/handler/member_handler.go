package handler

import (
	"github.com/gin-gonic/gin"

	"him-backend/internal/domain"
	"him-backend/internal/service"
	resp "him-backend/internal/transport/http/response"
)

type MemberHandler struct {
	svc *service.MemberService
}

func NewMemberHandler(svc *service.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

// POST /api/members
func (h *MemberHandler) Create(c *gin.Context) {
	var in domain.Member
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}
	in.ID = 0
	m, err := h.svc.Create(c.Request.Context(), &in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, m)
}

// GET /api/members
func (h *MemberHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	m, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if m == nil {
		resp.Error(c, resp.CodeNotFound, "member not found")
		return
	}
	resp.OK(c, m)
}

// GET /api/members/email/:email
func (h *MemberHandler) GetByEmail(c *gin.Context) {
	m, err := h.svc.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if m == nil {
		resp.Error(c, resp.CodeNotFound, "member not found")
		return
	}
	resp.OK(c, m)
}

// GET /api/members/active
func (h *MemberHandler) ListActive(c *gin.Context) {
	items, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/members/role/:role
func (h *MemberHandler) ListByRole(c *gin.Context) {
	items, err := h.svc.ListByRole(c.Request.Context(), c.Param("role"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/members/department/:department
func (h *MemberHandler) ListByDepartment(c *gin.Context) {
	items, err := h.svc.ListByDepartment(c.Request.Context(), c.Param("department"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// PUT /api/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	var in domain.Member
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}
	m, err := h.svc.Update(c.Request.Context(), id, &in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, m)
}

// DELETE /api/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Member deleted successfully"})
}
