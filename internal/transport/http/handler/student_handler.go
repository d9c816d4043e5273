package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"him-backend/internal/domain"
	"him-backend/internal/service"
	resp "him-backend/internal/transport/http/response"
)

type StudentHandler struct {
	svc *service.StudentService
}

func NewStudentHandler(svc *service.StudentService) *StudentHandler {
	return &StudentHandler{svc: svc}
}

// GET /api/students?page=&size=&name=&email=
// name/email 任一非空时走模糊搜索
func (h *StudentHandler) List(c *gin.Context) {
	page, size := pageParams(c, defaultPageSize)
	keyword := strings.TrimSpace(c.Query("name"))
	if keyword == "" {
		keyword = strings.TrimSpace(c.Query("email"))
	}

	var (
		items []domain.Student
		total int64
		err   error
	)
	if keyword != "" {
		items, total, err = h.svc.Search(c.Request.Context(), keyword, page*size, size)
	} else {
		items, total, err = h.svc.List(c.Request.Context(), page*size, size)
	}
	if err != nil {
		resp.Fail(c, err)
		return
	}

	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	resp.OK(c, gin.H{
		"students":    items,
		"currentPage": page,
		"totalItems":  total,
		"totalPages":  pages,
	})
}

// GET /api/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	st, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if st == nil {
		resp.Error(c, resp.CodeNotFound, "student not found")
		return
	}
	resp.OK(c, st)
}

// GET /api/students/email/:email
func (h *StudentHandler) GetByEmail(c *gin.Context) {
	st, err := h.svc.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if st == nil {
		resp.Error(c, resp.CodeNotFound, "student not found")
		return
	}
	resp.OK(c, st)
}

// POST /api/students
func (h *StudentHandler) Create(c *gin.Context) {
	var in domain.Student
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}
	in.ID = 0
	st, err := h.svc.Create(c.Request.Context(), &in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, st)
}

// PUT /api/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	var in domain.Student
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}
	st, err := h.svc.Update(c.Request.Context(), id, &in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, st)
}

// DELETE /api/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Student deleted successfully"})
}
