package handler

import (
	"github.com/gin-gonic/gin"

	"him-backend/internal/service"
	resp "him-backend/internal/transport/http/response"
)

type CategoryHandler struct {
	svc *service.ArticleService
}

func NewCategoryHandler(svc *service.ArticleService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	items, err := h.svc.ActiveCategories(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/categories/:name
func (h *CategoryHandler) GetByName(c *gin.Context) {
	cat, err := h.svc.CategoryByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if cat == nil {
		resp.Error(c, resp.CodeNotFound, "category not found")
		return
	}
	resp.OK(c, cat)
}
