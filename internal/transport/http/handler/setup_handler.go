package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"him-backend/internal/service"
	resp "him-backend/internal/transport/http/response"
)

// SetupHandler 一次性管理员引导；secret 不配置即整体关闭
type SetupHandler struct {
	users  *service.UserService
	secret string
	log    *zap.Logger
}

func NewSetupHandler(users *service.UserService, secret string, log *zap.Logger) *SetupHandler {
	return &SetupHandler{users: users, secret: secret, log: log}
}

type createAdminIn struct {
	SetupSecret string `json:"setupSecret"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
}

// POST /api/admin-setup/create-admin
func (h *SetupHandler) CreateAdmin(c *gin.Context) {
	var in createAdminIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}

	if h.secret == "" {
		h.log.Warn("admin setup attempted but no setup secret configured")
		resp.Error(c, resp.CodeBadRequest, "Admin setup is disabled")
		return
	}
	if in.SetupSecret != h.secret {
		h.log.Warn("invalid setup secret provided for admin creation")
		resp.Error(c, resp.CodeBadRequest, "Invalid setup secret")
		return
	}

	hasAdmin, err := h.users.HasAdmin(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if hasAdmin {
		h.log.Warn("admin setup attempted but admin users already exist")
		resp.Error(c, resp.CodeBadRequest, "Admin users already exist")
		return
	}

	if strings.TrimSpace(in.Username) == "" || len(in.Password) < 8 || strings.TrimSpace(in.Email) == "" {
		resp.Error(c, resp.CodeBadRequest, "Invalid input data")
		return
	}

	admin, err := h.users.CreateAdmin(c.Request.Context(), in.Username, in.Password, in.Email, in.FullName)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	h.log.Info("admin user created", zap.String("username", admin.Username))
	resp.OK(c, gin.H{"message": "Admin user created successfully", "username": admin.Username})
}

// GET /api/admin-setup/status
func (h *SetupHandler) Status(c *gin.Context) {
	hasAdmin, err := h.users.HasAdmin(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{
		"setupAvailable": h.secret != "" && !hasAdmin,
		"hasAdminUsers":  hasAdmin,
	})
}
