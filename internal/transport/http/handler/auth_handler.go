package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"him-backend/internal/core/auth"
	"him-backend/internal/core/session"
	"him-backend/internal/domain"
	"him-backend/internal/service"
	mdw "him-backend/internal/transport/http/middleware"
	resp "him-backend/internal/transport/http/response"
)

type AuthHandler struct {
	users      *service.UserService
	sessions   session.Store
	jwter      *auth.JWTer
	cookieName string
	cookieTTL  time.Duration
	secure     bool
	log        *zap.Logger
}

func NewAuthHandler(
	users *service.UserService,
	sessions session.Store,
	jwter *auth.JWTer,
	cookieName string,
	cookieTTL time.Duration,
	secure bool,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		users: users, sessions: sessions, jwter: jwter,
		cookieName: cookieName, cookieTTL: cookieTTL, secure: secure, log: log,
	}
}

type loginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	FullName string `json:"fullName"`
}

// POST /api/auth/login：校验口令后建服务端会话，同时发一枚 JWT 给无 cookie 客户端
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		resp.Fail(c, err)
		return
	}

	s := session.New()
	s.UserID = u.ID
	s.Username = u.Username
	s.FullName = u.FullName
	s.Role = u.Role
	if err := h.sessions.Save(c.Request.Context(), s); err != nil {
		h.log.Error("save session", zap.Error(err))
		resp.Error(c, resp.CodeServerError, "login failed")
		return
	}
	h.setCookie(c, s.ID, int(h.cookieTTL.Seconds()))

	token, err := h.jwter.Issue(u.ID, u.Username, u.Role)
	if err != nil {
		h.log.Error("issue token", zap.Error(err))
		resp.Error(c, resp.CodeServerError, "login failed")
		return
	}

	resp.OK(c, gin.H{
		"message":  "Login successful",
		"username": u.Username,
		"fullName": u.FullName,
		"role":     u.Role,
		"isAdmin":  u.IsAdmin(),
		"token":    token,
	})
}

// POST /api/auth/logout：删服务端会话并清 cookie；未登录也返回成功
func (h *AuthHandler) Logout(c *gin.Context) {
	if s := mdw.CurrentSession(c); s != nil {
		if err := h.sessions.Delete(c.Request.Context(), s.ID); err != nil {
			h.log.Warn("delete session", zap.Error(err))
		}
	}
	h.setCookie(c, "", -1)
	resp.OK(c, gin.H{"message": "Logged out successfully"})
}

// POST /api/auth/register：普通用户注册，不自动登录
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}
	if _, err := h.users.Create(c.Request.Context(), in.Username, in.Password, in.Email, in.FullName, domain.RoleUser); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, gin.H{"message": "User registered successfully"})
}

// GET /api/auth/me：匿名也 200，字段为空
func (h *AuthHandler) Me(c *gin.Context) {
	if mdw.CurrentUserID(c) == 0 {
		resp.OK(c, gin.H{"username": "", "fullName": "", "role": "", "isAdmin": false})
		return
	}
	fullName := ""
	if s := mdw.CurrentSession(c); s != nil {
		fullName = s.FullName
	} else if u, err := h.users.FindByUsername(c.Request.Context(), mdw.CurrentUsername(c)); err == nil && u != nil {
		fullName = u.FullName
	}
	role := mdw.CurrentRole(c)
	resp.OK(c, gin.H{
		"username": mdw.CurrentUsername(c),
		"fullName": fullName,
		"role":     role,
		"isAdmin":  role == "ADMIN",
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, value, maxAge, "/", "", h.secure, true)
}
