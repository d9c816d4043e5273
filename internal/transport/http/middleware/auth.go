package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"him-backend/internal/core/auth"
	"him-backend/internal/core/session"
	resp "him-backend/internal/transport/http/response"
)

const (
	keySession  = "session"
	keyUserID   = "userId"
	keyUsername = "username"
	keyRole     = "role"
)

// LoadSession 只做身份解析，不拦截：cookie 会话优先，其次 Bearer JWT。
// 解析成功后在 context 里放 userId/username/role（以及会话本体）。
func LoadSession(store session.Store, cookieName string, jwter *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, err := c.Cookie(cookieName); err == nil && sid != "" {
			s, err := store.Get(c.Request.Context(), sid)
			if err == nil && s != nil {
				c.Set(keySession, s)
				if s.LoggedIn() {
					c.Set(keyUserID, s.UserID)
					c.Set(keyUsername, s.Username)
					c.Set(keyRole, s.Role)
				}
				c.Next()
				return
			}
		}
		if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") && jwter != nil {
			if claims, err := jwter.Parse(strings.TrimPrefix(ah, "Bearer ")); err == nil {
				c.Set(keyUserID, claims.UserID())
				c.Set(keyUsername, claims.Username)
				c.Set(keyRole, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireAuth 未登录 401；requireRole 非空时角色不符 403
func RequireAuth(requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := c.Get(keyUserID)
		if !ok || uid.(uint) == 0 {
			resp.Error(c, resp.CodeUnauthorized, "login required")
			return
		}
		if requireRole != "" && c.GetString(keyRole) != requireRole {
			resp.Error(c, resp.CodeForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

// CurrentSession 取 LoadSession 放进来的会话，可能为 nil
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(keySession); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

// CurrentUserID 0 表示匿名
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(keyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func CurrentUsername(c *gin.Context) string { return c.GetString(keyUsername) }
func CurrentRole(c *gin.Context) string     { return c.GetString(keyRole) }
