package router

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"him-backend/internal/core/auth"
	"him-backend/internal/core/config"
	"him-backend/internal/core/session"
	"him-backend/internal/domain"
	"him-backend/internal/transport/http/handler"
	mdw "him-backend/internal/transport/http/middleware"
	"him-backend/web"
)

type Handlers struct {
	Articles   *handler.ArticleHandler
	Categories *handler.CategoryHandler
	Events     *handler.EventHandler
	Members    *handler.MemberHandler
	Projects   *handler.ProjectHandler
	Students   *handler.StudentHandler
	Auth       *handler.AuthHandler
	Setup      *handler.SetupHandler
	Pages      *handler.PageHandler
}

func New(l *zap.Logger, cfg *config.Config, sessions session.Store, jwter *auth.JWTer, h Handlers) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		corsFromConfig(cfg.CORS),
		mdw.LoadSession(sessions, cfg.Session.CookieName, jwter),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.StaticFS("/static", http.FS(mustSub(web.StaticFS, "static")))

	mountPages(r, h.Pages)
	mountAPI(r.Group("/api"), h)

	return r
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

func corsFromConfig(c config.CORS) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     splitCSV(c.AllowedMethods),
		AllowCredentials: c.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if c.AllowedOrigins == "*" {
		// 带凭证时不能回 "*"，按请求来源镜像
		cc.AllowOriginFunc = func(string) bool { return true }
	} else {
		cc.AllowOrigins = splitCSV(c.AllowedOrigins)
	}
	if c.AllowedHeaders == "*" {
		cc.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	} else {
		cc.AllowHeaders = splitCSV(c.AllowedHeaders)
	}
	return cors.New(cc)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mountPages(r *gin.Engine, p *handler.PageHandler) {
	r.GET("/", p.Home)
	r.GET("/articles", p.Articles)
	r.GET("/articles/:id", p.ArticleDetail)
	r.GET("/category/:categoryName", p.Category)
	r.GET("/search", p.Search)

	st := r.Group("/students")
	{
		st.GET("", p.StudentList)
		st.GET("/new", p.StudentNew)
		st.POST("", p.StudentCreate)
		st.GET("/:id", p.StudentDetail)
		st.GET("/edit/:id", p.StudentEdit)
		st.POST("/edit/:id", p.StudentUpdate)
		st.POST("/delete/:id", p.StudentDelete)
	}

	admin := r.Group("/admin", p.RequireAdminPage())
	{
		admin.GET("/articles/new", p.AdminArticleNew)
		admin.POST("/articles", p.AdminArticleCreate)
		admin.GET("/articles/:id/edit", p.AdminArticleEdit)
		admin.POST("/articles/:id", p.AdminArticleUpdate)
		admin.POST("/articles/:id/delete", p.AdminArticleDelete)
	}
}

func mountAPI(api *gin.RouterGroup, h Handlers) {
	adminOnly := mdw.RequireAuth(domain.RoleAdmin)

	articles := api.Group("/articles")
	{
		articles.GET("", h.Articles.List)
		articles.GET("/featured", h.Articles.Featured)
		articles.GET("/search", h.Articles.Search)
		articles.GET("/latest", h.Articles.Latest)
		articles.GET("/popular", h.Articles.Popular)
		articles.GET("/category/:categoryName", h.Articles.ListByCategory)
		articles.GET("/:id", h.Articles.Get)
		articles.POST("", adminOnly, h.Articles.Create)
		articles.PUT("/:id", adminOnly, h.Articles.Update)
		articles.DELETE("/:id", adminOnly, h.Articles.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", h.Categories.List)
		categories.GET("/:name", h.Categories.GetByName)
	}

	events := api.Group("/events")
	{
		events.POST("", h.Events.Create)
		events.GET("", h.Events.List)
		events.GET("/upcoming", h.Events.ListUpcoming)
		events.GET("/date-range", h.Events.ListByDateRange)
		events.GET("/status/:status", h.Events.ListByStatus)
		events.GET("/type/:type", h.Events.ListByType)
		events.GET("/organizer/:organizerId", h.Events.ListByOrganizer)
		events.GET("/participant/:memberId", h.Events.ListByParticipant)
		events.GET("/:id", h.Events.Get)
		events.PUT("/:id", h.Events.Update)
		events.PUT("/:id/organizer/:organizerId", h.Events.SetOrganizer)
		events.POST("/:id/participants/:memberId", h.Events.AddParticipant)
		events.DELETE("/:id/participants/:memberId", h.Events.RemoveParticipant)
		events.DELETE("/:id", h.Events.Delete)
	}

	members := api.Group("/members")
	{
		members.POST("", h.Members.Create)
		members.GET("", h.Members.List)
		members.GET("/active", h.Members.ListActive)
		members.GET("/role/:role", h.Members.ListByRole)
		members.GET("/department/:department", h.Members.ListByDepartment)
		members.GET("/email/:email", h.Members.GetByEmail)
		members.GET("/:id", h.Members.Get)
		members.PUT("/:id", h.Members.Update)
		members.DELETE("/:id", h.Members.Delete)
	}

	projects := api.Group("/projects")
	{
		projects.POST("", h.Projects.Create)
		projects.GET("", h.Projects.List)
		projects.GET("/search", h.Projects.Search)
		projects.GET("/date-range", h.Projects.ListByDateRange)
		projects.GET("/status/:status", h.Projects.ListByStatus)
		projects.GET("/member/:memberId", h.Projects.ListByMember)
		projects.GET("/:id", h.Projects.Get)
		projects.PUT("/:id", h.Projects.Update)
		projects.POST("/:id/members/:memberId", h.Projects.AddMember)
		projects.DELETE("/:id/members/:memberId", h.Projects.RemoveMember)
		projects.DELETE("/:id", h.Projects.Delete)
	}

	students := api.Group("/students")
	{
		students.GET("", h.Students.List)
		students.GET("/email/:email", h.Students.GetByEmail)
		students.GET("/:id", h.Students.Get)
		students.POST("", h.Students.Create)
		students.PUT("/:id", h.Students.Update)
		students.DELETE("/:id", h.Students.Delete)
	}

	authG := api.Group("/auth")
	{
		authG.POST("/login", h.Auth.Login)
		authG.POST("/logout", h.Auth.Logout)
		authG.POST("/register", h.Auth.Register)
		authG.GET("/me", h.Auth.Me)
	}

	setup := api.Group("/admin-setup")
	{
		setup.POST("/create-admin", h.Setup.CreateAdmin)
		setup.GET("/status", h.Setup.Status)
	}
}
