package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"him-backend/internal/core/session"
	"him-backend/internal/domain"
	"him-backend/internal/service"
	mdw "him-backend/internal/transport/http/middleware"
)

// PageHandler 服务端渲染页面；flash 借会话往返一次
type PageHandler struct {
	articles   *service.ArticleService
	students   *service.StudentService
	users      *service.UserService
	sessions   session.Store
	cookieName string
	secure     bool
	log        *zap.Logger
}

func NewPageHandler(
	articles *service.ArticleService,
	students *service.StudentService,
	users *service.UserService,
	sessions session.Store,
	cookieName string,
	secure bool,
	log *zap.Logger,
) *PageHandler {
	return &PageHandler{
		articles: articles, students: students, users: users,
		sessions: sessions, cookieName: cookieName, secure: secure, log: log,
	}
}

const pageSize = 12

// GET /
func (h *PageHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	featured, err := h.articles.ListFeatured(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}
	categories, err := h.articles.ActiveCategories(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}
	latest, err := h.articles.ListLatest(ctx, 10)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index", gin.H{
		"featuredArticles": featured,
		"categories":       categories,
		"latestArticles":   latest,
	})
}

// GET /articles
func (h *PageHandler) Articles(c *gin.Context) {
	page, size := pageParams(c, pageSize)
	items, total, err := h.articles.ListPublished(c.Request.Context(), page*size, size)
	if err != nil {
		h.renderError(c, err)
		return
	}
	categories, err := h.articles.ActiveCategories(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "articles/list", gin.H{
		"articles":    items,
		"categories":  categories,
		"currentPage": page,
		"totalPages":  totalPages(total, size),
	})
}

// GET /articles/:id（查无此文回首页；浏览量 +1）
func (h *PageHandler) ArticleDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	ctx := c.Request.Context()
	a, err := h.articles.GetByID(ctx, id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if a == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err := h.articles.IncrementViewCount(ctx, id); err != nil {
		h.log.Warn("increment view count", zap.Uint("id", id), zap.Error(err))
	} else {
		a.ViewCount++
	}
	related, _ := h.articles.ListLatest(ctx, 5)
	categories, _ := h.articles.ActiveCategories(ctx)
	c.HTML(http.StatusOK, "articles/detail", gin.H{
		"article":         a,
		"relatedArticles": related,
		"categories":      categories,
	})
}

// GET /category/:categoryName（未知分类回首页）
func (h *PageHandler) Category(c *gin.Context) {
	name := c.Param("categoryName")
	ctx := c.Request.Context()
	cat, err := h.articles.CategoryByName(ctx, name)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if cat == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	page, size := pageParams(c, pageSize)
	items, total, err := h.articles.ListByCategory(ctx, name, page*size, size)
	if err != nil {
		h.renderError(c, err)
		return
	}
	categories, _ := h.articles.ActiveCategories(ctx)
	c.HTML(http.StatusOK, "articles/category", gin.H{
		"articles":        items,
		"categories":      categories,
		"currentCategory": cat,
		"currentPage":     page,
		"totalPages":      totalPages(total, size),
	})
}

// GET /search?q=
func (h *PageHandler) Search(c *gin.Context) {
	q := c.Query("q")
	page, size := pageParams(c, pageSize)
	items, total, err := h.articles.Search(c.Request.Context(), q, page*size, size)
	if err != nil {
		h.renderError(c, err)
		return
	}
	categories, _ := h.articles.ActiveCategories(c.Request.Context())
	c.HTML(http.StatusOK, "articles/search", gin.H{
		"articles":    items,
		"categories":  categories,
		"searchQuery": q,
		"currentPage": page,
		"totalPages":  totalPages(total, size),
	})
}

/* ---------- 学生管理页面 ---------- */

// GET /students
func (h *PageHandler) StudentList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	if page < 0 {
		page = 0
	}
	const size = 10

	keyword := c.Query("name")
	if keyword == "" {
		keyword = c.Query("email")
	}

	var (
		items []domain.Student
		total int64
		err   error
	)
	if keyword != "" {
		items, total, err = h.students.Search(c.Request.Context(), keyword, page*size, size)
	} else {
		items, total, err = h.students.List(c.Request.Context(), page*size, size)
	}
	if err != nil {
		h.renderError(c, err)
		return
	}

	success, errMsg := h.popFlash(c)
	c.HTML(http.StatusOK, "students/list", gin.H{
		"students":       items,
		"currentPage":    page,
		"totalPages":     totalPages(total, size),
		"searchName":     c.Query("name"),
		"searchEmail":    c.Query("email"),
		"successMessage": success,
		"errorMessage":   errMsg,
	})
}

// GET /students/new
func (h *PageHandler) StudentNew(c *gin.Context) {
	c.HTML(http.StatusOK, "students/form", gin.H{"student": &domain.Student{}})
}

// POST /students
func (h *PageHandler) StudentCreate(c *gin.Context) {
	st := &domain.Student{Name: c.PostForm("name"), Email: c.PostForm("email")}
	if _, err := h.students.Create(c.Request.Context(), st); err != nil {
		c.HTML(http.StatusOK, "students/form", gin.H{
			"student":      st,
			"errorMessage": "Failed to create student: " + err.Error(),
		})
		return
	}
	h.flash(c, "Student created successfully.", "")
	c.Redirect(http.StatusFound, "/students")
}

// GET /students/:id（查无此人回列表）
func (h *PageHandler) StudentDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/students")
		return
	}
	st, err := h.students.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if st == nil {
		c.Redirect(http.StatusFound, "/students")
		return
	}
	success, errMsg := h.popFlash(c)
	c.HTML(http.StatusOK, "students/detail", gin.H{
		"student":        st,
		"successMessage": success,
		"errorMessage":   errMsg,
	})
}

// GET /students/edit/:id
func (h *PageHandler) StudentEdit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/students")
		return
	}
	st, err := h.students.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if st == nil {
		c.Redirect(http.StatusFound, "/students")
		return
	}
	c.HTML(http.StatusOK, "students/form", gin.H{"student": st})
}

// POST /students/edit/:id
func (h *PageHandler) StudentUpdate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/students")
		return
	}
	in := &domain.Student{Name: c.PostForm("name"), Email: c.PostForm("email")}
	if _, err := h.students.Update(c.Request.Context(), id, in); err != nil {
		in.ID = id
		c.HTML(http.StatusOK, "students/form", gin.H{
			"student":      in,
			"errorMessage": "Failed to update student: " + err.Error(),
		})
		return
	}
	h.flash(c, "Student updated successfully.", "")
	c.Redirect(http.StatusFound, fmt.Sprintf("/students/%d", id))
}

// POST /students/delete/:id
func (h *PageHandler) StudentDelete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/students")
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		h.flash(c, "", "Failed to delete student: "+err.Error())
	} else {
		h.flash(c, "Student deleted successfully.", "")
	}
	c.Redirect(http.StatusFound, "/students")
}

/* ---------- 后台文章页面（ADMIN） ---------- */

// RequireAdminPage 页面版权限门：未登录/非 ADMIN 一律回首页
func (h *PageHandler) RequireAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if mdw.CurrentRole(c) != domain.RoleAdmin {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GET /admin/articles/new
func (h *PageHandler) AdminArticleNew(c *gin.Context) {
	categories, _ := h.articles.ActiveCategories(c.Request.Context())
	c.HTML(http.StatusOK, "admin/article-form", gin.H{
		"article":    &domain.Article{},
		"categories": categories,
	})
}

// POST /admin/articles
func (h *PageHandler) AdminArticleCreate(c *gin.Context) {
	ctx := c.Request.Context()
	author, err := h.users.FindByUsername(ctx, mdw.CurrentUsername(c))
	if err != nil || author == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	a, img, err := h.bindArticleForm(c)
	if err != nil {
		h.flash(c, "", "Failed to create article: "+err.Error())
		c.Redirect(http.StatusFound, "/admin/articles/new")
		return
	}
	created, err := h.articles.Create(ctx, a, author, img)
	if err != nil {
		h.log.Error("create article", zap.Error(err))
		h.flash(c, "", "Failed to create article: "+err.Error())
		c.Redirect(http.StatusFound, "/admin/articles/new")
		return
	}
	h.flash(c, "Article created successfully!", "")
	c.Redirect(http.StatusFound, fmt.Sprintf("/articles/%d", created.ID))
}

// GET /admin/articles/:id/edit
func (h *PageHandler) AdminArticleEdit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/articles")
		return
	}
	a, err := h.articles.GetByID(c.Request.Context(), id)
	if err != nil || a == nil {
		c.Redirect(http.StatusFound, "/articles")
		return
	}
	categories, _ := h.articles.ActiveCategories(c.Request.Context())
	c.HTML(http.StatusOK, "admin/article-form", gin.H{
		"article":    a,
		"categories": categories,
	})
}

// POST /admin/articles/:id
func (h *PageHandler) AdminArticleUpdate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/articles")
		return
	}
	a, img, err := h.bindArticleForm(c)
	if err == nil {
		_, err = h.articles.Update(c.Request.Context(), id, a, img)
	}
	if err != nil {
		h.log.Error("update article", zap.Uint("id", id), zap.Error(err))
		h.flash(c, "", "Failed to update article: "+err.Error())
		c.Redirect(http.StatusFound, fmt.Sprintf("/admin/articles/%d/edit", id))
		return
	}
	h.flash(c, "Article updated successfully!", "")
	c.Redirect(http.StatusFound, fmt.Sprintf("/articles/%d", id))
}

// POST /admin/articles/:id/delete
func (h *PageHandler) AdminArticleDelete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/articles")
		return
	}
	if err := h.articles.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("delete article", zap.Uint("id", id), zap.Error(err))
		h.flash(c, "", "Failed to delete article: "+err.Error())
		c.Redirect(http.StatusFound, fmt.Sprintf("/articles/%d", id))
		return
	}
	h.flash(c, "Article deleted successfully!", "")
	c.Redirect(http.StatusFound, "/articles")
}

/* ---------- helpers ---------- */

func (h *PageHandler) bindArticleForm(c *gin.Context) (*domain.Article, service.ImageUpload, error) {
	readTime, _ := strconv.Atoi(c.DefaultPostForm("readTime", "0"))
	a := &domain.Article{
		Title:       c.PostForm("title"),
		Content:     c.PostForm("content"),
		Summary:     c.PostForm("summary"),
		ReadTime:    readTime,
		IsFeatured:  c.PostForm("isFeatured") == "on" || c.PostForm("isFeatured") == "true",
		IsPublished: c.PostForm("isPublished") == "on" || c.PostForm("isPublished") == "true",
	}
	if name := c.PostForm("categoryName"); name != "" {
		cat, err := h.articles.CategoryByName(c.Request.Context(), name)
		if err != nil {
			return nil, service.ImageUpload{}, err
		}
		if cat != nil {
			a.CategoryID = &cat.ID
			a.Category = cat
		}
	}

	var img service.ImageUpload
	if fh, err := c.FormFile("imageFile"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return nil, img, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, img, err
		}
		img = service.ImageUpload{
			Data:        data,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		}
	}
	return a, img, nil
}

// flash 写进会话；匿名访客也给一个纯 flash 会话
func (h *PageHandler) flash(c *gin.Context, success, errMsg string) {
	s := mdw.CurrentSession(c)
	if s == nil {
		s = session.New()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookieName, s.ID, int((30 * time.Minute).Seconds()), "/", "", h.secure, true)
	}
	if success != "" {
		s.FlashSuccess = success
	}
	if errMsg != "" {
		s.FlashError = errMsg
	}
	if err := h.sessions.Save(c.Request.Context(), s); err != nil {
		h.log.Warn("save flash", zap.Error(err))
	}
}

func (h *PageHandler) popFlash(c *gin.Context) (success, errMsg string) {
	s := mdw.CurrentSession(c)
	if s == nil {
		return "", ""
	}
	success, errMsg = s.PopFlash()
	if success != "" || errMsg != "" {
		if err := h.sessions.Save(c.Request.Context(), s); err != nil {
			h.log.Warn("save session", zap.Error(err))
		}
	}
	return success, errMsg
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	h.log.Error("render page", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.HTML(http.StatusInternalServerError, "error", gin.H{"message": "Something went wrong."})
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
