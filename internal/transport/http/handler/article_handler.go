package handler

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"him-backend/internal/domain"
	"him-backend/internal/service"
	mdw "him-backend/internal/transport/http/middleware"
	resp "him-backend/internal/transport/http/response"
)

type ArticleHandler struct {
	svc   *service.ArticleService
	users *service.UserService
	log   *zap.Logger
}

func NewArticleHandler(svc *service.ArticleService, users *service.UserService, log *zap.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, users: users, log: log}
}

// articleDTO 作者/分类拍平成名字，与前端约定一致
type articleDTO struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Summary       string     `json:"summary"`
	AuthorName    string     `json:"authorName"`
	CategoryName  string     `json:"categoryName,omitempty"`
	FeaturedImage string     `json:"featuredImage,omitempty"`
	ReadTime      int        `json:"readTime"`
	ViewCount     int64      `json:"viewCount"`
	IsFeatured    bool       `json:"isFeatured"`
	IsPublished   bool       `json:"isPublished"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toArticleDTO(a *domain.Article) articleDTO {
	d := articleDTO{
		ID: a.ID, Title: a.Title, Content: a.Content, Summary: a.Summary,
		FeaturedImage: a.FeaturedImage, ReadTime: a.ReadTime, ViewCount: a.ViewCount,
		IsFeatured: a.IsFeatured, IsPublished: a.IsPublished,
		PublishedAt: a.PublishedAt, CreatedAt: a.CreatedAt,
	}
	d.AuthorName = "Unknown"
	if a.Author != nil {
		d.AuthorName = a.Author.FullName
	}
	if a.Category != nil {
		d.CategoryName = a.Category.Name
	}
	return d
}

func toArticleDTOs(as []domain.Article) []articleDTO {
	out := make([]articleDTO, 0, len(as))
	for i := range as {
		out = append(out, toArticleDTO(&as[i]))
	}
	return out
}

// articleIn 来自 multipart "article" 部分的 JSON
type articleIn struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Summary      string `json:"summary"`
	CategoryName string `json:"categoryName"`
	ReadTime     int    `json:"readTime"`
	IsFeatured   bool   `json:"isFeatured"`
	IsPublished  bool   `json:"isPublished"`
}

// GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) {
	page, size := pageParams(c, defaultPageSize)
	items, total, err := h.svc.ListPublished(c.Request.Context(), page*size, size)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, paged(toArticleDTOs(items), page, size, total))
}

// GET /api/articles/:id（读路径副作用：浏览量 +1）
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	a, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if a == nil {
		resp.Error(c, resp.CodeNotFound, "article not found")
		return
	}
	// 计数失败不影响读路径
	if err := h.svc.IncrementViewCount(c.Request.Context(), id); err != nil {
		h.log.Warn("increment view count", zap.Uint("id", id), zap.Error(err))
	} else {
		a.ViewCount++
	}
	resp.OK(c, toArticleDTO(a))
}

// GET /api/articles/category/:categoryName
func (h *ArticleHandler) ListByCategory(c *gin.Context) {
	page, size := pageParams(c, defaultPageSize)
	items, total, err := h.svc.ListByCategory(c.Request.Context(), c.Param("categoryName"), page*size, size)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, paged(toArticleDTOs(items), page, size, total))
}

// GET /api/articles/featured
func (h *ArticleHandler) Featured(c *gin.Context) {
	items, err := h.svc.ListFeatured(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, toArticleDTOs(items))
}

// GET /api/articles/search?keyword=
func (h *ArticleHandler) Search(c *gin.Context) {
	page, size := pageParams(c, defaultPageSize)
	items, total, err := h.svc.Search(c.Request.Context(), c.Query("keyword"), page*size, size)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, paged(toArticleDTOs(items), page, size, total))
}

// GET /api/articles/latest?limit=
func (h *ArticleHandler) Latest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > maxPageSize {
		limit = 10
	}
	items, err := h.svc.ListLatest(c.Request.Context(), limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, toArticleDTOs(items))
}

// GET /api/articles/popular
func (h *ArticleHandler) Popular(c *gin.Context) {
	items, err := h.svc.ListPopular(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, toArticleDTOs(items))
}

// POST /api/articles（ADMIN；multipart：article JSON + 可选 image 文件）
func (h *ArticleHandler) Create(c *gin.Context) {
	in, img, ok := h.bindMultipart(c)
	if !ok {
		return
	}
	author, err := h.users.FindByUsername(c.Request.Context(), mdw.CurrentUsername(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if author == nil {
		resp.Error(c, resp.CodeUnauthorized, "author not found")
		return
	}
	a, err := h.toEntity(c, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), a, author, img)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, toArticleDTO(created))
}

// PUT /api/articles/:id（ADMIN）
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	in, img, ok := h.bindMultipart(c)
	if !ok {
		return
	}
	a, err := h.toEntity(c, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), id, a, img)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, toArticleDTO(updated))
}

// DELETE /api/articles/:id（ADMIN）
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Article deleted successfully"})
}

func (h *ArticleHandler) bindMultipart(c *gin.Context) (articleIn, service.ImageUpload, bool) {
	var in articleIn
	raw := c.PostForm("article")
	if raw == "" {
		resp.Error(c, resp.CodeBadRequest, "missing article part")
		return in, service.ImageUpload{}, false
	}
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		resp.Error(c, resp.CodeBadRequest, "invalid article payload: "+err.Error())
		return in, service.ImageUpload{}, false
	}

	var img service.ImageUpload
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			resp.Error(c, resp.CodeBadRequest, "cannot read image: "+err.Error())
			return in, img, false
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			resp.Error(c, resp.CodeBadRequest, "cannot read image: "+err.Error())
			return in, img, false
		}
		img = service.ImageUpload{
			Data:        data,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		}
	}
	return in, img, true
}

func (h *ArticleHandler) toEntity(c *gin.Context, in articleIn) (*domain.Article, error) {
	a := &domain.Article{
		Title:       in.Title,
		Content:     in.Content,
		Summary:     in.Summary,
		ReadTime:    in.ReadTime,
		IsFeatured:  in.IsFeatured,
		IsPublished: in.IsPublished,
	}
	if in.CategoryName != "" {
		cat, err := h.svc.CategoryByName(c.Request.Context(), in.CategoryName)
		if err != nil {
			return nil, err
		}
		if cat != nil {
			a.CategoryID = &cat.ID
			a.Category = cat
		}
	}
	return a, nil
}
