package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"him-backend/internal/domain"
	"him-backend/internal/service"
	"him-backend/internal/transport/http/handler"
)

// 只覆盖读路径需要的行为；Update 可按需注入失败
type stubArticleRepo struct {
	article   *domain.Article
	updateErr error
	updates   int
}

func (r *stubArticleRepo) Create(context.Context, *domain.Article) error { return nil }

func (r *stubArticleRepo) FindByID(_ context.Context, id uint) (*domain.Article, error) {
	if r.article == nil || r.article.ID != id {
		return nil, nil
	}
	cp := *r.article
	return &cp, nil
}

func (r *stubArticleRepo) ListPublished(context.Context, int, int) ([]domain.Article, int64, error) {
	return nil, 0, nil
}

func (r *stubArticleRepo) ListByCategoryName(context.Context, string, int, int) ([]domain.Article, int64, error) {
	return nil, 0, nil
}

func (r *stubArticleRepo) ListFeatured(context.Context) ([]domain.Article, error) {
	return nil, nil
}

func (r *stubArticleRepo) Search(context.Context, string, int, int) ([]domain.Article, int64, error) {
	return nil, 0, nil
}

func (r *stubArticleRepo) ListLatest(context.Context, int) ([]domain.Article, error) {
	return nil, nil
}

func (r *stubArticleRepo) ListTopViewed(context.Context, int) ([]domain.Article, error) {
	return nil, nil
}

func (r *stubArticleRepo) Update(_ context.Context, a *domain.Article) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates++
	cp := *a
	r.article = &cp
	return nil
}

func (r *stubArticleRepo) Delete(context.Context, uint) error { return nil }

type stubCategoryRepo struct{}

func (stubCategoryRepo) Create(context.Context, *domain.Category) error { return nil }
func (stubCategoryRepo) FindByName(context.Context, string) (*domain.Category, error) {
	return nil, nil
}
func (stubCategoryRepo) ListActive(context.Context) ([]domain.Category, error) { return nil, nil }
func (stubCategoryRepo) ExistsByName(context.Context, string) (bool, error)    { return false, nil }

func newArticleGetRouter(repo *stubArticleRepo, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewArticleService(repo, stubCategoryRepo{}, nil, nil, log)
	h := handler.NewArticleHandler(svc, service.NewUserService(newMemUserRepo()), log)
	r := gin.New()
	r.GET("/api/articles/:id", h.Get)
	return r
}

func TestArticleGetIncrementsViewCount(t *testing.T) {
	now := time.Now()
	repo := &stubArticleRepo{article: &domain.Article{
		ID: 5, Title: "t", IsPublished: true, ViewCount: 3, PublishedAt: &now,
	}}
	r := newArticleGetRouter(repo, zap.NewNop())

	w := getJSON(t, r, "/api/articles/5")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		ViewCount int64 `json:"viewCount"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
	assert.Equal(t, int64(4), got.ViewCount)
	assert.Equal(t, 1, repo.updates)
}

// 计数写失败：响应照常 200、计数不虚增，失败要落 Warn 日志
func TestArticleGetViewCountFailureLoggedNotFatal(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	now := time.Now()
	repo := &stubArticleRepo{
		article:   &domain.Article{ID: 5, Title: "t", IsPublished: true, ViewCount: 3, PublishedAt: &now},
		updateErr: errors.New("db down"),
	}
	r := newArticleGetRouter(repo, zap.New(core))

	w := getJSON(t, r, "/api/articles/5")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		ViewCount int64 `json:"viewCount"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
	assert.Equal(t, int64(3), got.ViewCount)
	assert.Equal(t, 1, logs.FilterMessage("increment view count").Len())
}
