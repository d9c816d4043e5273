package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"him-backend/internal/core/cache"
	"him-backend/internal/domain"
)

// ImageStore 资产托管抽象；见 internal/storage
type ImageStore interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// ImageUpload 为空（Data 零长）表示本次请求不带图
type ImageUpload struct {
	Data        []byte
	Filename    string
	ContentType string
}

func (u ImageUpload) empty() bool { return len(u.Data) == 0 }

const (
	cacheKeyFeatured   = "articles:featured"
	cacheKeyCategories = "categories:active"
	cacheTTL           = 5 * time.Minute
)

type ArticleService struct {
	articles   domain.ArticleRepository
	categories domain.CategoryRepository
	images     ImageStore
	cache      *cache.Cache // 可为 nil（直连 DB）
	log        *zap.Logger
}

func NewArticleService(
	articles domain.ArticleRepository,
	categories domain.CategoryRepository,
	images ImageStore,
	c *cache.Cache,
	log *zap.Logger,
) *ArticleService {
	return &ArticleService{articles: articles, categories: categories, images: images, cache: c, log: log}
}

func (s *ArticleService) ListPublished(ctx context.Context, offset, limit int) ([]domain.Article, int64, error) {
	return s.articles.ListPublished(ctx, offset, limit)
}

func (s *ArticleService) ListByCategory(ctx context.Context, categoryName string, offset, limit int) ([]domain.Article, int64, error) {
	return s.articles.ListByCategoryName(ctx, categoryName, offset, limit)
}

func (s *ArticleService) GetByID(ctx context.Context, id uint) (*domain.Article, error) {
	return s.articles.FindByID(ctx, id)
}

// ListFeatured 读多写少，过 redis + singleflight
func (s *ArticleService) ListFeatured(ctx context.Context) ([]domain.Article, error) {
	if s.cache == nil {
		return s.articles.ListFeatured(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, cacheKeyFeatured, cacheTTL,
		func(ctx context.Context) ([]domain.Article, error) {
			return s.articles.ListFeatured(ctx)
		})
}

func (s *ArticleService) Search(ctx context.Context, keyword string, offset, limit int) ([]domain.Article, int64, error) {
	return s.articles.Search(ctx, keyword, offset, limit)
}

func (s *ArticleService) ListLatest(ctx context.Context, limit int) ([]domain.Article, error) {
	return s.articles.ListLatest(ctx, limit)
}

// ListPopular 浏览量 Top 10
func (s *ArticleService) ListPopular(ctx context.Context) ([]domain.Article, error) {
	return s.articles.ListTopViewed(ctx, 10)
}

// Create 作者来自请求方身份，由调用侧显式传入；带图则先传图再落库，传图失败即失败
func (s *ArticleService) Create(ctx context.Context, a *domain.Article, author *domain.User, img ImageUpload) (*domain.Article, error) {
	if strings.TrimSpace(a.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(a.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if author != nil {
		a.AuthorID = &author.ID
		a.Author = author
	}
	if !img.empty() {
		url, err := s.images.Upload(ctx, img.Data, img.Filename, img.ContentType)
		if err != nil {
			return nil, err
		}
		a.FeaturedImage = url
	}
	if err := s.articles.Create(ctx, a); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return a, nil
}

// Update 只在带了新图时替换旧资产；旧图删除失败不阻塞更新
func (s *ArticleService) Update(ctx context.Context, id uint, in *domain.Article, img ImageUpload) (*domain.Article, error) {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}

	a.Title = in.Title
	a.Content = in.Content
	a.Summary = in.Summary
	a.ReadTime = in.ReadTime
	a.CategoryID = in.CategoryID
	a.Category = in.Category
	a.IsPublished = in.IsPublished
	a.IsFeatured = in.IsFeatured

	if !img.empty() {
		if a.FeaturedImage != "" {
			if err := s.images.Delete(ctx, a.FeaturedImage); err != nil {
				s.log.Warn("delete old article image", zap.Uint("article", id), zap.Error(err))
			}
		}
		url, err := s.images.Upload(ctx, img.Data, img.Filename, img.ContentType)
		if err != nil {
			return nil, err
		}
		a.FeaturedImage = url
	}

	if err := s.articles.Update(ctx, a); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return a, nil
}

// IncrementViewCount 读-改-写，无锁；并发丢失计数是已接受的取舍
func (s *ArticleService) IncrementViewCount(ctx context.Context, id uint) error {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil || a == nil {
		return err
	}
	a.ViewCount++
	return s.articles.Update(ctx, a)
}

// Delete 先清资产再删记录；资产清理失败只记日志，不阻塞删除
func (s *ArticleService) Delete(ctx context.Context, id uint) error {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	if a.FeaturedImage != "" {
		if err := s.images.Delete(ctx, a.FeaturedImage); err != nil {
			s.log.Warn("delete article image", zap.Uint("article", id), zap.Error(err))
		}
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ArticleService) ActiveCategories(ctx context.Context) ([]domain.Category, error) {
	if s.cache == nil {
		return s.categories.ListActive(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, cacheKeyCategories, cacheTTL,
		func(ctx context.Context) ([]domain.Category, error) {
			return s.categories.ListActive(ctx)
		})
}

func (s *ArticleService) CategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	return s.categories.FindByName(ctx, name)
}

func (s *ArticleService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cacheKeyFeatured, cacheKeyCategories)
	}
}
