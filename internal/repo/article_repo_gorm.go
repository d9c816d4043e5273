package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"him-backend/internal/domain"
)

type ArticleRepo struct{ db *gorm.DB }

func NewArticleRepo(db *gorm.DB) *ArticleRepo { return &ArticleRepo{db: db} }

// 读路径统一预载 Author/Category，边界一次取全
func (r *ArticleRepo) loaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Author").Preload("Category")
}

func (r *ArticleRepo) Create(ctx context.Context, a *domain.Article) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ArticleRepo) FindByID(ctx context.Context, id uint) (*domain.Article, error) {
	var a domain.Article
	err := r.loaded(ctx).First(&a, "articles.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

func (r *ArticleRepo) ListPublished(ctx context.Context, offset, limit int) ([]domain.Article, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Article{}).Where("is_published = ?", true)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var as []domain.Article
	err := r.loaded(ctx).Where("is_published = ?", true).
		Order("published_at DESC").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

func (r *ArticleRepo) ListByCategoryName(ctx context.Context, name string, offset, limit int) ([]domain.Article, int64, error) {
	base := func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN categories ON categories.id = articles.category_id").
			Where("LOWER(categories.name) = ? AND articles.is_published = ?", strings.ToLower(name), true)
	}
	var total int64
	if err := base(r.db.WithContext(ctx).Model(&domain.Article{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var as []domain.Article
	err := base(r.loaded(ctx)).Order("articles.published_at DESC").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

func (r *ArticleRepo) ListFeatured(ctx context.Context) ([]domain.Article, error) {
	var as []domain.Article
	err := r.loaded(ctx).Where("is_featured = ? AND is_published = ?", true, true).
		Order("published_at DESC").Find(&as).Error
	return as, err
}

// 大小写不敏感的子串匹配：title/content/summary
func (r *ArticleRepo) Search(ctx context.Context, keyword string, offset, limit int) ([]domain.Article, int64, error) {
	like := "%" + strings.ToLower(keyword) + "%"
	cond := "is_published = ? AND (LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(summary) LIKE ?)"
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Article{}).
		Where(cond, true, like, like, like).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var as []domain.Article
	err := r.loaded(ctx).Where(cond, true, like, like, like).
		Order("published_at DESC").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

func (r *ArticleRepo) ListLatest(ctx context.Context, limit int) ([]domain.Article, error) {
	var as []domain.Article
	err := r.loaded(ctx).Where("is_published = ?", true).
		Order("published_at DESC").Limit(limit).Find(&as).Error
	return as, err
}

func (r *ArticleRepo) ListTopViewed(ctx context.Context, limit int) ([]domain.Article, error) {
	var as []domain.Article
	err := r.loaded(ctx).Where("is_published = ?", true).
		Order("view_count DESC").Limit(limit).Find(&as).Error
	return as, err
}

func (r *ArticleRepo) Update(ctx context.Context, a *domain.Article) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ArticleRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Article{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
