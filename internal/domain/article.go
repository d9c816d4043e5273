package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Article struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Content       string     `gorm:"type:text" json:"content"`
	Summary       string     `gorm:"size:300" json:"summary"`
	AuthorID      *uint      `json:"-"`
	Author        *User      `json:"author,omitempty"`
	FeaturedImage string     `gorm:"size:500" json:"featuredImage"`
	ReadTime      int        `json:"readTime"` // 分钟
	ViewCount     int64      `gorm:"not null;default:0" json:"viewCount"`
	IsFeatured    bool       `gorm:"not null;default:false" json:"isFeatured"`
	IsPublished   bool       `gorm:"not null;default:true" json:"isPublished"`
	CategoryID    *uint      `json:"-"`
	Category      *Category  `json:"category,omitempty"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (Article) TableName() string { return "articles" }

// 创建即发布时补 publishedAt
func (a *Article) BeforeCreate(*gorm.DB) error {
	if a.PublishedAt == nil && a.IsPublished {
		now := time.Now()
		a.PublishedAt = &now
	}
	return nil
}

type ArticleRepository interface {
	Create(ctx context.Context, a *Article) error
	FindByID(ctx context.Context, id uint) (*Article, error)
	ListPublished(ctx context.Context, offset, limit int) ([]Article, int64, error)
	ListByCategoryName(ctx context.Context, name string, offset, limit int) ([]Article, int64, error)
	ListFeatured(ctx context.Context) ([]Article, error)
	Search(ctx context.Context, keyword string, offset, limit int) ([]Article, int64, error)
	ListLatest(ctx context.Context, limit int) ([]Article, error)
	ListTopViewed(ctx context.Context, limit int) ([]Article, error)
	Update(ctx context.Context, a *Article) error
	Delete(ctx context.Context, id uint) error
}
