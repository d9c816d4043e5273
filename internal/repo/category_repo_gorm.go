package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"him-backend/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).First(&c, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CategoryRepo) ListActive(ctx context.Context) ([]domain.Category, error) {
	var cs []domain.Category
	err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("display_order ASC").Find(&cs).Error
	return cs, err
}

func (r *CategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Category{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}
