package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"him-backend/internal/domain"
)

type ProjectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) *ProjectRepo { return &ProjectRepo{db: db} }

func (r *ProjectRepo) loaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Members")
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepo) FindByID(ctx context.Context, id uint) (*domain.Project, error) {
	var p domain.Project
	err := r.loaded(ctx).First(&p, "projects.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *ProjectRepo) ListAll(ctx context.Context) ([]domain.Project, error) {
	var ps []domain.Project
	err := r.loaded(ctx).Order("id ASC").Find(&ps).Error
	return ps, err
}

func (r *ProjectRepo) ListByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	var ps []domain.Project
	err := r.loaded(ctx).Where("status = ?", status).Order("id ASC").Find(&ps).Error
	return ps, err
}

func (r *ProjectRepo) ListByStartDateRange(ctx context.Context, start, end time.Time) ([]domain.Project, error) {
	var ps []domain.Project
	err := r.loaded(ctx).Where("start_date BETWEEN ? AND ?", start, end).
		Order("start_date ASC").Find(&ps).Error
	return ps, err
}

func (r *ProjectRepo) ListByMember(ctx context.Context, memberID uint) ([]domain.Project, error) {
	var ps []domain.Project
	err := r.loaded(ctx).
		Joins("JOIN project_members pm ON pm.project_id = projects.id").
		Where("pm.member_id = ?", memberID).
		Order("projects.id ASC").Find(&ps).Error
	return ps, err
}

func (r *ProjectRepo) SearchByTitle(ctx context.Context, keyword string) ([]domain.Project, error) {
	var ps []domain.Project
	err := r.loaded(ctx).Where("LOWER(title) LIKE ?", "%"+strings.ToLower(keyword)+"%").
		Order("id ASC").Find(&ps).Error
	return ps, err
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Omit("Members").Save(p).Error
}

func (r *ProjectRepo) AddMember(ctx context.Context, p *domain.Project, m *domain.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(p).Association("Members").Append(m)
	})
}

func (r *ProjectRepo) RemoveMember(ctx context.Context, p *domain.Project, m *domain.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(p).Association("Members").Delete(m)
	})
}

func (r *ProjectRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Project{ID: id}).Association("Members").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&domain.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
