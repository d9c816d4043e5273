package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"him-backend/internal/domain"
)

type StudentRepo struct{ db *gorm.DB }

func NewStudentRepo(db *gorm.DB) *StudentRepo { return &StudentRepo{db: db} }

func (r *StudentRepo) Create(ctx context.Context, s *domain.Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StudentRepo) FindByID(ctx context.Context, id uint) (*domain.Student, error) {
	var s domain.Student
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *StudentRepo) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	var s domain.Student
	err := r.db.WithContext(ctx).First(&s, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *StudentRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Student{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *StudentRepo) List(ctx context.Context, offset, limit int) ([]domain.Student, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ss []domain.Student
	err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&ss).Error
	return ss, total, err
}

func (r *StudentRepo) SearchByNameOrEmail(ctx context.Context, keyword string, offset, limit int) ([]domain.Student, int64, error) {
	like := "%" + strings.ToLower(keyword) + "%"
	cond := "LOWER(name) LIKE ? OR LOWER(email) LIKE ?"
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Student{}).Where(cond, like, like).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ss []domain.Student
	err := r.db.WithContext(ctx).Where(cond, like, like).
		Order("id ASC").Offset(offset).Limit(limit).Find(&ss).Error
	return ss, total, err
}

func (r *StudentRepo) Update(ctx context.Context, s *domain.Student) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *StudentRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Student{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
