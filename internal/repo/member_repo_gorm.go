package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"him-backend/internal/domain"
)

type MemberRepo struct{ db *gorm.DB }

func NewMemberRepo(db *gorm.DB) *MemberRepo { return &MemberRepo{db: db} }

func (r *MemberRepo) Create(ctx context.Context, m *domain.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MemberRepo) FindByID(ctx context.Context, id uint) (*domain.Member, error) {
	var m domain.Member
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}

func (r *MemberRepo) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	var m domain.Member
	err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}

func (r *MemberRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Member{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *MemberRepo) ListAll(ctx context.Context) ([]domain.Member, error) {
	var ms []domain.Member
	err := r.db.WithContext(ctx).Order("id ASC").Find(&ms).Error
	return ms, err
}

func (r *MemberRepo) ListActive(ctx context.Context) ([]domain.Member, error) {
	var ms []domain.Member
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&ms).Error
	return ms, err
}

func (r *MemberRepo) ListByRole(ctx context.Context, role string) ([]domain.Member, error) {
	var ms []domain.Member
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("id ASC").Find(&ms).Error
	return ms, err
}

func (r *MemberRepo) ListByDepartment(ctx context.Context, department string) ([]domain.Member, error) {
	var ms []domain.Member
	err := r.db.WithContext(ctx).Where("department = ?", department).Order("id ASC").Find(&ms).Error
	return ms, err
}

func (r *MemberRepo) Update(ctx context.Context, m *domain.Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MemberRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Member{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
