package service

import (
	"context"
	"fmt"
	"strings"

	"him-backend/internal/domain"
)

type MemberService struct {
	members domain.MemberRepository
}

func NewMemberService(members domain.MemberRepository) *MemberService {
	return &MemberService{members: members}
}

func (s *MemberService) List(ctx context.Context) ([]domain.Member, error) {
	return s.members.ListAll(ctx)
}

func (s *MemberService) ListActive(ctx context.Context) ([]domain.Member, error) {
	return s.members.ListActive(ctx)
}

func (s *MemberService) ListByRole(ctx context.Context, role string) ([]domain.Member, error) {
	return s.members.ListByRole(ctx, role)
}

func (s *MemberService) ListByDepartment(ctx context.Context, department string) ([]domain.Member, error) {
	return s.members.ListByDepartment(ctx, department)
}

func (s *MemberService) GetByID(ctx context.Context, id uint) (*domain.Member, error) {
	return s.members.FindByID(ctx, id)
}

func (s *MemberService) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return s.members.FindByEmail(ctx, email)
}

func (s *MemberService) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	taken, err := s.members.ExistsByEmail(ctx, m.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	if err := s.members.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemberService) Update(ctx context.Context, id uint, in *domain.Member) (*domain.Member, error) {
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	// 换邮箱才查重
	if in.Email != m.Email {
		taken, err := s.members.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	m.Name = in.Name
	m.Email = in.Email
	m.StudentID = in.StudentID
	m.Department = in.Department
	m.Role = in.Role
	m.PhoneNumber = in.PhoneNumber
	m.Bio = in.Bio
	m.IsActive = in.IsActive
	if !in.JoinDate.IsZero() {
		m.JoinDate = in.JoinDate
	}

	if err := s.members.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemberService) Delete(ctx context.Context, id uint) error {
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrNotFound
	}
	return s.members.Delete(ctx, id)
}
