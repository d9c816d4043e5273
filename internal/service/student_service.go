package service

import (
	"context"
	"fmt"
	"strings"

	"him-backend/internal/domain"
)

type StudentService struct {
	students domain.StudentRepository
}

func NewStudentService(students domain.StudentRepository) *StudentService {
	return &StudentService{students: students}
}

func (s *StudentService) List(ctx context.Context, offset, limit int) ([]domain.Student, int64, error) {
	return s.students.List(ctx, offset, limit)
}

func (s *StudentService) Search(ctx context.Context, keyword string, offset, limit int) ([]domain.Student, int64, error) {
	return s.students.SearchByNameOrEmail(ctx, keyword, offset, limit)
}

func (s *StudentService) GetByID(ctx context.Context, id uint) (*domain.Student, error) {
	return s.students.FindByID(ctx, id)
}

func (s *StudentService) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return s.students.FindByEmail(ctx, email)
}

func (s *StudentService) Create(ctx context.Context, st *domain.Student) (*domain.Student, error) {
	if strings.TrimSpace(st.Name) == "" || strings.TrimSpace(st.Email) == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	taken, err := s.students.ExistsByEmail(ctx, st.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	if err := s.students.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StudentService) Update(ctx context.Context, id uint, in *domain.Student) (*domain.Student, error) {
	st, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	if in.Email != st.Email {
		taken, err := s.students.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	st.Name = in.Name
	st.Email = in.Email

	if err := s.students.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StudentService) Delete(ctx context.Context, id uint) error {
	st, err := s.students.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return ErrNotFound
	}
	return s.students.Delete(ctx, id)
}
