package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"him-backend/internal/domain"
)

type ProjectService struct {
	projects domain.ProjectRepository
	members  domain.MemberRepository
}

func NewProjectService(projects domain.ProjectRepository, members domain.MemberRepository) *ProjectService {
	return &ProjectService{projects: projects, members: members}
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.ListAll(ctx)
}

func (s *ProjectService) GetByID(ctx context.Context, id uint) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) ListByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	return s.projects.ListByStatus(ctx, status)
}

func (s *ProjectService) ListByStartDateRange(ctx context.Context, start, end time.Time) ([]domain.Project, error) {
	return s.projects.ListByStartDateRange(ctx, start, end)
}

func (s *ProjectService) ListByMember(ctx context.Context, memberID uint) ([]domain.Project, error) {
	return s.projects.ListByMember(ctx, memberID)
}

func (s *ProjectService) SearchByTitle(ctx context.Context, keyword string) ([]domain.Project, error) {
	return s.projects.SearchByTitle(ctx, keyword)
}

func (s *ProjectService) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if p.Status == "" {
		p.Status = domain.ProjectStatusPlanning
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id uint, in *domain.Project) (*domain.Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	p.Title = in.Title
	p.Description = in.Description
	if in.Status != "" {
		p.Status = in.Status
	}
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.ProjectURL = in.ProjectURL
	p.GithubURL = in.GithubURL

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddMember 重复添加幂等
func (s *ProjectService) AddMember(ctx context.Context, projectID, memberID uint) (*domain.Project, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: project %d", ErrNotFound, projectID)
	}
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, memberID)
	}

	for _, mm := range p.Members {
		if mm.ID == m.ID {
			return p, nil
		}
	}
	if err := s.projects.AddMember(ctx, p, m); err != nil {
		return nil, err
	}
	return s.projects.FindByID(ctx, projectID)
}

func (s *ProjectService) RemoveMember(ctx context.Context, projectID, memberID uint) (*domain.Project, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: project %d", ErrNotFound, projectID)
	}
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, memberID)
	}

	if err := s.projects.RemoveMember(ctx, p, m); err != nil {
		return nil, err
	}
	return s.projects.FindByID(ctx, projectID)
}

func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}
	return s.projects.Delete(ctx, id)
}
