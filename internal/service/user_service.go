package service

import (
	"context"
	"fmt"
	"strings"

	"him-backend/internal/domain"
	"him-backend/pkg/utils"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Create 先查重再落库，给调用方干净的冲突错误而不是裸的唯一键冲突
func (s *UserService) Create(ctx context.Context, username, password, email, fullName, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return nil, fmt.Errorf("%w: username, password and email are required", ErrInvalidInput)
	}

	if taken, err := s.users.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	u := &domain.User{
		Username: username,
		Password: utils.HashPassword(password),
		Email:    email,
		FullName: fullName,
		Role:     role,
		IsActive: true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) CreateAdmin(ctx context.Context, username, password, email, fullName string) (*domain.User, error) {
	return s.Create(ctx, username, password, email, fullName, domain.RoleAdmin)
}

// Authenticate 用户名+密码换用户；失败一律 ErrInvalidCredentials，不区分原因
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive || !utils.CheckPassword(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) IsAdmin(u *domain.User) bool { return u.IsAdmin() }

// HasAdmin bootstrap 用：系统里是否已有管理员
func (s *UserService) HasAdmin(ctx context.Context) (bool, error) {
	n, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	return n > 0, err
}
