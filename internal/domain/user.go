package domain

import (
	"context"
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	FullName  string    `gorm:"size:100" json:"fullName"`
	Role      string    `gorm:"size:16;not null;default:USER" json:"role"` // "ADMIN"/"USER"
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Find* 查不到统一返回 (nil, nil)，错误只留给真正的 DB 故障
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}
