package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	MemberRolePresident     = "PRESIDENT"
	MemberRoleVicePresident = "VICE_PRESIDENT"
	MemberRoleSecretary     = "SECRETARY"
	MemberRoleTreasurer     = "TREASURER"
	MemberRoleMember        = "MEMBER"
)

type Member struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	StudentID   string    `gorm:"column:student_id;size:50" json:"studentId"`
	Department  string    `gorm:"size:50" json:"department"`
	PhoneNumber string    `gorm:"size:20" json:"phoneNumber"`
	Role        string    `gorm:"size:20;not null" json:"role"`
	Bio         string    `gorm:"size:500" json:"bio"`
	JoinDate    time.Time `gorm:"not null" json:"joinDate"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
}

func (Member) TableName() string { return "members" }

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.JoinDate.IsZero() {
		m.JoinDate = time.Now()
	}
	if m.Role == "" {
		m.Role = MemberRoleMember
	}
	return nil
}

type MemberRepository interface {
	Create(ctx context.Context, m *Member) error
	FindByID(ctx context.Context, id uint) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListAll(ctx context.Context) ([]Member, error)
	ListActive(ctx context.Context) ([]Member, error)
	ListByRole(ctx context.Context, role string) ([]Member, error)
	ListByDepartment(ctx context.Context, department string) ([]Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id uint) error
}
