package domain

import (
	"context"
	"time"
)

// Student 独立的 CRUD 演示面，只有最小字段
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Student) TableName() string { return "students" }

type StudentRepository interface {
	Create(ctx context.Context, s *Student) error
	FindByID(ctx context.Context, id uint) (*Student, error)
	FindByEmail(ctx context.Context, email string) (*Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]Student, int64, error)
	SearchByNameOrEmail(ctx context.Context, keyword string, offset, limit int) ([]Student, int64, error)
	Update(ctx context.Context, s *Student) error
	Delete(ctx context.Context, id uint) error
}
