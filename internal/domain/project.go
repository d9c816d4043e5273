package domain

import (
	"context"
	"time"
)

const (
	ProjectStatusPlanning   = "PLANNING"
	ProjectStatusInProgress = "IN_PROGRESS"
	ProjectStatusCompleted  = "COMPLETED"
	ProjectStatusOnHold     = "ON_HOLD"
)

type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;not null" json:"status"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	ProjectURL  string     `gorm:"size:500" json:"projectUrl"`
	GithubURL   string     `gorm:"size:500" json:"githubUrl"`
	Members     []Member   `gorm:"many2many:project_members" json:"members"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id uint) (*Project, error)
	ListAll(ctx context.Context) ([]Project, error)
	ListByStatus(ctx context.Context, status string) ([]Project, error)
	ListByStartDateRange(ctx context.Context, start, end time.Time) ([]Project, error)
	ListByMember(ctx context.Context, memberID uint) ([]Project, error)
	SearchByTitle(ctx context.Context, keyword string) ([]Project, error)
	Update(ctx context.Context, p *Project) error
	AddMember(ctx context.Context, p *Project, m *Member) error
	RemoveMember(ctx context.Context, p *Project, m *Member) error
	Delete(ctx context.Context, id uint) error
}
