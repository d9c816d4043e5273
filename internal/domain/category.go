package domain

import "context"

type Category struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description  string `gorm:"size:300" json:"description"`
	DisplayOrder int    `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool   `gorm:"not null;default:true" json:"isActive"`
}

func (Category) TableName() string { return "categories" }

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindByName(ctx context.Context, name string) (*Category, error)
	ListActive(ctx context.Context) ([]Category, error) // display_order 升序
	ExistsByName(ctx context.Context, name string) (bool, error)
}
