package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	EventStatusUpcoming  = "UPCOMING"
	EventStatusOngoing   = "ONGOING"
	EventStatusCompleted = "COMPLETED"
	EventStatusCancelled = "CANCELLED"
)

const (
	EventTypeWorkshop    = "WORKSHOP"
	EventTypeSeminar     = "SEMINAR"
	EventTypeConference  = "CONFERENCE"
	EventTypeSocial      = "SOCIAL"
	EventTypeMeeting     = "MEETING"
	EventTypeCompetition = "COMPETITION"
)

type Event struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	EventDate       time.Time `gorm:"not null" json:"eventDate"`
	Location        string    `gorm:"size:200" json:"location"`
	EventType       string    `gorm:"size:20;not null" json:"eventType"`
	Status          string    `gorm:"size:20;not null" json:"status"`
	Participants    []Member  `gorm:"many2many:event_participants" json:"participants"`
	OrganizerID     *uint     `json:"-"`
	Organizer       *Member   `json:"organizer,omitempty"`
	MaxParticipants *int      `json:"maxParticipants"` // nil = 不限
	RegistrationURL string    `gorm:"size:500" json:"registrationUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Event) TableName() string { return "events" }

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.Status == "" {
		e.Status = EventStatusUpcoming
	}
	return nil
}

// 列表均需预载 Organizer/Participants（边界处一次取全，杜绝隐式 IO）
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id uint) (*Event, error)
	ListAll(ctx context.Context) ([]Event, error)
	ListByStatus(ctx context.Context, status string) ([]Event, error)
	ListByType(ctx context.Context, eventType string) ([]Event, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Event, error)
	ListByOrganizer(ctx context.Context, organizerID uint) ([]Event, error)
	ListByParticipant(ctx context.Context, memberID uint) ([]Event, error)
	ListUpcoming(ctx context.Context, after time.Time) ([]Event, error)
	Update(ctx context.Context, e *Event) error
	AddParticipant(ctx context.Context, e *Event, m *Member) error
	RemoveParticipant(ctx context.Context, e *Event, m *Member) error
	Delete(ctx context.Context, id uint) error
}
