package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"him-backend/internal/domain"
)

type EventService struct {
	events  domain.EventRepository
	members domain.MemberRepository
}

func NewEventService(events domain.EventRepository, members domain.MemberRepository) *EventService {
	return &EventService{events: events, members: members}
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.events.ListAll(ctx)
}

func (s *EventService) GetByID(ctx context.Context, id uint) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) ListByStatus(ctx context.Context, status string) ([]domain.Event, error) {
	return s.events.ListByStatus(ctx, status)
}

func (s *EventService) ListByType(ctx context.Context, eventType string) ([]domain.Event, error) {
	return s.events.ListByType(ctx, eventType)
}

func (s *EventService) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Event, error) {
	return s.events.ListByDateRange(ctx, start, end)
}

func (s *EventService) ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error) {
	return s.events.ListByOrganizer(ctx, organizerID)
}

func (s *EventService) ListByParticipant(ctx context.Context, memberID uint) ([]domain.Event, error) {
	return s.events.ListByParticipant(ctx, memberID)
}

func (s *EventService) ListUpcoming(ctx context.Context) ([]domain.Event, error) {
	return s.events.ListUpcoming(ctx, time.Now())
}

func (s *EventService) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if strings.TrimSpace(e.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if e.EventDate.IsZero() {
		return nil, fmt.Errorf("%w: eventDate is required", ErrInvalidInput)
	}
	if e.OrganizerID != nil {
		org, err := s.members.FindByID(ctx, *e.OrganizerID)
		if err != nil {
			return nil, err
		}
		if org == nil {
			return nil, fmt.Errorf("%w: organizer %d", ErrNotFound, *e.OrganizerID)
		}
		e.Organizer = org
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Update(ctx context.Context, id uint, in *domain.Event) (*domain.Event, error) {
	e, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}

	e.Title = in.Title
	e.Description = in.Description
	e.EventDate = in.EventDate
	e.Location = in.Location
	e.EventType = in.EventType
	e.Status = in.Status
	e.MaxParticipants = in.MaxParticipants
	e.RegistrationURL = in.RegistrationURL
	if in.OrganizerID != nil {
		org, err := s.members.FindByID(ctx, *in.OrganizerID)
		if err != nil {
			return nil, err
		}
		if org == nil {
			return nil, fmt.Errorf("%w: organizer %d", ErrNotFound, *in.OrganizerID)
		}
		e.OrganizerID = in.OrganizerID
		e.Organizer = org
	}

	if err := s.events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// AddParticipant 已报名则幂等返回；满员判定是先查后加，不做并发护栏
func (s *EventService) AddParticipant(ctx context.Context, eventID, memberID uint) (*domain.Event, error) {
	e, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
	}
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, memberID)
	}

	for _, p := range e.Participants {
		if p.ID == m.ID {
			return e, nil
		}
	}
	if e.MaxParticipants != nil && len(e.Participants) >= *e.MaxParticipants {
		return nil, ErrEventFull
	}

	if err := s.events.AddParticipant(ctx, e, m); err != nil {
		return nil, err
	}
	return s.events.FindByID(ctx, eventID)
}

func (s *EventService) RemoveParticipant(ctx context.Context, eventID, memberID uint) (*domain.Event, error) {
	e, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
	}
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, memberID)
	}

	if err := s.events.RemoveParticipant(ctx, e, m); err != nil {
		return nil, err
	}
	return s.events.FindByID(ctx, eventID)
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	e, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrNotFound
	}
	return s.events.Delete(ctx, id)
}
