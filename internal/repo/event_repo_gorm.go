package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"him-backend/internal/domain"
)

type EventRepo struct{ db *gorm.DB }

func NewEventRepo(db *gorm.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) loaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Organizer").Preload("Participants")
}

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepo) FindByID(ctx context.Context, id uint) (*domain.Event, error) {
	var e domain.Event
	err := r.loaded(ctx).First(&e, "events.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *EventRepo) ListAll(ctx context.Context) ([]domain.Event, error) {
	var es []domain.Event
	err := r.loaded(ctx).Order("event_date DESC").Find(&es).Error
	return es, err
}

func (r *EventRepo) ListByStatus(ctx context.Context, status string) ([]domain.Event, error) {
	var es []domain.Event
	err := r.loaded(ctx).Where("status = ?", status).Order("event_date DESC").Find(&es).Error
	return es, err
}

func (r *EventRepo) ListByType(ctx context.Context, eventType string) ([]domain.Event, error) {
	var es []domain.Event
	err := r.loaded(ctx).Where("event_type = ?", eventType).Order("event_date DESC").Find(&es).Error
	return es, err
}

func (r *EventRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Event, error) {
	var es []domain.Event
	err := r.loaded(ctx).Where("event_date BETWEEN ? AND ?", start, end).
		Order("event_date ASC").Find(&es).Error
	return es, err
}

func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error) {
	var es []domain.Event
	err := r.loaded(ctx).Where("organizer_id = ?", organizerID).Order("event_date DESC").Find(&es).Error
	return es, err
}

func (r *EventRepo) ListByParticipant(ctx context.Context, memberID uint) ([]domain.Event, error) {
	var es []domain.Event
	err := r.loaded(ctx).
		Joins("JOIN event_participants ep ON ep.event_id = events.id").
		Where("ep.member_id = ?", memberID).
		Order("event_date DESC").Find(&es).Error
	return es, err
}

func (r *EventRepo) ListUpcoming(ctx context.Context, after time.Time) ([]domain.Event, error) {
	var es []domain.Event
	err := r.loaded(ctx).Where("event_date > ? AND status = ?", after, domain.EventStatusUpcoming).
		Order("event_date ASC").Find(&es).Error
	return es, err
}

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Omit("Participants").Save(e).Error
}

func (r *EventRepo) AddParticipant(ctx context.Context, e *domain.Event, m *domain.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(e).Association("Participants").Append(m)
	})
}

func (r *EventRepo) RemoveParticipant(ctx context.Context, e *domain.Event, m *domain.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(e).Association("Participants").Delete(m)
	})
}

func (r *EventRepo) Delete(ctx context.Context, id uint) error {
	// 先清关联行再删主档
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Event{ID: id}).Association("Participants").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&domain.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
