package handler_test

import (
	"context"

	"him-backend/internal/core/session"
	"him-backend/internal/domain"
)

type memUserRepo struct {
	nextID uint
	items  map[uint]*domain.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{items: map[uint]*domain.User{}} }

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.items {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := r.FindByUsername(ctx, username)
	return u != nil, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.items {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.items {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type memSessionStore struct {
	items map[string]*session.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{items: map[string]*session.Session{}}
}

func (s *memSessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	sess, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessionStore) Save(_ context.Context, sess *session.Session) error {
	cp := *sess
	s.items[sess.ID] = &cp
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, id string) error {
	delete(s.items, id)
	return nil
}
