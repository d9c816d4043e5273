package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"him-backend/internal/domain"
)

/* ---------- 内存版仓库，测试共用 ---------- */

type fakeArticleRepo struct {
	nextID uint
	items  map[uint]*domain.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{items: map[uint]*domain.Article{}}
}

func (r *fakeArticleRepo) Create(_ context.Context, a *domain.Article) error {
	r.nextID++
	a.ID = r.nextID
	if a.PublishedAt == nil && a.IsPublished {
		now := time.Now()
		a.PublishedAt = &now
	}
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeArticleRepo) FindByID(_ context.Context, id uint) (*domain.Article, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeArticleRepo) published() []domain.Article {
	var out []domain.Article
	for _, a := range r.items {
		if a.IsPublished {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := time.Time{}, time.Time{}
		if out[i].PublishedAt != nil {
			ti = *out[i].PublishedAt
		}
		if out[j].PublishedAt != nil {
			tj = *out[j].PublishedAt
		}
		return ti.After(tj)
	})
	return out
}

func page(as []domain.Article, offset, limit int) []domain.Article {
	if offset >= len(as) {
		return nil
	}
	end := offset + limit
	if end > len(as) {
		end = len(as)
	}
	return as[offset:end]
}

func (r *fakeArticleRepo) ListPublished(_ context.Context, offset, limit int) ([]domain.Article, int64, error) {
	all := r.published()
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *fakeArticleRepo) ListByCategoryName(_ context.Context, name string, offset, limit int) ([]domain.Article, int64, error) {
	var out []domain.Article
	for _, a := range r.published() {
		if a.Category != nil && strings.EqualFold(a.Category.Name, name) {
			out = append(out, a)
		}
	}
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *fakeArticleRepo) ListFeatured(_ context.Context) ([]domain.Article, error) {
	var out []domain.Article
	for _, a := range r.published() {
		if a.IsFeatured {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) Search(_ context.Context, keyword string, offset, limit int) ([]domain.Article, int64, error) {
	kw := strings.ToLower(keyword)
	var out []domain.Article
	for _, a := range r.published() {
		if strings.Contains(strings.ToLower(a.Title), kw) ||
			strings.Contains(strings.ToLower(a.Content), kw) ||
			strings.Contains(strings.ToLower(a.Summary), kw) {
			out = append(out, a)
		}
	}
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *fakeArticleRepo) ListLatest(_ context.Context, limit int) ([]domain.Article, error) {
	return page(r.published(), 0, limit), nil
}

func (r *fakeArticleRepo) ListTopViewed(_ context.Context, limit int) ([]domain.Article, error) {
	all := r.published()
	sort.Slice(all, func(i, j int) bool { return all[i].ViewCount > all[j].ViewCount })
	return page(all, 0, limit), nil
}

func (r *fakeArticleRepo) Update(_ context.Context, a *domain.Article) error {
	if _, ok := r.items[a.ID]; !ok {
		return errors.New("no such article")
	}
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return errors.New("no such article")
	}
	delete(r.items, id)
	return nil
}

type fakeCategoryRepo struct {
	items []domain.Category
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	c.ID = uint(len(r.items) + 1)
	r.items = append(r.items, *c)
	return nil
}

func (r *fakeCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	for i := range r.items {
		if strings.EqualFold(r.items[i].Name, name) {
			cp := r.items[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) ListActive(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.items {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *fakeCategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	c, _ := r.FindByName(ctx, name)
	return c != nil, nil
}

type fakeMemberRepo struct {
	nextID uint
	items  map[uint]*domain.Member
}

func newFakeMemberRepo() *fakeMemberRepo { return &fakeMemberRepo{items: map[uint]*domain.Member{}} }

func (r *fakeMemberRepo) Create(_ context.Context, m *domain.Member) error {
	r.nextID++
	m.ID = r.nextID
	if m.Role == "" {
		m.Role = domain.MemberRoleMember
	}
	if m.JoinDate.IsZero() {
		m.JoinDate = time.Now()
	}
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *fakeMemberRepo) FindByID(_ context.Context, id uint) (*domain.Member, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMemberRepo) FindByEmail(_ context.Context, email string) (*domain.Member, error) {
	for _, m := range r.items {
		if m.Email == email {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m, _ := r.FindByEmail(ctx, email)
	return m != nil, nil
}

func (r *fakeMemberRepo) ListAll(_ context.Context) ([]domain.Member, error) {
	var out []domain.Member
	for _, m := range r.items {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMemberRepo) ListActive(_ context.Context) ([]domain.Member, error) {
	var out []domain.Member
	for _, m := range r.items {
		if m.IsActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) ListByRole(_ context.Context, role string) ([]domain.Member, error) {
	var out []domain.Member
	for _, m := range r.items {
		if m.Role == role {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) ListByDepartment(_ context.Context, dep string) ([]domain.Member, error) {
	var out []domain.Member
	for _, m := range r.items {
		if m.Department == dep {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, m *domain.Member) error {
	if _, ok := r.items[m.ID]; !ok {
		return errors.New("no such member")
	}
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return errors.New("no such member")
	}
	delete(r.items, id)
	return nil
}

type fakeEventRepo struct {
	nextID uint
	items  map[uint]*domain.Event
}

func newFakeEventRepo() *fakeEventRepo { return &fakeEventRepo{items: map[uint]*domain.Event{}} }

func (r *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	r.nextID++
	e.ID = r.nextID
	if e.Status == "" {
		e.Status = domain.EventStatusUpcoming
	}
	cp := *e
	cp.Participants = append([]domain.Member(nil), e.Participants...)
	r.items[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (*domain.Event, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	cp.Participants = append([]domain.Member(nil), e.Participants...)
	return &cp, nil
}

func (r *fakeEventRepo) ListAll(_ context.Context) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.items {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEventRepo) ListByStatus(_ context.Context, status string) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.items {
		if e.Status == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByType(_ context.Context, et string) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.items {
		if e.EventType == et {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.items {
		if !e.EventDate.Before(start) && !e.EventDate.After(end) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByOrganizer(_ context.Context, organizerID uint) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.items {
		if e.OrganizerID != nil && *e.OrganizerID == organizerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByParticipant(_ context.Context, memberID uint) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.items {
		for _, p := range e.Participants {
			if p.ID == memberID {
				out = append(out, *e)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListUpcoming(_ context.Context, after time.Time) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.items {
		if e.EventDate.After(after) && e.Status == domain.EventStatusUpcoming {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *domain.Event) error {
	cur, ok := r.items[e.ID]
	if !ok {
		return errors.New("no such event")
	}
	cp := *e
	cp.Participants = cur.Participants // Update 不碰参与者集合
	r.items[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) AddParticipant(_ context.Context, e *domain.Event, m *domain.Member) error {
	cur, ok := r.items[e.ID]
	if !ok {
		return errors.New("no such event")
	}
	cur.Participants = append(cur.Participants, *m)
	return nil
}

func (r *fakeEventRepo) RemoveParticipant(_ context.Context, e *domain.Event, m *domain.Member) error {
	cur, ok := r.items[e.ID]
	if !ok {
		return errors.New("no such event")
	}
	out := cur.Participants[:0]
	for _, p := range cur.Participants {
		if p.ID != m.ID {
			out = append(out, p)
		}
	}
	cur.Participants = out
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return errors.New("no such event")
	}
	delete(r.items, id)
	return nil
}

type fakeStudentRepo struct {
	nextID uint
	items  map[uint]*domain.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{items: map[uint]*domain.Student{}}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *domain.Student) error {
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) FindByID(_ context.Context, id uint) (*domain.Student, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) FindByEmail(_ context.Context, email string) (*domain.Student, error) {
	for _, s := range r.items {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStudentRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s, _ := r.FindByEmail(ctx, email)
	return s != nil, nil
}

func (r *fakeStudentRepo) List(_ context.Context, offset, limit int) ([]domain.Student, int64, error) {
	var all []domain.Student
	for _, s := range r.items {
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil, int64(len(all)), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], int64(len(all)), nil
}

func (r *fakeStudentRepo) SearchByNameOrEmail(ctx context.Context, keyword string, offset, limit int) ([]domain.Student, int64, error) {
	kw := strings.ToLower(keyword)
	var out []domain.Student
	for _, s := range r.items {
		if strings.Contains(strings.ToLower(s.Name), kw) || strings.Contains(strings.ToLower(s.Email), kw) {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeStudentRepo) Update(_ context.Context, s *domain.Student) error {
	if _, ok := r.items[s.ID]; !ok {
		return errors.New("no such student")
	}
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return errors.New("no such student")
	}
	delete(r.items, id)
	return nil
}

type fakeUserRepo struct {
	nextID uint
	items  map[uint]*domain.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{items: map[uint]*domain.User{}} }

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.items {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := r.FindByUsername(ctx, username)
	return u != nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.items {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.items {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

/* ---------- 资产托管 fake ---------- */

type fakeImageStore struct {
	uploads    int
	deleted    []string
	failUpload bool
	failDelete bool
}

func (f *fakeImageStore) Upload(_ context.Context, _ []byte, filename, _ string) (string, error) {
	if f.failUpload {
		return "", errors.New("upload failed")
	}
	f.uploads++
	return "https://cdn.example.com/him-articles/u" + filename + ".jpg", nil
}

func (f *fakeImageStore) Delete(_ context.Context, url string) error {
	if f.failDelete {
		return errors.New("delete failed")
	}
	f.deleted = append(f.deleted, url)
	return nil
}
