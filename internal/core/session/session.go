package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session 服务端会话，redis 里按 JSON 存；UserID==0 表示匿名（只承载 flash）
type Session struct {
	ID           string    `json:"id"`
	UserID       uint      `json:"userId"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	FlashSuccess string    `json:"flashSuccess,omitempty"`
	FlashError   string    `json:"flashError,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func New() *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: time.Now()}
}

func (s *Session) LoggedIn() bool { return s != nil && s.UserID != 0 }
func (s *Session) IsAdmin() bool  { return s.LoggedIn() && s.Role == "ADMIN" }

// PopFlash 读一次即清（调用方负责 Save）
func (s *Session) PopFlash() (success, errMsg string) {
	success, errMsg = s.FlashSuccess, s.FlashError
	s.FlashSuccess, s.FlashError = "", ""
	return
}

// Store 查不到返回 (nil, nil)
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

const keyPrefix = "sess:"

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (st *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	b, err := st.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *RedisStore) Save(ctx context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return st.rdb.Set(ctx, keyPrefix+s.ID, b, st.ttl).Err()
}

func (st *RedisStore) Delete(ctx context.Context, id string) error {
	return st.rdb.Del(ctx, keyPrefix+id).Err()
}
