package service

import "errors"

// 服务层只抛哨兵错误，HTTP 状态的映射放在 transport
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrEventFull          = errors.New("event is full")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
