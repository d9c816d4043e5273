package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"him-backend/internal/service"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应，HTTP 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, New(CodeOK, CodeMsgMap[CodeOK], data))
}

// Created 成功创建，HTTP 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, New(CodeOK, CodeMsgMap[CodeOK], data))
}

// Error 失败响应；code 同时作为 HTTP 状态写出（0 映射 200）
func Error(c *gin.Context, code int, customMsg string) {
	status := code
	if status < 100 || status > 599 {
		status = http.StatusInternalServerError
	}
	ErrorWithStatus(c, status, code, customMsg)
}

// ErrorWithStatus 业务码和 HTTP 状态分离时用
func ErrorWithStatus(c *gin.Context, status, code int, customMsg string) {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	c.AbortWithStatusJSON(status, New(code, msg, struct{}{}))
}

// Fail 按哨兵错误映射业务码，未知错误一律 500。
// 冲突类（用户名/邮箱重复）业务码 409，对外状态按旧接口约定统一 400。
func Fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		Error(c, CodeNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		Error(c, CodeBadRequest, err.Error())
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		ErrorWithStatus(c, http.StatusBadRequest, CodeConflict, err.Error())
	case errors.Is(err, service.ErrEventFull):
		Error(c, CodeBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		Error(c, CodeUnauthorized, err.Error())
	default:
		Error(c, CodeServerError, "internal error")
	}
}
