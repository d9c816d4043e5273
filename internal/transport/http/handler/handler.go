package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// 分页参数 0 起算，尺寸上限防翻库
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func pageParams(c *gin.Context, defSize int) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	if page < 0 {
		page = 0
	}
	size, _ = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defSize)))
	if size <= 0 {
		size = defSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// pagedResp 统一分页壳
type pagedResp struct {
	Content       interface{} `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
}

func paged(content interface{}, page, size int, total int64) pagedResp {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return pagedResp{Content: content, Page: page, Size: size, TotalElements: total, TotalPages: pages}
}
