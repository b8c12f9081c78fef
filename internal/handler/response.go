package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"Bitta/internal/middleware"
	"Bitta/internal/service"

	"github.com/gin-gonic/gin"
)

// fail 按错误类别映射状态码，未知错误不向外暴露细节
func fail(c *gin.Context, err error) {
	var upErr *service.UploadError
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case errors.As(err, &upErr):
		slog.ErrorContext(c.Request.Context(), "upload failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": upErr.Cause})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": msg})
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// currentMemberID 由鉴权中间件写入
func currentMemberID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(middleware.ContextMemberIDKey)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
		return 0, false
	}
	id, ok := v.(uint64)
	if !ok || id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
		return 0, false
	}
	return id, true
}

// sameMember 只允许操作自己的账号
func sameMember(c *gin.Context, id uint64) bool {
	me, ok := currentMemberID(c)
	if !ok {
		return false
	}
	if me != id {
		c.JSON(http.StatusForbidden, gin.H{"msg": "forbidden"})
		return false
	}
	return true
}
