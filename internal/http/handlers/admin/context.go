package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/duka-admin/internal/http/handlers/shared"
	"github.com/duka-admin/internal/service"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "admin_id", "admin id invalid", "admin id type invalid")
}

// currentActor 从认证中间件注入的上下文构建操作人
func currentActor(c *gin.Context) (service.Actor, bool) {
	adminID, ok := getAdminID(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		AdminID: adminID,
		Role:    handlershared.GetContextString(c, "role"),
		IsSuper: handlershared.GetContextBool(c, "admin_is_super"),
	}, true
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func parseUintQuery(c *gin.Context, name string) uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// parseTimeNullable 解析可空时间，支持 RFC3339 与 2006-01-02 两种格式
func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
