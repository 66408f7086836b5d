package admin

import (
	"errors"

	handlershared "github.com/duka-admin/internal/http/handlers/shared"
	"github.com/duka-admin/internal/http/response"
	"github.com/duka-admin/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// respondServiceError 将服务层错误映射为统一响应。
// 带明细的错误（字段校验、状态守卫、超量商品）直接回传明细。
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		handlershared.RespondErrorWithData(c, response.CodeBadRequest, validationErr.Error(), gin.H{
			"field":  validationErr.Field,
			"reason": validationErr.Reason,
		}, nil)
		return
	}

	var quantityErr *service.QuantityExceededError
	if errors.As(err, &quantityErr) {
		handlershared.RespondErrorWithData(c, response.CodeUnprocessable, quantityErr.Error(), gin.H{
			"products": quantityErr.Products,
		}, nil)
		return
	}

	var stateErr *service.StateTransitionError
	if errors.As(err, &stateErr) {
		handlershared.RespondErrorWithData(c, response.CodeConflict, stateErr.Error(), gin.H{
			"current":  stateErr.Current,
			"required": stateErr.Required,
		}, nil)
		return
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrUnauthorized):
		respondError(c, response.CodeForbidden, "权限不足", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, response.CodeUnauthorized, "账号或密码错误", nil)
	case errors.Is(err, service.ErrAccountDisabled):
		respondError(c, response.CodeForbidden, "账号已被禁用", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "记录不存在", nil)
	case errors.Is(err, service.ErrDuplicateRecord):
		respondError(c, response.CodeConflict, "记录已存在", nil)
	case errors.Is(err, service.ErrInvalidStateTransition):
		respondError(c, response.CodeConflict, err.Error(), nil)
	case errors.Is(err, service.ErrQuantityExceeded):
		respondError(c, response.CodeUnprocessable, err.Error(), nil)
	case errors.Is(err, service.ErrDependencyFailure):
		respondError(c, response.CodeDependency, "依赖服务调用失败", err)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}
