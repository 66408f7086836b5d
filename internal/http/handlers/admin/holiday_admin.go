package admin

import (
	"strconv"

	"github.com/duka-admin/internal/http/response"
	"github.com/duka-admin/internal/repository"

	"github.com/gin-gonic/gin"
)

// CreateHolidayRequest 创建公共假期请求
type CreateHolidayRequest struct {
	Name      string `json:"name" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Recurring bool   `json:"recurring"`
}

// AdminCreateHoliday 创建公共假期
func (h *Handler) AdminCreateHoliday(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	date, err := parseTimeNullable(req.Date)
	if err != nil || date == nil {
		respondError(c, response.CodeBadRequest, "日期格式无效", err)
		return
	}

	holiday, err := h.HolidayService.CreateHoliday(actor, req.Name, *date, req.Recurring)
	if err != nil {
		respondServiceError(c, err, "创建公共假期失败")
		return
	}
	response.Success(c, holiday)
}

// AdminListHolidays 公共假期列表
func (h *Handler) AdminListHolidays(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	holidays, total, err := h.HolidayService.ListHolidays(repository.HolidayListFilter{
		Page:     page,
		PageSize: pageSize,
		Year:     year,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取公共假期列表失败", err)
		return
	}
	response.Success(c, gin.H{
		"items": holidays,
		"total": total,
	})
}

// AdminUpdateHoliday 更新公共假期
func (h *Handler) AdminUpdateHoliday(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "假期ID无效", nil)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	holiday, err := h.HolidayService.UpdateHoliday(actor, id, updates)
	if err != nil {
		respondServiceError(c, err, "更新公共假期失败")
		return
	}
	response.Success(c, holiday)
}

// AdminDeleteHoliday 删除公共假期
func (h *Handler) AdminDeleteHoliday(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "假期ID无效", nil)
		return
	}
	if err := h.HolidayService.DeleteHoliday(actor, id); err != nil {
		respondServiceError(c, err, "删除公共假期失败")
		return
	}
	response.Success(c, nil)
}
