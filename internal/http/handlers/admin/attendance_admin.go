package admin

import (
	"strconv"
	"strings"

	"github.com/duka-admin/internal/http/response"
	"github.com/duka-admin/internal/repository"
	"github.com/duka-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// RecordAttendanceRequest 录入考勤请求
type RecordAttendanceRequest struct {
	StaffID    uint   `json:"staff_id" binding:"required"`
	WorkDate   string `json:"work_date" binding:"required"`
	CheckInAt  string `json:"check_in_at"`
	CheckOutAt string `json:"check_out_at"`
	Status     string `json:"status" binding:"required"`
	Notes      string `json:"notes"`
}

// AdminRecordAttendance 录入考勤记录
func (h *Handler) AdminRecordAttendance(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	workDate, err := parseTimeNullable(req.WorkDate)
	if err != nil || workDate == nil {
		respondError(c, response.CodeBadRequest, "考勤日期格式无效", err)
		return
	}
	checkInAt, err := parseTimeNullable(req.CheckInAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "签到时间格式无效", err)
		return
	}
	checkOutAt, err := parseTimeNullable(req.CheckOutAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "签退时间格式无效", err)
		return
	}

	record, err := h.AttendanceService.RecordAttendance(actor, service.RecordAttendanceInput{
		StaffID:    req.StaffID,
		WorkDate:   *workDate,
		CheckInAt:  checkInAt,
		CheckOutAt: checkOutAt,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(c, err, "录入考勤失败")
		return
	}
	response.Success(c, record)
}

// AdminListAttendance 考勤记录列表
func (h *Handler) AdminListAttendance(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.AttendanceListFilter{
		Page:     page,
		PageSize: pageSize,
		StaffID:  parseUintQuery(c, "staff_id"),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	var err error
	if filter.DateFrom, err = parseTimeNullable(c.Query("date_from")); err != nil {
		respondError(c, response.CodeBadRequest, "日期格式无效", err)
		return
	}
	if filter.DateTo, err = parseTimeNullable(c.Query("date_to")); err != nil {
		respondError(c, response.CodeBadRequest, "日期格式无效", err)
		return
	}

	records, total, err := h.AttendanceService.ListAttendance(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取考勤列表失败", err)
		return
	}
	response.SuccessWithPage(c, records, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminCorrectAttendance 修正考勤记录
func (h *Handler) AdminCorrectAttendance(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "考勤记录ID无效", nil)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	record, err := h.AttendanceService.CorrectAttendance(actor, id, updates)
	if err != nil {
		respondServiceError(c, err, "修正考勤失败")
		return
	}
	response.Success(c, record)
}

// AdminDeleteAttendance 删除考勤记录
func (h *Handler) AdminDeleteAttendance(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "考勤记录ID无效", nil)
		return
	}
	if err := h.AttendanceService.DeleteAttendance(actor, id); err != nil {
		respondServiceError(c, err, "删除考勤失败")
		return
	}
	response.Success(c, nil)
}
