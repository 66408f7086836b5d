package admin

import (
	"strconv"
	"strings"

	"github.com/duka-admin/internal/http/response"
	"github.com/duka-admin/internal/repository"
	"github.com/duka-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitLeaveRequest 提交请假申请请求
type SubmitLeaveRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

// AdminSubmitLeave 提交请假申请
func (h *Handler) AdminSubmitLeave(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	startDate, err := parseTimeNullable(req.StartDate)
	if err != nil || startDate == nil {
		respondError(c, response.CodeBadRequest, "开始日期格式无效", err)
		return
	}
	endDate, err := parseTimeNullable(req.EndDate)
	if err != nil || endDate == nil {
		respondError(c, response.CodeBadRequest, "结束日期格式无效", err)
		return
	}

	request, err := h.LeaveService.SubmitLeave(actor, service.SubmitLeaveInput{
		StaffID:   req.StaffID,
		LeaveType: req.LeaveType,
		StartDate: *startDate,
		EndDate:   *endDate,
		Reason:    req.Reason,
	})
	if err != nil {
		respondServiceError(c, err, "提交请假申请失败")
		return
	}
	response.Success(c, request)
}

// AdminListLeaves 请假申请列表
func (h *Handler) AdminListLeaves(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.LeaveListFilter{
		Page:      page,
		PageSize:  pageSize,
		StaffID:   parseUintQuery(c, "staff_id"),
		LeaveType: strings.TrimSpace(c.Query("leave_type")),
		Status:    strings.TrimSpace(c.Query("status")),
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

	requests, total, err := h.LeaveService.ListLeaves(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取请假列表失败", err)
		return
	}
	response.SuccessWithPage(c, requests, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminGetLeave 请假申请详情
func (h *Handler) AdminGetLeave(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "请假申请ID无效", nil)
		return
	}
	request, err := h.LeaveService.GetLeave(id)
	if err != nil {
		respondServiceError(c, err, "获取请假申请失败")
		return
	}
	response.Success(c, request)
}

// ReviewLeaveRequest 审批请假请求
type ReviewLeaveRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Note    string `json:"note"`
}

// AdminReviewLeave 审批请假申请
func (h *Handler) AdminReviewLeave(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "请假申请ID无效", nil)
		return
	}
	var req ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	request, err := h.LeaveService.ReviewLeave(actor, id, *req.Approve, req.Note)
	if err != nil {
		respondServiceError(c, err, "审批请假申请失败")
		return
	}
	response.Success(c, request)
}
