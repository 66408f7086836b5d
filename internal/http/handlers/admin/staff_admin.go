package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/duka-admin/internal/http/response"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"
	"github.com/duka-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateStaffRequest 创建员工请求
type CreateStaffRequest struct {
	StaffNo    string  `json:"staff_no" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	NationalID string  `json:"national_id"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	StoreID    *uint   `json:"store_id"`
	BaseSalary float64 `json:"base_salary"`
	HiredAt    string  `json:"hired_at"`
}

// AdminCreateStaff 创建员工
func (h *Handler) AdminCreateStaff(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	hiredAt, err := parseTimeNullable(req.HiredAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "入职日期格式无效", err)
		return
	}

	staff, err := h.StaffService.CreateStaff(actor, service.CreateStaffInput{
		StaffNo:    req.StaffNo,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		NationalID: req.NationalID,
		Position:   req.Position,
		Department: req.Department,
		StoreID:    req.StoreID,
		BaseSalary: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.BaseSalary)),
		HiredAt:    hiredAt,
	})
	if err != nil {
		respondServiceError(c, err, "创建员工失败")
		return
	}
	response.Success(c, staff)
}

// AdminListStaff 员工列表
func (h *Handler) AdminListStaff(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	staff, total, err := h.StaffService.ListStaff(repository.StaffListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		Department: strings.TrimSpace(c.Query("department")),
		StoreID:    parseUintQuery(c, "store_id"),
		OnlyActive: c.Query("only_active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取员工列表失败", err)
		return
	}
	response.SuccessWithPage(c, staff, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminGetStaff 员工详情
func (h *Handler) AdminGetStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "员工ID无效", nil)
		return
	}
	staff, err := h.StaffService.GetStaff(id)
	if err != nil {
		respondServiceError(c, err, "获取员工失败")
		return
	}
	response.Success(c, staff)
}

// AdminUpdateStaff 更新员工
func (h *Handler) AdminUpdateStaff(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "员工ID无效", nil)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	staff, err := h.StaffService.UpdateStaff(actor, id, updates)
	if err != nil {
		respondServiceError(c, err, "更新员工失败")
		return
	}
	response.Success(c, staff)
}

// AdminTerminateStaff 办理员工离职
func (h *Handler) AdminTerminateStaff(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "员工ID无效", nil)
		return
	}
	if err := h.StaffService.TerminateStaff(actor, id, time.Now()); err != nil {
		respondServiceError(c, err, "办理离职失败")
		return
	}
	response.Success(c, nil)
}

// AdminDeleteStaff 删除员工
func (h *Handler) AdminDeleteStaff(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "员工ID无效", nil)
		return
	}
	if err := h.StaffService.DeleteStaff(actor, id); err != nil {
		respondServiceError(c, err, "删除员工失败")
		return
	}
	response.Success(c, nil)
}
