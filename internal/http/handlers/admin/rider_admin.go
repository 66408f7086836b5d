package admin

import (
	"strconv"
	"strings"

	"github.com/duka-admin/internal/http/response"
	"github.com/duka-admin/internal/repository"
	"github.com/duka-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateRiderRequest 创建骑手请求
type CreateRiderRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	NationalID    string `json:"national_id"`
	VehicleRegNo  string `json:"vehicle_reg_no"`
	LicenseNumber string `json:"license_number"`
}

// AdminCreateRider 创建骑手
func (h *Handler) AdminCreateRider(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	rider, err := h.RiderService.CreateRider(actor, service.CreateRiderInput{
		Name:          req.Name,
		Phone:         req.Phone,
		NationalID:    req.NationalID,
		VehicleRegNo:  req.VehicleRegNo,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		respondServiceError(c, err, "创建骑手失败")
		return
	}
	response.Success(c, rider)
}

// AdminListRiders 骑手列表
func (h *Handler) AdminListRiders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	riders, total, err := h.RiderService.ListRiders(repository.RiderListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取骑手列表失败", err)
		return
	}
	response.SuccessWithPage(c, riders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminGetRider 骑手详情
func (h *Handler) AdminGetRider(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "骑手ID无效", nil)
		return
	}
	rider, err := h.RiderService.GetRider(id)
	if err != nil {
		respondServiceError(c, err, "获取骑手失败")
		return
	}
	response.Success(c, rider)
}

// AdminUpdateRider 更新骑手
func (h *Handler) AdminUpdateRider(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "骑手ID无效", nil)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	rider, err := h.RiderService.UpdateRider(actor, id, updates)
	if err != nil {
		respondServiceError(c, err, "更新骑手失败")
		return
	}
	response.Success(c, rider)
}

// AdminDeleteRider 删除骑手
func (h *Handler) AdminDeleteRider(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "骑手ID无效", nil)
		return
	}
	if err := h.RiderService.DeleteRider(actor, id); err != nil {
		respondServiceError(c, err, "删除骑手失败")
		return
	}
	response.Success(c, nil)
}
