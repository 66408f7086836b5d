package admin

import (
	"strconv"
	"strings"

	"github.com/duka-admin/internal/http/response"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"
	"github.com/duka-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateAssetRequest 创建资产请求
type CreateAssetRequest struct {
	AssetTag     string  `json:"asset_tag" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	SerialNumber string  `json:"serial_number"`
	PurchaseCost float64 `json:"purchase_cost"`
	PurchasedAt  string  `json:"purchased_at"`
	StoreID      *uint   `json:"store_id"`
	Notes        string  `json:"notes"`
}

// AdminCreateAsset 创建资产
func (h *Handler) AdminCreateAsset(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	purchasedAt, err := parseTimeNullable(req.PurchasedAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "采购日期格式无效", err)
		return
	}

	asset, err := h.AssetService.CreateAsset(actor, service.CreateAssetInput{
		AssetTag:     req.AssetTag,
		Name:         req.Name,
		Category:     req.Category,
		SerialNumber: req.SerialNumber,
		PurchaseCost: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.PurchaseCost)),
		PurchasedAt:  purchasedAt,
		StoreID:      req.StoreID,
		Notes:        req.Notes,
	})
	if err != nil {
		respondServiceError(c, err, "创建资产失败")
		return
	}
	response.Success(c, asset)
}

// AdminListAssets 资产列表
func (h *Handler) AdminListAssets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	assets, total, err := h.AssetService.ListAssets(repository.AssetListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		Status:   strings.TrimSpace(c.Query("status")),
		StoreID:  parseUintQuery(c, "store_id"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取资产列表失败", err)
		return
	}
	response.SuccessWithPage(c, assets, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminGetAsset 资产详情
func (h *Handler) AdminGetAsset(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "资产ID无效", nil)
		return
	}
	asset, err := h.AssetService.GetAsset(id)
	if err != nil {
		respondServiceError(c, err, "获取资产失败")
		return
	}
	response.Success(c, asset)
}

// AssignAssetRequest 分配资产请求
type AssignAssetRequest struct {
	StaffID uint `json:"staff_id" binding:"required"`
}

// AdminAssignAsset 将资产分配给员工
func (h *Handler) AdminAssignAsset(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "资产ID无效", nil)
		return
	}
	var req AssignAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	asset, err := h.AssetService.AssignAsset(actor, id, req.StaffID)
	if err != nil {
		respondServiceError(c, err, "分配资产失败")
		return
	}
	response.Success(c, asset)
}

// AdminUpdateAsset 更新资产
func (h *Handler) AdminUpdateAsset(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "资产ID无效", nil)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	asset, err := h.AssetService.UpdateAsset(actor, id, updates)
	if err != nil {
		respondServiceError(c, err, "更新资产失败")
		return
	}
	response.Success(c, asset)
}

// AdminDeleteAsset 删除资产
func (h *Handler) AdminDeleteAsset(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "资产ID无效", nil)
		return
	}
	if err := h.AssetService.DeleteAsset(actor, id); err != nil {
		respondServiceError(c, err, "删除资产失败")
		return
	}
	response.Success(c, nil)
}
