package admin

import (
	"strconv"
	"strings"

	"github.com/duka-admin/internal/http/response"
	"github.com/duka-admin/internal/repository"

	"github.com/gin-gonic/gin"
)

// CreateStoreRequest 创建门店请求
type CreateStoreRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}

// AdminCreateStore 创建门店
func (h *Handler) AdminCreateStore(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	store, err := h.StoreService.CreateStore(actor, req.Name, req.Location, req.Phone)
	if err != nil {
		respondServiceError(c, err, "创建门店失败")
		return
	}
	response.Success(c, store)
}

// AdminListStores 门店列表
func (h *Handler) AdminListStores(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	stores, total, err := h.StoreService.ListStores(repository.StoreListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: c.Query("only_active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取门店列表失败", err)
		return
	}
	response.SuccessWithPage(c, stores, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminGetStore 门店详情
func (h *Handler) AdminGetStore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "门店ID无效", nil)
		return
	}
	store, err := h.StoreService.GetStore(id)
	if err != nil {
		respondServiceError(c, err, "获取门店失败")
		return
	}
	response.Success(c, store)
}

// AdminUpdateStore 更新门店
func (h *Handler) AdminUpdateStore(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "门店ID无效", nil)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	store, err := h.StoreService.UpdateStore(actor, id, updates)
	if err != nil {
		respondServiceError(c, err, "更新门店失败")
		return
	}
	response.Success(c, store)
}

// AdminListStockLevels 门店库存水平
func (h *Handler) AdminListStockLevels(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "门店ID无效", nil)
		return
	}
	levels, err := h.StoreService.ListStockLevels(id)
	if err != nil {
		respondServiceError(c, err, "获取库存水平失败")
		return
	}
	response.Success(c, levels)
}

// AdminListStockTransactions 库存流水列表
func (h *Handler) AdminListStockTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.StockTxnListFilter{
		Page:      page,
		PageSize:  pageSize,
		StoreID:   parseUintQuery(c, "store_id"),
		ProductID: parseUintQuery(c, "product_id"),
		Type:      strings.TrimSpace(c.Query("type")),
		OrderID:   parseUintQuery(c, "order_id"),
	}
	var err error
	if filter.CreatedFrom, err = parseTimeNullable(c.Query("created_from")); err != nil {
		respondError(c, response.CodeBadRequest, "日期格式无效", err)
		return
	}
	if filter.CreatedTo, err = parseTimeNullable(c.Query("created_to")); err != nil {
		respondError(c, response.CodeBadRequest, "日期格式无效", err)
		return
	}

	txns, total, err := h.StoreService.ListStockTransactions(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取库存流水失败", err)
		return
	}
	response.SuccessWithPage(c, txns, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
