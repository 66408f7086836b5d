package admin

import (
	"strconv"
	"strings"

	"github.com/duka-admin/internal/http/response"
	"github.com/duka-admin/internal/repository"
	"github.com/duka-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCustomerRequest 创建客户请求
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	KRAPin  string `json:"kra_pin"`
	Notes   string `json:"notes"`
}

// AdminCreateCustomer 创建客户
func (h *Handler) AdminCreateCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	customer, err := h.CustomerService.CreateCustomer(actor, service.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		KRAPin:  req.KRAPin,
		Notes:   req.Notes,
	})
	if err != nil {
		respondServiceError(c, err, "创建客户失败")
		return
	}
	response.Success(c, customer)
}

// AdminListCustomers 客户列表
func (h *Handler) AdminListCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	customers, total, err := h.CustomerService.ListCustomers(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取客户列表失败", err)
		return
	}
	response.SuccessWithPage(c, customers, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminGetCustomer 客户详情
func (h *Handler) AdminGetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "客户ID无效", nil)
		return
	}
	customer, err := h.CustomerService.GetCustomer(id)
	if err != nil {
		respondServiceError(c, err, "获取客户失败")
		return
	}
	response.Success(c, customer)
}

// AdminUpdateCustomer 更新客户
func (h *Handler) AdminUpdateCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "客户ID无效", nil)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	customer, err := h.CustomerService.UpdateCustomer(actor, id, updates)
	if err != nil {
		respondServiceError(c, err, "更新客户失败")
		return
	}
	response.Success(c, customer)
}

// AdminDeleteCustomer 删除客户
func (h *Handler) AdminDeleteCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "客户ID无效", nil)
		return
	}
	if err := h.CustomerService.DeleteCustomer(actor, id); err != nil {
		respondServiceError(c, err, "删除客户失败")
		return
	}
	response.Success(c, nil)
}
