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

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Code            string  `json:"code" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	SellingPrice    float64 `json:"selling_price"`
	CostPrice       float64 `json:"cost_price"`
	DefaultTaxClass string  `json:"default_tax_class"`
}

// AdminCreateProduct 创建商品
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	product, err := h.ProductService.CreateProduct(actor, service.CreateProductInput{
		Code:            req.Code,
		Name:            req.Name,
		SellingPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(req.SellingPrice)),
		CostPrice:       models.NewMoneyFromDecimal(decimal.NewFromFloat(req.CostPrice)),
		DefaultTaxClass: req.DefaultTaxClass,
	})
	if err != nil {
		respondServiceError(c, err, "创建商品失败")
		return
	}
	response.Success(c, product)
}

// AdminListProducts 商品列表
func (h *Handler) AdminListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.ListProducts(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		TaxClass:   strings.TrimSpace(c.Query("tax_class")),
		OnlyActive: c.Query("only_active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminGetProduct 商品详情
func (h *Handler) AdminGetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "商品ID无效", nil)
		return
	}
	product, err := h.ProductService.GetProduct(id)
	if err != nil {
		respondServiceError(c, err, "获取商品失败")
		return
	}
	response.Success(c, product)
}

// AdminUpdateProduct 更新商品
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "商品ID无效", nil)
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	product, err := h.ProductService.UpdateProduct(actor, id, updates)
	if err != nil {
		respondServiceError(c, err, "更新商品失败")
		return
	}
	response.Success(c, product)
}

// AdminDeleteProduct 删除商品
func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "商品ID无效", nil)
		return
	}
	if err := h.ProductService.DeleteProduct(actor, id); err != nil {
		respondServiceError(c, err, "删除商品失败")
		return
	}
	response.Success(c, nil)
}
