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

// OrderItemRequest 订单项请求
type OrderItemRequest struct {
	ProductID uint     `json:"product_id" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required"`
	UnitPrice *float64 `json:"unit_price"`
	TaxClass  string   `json:"tax_class"`
}

func (r OrderItemRequest) toServiceInput() service.OrderItemInput {
	input := service.OrderItemInput{
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		TaxClass:  r.TaxClass,
	}
	if r.UnitPrice != nil {
		price := models.NewMoneyFromDecimal(decimal.NewFromFloat(*r.UnitPrice))
		input.UnitPrice = &price
	}
	return input
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	CustomerID           uint               `json:"customer_id" binding:"required"`
	OrderDate            string             `json:"order_date"`
	ExpectedDeliveryDate string             `json:"expected_delivery_date"`
	Notes                string             `json:"notes"`
	Items                []OrderItemRequest `json:"items" binding:"required"`
}

// AdminCreateOrder 创建销售订单
func (h *Handler) AdminCreateOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	orderDate, err := parseTimeNullable(req.OrderDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "下单日期格式无效", err)
		return
	}
	expectedAt, err := parseTimeNullable(req.ExpectedDeliveryDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "预计送达日期格式无效", err)
		return
	}

	input := service.CreateOrderInput{
		CustomerID:           req.CustomerID,
		ExpectedDeliveryDate: expectedAt,
		Notes:                req.Notes,
	}
	if orderDate != nil {
		input.OrderDate = *orderDate
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, item.toServiceInput())
	}

	order, err := h.OrderService.CreateOrder(actor, input)
	if err != nil {
		respondServiceError(c, err, "创建订单失败")
		return
	}
	response.Success(c, order)
}

// AdminListOrders 订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		CustomerID:    parseUintQuery(c, "customer_id"),
		RiderID:       parseUintQuery(c, "rider_id"),
		BillingStatus: strings.TrimSpace(c.Query("billing_status")),
		OrderNo:       strings.TrimSpace(c.Query("order_no")),
	}

	if raw := strings.TrimSpace(c.Query("fulfillment_status")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || !models.FulfillmentStatus(value).Valid() {
			respondError(c, response.CodeBadRequest, "履约状态无效", nil)
			return
		}
		status := models.FulfillmentStatus(value)
		filter.FulfillmentStatus = &status
	}

	var err error
	if filter.OrderDateFrom, err = parseTimeNullable(c.Query("order_date_from")); err != nil {
		respondError(c, response.CodeBadRequest, "日期格式无效", err)
		return
	}
	if filter.OrderDateTo, err = parseTimeNullable(c.Query("order_date_to")); err != nil {
		respondError(c, response.CodeBadRequest, "日期格式无效", err)
		return
	}
	if filter.CreatedFrom, err = parseTimeNullable(c.Query("created_from")); err != nil {
		respondError(c, response.CodeBadRequest, "日期格式无效", err)
		return
	}
	if filter.CreatedTo, err = parseTimeNullable(c.Query("created_to")); err != nil {
		respondError(c, response.CodeBadRequest, "日期格式无效", err)
		return
	}

	orders, total, err := h.OrderService.ListOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取订单列表失败", err)
		return
	}

	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminGetOrder 订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "订单ID无效", nil)
		return
	}
	order, err := h.OrderService.GetOrder(id)
	if err != nil {
		respondServiceError(c, err, "获取订单失败")
		return
	}
	response.Success(c, order)
}

// EditOrderRequest 编辑订单请求，缺省字段表示不修改
type EditOrderRequest struct {
	ExpectedDeliveryDate *string             `json:"expected_delivery_date"`
	Notes                *string             `json:"notes"`
	FulfillmentStatus    *int                `json:"fulfillment_status"`
	Items                *[]OrderItemRequest `json:"items"`
}

// AdminEditOrder 编辑订单字段与履约状态
func (h *Handler) AdminEditOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "订单ID无效", nil)
		return
	}
	var req EditOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	input := service.EditOrderInput{Notes: req.Notes}
	if req.ExpectedDeliveryDate != nil {
		expectedAt, err := parseTimeNullable(*req.ExpectedDeliveryDate)
		if err != nil {
			respondError(c, response.CodeBadRequest, "预计送达日期格式无效", err)
			return
		}
		input.ExpectedDeliveryDate = expectedAt
	}
	if req.FulfillmentStatus != nil {
		status := models.FulfillmentStatus(*req.FulfillmentStatus)
		input.FulfillmentStatus = &status
	}
	if req.Items != nil {
		items := make([]service.OrderItemInput, 0, len(*req.Items))
		for _, item := range *req.Items {
			items = append(items, item.toServiceInput())
		}
		input.Items = &items
	}

	order, err := h.OrderService.EditOrder(actor, id, input)
	if err != nil {
		respondServiceError(c, err, "编辑订单失败")
		return
	}
	response.Success(c, order)
}

// AssignRiderRequest 指派骑手请求
type AssignRiderRequest struct {
	RiderID uint `json:"rider_id" binding:"required"`
}

// AdminAssignRider 指派骑手发货
func (h *Handler) AdminAssignRider(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "订单ID无效", nil)
		return
	}
	var req AssignRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	order, err := h.DispatchService.AssignRider(actor, id, req.RiderID)
	if err != nil {
		respondServiceError(c, err, "指派骑手失败")
		return
	}
	response.Success(c, order)
}

// AdminCompleteDelivery 完成订单交付（multipart 表单，凭证图片可选）
func (h *Handler) AdminCompleteDelivery(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "订单ID无效", nil)
		return
	}

	input := service.CompleteDeliveryInput{
		RecipientName:  c.PostForm("recipient_name"),
		RecipientPhone: c.PostForm("recipient_phone"),
		Notes:          c.PostForm("notes"),
	}
	if file, err := c.FormFile("proof_image"); err == nil {
		input.ProofImage = file
	}

	order, err := h.DeliveryService.CompleteDelivery(actor, id, input)
	if err != nil {
		respondServiceError(c, err, "交付完成失败")
		return
	}
	response.Success(c, order)
}

// AdminGetReturnPlan 查询回库计划
func (h *Handler) AdminGetReturnPlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "订单ID无效", nil)
		return
	}
	lines, err := h.ReturnsService.BuildReturnPlan(id)
	if err != nil {
		respondServiceError(c, err, "获取回库计划失败")
		return
	}
	response.Success(c, gin.H{"lines": lines})
}

// ReturnLineRequest 回库提交行
type ReturnLineRequest struct {
	ProductID uint     `json:"product_id" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required"`
	UnitCost  *float64 `json:"unit_cost"`
}

// ReceiveToStockRequest 回库提交请求
type ReceiveToStockRequest struct {
	StoreID uint                `json:"store_id" binding:"required"`
	Notes   string              `json:"notes"`
	Lines   []ReturnLineRequest `json:"lines" binding:"required"`
}

// AdminReceiveToStock 取消订单商品回库
func (h *Handler) AdminReceiveToStock(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "订单ID无效", nil)
		return
	}
	var req ReceiveToStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	input := service.ReceiveToStockInput{
		StoreID: req.StoreID,
		Notes:   req.Notes,
	}
	for _, line := range req.Lines {
		lineInput := service.ReturnLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if line.UnitCost != nil {
			cost := models.NewMoneyFromDecimal(decimal.NewFromFloat(*line.UnitCost))
			lineInput.UnitCost = &cost
		}
		input.Lines = append(input.Lines, lineInput)
	}

	order, err := h.ReturnsService.ReceiveToStock(actor, id, input)
	if err != nil {
		respondServiceError(c, err, "回库失败")
		return
	}
	response.Success(c, order)
}

// ConvertOrderRequest 订单转发票请求
type ConvertOrderRequest struct {
	ExpectedDeliveryDate string `json:"expected_delivery_date"`
	Notes                string `json:"notes"`
	DueAt                string `json:"due_at"`
}

// AdminConvertOrderToInvoice 将订单转为发票
func (h *Handler) AdminConvertOrderToInvoice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "订单ID无效", nil)
		return
	}
	var req ConvertOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	input := service.ConvertOrderInput{Notes: req.Notes}
	var err error
	if input.ExpectedDeliveryDate, err = parseTimeNullable(req.ExpectedDeliveryDate); err != nil {
		respondError(c, response.CodeBadRequest, "预计送达日期格式无效", err)
		return
	}
	if input.DueAt, err = parseTimeNullable(req.DueAt); err != nil {
		respondError(c, response.CodeBadRequest, "到期日格式无效", err)
		return
	}

	invoice, err := h.InvoiceService.ConvertOrder(actor, id, input)
	if err != nil {
		respondServiceError(c, err, "订单转发票失败")
		return
	}
	response.Success(c, invoice)
}
