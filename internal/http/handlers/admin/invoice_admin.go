package admin

import (
	"strconv"
	"strings"

	"github.com/duka-admin/internal/http/response"
	"github.com/duka-admin/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminListInvoices 发票列表
func (h *Handler) AdminListInvoices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.InvoiceListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: parseUintQuery(c, "customer_id"),
		Status:     strings.TrimSpace(c.Query("status")),
		InvoiceNo:  strings.TrimSpace(c.Query("invoice_no")),
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

	invoices, total, err := h.InvoiceService.ListInvoices(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取发票列表失败", err)
		return
	}
	response.SuccessWithPage(c, invoices, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AdminGetInvoice 发票详情
func (h *Handler) AdminGetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "发票ID无效", nil)
		return
	}
	invoice, err := h.InvoiceService.GetInvoice(id)
	if err != nil {
		respondServiceError(c, err, "获取发票失败")
		return
	}
	response.Success(c, invoice)
}

// AdminMarkInvoicePaid 标记发票已支付
func (h *Handler) AdminMarkInvoicePaid(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "发票ID无效", nil)
		return
	}
	invoice, err := h.InvoiceService.MarkPaid(actor, id)
	if err != nil {
		respondServiceError(c, err, "标记发票失败")
		return
	}
	response.Success(c, invoice)
}
