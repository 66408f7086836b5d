package service

import (
	"fmt"
	"time"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/logger"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"

	"gorm.io/gorm"
)

// InvoiceService 发票服务（订单转发票与账务推进）
type InvoiceService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	invoiceRepo repository.InvoiceRepository
	pricer      *Pricer
}

// NewInvoiceService 创建发票服务
func NewInvoiceService(db *gorm.DB, orderRepo repository.OrderRepository, invoiceRepo repository.InvoiceRepository, pricer *Pricer) *InvoiceService {
	return &InvoiceService{
		db:          db,
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		pricer:      pricer,
	}
}

// ConvertOrderInput 订单转发票输入
type ConvertOrderInput struct {
	ExpectedDeliveryDate *time.Time
	Notes                string
	DueAt                *time.Time
}

// ConvertOrder 将 draft 订单转为发票，账务状态推进 draft→confirmed。
func (s *InvoiceService) ConvertOrder(actor Actor, orderID uint, input ConvertOrderInput) (*models.Invoice, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.BillingStatus != constants.BillingStatusDraft {
		return nil, &StateTransitionError{
			Current:  order.BillingStatus,
			Required: constants.BillingStatusDraft,
		}
	}
	if existing, err := s.invoiceRepo.GetByOrderID(order.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrDuplicateRecord
	}

	totals := s.pricer.TotalsOf(order.Items)
	invoice := &models.Invoice{
		InvoiceNo:  generateInvoiceNo(),
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		NetAmount:  totals.NetSubtotal,
		TaxAmount:  totals.TaxTotal,
		GrossTotal: totals.GrossTotal,
		Status:     constants.InvoiceStatusIssued,
		IssuedAt:   time.Now(),
		DueAt:      input.DueAt,
		CreatedBy:  actor.AdminID,
	}

	orderUpdates := map[string]interface{}{
		"billing_status": constants.BillingStatusConfirmed,
	}
	if input.ExpectedDeliveryDate != nil {
		orderUpdates["expected_delivery_date"] = *input.ExpectedDeliveryDate
	}
	if input.Notes != "" {
		orderUpdates["notes"] = input.Notes
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.invoiceRepo.WithTx(tx).Create(invoice); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).Updates(order.ID, orderUpdates)
	}); err != nil {
		return nil, err
	}

	logger.Infow("order_converted_to_invoice",
		"order_id", order.ID,
		"invoice_id", invoice.ID,
		"invoice_no", invoice.InvoiceNo,
		"gross_total", invoice.GrossTotal.String(),
	)
	return invoice, nil
}

// GetInvoice 获取发票详情
func (s *InvoiceService) GetInvoice(id uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	return invoice, nil
}

// ListInvoices 发票列表
func (s *InvoiceService) ListInvoices(filter repository.InvoiceListFilter) ([]models.Invoice, int64, error) {
	return s.invoiceRepo.List(filter)
}

// MarkPaid 将发票标记为已支付，订单账务状态推进至 paid。
func (s *InvoiceService) MarkPaid(actor Actor, id uint) (*models.Invoice, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	if invoice.Status != constants.InvoiceStatusIssued {
		return nil, &StateTransitionError{
			Current:  invoice.Status,
			Required: constants.InvoiceStatusIssued,
		}
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.invoiceRepo.WithTx(tx).Updates(invoice.ID, map[string]interface{}{
			"status": constants.InvoiceStatusPaid,
		}); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).Updates(invoice.OrderID, map[string]interface{}{
			"billing_status": constants.BillingStatusPaid,
		})
	}); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetByID(invoice.ID)
}

func generateInvoiceNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("INV%s%s", now, randNumeric(4))
}
