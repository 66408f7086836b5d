package service

import (
	"errors"
	"testing"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newInvoiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db := newTestDB(t, name)
	if err := db.AutoMigrate(&models.Invoice{}); err != nil {
		t.Fatalf("auto migrate invoice failed: %v", err)
	}
	return db
}

func newInvoiceServiceForTest(db *gorm.DB) *InvoiceService {
	return NewInvoiceService(
		db,
		repository.NewOrderRepository(db),
		repository.NewInvoiceRepository(db),
		NewPricer(16, false),
	)
}

func createDraftOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()
	customer := seedCustomer(t, db)
	p1 := seedProduct(t, db, "SKU-INV1", 100, 80, constants.TaxClassStandard16)
	p2 := seedProduct(t, db, "SKU-INV2", 50, 40, constants.TaxClassZeroRated)

	order, err := newOrderServiceForTest(db).CreateOrder(adminActor(), CreateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductID: p1.ID, Quantity: 3},
			{ProductID: p2.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	return order
}

func TestConvertOrderIssuesInvoice(t *testing.T) {
	db := newInvoiceTestDB(t, "invoice_convert")
	order := createDraftOrder(t, db)

	svc := newInvoiceServiceForTest(db)
	invoice, err := svc.ConvertOrder(adminActor(), order.ID, ConvertOrderInput{})
	if err != nil {
		t.Fatalf("ConvertOrder failed: %v", err)
	}

	if invoice.Status != constants.InvoiceStatusIssued {
		t.Fatalf("expected issued, got %s", invoice.Status)
	}
	if invoice.InvoiceNo == "" {
		t.Fatalf("expected invoice number to be generated")
	}
	if !invoice.GrossTotal.Decimal.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected gross 400, got %s", invoice.GrossTotal.String())
	}
	// 300 含 16% 税，100 零税率
	if !invoice.NetAmount.Decimal.Equal(decimal.RequireFromString("358.62")) {
		t.Fatalf("expected net 358.62, got %s", invoice.NetAmount.String())
	}
	if !invoice.TaxAmount.Decimal.Equal(decimal.RequireFromString("41.38")) {
		t.Fatalf("expected tax 41.38, got %s", invoice.TaxAmount.String())
	}

	var current models.Order
	if err := db.First(&current, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if current.BillingStatus != constants.BillingStatusConfirmed {
		t.Fatalf("expected billing confirmed, got %s", current.BillingStatus)
	}

	// 同一订单只能转开一次
	if _, err := svc.ConvertOrder(adminActor(), order.ID, ConvertOrderInput{}); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected state transition error on second conversion, got: %v", err)
	}
}

func TestConvertOrderRequiresDraftBilling(t *testing.T) {
	db := newInvoiceTestDB(t, "invoice_draft_guard")
	order := createDraftOrder(t, db)

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("billing_status", constants.BillingStatusShipped).Error; err != nil {
		t.Fatalf("force billing status failed: %v", err)
	}

	svc := newInvoiceServiceForTest(db)
	_, err := svc.ConvertOrder(adminActor(), order.ID, ConvertOrderInput{})
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected invalid state transition, got: %v", err)
	}
	var transitionErr *StateTransitionError
	if !errors.As(err, &transitionErr) || transitionErr.Required != constants.BillingStatusDraft {
		t.Fatalf("expected required draft, got: %+v", transitionErr)
	}
}

func TestMarkPaidAdvancesBilling(t *testing.T) {
	db := newInvoiceTestDB(t, "invoice_mark_paid")
	order := createDraftOrder(t, db)

	svc := newInvoiceServiceForTest(db)
	invoice, err := svc.ConvertOrder(adminActor(), order.ID, ConvertOrderInput{})
	if err != nil {
		t.Fatalf("ConvertOrder failed: %v", err)
	}

	paid, err := svc.MarkPaid(adminActor(), invoice.ID)
	if err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if paid.Status != constants.InvoiceStatusPaid {
		t.Fatalf("expected paid, got %s", paid.Status)
	}

	var current models.Order
	if err := db.First(&current, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if current.BillingStatus != constants.BillingStatusPaid {
		t.Fatalf("expected billing paid, got %s", current.BillingStatus)
	}

	// 已支付的发票不可重复标记
	if _, err := svc.MarkPaid(adminActor(), invoice.ID); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected invalid state transition on repeat mark, got: %v", err)
	}

	if _, err := svc.MarkPaid(Actor{AdminID: 2, Role: constants.RoleStaff}, invoice.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for staff role, got: %v", err)
	}
}
