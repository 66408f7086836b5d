package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Rider{},
		&models.Store{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryRecord{},
		&models.StockReturnRecord{},
		&models.StockReturnItem{},
		&models.StockLevel{},
		&models.StockTransaction{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func adminActor() Actor {
	return Actor{AdminID: 1, Role: constants.RoleAdmin}
}

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()
	customer := models.Customer{Name: "Tumaini Supermart", Phone: "+254722000002"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, code string, sellingPrice, costPrice int64, taxClass string) models.Product {
	t.Helper()
	product := models.Product{
		Code:            code,
		Name:            "Product " + code,
		SellingPrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(sellingPrice)),
		CostPrice:       models.NewMoneyFromDecimal(decimal.NewFromInt(costPrice)),
		DefaultTaxClass: taxClass,
		IsActive:        true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func newOrderServiceForTest(db *gorm.DB) *OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCustomerRepository(db),
		NewPricer(16, false),
		nil,
	)
}

func TestCreateOrderTotalEqualsItemSum(t *testing.T) {
	db := newTestDB(t, "order_service_create")
	customer := seedCustomer(t, db)
	p1 := seedProduct(t, db, "SKU-1", 100, 80, constants.TaxClassStandard16)
	p2 := seedProduct(t, db, "SKU-2", 50, 40, constants.TaxClassZeroRated)

	svc := newOrderServiceForTest(db)
	order, err := svc.CreateOrder(adminActor(), CreateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductID: p1.ID, Quantity: 3},
			{ProductID: p2.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if order.FulfillmentStatus != models.FulfillmentNew {
		t.Fatalf("expected fulfillment status new, got %s", order.FulfillmentStatus.String())
	}
	if order.BillingStatus != constants.BillingStatusDraft {
		t.Fatalf("expected billing status draft, got %s", order.BillingStatus)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}

	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.LineTotal.Decimal)
	}
	if !order.TotalAmount.Decimal.Equal(sum) {
		t.Fatalf("total amount %s must equal item sum %s", order.TotalAmount.String(), sum.String())
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected total 400, got %s", order.TotalAmount.String())
	}
}

func TestCreateOrderItemsFallBackToCatalogDefaults(t *testing.T) {
	db := newTestDB(t, "order_service_defaults")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-DEF", 250, 200, constants.TaxClassStandard16)

	svc := newOrderServiceForTest(db)
	override := models.NewMoneyFromDecimal(decimal.NewFromInt(230))
	order, err := svc.CreateOrder(adminActor(), CreateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 1, UnitPrice: &override, TaxClass: constants.TaxClassExempted},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if !order.Items[0].UnitPrice.Decimal.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected catalog price 250, got %s", order.Items[0].UnitPrice.String())
	}
	if order.Items[0].TaxClass != constants.TaxClassStandard16 {
		t.Fatalf("expected catalog tax class, got %s", order.Items[0].TaxClass)
	}
	if !order.Items[1].UnitPrice.Decimal.Equal(decimal.NewFromInt(230)) {
		t.Fatalf("expected override price 230, got %s", order.Items[1].UnitPrice.String())
	}
	if order.Items[1].TaxClass != constants.TaxClassExempted {
		t.Fatalf("expected override tax class, got %s", order.Items[1].TaxClass)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t, "order_service_validation")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-V", 100, 80, constants.TaxClassStandard16)
	svc := newOrderServiceForTest(db)

	if _, err := svc.CreateOrder(adminActor(), CreateOrderInput{
		CustomerID: customer.ID,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty items, got: %v", err)
	}

	if _, err := svc.CreateOrder(adminActor(), CreateOrderInput{
		CustomerID: 9999,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown customer, got: %v", err)
	}

	if _, err := svc.CreateOrder(adminActor(), CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 0}},
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for zero quantity, got: %v", err)
	}
}

func TestCreateOrderRequiresAdminCapability(t *testing.T) {
	db := newTestDB(t, "order_service_rbac")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-R", 100, 80, constants.TaxClassStandard16)
	svc := newOrderServiceForTest(db)

	for _, role := range []string{constants.RoleStock, constants.RoleStaff} {
		_, err := svc.CreateOrder(Actor{AdminID: 2, Role: role}, CreateOrderInput{
			CustomerID: customer.ID,
			Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("role %s: expected unauthorized, got: %v", role, err)
		}
	}
}

func TestEditOrderStateTransitionGuard(t *testing.T) {
	db := newTestDB(t, "order_service_transition")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-T", 100, 80, constants.TaxClassStandard16)
	svc := newOrderServiceForTest(db)

	order, err := svc.CreateOrder(adminActor(), CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// New → Complete 不在流转表中
	target := models.FulfillmentComplete
	if _, err := svc.EditOrder(adminActor(), order.ID, EditOrderInput{FulfillmentStatus: &target}); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected invalid state transition, got: %v", err)
	}

	// New → Approved 合法
	target = models.FulfillmentApproved
	updated, err := svc.EditOrder(adminActor(), order.ID, EditOrderInput{FulfillmentStatus: &target})
	if err != nil {
		t.Fatalf("EditOrder failed: %v", err)
	}
	if updated.FulfillmentStatus != models.FulfillmentApproved {
		t.Fatalf("expected approved, got %s", updated.FulfillmentStatus.String())
	}
}

func TestEditOrderRejectsWorkflowOnlyStatuses(t *testing.T) {
	db := newTestDB(t, "order_service_workflow_only")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-WF", 100, 80, constants.TaxClassStandard16)
	svc := newOrderServiceForTest(db)

	order, err := svc.CreateOrder(adminActor(), CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	approve := models.FulfillmentApproved
	if _, err := svc.EditOrder(adminActor(), order.ID, EditOrderInput{FulfillmentStatus: &approve}); err != nil {
		t.Fatalf("EditOrder to approved failed: %v", err)
	}

	// InTransit/Complete/ReturnedToStock 只能由派单、签收与回库工作流产生，
	// 编辑接口直接设置会绕过库存扣减等副作用
	for _, target := range []models.FulfillmentStatus{
		models.FulfillmentInTransit,
		models.FulfillmentComplete,
		models.FulfillmentReturnedToStock,
	} {
		tg := target
		if _, err := svc.EditOrder(adminActor(), order.ID, EditOrderInput{FulfillmentStatus: &tg}); !errors.Is(err, ErrInvalidStateTransition) {
			t.Fatalf("target %s: expected invalid state transition, got: %v", target.String(), err)
		}
	}

	var current models.Order
	if err := db.First(&current, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if current.FulfillmentStatus != models.FulfillmentApproved {
		t.Fatalf("expected order to remain approved, got %s", current.FulfillmentStatus.String())
	}

	// Approved→Cancelled 仍可经编辑直接设置
	cancel := models.FulfillmentCancelled
	updated, err := svc.EditOrder(adminActor(), order.ID, EditOrderInput{FulfillmentStatus: &cancel})
	if err != nil {
		t.Fatalf("EditOrder to cancelled failed: %v", err)
	}
	if updated.FulfillmentStatus != models.FulfillmentCancelled {
		t.Fatalf("expected cancelled, got %s", updated.FulfillmentStatus.String())
	}

	// 回库同样只能走回库工作流
	restock := models.FulfillmentReturnedToStock
	if _, err := svc.EditOrder(adminActor(), order.ID, EditOrderInput{FulfillmentStatus: &restock}); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected invalid state transition for returned_to_stock via edit, got: %v", err)
	}
}

func TestEditOrderRejectsTerminalState(t *testing.T) {
	db := newTestDB(t, "order_service_terminal")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-TM", 100, 80, constants.TaxClassStandard16)
	svc := newOrderServiceForTest(db)

	order, err := svc.CreateOrder(adminActor(), CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("fulfillment_status", models.FulfillmentComplete).Error; err != nil {
		t.Fatalf("force status failed: %v", err)
	}

	notes := "late edit"
	if _, err := svc.EditOrder(adminActor(), order.ID, EditOrderInput{Notes: &notes}); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected invalid state transition on terminal order, got: %v", err)
	}
}

func TestEditOrderReplacingItemsReprices(t *testing.T) {
	db := newTestDB(t, "order_service_reprice")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-RP", 100, 80, constants.TaxClassStandard16)
	svc := newOrderServiceForTest(db)

	order, err := svc.CreateOrder(adminActor(), CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	newItems := []OrderItemInput{{ProductID: product.ID, Quantity: 5}}
	updated, err := svc.EditOrder(adminActor(), order.ID, EditOrderInput{Items: &newItems})
	if err != nil {
		t.Fatalf("EditOrder failed: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].Quantity != 5 {
		t.Fatalf("expected replaced items, got: %+v", updated.Items)
	}
	if !updated.TotalAmount.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected repriced total 500, got %s", updated.TotalAmount.String())
	}
}
