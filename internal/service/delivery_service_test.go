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

func newDeliveryServiceForTest(db *gorm.DB) *DeliveryService {
	return NewDeliveryService(
		db,
		repository.NewOrderRepository(db),
		repository.NewDeliveryRepository(db),
		nil,
		nil,
	)
}

func seedInTransitOrder(t *testing.T, db *gorm.DB, customerID uint, product models.Product) models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:           "SO-DLV-" + product.Code,
		BillingStatus:     constants.BillingStatusShipped,
		FulfillmentStatus: models.FulfillmentInTransit,
		CustomerID:        customerID,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := models.OrderItem{
		OrderID:     order.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    1,
		UnitPrice:   product.SellingPrice,
		TaxClass:    constants.TaxClassStandard16,
		LineTotal:   models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	return order
}

func TestCompleteDeliveryRecordsProof(t *testing.T) {
	db := newTestDB(t, "delivery_complete")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-DLV1", 100, 80, constants.TaxClassStandard16)
	order := seedInTransitOrder(t, db, customer.ID, product)

	svc := newDeliveryServiceForTest(db)
	updated, err := svc.CompleteDelivery(Actor{AdminID: 5, Role: constants.RoleStaff}, order.ID, CompleteDeliveryInput{
		RecipientName:  "Jane Wambui",
		RecipientPhone: "+254733000001",
		Notes:          "left at reception",
	})
	if err != nil {
		t.Fatalf("CompleteDelivery failed: %v", err)
	}

	if updated.FulfillmentStatus != models.FulfillmentComplete {
		t.Fatalf("expected complete, got %s", updated.FulfillmentStatus.String())
	}
	if updated.BillingStatus != constants.BillingStatusDelivered {
		t.Fatalf("expected billing delivered, got %s", updated.BillingStatus)
	}
	if updated.Delivery == nil {
		t.Fatalf("expected delivery record to be attached")
	}
	if updated.Delivery.RecipientName != "Jane Wambui" || updated.Delivery.RecipientPhone != "+254733000001" {
		t.Fatalf("unexpected delivery record: %+v", updated.Delivery)
	}
	if updated.Delivery.CompletedBy == nil || *updated.Delivery.CompletedBy != 5 {
		t.Fatalf("expected completed_by 5, got: %+v", updated.Delivery.CompletedBy)
	}
}

func TestCompleteDeliveryValidatesRecipient(t *testing.T) {
	db := newTestDB(t, "delivery_validation")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-DLV2", 100, 80, constants.TaxClassStandard16)
	order := seedInTransitOrder(t, db, customer.ID, product)

	svc := newDeliveryServiceForTest(db)

	if _, err := svc.CompleteDelivery(adminActor(), order.ID, CompleteDeliveryInput{
		RecipientName:  "  ",
		RecipientPhone: "+254733000001",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank name, got: %v", err)
	}
	if _, err := svc.CompleteDelivery(adminActor(), order.ID, CompleteDeliveryInput{
		RecipientName:  "Jane Wambui",
		RecipientPhone: "",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank phone, got: %v", err)
	}

	// 校验失败不得产生任何状态变化
	var current models.Order
	if err := db.First(&current, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if current.FulfillmentStatus != models.FulfillmentInTransit {
		t.Fatalf("expected order to remain in_transit, got %s", current.FulfillmentStatus.String())
	}
	var count int64
	if err := db.Model(&models.DeliveryRecord{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count delivery records failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no delivery record, got %d", count)
	}
}

func TestCompleteDeliveryRequiresInTransit(t *testing.T) {
	db := newTestDB(t, "delivery_state")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-DLV3", 100, 80, constants.TaxClassStandard16)
	order := seedInTransitOrder(t, db, customer.ID, product)

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("fulfillment_status", models.FulfillmentNew).Error; err != nil {
		t.Fatalf("force status failed: %v", err)
	}

	svc := newDeliveryServiceForTest(db)
	if _, err := svc.CompleteDelivery(adminActor(), order.ID, CompleteDeliveryInput{
		RecipientName:  "Jane Wambui",
		RecipientPhone: "+254733000001",
	}); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected invalid state transition, got: %v", err)
	}
}
