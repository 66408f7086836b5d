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

func newDispatchServiceForTest(db *gorm.DB, storeID uint) *DispatchService {
	return NewDispatchService(
		db,
		repository.NewOrderRepository(db),
		repository.NewRiderRepository(db),
		repository.NewStockRepository(db),
		repository.NewProductRepository(db),
		nil,
		storeID,
	)
}

func seedApprovedOrder(t *testing.T, db *gorm.DB, customerID uint, items []models.OrderItem) models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:           "SO-TEST-" + items[0].ProductName,
		BillingStatus:     constants.BillingStatusDraft,
		FulfillmentStatus: models.FulfillmentApproved,
		CustomerID:        customerID,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("create order items failed: %v", err)
	}
	return order
}

func TestAssignRiderDecrementsStockAtomically(t *testing.T) {
	db := newTestDB(t, "dispatch_assign")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-D1", 100, 80, constants.TaxClassStandard16)

	store := models.Store{Name: "Nairobi CBD", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	rider := models.Rider{Name: "Brian Otieno", Phone: "+254711000001", Status: constants.RiderStatusActive}
	if err := db.Create(&rider).Error; err != nil {
		t.Fatalf("create rider failed: %v", err)
	}
	if err := db.Create(&models.StockLevel{StoreID: store.ID, ProductID: product.ID, QuantityOnHand: 10}).Error; err != nil {
		t.Fatalf("create stock level failed: %v", err)
	}

	order := seedApprovedOrder(t, db, customer.ID, []models.OrderItem{{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    3,
		UnitPrice:   product.SellingPrice,
		TaxClass:    constants.TaxClassStandard16,
		LineTotal:   models.NewMoneyFromDecimal(decimal.NewFromInt(300)),
	}})

	svc := newDispatchServiceForTest(db, store.ID)
	updated, err := svc.AssignRider(Actor{AdminID: 7, Role: constants.RoleStock}, order.ID, rider.ID)
	if err != nil {
		t.Fatalf("AssignRider failed: %v", err)
	}

	if updated.FulfillmentStatus != models.FulfillmentInTransit {
		t.Fatalf("expected in_transit, got %s", updated.FulfillmentStatus.String())
	}
	if updated.BillingStatus != constants.BillingStatusShipped {
		t.Fatalf("expected billing shipped, got %s", updated.BillingStatus)
	}
	if updated.RiderID == nil || *updated.RiderID != rider.ID {
		t.Fatalf("expected rider %d assigned, got: %+v", rider.ID, updated.RiderID)
	}
	if updated.AssignedAt == nil {
		t.Fatalf("expected assigned_at to be set")
	}

	var level models.StockLevel
	if err := db.Where("store_id = ? AND product_id = ?", store.ID, product.ID).First(&level).Error; err != nil {
		t.Fatalf("load stock level failed: %v", err)
	}
	if level.QuantityOnHand != 7 {
		t.Fatalf("expected on-hand 7 after dispatch, got %d", level.QuantityOnHand)
	}

	var txns []models.StockTransaction
	if err := db.Where("order_id = ?", order.ID).Find(&txns).Error; err != nil {
		t.Fatalf("load stock transactions failed: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected 1 stock transaction, got %d", len(txns))
	}
	if txns[0].Quantity != -3 {
		t.Fatalf("expected quantity -3, got %d", txns[0].Quantity)
	}
	if txns[0].ReferenceType != constants.StockTxnRefSalesOrderDispatch {
		t.Fatalf("unexpected reference type: %s", txns[0].ReferenceType)
	}
	if !txns[0].UnitCost.Decimal.Equal(product.CostPrice.Decimal) {
		t.Fatalf("expected unit cost %s, got %s", product.CostPrice.String(), txns[0].UnitCost.String())
	}
}

func TestAssignRiderRejectsRepeatDispatch(t *testing.T) {
	db := newTestDB(t, "dispatch_repeat")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-D2", 100, 80, constants.TaxClassStandard16)

	store := models.Store{Name: "Westlands", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	rider := models.Rider{Name: "Kevin Mwangi", Phone: "+254711000002", Status: constants.RiderStatusActive}
	if err := db.Create(&rider).Error; err != nil {
		t.Fatalf("create rider failed: %v", err)
	}
	if err := db.Create(&models.StockLevel{StoreID: store.ID, ProductID: product.ID, QuantityOnHand: 10}).Error; err != nil {
		t.Fatalf("create stock level failed: %v", err)
	}

	order := seedApprovedOrder(t, db, customer.ID, []models.OrderItem{{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    2,
		UnitPrice:   product.SellingPrice,
		TaxClass:    constants.TaxClassStandard16,
		LineTotal:   models.NewMoneyFromDecimal(decimal.NewFromInt(200)),
	}})

	svc := newDispatchServiceForTest(db, store.ID)
	if _, err := svc.AssignRider(Actor{AdminID: 7, Role: constants.RoleStock}, order.ID, rider.ID); err != nil {
		t.Fatalf("first AssignRider failed: %v", err)
	}

	if _, err := svc.AssignRider(Actor{AdminID: 7, Role: constants.RoleStock}, order.ID, rider.ID); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected invalid state transition on repeat dispatch, got: %v", err)
	}

	// 库存只应被扣减一次
	var level models.StockLevel
	if err := db.Where("store_id = ? AND product_id = ?", store.ID, product.ID).First(&level).Error; err != nil {
		t.Fatalf("load stock level failed: %v", err)
	}
	if level.QuantityOnHand != 8 {
		t.Fatalf("expected on-hand 8, got %d", level.QuantityOnHand)
	}
}

func TestAssignRiderRollsBackOnLedgerFailure(t *testing.T) {
	db := newTestDB(t, "dispatch_rollback")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-D4", 100, 80, constants.TaxClassStandard16)

	store := models.Store{Name: "Rollback Depot", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	rider := models.Rider{Name: "Dennis Kiprop", Phone: "+254711000003", Status: constants.RiderStatusActive}
	if err := db.Create(&rider).Error; err != nil {
		t.Fatalf("create rider failed: %v", err)
	}
	if err := db.Create(&models.StockLevel{StoreID: store.ID, ProductID: product.ID, QuantityOnHand: 10}).Error; err != nil {
		t.Fatalf("create stock level failed: %v", err)
	}

	order := seedApprovedOrder(t, db, customer.ID, []models.OrderItem{{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    3,
		UnitPrice:   product.SellingPrice,
		TaxClass:    constants.TaxClassStandard16,
		LineTotal:   models.NewMoneyFromDecimal(decimal.NewFromInt(300)),
	}})

	// 删除流水表，迫使事务在写入流水时失败
	if err := db.Migrator().DropTable(&models.StockTransaction{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	svc := newDispatchServiceForTest(db, store.ID)
	_, err := svc.AssignRider(Actor{AdminID: 7, Role: constants.RoleStock}, order.ID, rider.ID)
	if !errors.Is(err, ErrDependencyFailure) {
		t.Fatalf("expected dependency failure, got: %v", err)
	}

	// 状态与库存均不得改变
	var current models.Order
	if err := db.First(&current, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if current.FulfillmentStatus != models.FulfillmentApproved {
		t.Fatalf("expected order to remain approved, got %s", current.FulfillmentStatus.String())
	}
	if current.RiderID != nil {
		t.Fatalf("expected no rider assignment, got: %+v", current.RiderID)
	}
	var level models.StockLevel
	if err := db.Where("store_id = ? AND product_id = ?", store.ID, product.ID).First(&level).Error; err != nil {
		t.Fatalf("load stock level failed: %v", err)
	}
	if level.QuantityOnHand != 10 {
		t.Fatalf("expected on-hand unchanged at 10, got %d", level.QuantityOnHand)
	}
}

func TestAssignRiderCapabilityAndValidation(t *testing.T) {
	db := newTestDB(t, "dispatch_rbac")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-D3", 100, 80, constants.TaxClassStandard16)

	store := models.Store{Name: "Mombasa Nyali", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	order := seedApprovedOrder(t, db, customer.ID, []models.OrderItem{{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    1,
		UnitPrice:   product.SellingPrice,
		TaxClass:    constants.TaxClassStandard16,
		LineTotal:   models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	}})

	svc := newDispatchServiceForTest(db, store.ID)

	if _, err := svc.AssignRider(Actor{AdminID: 8, Role: constants.RoleStaff}, order.ID, 1); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for staff role, got: %v", err)
	}

	if _, err := svc.AssignRider(Actor{AdminID: 7, Role: constants.RoleStock}, order.ID, 9999); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown rider, got: %v", err)
	}

	if _, err := svc.AssignRider(Actor{AdminID: 7, Role: constants.RoleStock}, 9999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown order, got: %v", err)
	}
}
