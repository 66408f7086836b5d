package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newReturnsServiceForTest(db *gorm.DB) *ReturnsService {
	return NewReturnsService(
		db,
		repository.NewOrderRepository(db),
		repository.NewStoreRepository(db),
		repository.NewStockRepository(db),
		repository.NewProductRepository(db),
		repository.NewStockReturnRepository(db),
		nil,
	)
}

func seedCancelledOrder(t *testing.T, db *gorm.DB, customerID uint, items []models.OrderItem) models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:           "SO-RET-" + items[0].ProductName,
		BillingStatus:     constants.BillingStatusShipped,
		FulfillmentStatus: models.FulfillmentCancelled,
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

func TestBuildReturnPlanPrefillsFromOrder(t *testing.T) {
	db := newTestDB(t, "returns_plan")
	customer := seedCustomer(t, db)
	p1 := seedProduct(t, db, "SKU-RT1", 100, 80, constants.TaxClassStandard16)
	p2 := seedProduct(t, db, "SKU-RT2", 50, 40, constants.TaxClassZeroRated)

	order := seedCancelledOrder(t, db, customer.ID, []models.OrderItem{
		{ProductID: p1.ID, ProductName: p1.Name, Quantity: 5, UnitPrice: p1.SellingPrice, TaxClass: constants.TaxClassStandard16},
		{ProductID: p2.ID, ProductName: p2.Name, Quantity: 2, UnitPrice: p2.SellingPrice, TaxClass: constants.TaxClassZeroRated},
	})

	svc := newReturnsServiceForTest(db)
	lines, err := svc.BuildReturnPlan(order.ID)
	if err != nil {
		t.Fatalf("BuildReturnPlan failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 plan lines, got %d", len(lines))
	}
	if lines[0].Quantity != 5 || lines[0].OriginalQuantity != 5 {
		t.Fatalf("expected prefilled quantity 5, got: %+v", lines[0])
	}
	if !lines[0].UnitCost.Decimal.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected catalog cost 80, got %s", lines[0].UnitCost.String())
	}
}

func TestReceiveToStockRestoresInventory(t *testing.T) {
	db := newTestDB(t, "returns_receive")
	customer := seedCustomer(t, db)
	p1 := seedProduct(t, db, "SKU-RT3", 100, 80, constants.TaxClassStandard16)
	p2 := seedProduct(t, db, "SKU-RT4", 50, 40, constants.TaxClassZeroRated)

	store := models.Store{Name: "Returns Depot", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	if err := db.Create(&models.StockLevel{StoreID: store.ID, ProductID: p1.ID, QuantityOnHand: 10}).Error; err != nil {
		t.Fatalf("create stock level failed: %v", err)
	}

	order := seedCancelledOrder(t, db, customer.ID, []models.OrderItem{
		{ProductID: p1.ID, ProductName: p1.Name, Quantity: 5, UnitPrice: p1.SellingPrice, TaxClass: constants.TaxClassStandard16},
		{ProductID: p2.ID, ProductName: p2.Name, Quantity: 2, UnitPrice: p2.SellingPrice, TaxClass: constants.TaxClassZeroRated},
	})

	svc := newReturnsServiceForTest(db)
	updated, err := svc.ReceiveToStock(Actor{AdminID: 3, Role: constants.RoleStock}, order.ID, ReceiveToStockInput{
		StoreID: store.ID,
		Notes:   "customer cancelled before delivery",
		Lines: []ReturnLineInput{
			{ProductID: p1.ID, Quantity: 5},
			{ProductID: p2.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("ReceiveToStock failed: %v", err)
	}

	if updated.FulfillmentStatus != models.FulfillmentReturnedToStock {
		t.Fatalf("expected returned_to_stock, got %s", updated.FulfillmentStatus.String())
	}
	if updated.StockReturn == nil {
		t.Fatalf("expected stock return record to be attached")
	}
	if len(updated.StockReturn.Items) != 2 {
		t.Fatalf("expected 2 return items, got %d", len(updated.StockReturn.Items))
	}

	var level models.StockLevel
	if err := db.Where("store_id = ? AND product_id = ?", store.ID, p1.ID).First(&level).Error; err != nil {
		t.Fatalf("load stock level failed: %v", err)
	}
	if level.QuantityOnHand != 15 {
		t.Fatalf("expected on-hand 15 after return, got %d", level.QuantityOnHand)
	}
	// 原先无库存行的商品按回库数量初始化
	var level2 models.StockLevel
	if err := db.Where("store_id = ? AND product_id = ?", store.ID, p2.ID).First(&level2).Error; err != nil {
		t.Fatalf("load stock level failed: %v", err)
	}
	if level2.QuantityOnHand != 2 {
		t.Fatalf("expected on-hand 2 after return, got %d", level2.QuantityOnHand)
	}

	var txns []models.StockTransaction
	if err := db.Where("order_id = ?", order.ID).Find(&txns).Error; err != nil {
		t.Fatalf("load stock transactions failed: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 stock transactions, got %d", len(txns))
	}
	for _, txn := range txns {
		if txn.Quantity <= 0 {
			t.Fatalf("expected positive return quantity, got %d", txn.Quantity)
		}
		if txn.ReferenceType != constants.StockTxnRefSalesOrderReturn {
			t.Fatalf("unexpected reference type: %s", txn.ReferenceType)
		}
	}

	// 同一订单不可重复回库
	if _, err := svc.ReceiveToStock(Actor{AdminID: 3, Role: constants.RoleStock}, order.ID, ReceiveToStockInput{
		StoreID: store.ID,
		Lines:   []ReturnLineInput{{ProductID: p1.ID, Quantity: 1}},
	}); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected invalid state transition on resubmit, got: %v", err)
	}
}

func TestReceiveToStockRejectsExceededQuantity(t *testing.T) {
	db := newTestDB(t, "returns_exceeded")
	customer := seedCustomer(t, db)
	p1 := seedProduct(t, db, "SKU-RT5", 100, 80, constants.TaxClassStandard16)
	p2 := seedProduct(t, db, "SKU-RT6", 50, 40, constants.TaxClassZeroRated)

	store := models.Store{Name: "Exceeded Depot", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	order := seedCancelledOrder(t, db, customer.ID, []models.OrderItem{
		{ProductID: p1.ID, ProductName: p1.Name, Quantity: 5, UnitPrice: p1.SellingPrice, TaxClass: constants.TaxClassStandard16},
		{ProductID: p2.ID, ProductName: p2.Name, Quantity: 2, UnitPrice: p2.SellingPrice, TaxClass: constants.TaxClassZeroRated},
	})

	svc := newReturnsServiceForTest(db)
	_, err := svc.ReceiveToStock(Actor{AdminID: 3, Role: constants.RoleStock}, order.ID, ReceiveToStockInput{
		StoreID: store.ID,
		Lines: []ReturnLineInput{
			{ProductID: p1.ID, Quantity: 6},
			{ProductID: p2.ID, Quantity: 2},
		},
	})
	if !errors.Is(err, ErrQuantityExceeded) {
		t.Fatalf("expected quantity exceeded, got: %v", err)
	}
	var exceededErr *QuantityExceededError
	if !errors.As(err, &exceededErr) {
		t.Fatalf("expected *QuantityExceededError, got: %T", err)
	}
	if len(exceededErr.Products) != 1 || !strings.Contains(exceededErr.Products[0], p1.Code) {
		t.Fatalf("expected offending product %s to be named, got: %v", p1.Name, exceededErr.Products)
	}

	// 校验失败不得产生任何副作用
	var current models.Order
	if err := db.First(&current, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if current.FulfillmentStatus != models.FulfillmentCancelled {
		t.Fatalf("expected order to remain cancelled, got %s", current.FulfillmentStatus.String())
	}
	var count int64
	if err := db.Model(&models.StockTransaction{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count stock transactions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no stock transactions, got %d", count)
	}
}

func TestReceiveToStockRollsBackOnLedgerFailure(t *testing.T) {
	db := newTestDB(t, "returns_rollback")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-RT8", 100, 80, constants.TaxClassStandard16)

	store := models.Store{Name: "Rollback Returns Depot", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	if err := db.Create(&models.StockLevel{StoreID: store.ID, ProductID: product.ID, QuantityOnHand: 10}).Error; err != nil {
		t.Fatalf("create stock level failed: %v", err)
	}
	order := seedCancelledOrder(t, db, customer.ID, []models.OrderItem{
		{ProductID: product.ID, ProductName: product.Name, Quantity: 5, UnitPrice: product.SellingPrice, TaxClass: constants.TaxClassStandard16},
	})

	// 删除流水表，迫使整批回库事务失败
	if err := db.Migrator().DropTable(&models.StockTransaction{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	svc := newReturnsServiceForTest(db)
	_, err := svc.ReceiveToStock(Actor{AdminID: 3, Role: constants.RoleStock}, order.ID, ReceiveToStockInput{
		StoreID: store.ID,
		Lines:   []ReturnLineInput{{ProductID: product.ID, Quantity: 5}},
	})
	if !errors.Is(err, ErrDependencyFailure) {
		t.Fatalf("expected dependency failure, got: %v", err)
	}

	// 整批原子：状态、库存与回库记录均不得改变
	var current models.Order
	if err := db.First(&current, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if current.FulfillmentStatus != models.FulfillmentCancelled {
		t.Fatalf("expected order to remain cancelled, got %s", current.FulfillmentStatus.String())
	}
	var level models.StockLevel
	if err := db.Where("store_id = ? AND product_id = ?", store.ID, product.ID).First(&level).Error; err != nil {
		t.Fatalf("load stock level failed: %v", err)
	}
	if level.QuantityOnHand != 10 {
		t.Fatalf("expected on-hand unchanged at 10, got %d", level.QuantityOnHand)
	}
	var records int64
	if err := db.Model(&models.StockReturnRecord{}).Where("order_id = ?", order.ID).Count(&records).Error; err != nil {
		t.Fatalf("count return records failed: %v", err)
	}
	if records != 0 {
		t.Fatalf("expected no return record, got %d", records)
	}
}

func TestReceiveToStockValidation(t *testing.T) {
	db := newTestDB(t, "returns_validation")
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-RT7", 100, 80, constants.TaxClassStandard16)

	store := models.Store{Name: "Validation Depot", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	order := seedCancelledOrder(t, db, customer.ID, []models.OrderItem{
		{ProductID: product.ID, ProductName: product.Name, Quantity: 3, UnitPrice: product.SellingPrice, TaxClass: constants.TaxClassStandard16},
	})

	svc := newReturnsServiceForTest(db)
	stockActor := Actor{AdminID: 3, Role: constants.RoleStock}

	if _, err := svc.ReceiveToStock(Actor{AdminID: 9, Role: constants.RoleStaff}, order.ID, ReceiveToStockInput{
		StoreID: store.ID,
		Lines:   []ReturnLineInput{{ProductID: product.ID, Quantity: 1}},
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for staff role, got: %v", err)
	}

	if _, err := svc.ReceiveToStock(stockActor, order.ID, ReceiveToStockInput{
		StoreID: 9999,
		Lines:   []ReturnLineInput{{ProductID: product.ID, Quantity: 1}},
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown store, got: %v", err)
	}

	if _, err := svc.ReceiveToStock(stockActor, order.ID, ReceiveToStockInput{
		StoreID: store.ID,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty lines, got: %v", err)
	}

	if _, err := svc.ReceiveToStock(stockActor, order.ID, ReceiveToStockInput{
		StoreID: store.ID,
		Lines:   []ReturnLineInput{{ProductID: 9999, Quantity: 1}},
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for foreign product, got: %v", err)
	}
}
