package service

import (
	"time"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/logger"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/queue"
	"github.com/duka-admin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReturnsService 逆向物流服务（取消订单回库）
type ReturnsService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	storeRepo   repository.StoreRepository
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	returnRepo  repository.StockReturnRepository
	queueClient *queue.Client
}

// NewReturnsService 创建逆向物流服务
func NewReturnsService(db *gorm.DB, orderRepo repository.OrderRepository, storeRepo repository.StoreRepository, stockRepo repository.StockRepository, productRepo repository.ProductRepository, returnRepo repository.StockReturnRepository, queueClient *queue.Client) *ReturnsService {
	return &ReturnsService{
		db:          db,
		orderRepo:   orderRepo,
		storeRepo:   storeRepo,
		stockRepo:   stockRepo,
		productRepo: productRepo,
		returnRepo:  returnRepo,
		queueClient: queueClient,
	}
}

// ReturnPlanLine 回库计划行（按原始订单项预填）
type ReturnPlanLine struct {
	ProductID        uint         `json:"product_id"`
	ProductName      string       `json:"product_name"`
	OriginalQuantity int          `json:"original_quantity"`
	Quantity         int          `json:"quantity"`
	UnitCost         models.Money `json:"unit_cost"`
}

// ReturnLineInput 回库提交行
type ReturnLineInput struct {
	ProductID uint
	Quantity  int
	UnitCost  *models.Money
}

// ReceiveToStockInput 回库提交输入
type ReceiveToStockInput struct {
	StoreID uint
	Notes   string
	Lines   []ReturnLineInput
}

// BuildReturnPlan 生成回库计划：数量默认为原始数量，
// 单位成本默认取商品目录成本价，未知时为 0。
func (s *ReturnsService) BuildReturnPlan(orderID uint) ([]ReturnPlanLine, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	products, err := s.loadProducts(order.Items)
	if err != nil {
		return nil, err
	}

	lines := make([]ReturnPlanLine, 0, len(order.Items))
	for _, item := range order.Items {
		unitCost := models.NewMoneyFromDecimal(decimal.Zero)
		if p, ok := products[item.ProductID]; ok {
			unitCost = p.CostPrice
		}
		lines = append(lines, ReturnPlanLine{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			OriginalQuantity: item.Quantity,
			Quantity:         item.Quantity,
			UnitCost:         unitCost,
		})
	}
	return lines, nil
}

// ReceiveToStock 将取消订单的商品回库。
// 全部校验先于任何副作用；每行入一笔调整流水、加回在库数量，
// 并推进状态 Cancelled→ReturnedToStock，整批同一事务内完成。
func (s *ReturnsService) ReceiveToStock(actor Actor, orderID uint, input ReceiveToStockInput) (*models.Order, error) {
	if err := requireCapability(actor, CapabilityStock); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if input.StoreID == 0 {
		return nil, &ValidationError{Field: "store_id", Reason: "required"}
	}
	store, err := s.storeRepo.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, &ValidationError{Field: "store_id", Reason: "store not found"}
	}
	if len(input.Lines) == 0 {
		return nil, &ValidationError{Field: "lines", Reason: "at least one line is required"}
	}
	if order.FulfillmentStatus != models.FulfillmentCancelled {
		return nil, &StateTransitionError{
			Current:  order.FulfillmentStatus.String(),
			Required: models.FulfillmentCancelled.String(),
		}
	}

	originals := make(map[uint]models.OrderItem, len(order.Items))
	for _, item := range order.Items {
		originals[item.ProductID] = item
	}

	products, err := s.loadProducts(order.Items)
	if err != nil {
		return nil, err
	}

	// 全部行校验通过后才允许产生任何副作用
	var exceeded []string
	returnItems := make([]models.StockReturnItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		original, ok := originals[line.ProductID]
		if !ok {
			return nil, &ValidationError{Field: "lines.product_id", Reason: "product not on this order"}
		}
		if line.Quantity <= 0 {
			return nil, &ValidationError{Field: "lines.quantity", Reason: "must be positive"}
		}
		if line.Quantity > original.Quantity {
			exceeded = append(exceeded, original.ProductName)
			continue
		}
		unitCost := models.NewMoneyFromDecimal(decimal.Zero)
		if p, ok := products[line.ProductID]; ok {
			unitCost = p.CostPrice
		}
		if line.UnitCost != nil {
			unitCost = *line.UnitCost
		}
		returnItems = append(returnItems, models.StockReturnItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  unitCost,
		})
	}
	if len(exceeded) > 0 {
		return nil, &QuantityExceededError{Products: exceeded}
	}

	now := time.Now()
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		stockRepo := s.stockRepo.WithTx(tx)
		returnRepo := s.returnRepo.WithTx(tx)

		affected, err := orderRepo.UpdateFulfillmentStatusGuarded(order.ID, models.FulfillmentCancelled, models.FulfillmentReturnedToStock, nil)
		if err != nil {
			return err
		}
		if affected == 0 {
			return &StateTransitionError{
				Current:  models.FulfillmentReturnedToStock.String(),
				Required: models.FulfillmentCancelled.String(),
			}
		}

		for _, item := range returnItems {
			if err := stockRepo.AdjustOnHand(input.StoreID, item.ProductID, item.Quantity); err != nil {
				return &DependencyError{Dependency: "inventory", Err: err}
			}
			if err := stockRepo.RecordTransaction(&models.StockTransaction{
				StoreID:       input.StoreID,
				ProductID:     item.ProductID,
				Quantity:      item.Quantity,
				UnitCost:      item.UnitCost,
				Type:          constants.StockTxnTypeAdjustment,
				ReferenceType: constants.StockTxnRefSalesOrderReturn,
				OrderID:       &order.ID,
				CreatedBy:     actor.AdminID,
				CreatedAt:     now,
			}); err != nil {
				return &DependencyError{Dependency: "inventory", Err: err}
			}
		}

		return returnRepo.Create(&models.StockReturnRecord{
			OrderID:    order.ID,
			StoreID:    input.StoreID,
			Notes:      input.Notes,
			ReceivedBy: actor.AdminID,
			ReturnedAt: now,
		}, returnItems)
	}); err != nil {
		logger.Warnw("receive_to_stock_failed",
			"order_id", orderID,
			"store_id", input.StoreID,
			"error", err,
		)
		return nil, err
	}

	logger.Infow("receive_to_stock_completed",
		"order_id", orderID,
		"store_id", input.StoreID,
		"lines", len(returnItems),
	)
	s.notifyStatusChange(orderID, models.FulfillmentReturnedToStock.String())
	return s.orderRepo.GetByID(orderID)
}

func (s *ReturnsService) loadProducts(items []models.OrderItem) (map[uint]models.Product, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *ReturnsService) notifyStatusChange(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}
