package service

import (
	"time"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/logger"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/queue"
	"github.com/duka-admin/internal/repository"

	"gorm.io/gorm"
)

// DispatchService 派单服务（骑手指派与发货库存扣减）
type DispatchService struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	riderRepo     repository.RiderRepository
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	queueClient   *queue.Client
	dispatchStore uint // 发货扣减库存的默认门店
}

// NewDispatchService 创建派单服务
func NewDispatchService(db *gorm.DB, orderRepo repository.OrderRepository, riderRepo repository.RiderRepository, stockRepo repository.StockRepository, productRepo repository.ProductRepository, queueClient *queue.Client, dispatchStoreID uint) *DispatchService {
	if dispatchStoreID == 0 {
		dispatchStoreID = 1
	}
	return &DispatchService{
		db:            db,
		orderRepo:     orderRepo,
		riderRepo:     riderRepo,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		queueClient:   queueClient,
		dispatchStore: dispatchStoreID,
	}
}

// AssignRider 为已审核订单指派骑手。
// 单个事务内完成：状态 Approved→InTransit、骑手与派单时间写入、
// 账务状态推进（仍为 draft/confirmed 时→shipped）、每行库存扣减与流水。
// 任一步失败全部回滚。
func (s *DispatchService) AssignRider(actor Actor, orderID, riderID uint) (*models.Order, error) {
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
	if riderID == 0 {
		return nil, &ValidationError{Field: "rider_id", Reason: "required"}
	}
	rider, err := s.riderRepo.GetByID(riderID)
	if err != nil {
		return nil, err
	}
	if rider == nil {
		return nil, &ValidationError{Field: "rider_id", Reason: "rider not found"}
	}
	if order.FulfillmentStatus != models.FulfillmentApproved {
		return nil, &StateTransitionError{
			Current:  order.FulfillmentStatus.String(),
			Required: models.FulfillmentApproved.String(),
		}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"rider_id":    riderID,
		"assigned_at": now,
	}
	switch order.BillingStatus {
	case constants.BillingStatusDraft, constants.BillingStatusConfirmed:
		updates["billing_status"] = constants.BillingStatusShipped
	}

	products, err := s.loadProducts(order.Items)
	if err != nil {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		stockRepo := s.stockRepo.WithTx(tx)

		affected, err := orderRepo.UpdateFulfillmentStatusGuarded(order.ID, models.FulfillmentApproved, models.FulfillmentInTransit, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			// 并发派单方已抢先推进状态
			return &StateTransitionError{
				Current:  models.FulfillmentInTransit.String(),
				Required: models.FulfillmentApproved.String(),
			}
		}

		for _, item := range order.Items {
			if err := stockRepo.AdjustOnHand(s.dispatchStore, item.ProductID, -item.Quantity); err != nil {
				return &DependencyError{Dependency: "inventory", Err: err}
			}
			unitCost := models.Money{}
			if p, ok := products[item.ProductID]; ok {
				unitCost = p.CostPrice
			}
			if err := stockRepo.RecordTransaction(&models.StockTransaction{
				StoreID:       s.dispatchStore,
				ProductID:     item.ProductID,
				Quantity:      -item.Quantity,
				UnitCost:      unitCost,
				Type:          constants.StockTxnTypeAdjustment,
				ReferenceType: constants.StockTxnRefSalesOrderDispatch,
				OrderID:       &order.ID,
				CreatedBy:     actor.AdminID,
				CreatedAt:     now,
			}); err != nil {
				return &DependencyError{Dependency: "inventory", Err: err}
			}
		}
		return nil
	}); err != nil {
		logger.Warnw("dispatch_assign_rider_failed",
			"order_id", orderID,
			"rider_id", riderID,
			"store_id", s.dispatchStore,
			"error", err,
		)
		return nil, err
	}

	logger.Infow("dispatch_rider_assigned",
		"order_id", orderID,
		"rider_id", riderID,
		"store_id", s.dispatchStore,
	)
	s.notifyStatusChange(orderID, models.FulfillmentInTransit.String())
	return s.orderRepo.GetByID(orderID)
}

func (s *DispatchService) loadProducts(items []models.OrderItem) (map[uint]models.Product, error) {
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

func (s *DispatchService) notifyStatusChange(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}
