package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/logger"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/queue"
	"github.com/duka-admin/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务（创建、查询、编辑与状态流转守卫）
type OrderService struct {
	db           *gorm.DB
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	pricer       *Pricer
	queueClient  *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, customerRepo repository.CustomerRepository, pricer *Pricer, queueClient *queue.Client) *OrderService {
	return &OrderService{
		db:           db,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		pricer:       pricer,
		queueClient:  queueClient,
	}
}

// allowedFulfillmentTransitions 履约状态流转表。
// 终态（Complete/Declined/ReturnedToStock）不出现在键中，不开放任何流转。
var allowedFulfillmentTransitions = map[models.FulfillmentStatus]map[models.FulfillmentStatus]bool{
	models.FulfillmentNew: {
		models.FulfillmentApproved: true,
	},
	models.FulfillmentApproved: {
		models.FulfillmentInTransit: true,
		models.FulfillmentCancelled: true,
		models.FulfillmentDeclined:  true,
	},
	models.FulfillmentInTransit: {
		models.FulfillmentComplete: true,
	},
	models.FulfillmentCancelled: {
		models.FulfillmentReturnedToStock: true,
	},
}

// canTransition 判断履约状态是否允许从 current 流转到 target。
func canTransition(current, target models.FulfillmentStatus) bool {
	nexts, ok := allowedFulfillmentTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

// editSettableStatuses 可经编辑接口直接设置的目标状态。
// InTransit/Complete/ReturnedToStock 必须经由派单、签收与回库工作流产生，
// 否则状态会脱离其对应的库存与交付副作用。
var editSettableStatuses = map[models.FulfillmentStatus]bool{
	models.FulfillmentApproved:  true,
	models.FulfillmentCancelled: true,
	models.FulfillmentDeclined:  true,
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	CustomerID           uint
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	Notes                string
	Items                []OrderItemInput
}

// OrderItemInput 订单项输入。UnitPrice/TaxClass 为空时回退商品目录默认值。
type OrderItemInput struct {
	ProductID uint
	Quantity  int
	UnitPrice *models.Money
	TaxClass  string
}

// EditOrderInput 编辑订单输入，nil 字段表示不修改。
type EditOrderInput struct {
	ExpectedDeliveryDate *time.Time
	Notes                *string
	FulfillmentStatus    *models.FulfillmentStatus
	Items                *[]OrderItemInput
}

// CreateOrder 创建销售订单（初始状态 New/draft）
func (s *OrderService) CreateOrder(actor Actor, input CreateOrderInput) (*models.Order, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	if input.CustomerID == 0 {
		return nil, &ValidationError{Field: "customer_id", Reason: "required"}
	}
	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &ValidationError{Field: "customer_id", Reason: "customer not found"}
	}

	items, err := s.buildItems(input.Items)
	if err != nil {
		return nil, err
	}
	totals := s.pricer.PriceItems(items)

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &models.Order{
		OrderNo:              generateOrderNo(),
		OrderDate:            orderDate,
		ExpectedDeliveryDate: input.ExpectedDeliveryDate,
		BillingStatus:        constants.BillingStatusDraft,
		FulfillmentStatus:    models.FulfillmentNew,
		Notes:                input.Notes,
		CustomerID:           input.CustomerID,
		TotalAmount:          totals.GrossTotal,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, items)
	}); err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"customer_id", order.CustomerID,
		"total_amount", order.TotalAmount.String(),
	)
	return s.orderRepo.GetByID(order.ID)
}

// GetOrder 获取订单详情
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListOrders 订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// EditOrder 编辑订单。
// 字段编辑仅允许在非终态进行；状态字段只接受 Approved/Cancelled/Declined，
// 其余状态由各自工作流产生。修改走流转表守卫，
// 并以前置状态作为更新条件做并发仲裁。
func (s *OrderService) EditOrder(actor Actor, id uint, input EditOrderInput) (*models.Order, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.FulfillmentStatus.Terminal() {
		return nil, &StateTransitionError{
			Current:  order.FulfillmentStatus.String(),
			Required: "non-terminal",
		}
	}

	updates := map[string]interface{}{}
	if input.ExpectedDeliveryDate != nil {
		updates["expected_delivery_date"] = *input.ExpectedDeliveryDate
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	var newItems []models.OrderItem
	if input.Items != nil {
		newItems, err = s.buildItems(*input.Items)
		if err != nil {
			return nil, err
		}
		totals := s.pricer.PriceItems(newItems)
		updates["total_amount"] = totals.GrossTotal
	}

	var statusChanged bool
	if input.FulfillmentStatus != nil && *input.FulfillmentStatus != order.FulfillmentStatus {
		target := *input.FulfillmentStatus
		if !target.Valid() {
			return nil, &ValidationError{Field: "fulfillment_status", Reason: "unknown status value"}
		}
		if !editSettableStatuses[target] {
			return nil, &StateTransitionError{
				Current:  order.FulfillmentStatus.String(),
				Required: fmt.Sprintf("workflow operation to reach %s", target.String()),
			}
		}
		if !canTransition(order.FulfillmentStatus, target) {
			return nil, &StateTransitionError{
				Current:  order.FulfillmentStatus.String(),
				Required: fmt.Sprintf("a state allowing transition to %s", target.String()),
			}
		}
		statusChanged = true
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		if statusChanged {
			affected, err := repo.UpdateFulfillmentStatusGuarded(order.ID, order.FulfillmentStatus, *input.FulfillmentStatus, updates)
			if err != nil {
				return err
			}
			if affected == 0 {
				// 并发编辑者已抢先推进状态
				return &StateTransitionError{
					Current:  "changed concurrently",
					Required: order.FulfillmentStatus.String(),
				}
			}
		} else if len(updates) > 0 {
			if err := repo.Updates(order.ID, updates); err != nil {
				return err
			}
		}
		if input.Items != nil {
			if err := repo.ReplaceItems(order.ID, newItems); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if statusChanged {
		s.notifyStatusChange(order.ID, input.FulfillmentStatus.String())
	}
	return s.orderRepo.GetByID(order.ID)
}

// buildItems 校验订单项输入并生成带快照与行总额的订单项。
func (s *OrderService) buildItems(inputs []OrderItemInput) ([]models.OrderItem, error) {
	if len(inputs) == 0 {
		return nil, &ValidationError{Field: "items", Reason: "at least one line item is required"}
	}
	ids := make([]uint, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID == 0 {
			return nil, &ValidationError{Field: "items.product_id", Reason: "required"}
		}
		if in.Quantity < 1 {
			return nil, &ValidationError{Field: "items.quantity", Reason: "must be at least 1"}
		}
		ids = append(ids, in.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		product, ok := byID[in.ProductID]
		if !ok {
			return nil, &ValidationError{Field: "items.product_id", Reason: fmt.Sprintf("product %d not found", in.ProductID)}
		}
		unitPrice := product.SellingPrice
		if in.UnitPrice != nil {
			if in.UnitPrice.Decimal.IsNegative() {
				return nil, &ValidationError{Field: "items.unit_price", Reason: "must not be negative"}
			}
			unitPrice = *in.UnitPrice
		}
		taxClass := strings.TrimSpace(in.TaxClass)
		if taxClass == "" {
			taxClass = product.DefaultTaxClass
		}
		switch taxClass {
		case constants.TaxClassStandard16, constants.TaxClassZeroRated, constants.TaxClassExempted:
		default:
			return nil, &ValidationError{Field: "items.tax_class", Reason: fmt.Sprintf("unknown tax class %q", taxClass)}
		}
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
			TaxClass:    taxClass,
		})
	}
	return items, nil
}

// notifyStatusChange 推送状态变更邮件任务，失败只记日志。
func (s *OrderService) notifyStatusChange(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("SO%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
