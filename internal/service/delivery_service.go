package service

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/logger"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/queue"
	"github.com/duka-admin/internal/repository"

	"gorm.io/gorm"
)

// DeliveryService 交付完成服务
type DeliveryService struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	deliveryRepo  repository.DeliveryRepository
	uploadService *UploadService
	queueClient   *queue.Client
}

// NewDeliveryService 创建交付完成服务
func NewDeliveryService(db *gorm.DB, orderRepo repository.OrderRepository, deliveryRepo repository.DeliveryRepository, uploadService *UploadService, queueClient *queue.Client) *DeliveryService {
	return &DeliveryService{
		db:            db,
		orderRepo:     orderRepo,
		deliveryRepo:  deliveryRepo,
		uploadService: uploadService,
		queueClient:   queueClient,
	}
}

// CompleteDeliveryInput 交付完成输入
type CompleteDeliveryInput struct {
	RecipientName  string
	RecipientPhone string
	Notes          string
	ProofImage     *multipart.FileHeader // 可选签收凭证
}

// CompleteDelivery 完成订单交付。
// 任何已认证操作人均可调用（不做角色限制）。
// 签收凭证上传失败不阻断交付，仅记日志后继续。
func (s *DeliveryService) CompleteDelivery(actor Actor, orderID uint, input CompleteDeliveryInput) (*models.Order, error) {
	if strings.TrimSpace(input.RecipientName) == "" {
		return nil, &ValidationError{Field: "recipient_name", Reason: "required"}
	}
	if strings.TrimSpace(input.RecipientPhone) == "" {
		return nil, &ValidationError{Field: "recipient_phone", Reason: "required"}
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.FulfillmentStatus != models.FulfillmentInTransit {
		return nil, &StateTransitionError{
			Current:  order.FulfillmentStatus.String(),
			Required: models.FulfillmentInTransit.String(),
		}
	}

	// 宽松策略：凭证上传失败不视为硬错误
	proofRef := ""
	if input.ProofImage != nil && s.uploadService != nil {
		ref, err := s.uploadService.SaveFile(input.ProofImage, "delivery_proof")
		if err != nil {
			logger.Warnw("delivery_proof_upload_failed", "order_id", orderID, "error", err)
		} else {
			proofRef = ref
		}
	}

	now := time.Now()
	adminID := actor.AdminID
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := s.orderRepo.WithTx(tx).UpdateFulfillmentStatusGuarded(order.ID, models.FulfillmentInTransit, models.FulfillmentComplete, map[string]interface{}{
			"billing_status": constants.BillingStatusDelivered,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return &StateTransitionError{
				Current:  models.FulfillmentComplete.String(),
				Required: models.FulfillmentInTransit.String(),
			}
		}
		return s.deliveryRepo.WithTx(tx).Create(&models.DeliveryRecord{
			OrderID:        order.ID,
			RecipientName:  strings.TrimSpace(input.RecipientName),
			RecipientPhone: strings.TrimSpace(input.RecipientPhone),
			ProofImage:     proofRef,
			Notes:          input.Notes,
			CompletedBy:    &adminID,
			CompletedAt:    now,
		})
	}); err != nil {
		return nil, err
	}

	logger.Infow("delivery_completed",
		"order_id", orderID,
		"recipient", strings.TrimSpace(input.RecipientName),
		"has_proof", proofRef != "",
	)
	s.notifyStatusChange(orderID, models.FulfillmentComplete.String())
	return s.orderRepo.GetByID(orderID)
}

func (s *DeliveryService) notifyStatusChange(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}
