package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/logger"
	"github.com/duka-admin/internal/provider"
	"github.com/duka-admin/internal/queue"
	"github.com/duka-admin/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
// 依赖容器中的仓储与服务完成邮件通知
type Consumer struct {
	container *provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(container *provider.Container) *Consumer {
	return &Consumer{container: container}
}

// Register 注册任务处理器
func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskLeaveDecisionEmail, c.handleLeaveDecisionEmail)
}

// handleOrderStatusEmail 发送订单状态变更邮件
// 客户缺失或未留邮箱时跳过,不视为任务失败
func (c *Consumer) handleOrderStatusEmail(ctx context.Context, t *asynq.Task) error {
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal order status email payload failed: %w", err)
	}

	order, err := c.container.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		return fmt.Errorf("load order %d failed: %w", payload.OrderID, err)
	}
	if order == nil {
		logger.Warnw("order_status_email_skipped", "reason", "order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if order.Customer == nil || strings.TrimSpace(order.Customer.Email) == "" {
		logger.Infow("order_status_email_skipped", "reason", "customer_email_missing", "order_id", payload.OrderID)
		return nil
	}

	err = c.container.EmailService.SendOrderStatusEmail(order.Customer.Email, service.OrderStatusEmailInput{
		OrderNo:  order.OrderNo,
		Status:   payload.Status,
		Amount:   order.TotalAmount,
		Currency: constants.SiteCurrencyDefault,
	})
	if err != nil {
		if err == service.ErrEmailServiceDisabled || err == service.ErrEmailServiceNotConfigured {
			logger.Infow("order_status_email_skipped", "reason", "email_service_unavailable", "order_id", payload.OrderID)
			return nil
		}
		return fmt.Errorf("send order status email failed: %w", err)
	}

	logger.Infow("order_status_email_sent", "order_id", payload.OrderID, "order_no", order.OrderNo, "status", payload.Status)
	return nil
}

// handleLeaveDecisionEmail 发送请假审批结果邮件
func (c *Consumer) handleLeaveDecisionEmail(ctx context.Context, t *asynq.Task) error {
	var payload queue.LeaveDecisionEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal leave decision email payload failed: %w", err)
	}

	leave, err := c.container.LeaveRepo.GetByID(payload.LeaveID)
	if err != nil {
		return fmt.Errorf("load leave %d failed: %w", payload.LeaveID, err)
	}
	if leave == nil {
		logger.Warnw("leave_decision_email_skipped", "reason", "leave_not_found", "leave_id", payload.LeaveID)
		return nil
	}

	staff, err := c.container.StaffRepo.GetByID(leave.StaffID)
	if err != nil {
		return fmt.Errorf("load staff %d failed: %w", leave.StaffID, err)
	}
	if staff == nil || strings.TrimSpace(staff.Email) == "" {
		logger.Infow("leave_decision_email_skipped", "reason", "staff_email_missing", "leave_id", payload.LeaveID)
		return nil
	}

	err = c.container.EmailService.SendLeaveDecisionEmail(staff.Email, staff.Name, payload.Decision)
	if err != nil {
		if err == service.ErrEmailServiceDisabled || err == service.ErrEmailServiceNotConfigured {
			logger.Infow("leave_decision_email_skipped", "reason", "email_service_unavailable", "leave_id", payload.LeaveID)
			return nil
		}
		return fmt.Errorf("send leave decision email failed: %w", err)
	}

	logger.Infow("leave_decision_email_sent", "leave_id", payload.LeaveID, "staff_id", leave.StaffID, "decision", payload.Decision)
	return nil
}
