package queue

import (
	"encoding/json"

	"github.com/duka-admin/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskLeaveDecisionEmail 请假审批结果邮件通知任务
	TaskLeaveDecisionEmail = constants.TaskLeaveDecisionEmail
)

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// LeaveDecisionEmailPayload 请假审批结果邮件任务载荷
type LeaveDecisionEmailPayload struct {
	LeaveID  uint   `json:"leave_id"`
	Decision string `json:"decision"`
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewLeaveDecisionEmailTask 创建请假审批结果邮件任务
func NewLeaveDecisionEmailTask(payload LeaveDecisionEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeaveDecisionEmail, body), nil
}
