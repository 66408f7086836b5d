package models

import (
	"time"

	"gorm.io/gorm"
)

// LeaveRequest 请假申请表
type LeaveRequest struct {
	ID         uint           `gorm:"primarykey" json:"id"`                         // 主键
	StaffID    uint           `gorm:"index;not null" json:"staff_id"`               // 员工ID
	LeaveType  string         `gorm:"index;not null" json:"leave_type"`             // 请假类型（annual/sick/maternity/unpaid）
	StartDate  time.Time      `gorm:"index;not null" json:"start_date"`             // 开始日期
	EndDate    time.Time      `gorm:"index;not null" json:"end_date"`               // 结束日期
	Days       int            `gorm:"not null" json:"days"`                         // 请假天数
	Reason     string         `gorm:"type:text" json:"reason"`                      // 请假事由
	Status     string         `gorm:"index;not null;default:pending" json:"status"` // 审批状态（pending/approved/rejected）
	ReviewedBy *uint          `gorm:"index" json:"reviewed_by,omitempty"`           // 审批管理员ID
	ReviewedAt *time.Time     `json:"reviewed_at,omitempty"`                        // 审批时间
	ReviewNote string         `gorm:"type:text" json:"review_note,omitempty"`       // 审批意见
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                      // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (LeaveRequest) TableName() string {
	return "leave_requests"
}
