package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryRecord 交付记录表
type DeliveryRecord struct {
	ID             uint           `gorm:"primarykey" json:"id"`                 // 主键
	OrderID        uint           `gorm:"uniqueIndex;not null" json:"order_id"` // 订单ID
	RecipientName  string         `gorm:"not null" json:"recipient_name"`       // 签收人姓名
	RecipientPhone string         `gorm:"not null" json:"recipient_phone"`      // 签收人电话
	ProofImage     string         `json:"proof_image,omitempty"`                // 签收凭证图片
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`     // 备注
	CompletedBy    *uint          `gorm:"index" json:"completed_by,omitempty"`  // 操作管理员ID
	CompletedAt    time.Time      `gorm:"index;not null" json:"completed_at"`   // 完成时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (DeliveryRecord) TableName() string {
	return "delivery_records"
}
