package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice 发票表（由订单转开）
type Invoice struct {
	ID         uint           `gorm:"primarykey" json:"id"`                        // 主键
	InvoiceNo  string         `gorm:"uniqueIndex;not null" json:"invoice_no"`      // 发票号
	OrderID    uint           `gorm:"uniqueIndex;not null" json:"order_id"`        // 订单ID
	CustomerID uint           `gorm:"index;not null" json:"customer_id"`           // 客户ID
	NetAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"net_amount"`  // 不含税金额
	TaxAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`  // 税额
	GrossTotal Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gross_total"` // 含税总额
	Status     string         `gorm:"index;not null;default:issued" json:"status"` // 状态（issued/paid/void）
	IssuedAt   time.Time      `gorm:"index;not null" json:"issued_at"`             // 开票时间
	DueAt      *time.Time     `gorm:"index" json:"due_at,omitempty"`               // 到期时间
	CreatedBy  uint           `gorm:"index" json:"created_by"`                     // 开票管理员ID
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                     // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间
}

// TableName 指定表名
func (Invoice) TableName() string {
	return "invoices"
}
