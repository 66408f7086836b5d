package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 销售订单表（聚合根）
type Order struct {
	ID                   uint              `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo              string            `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	OrderDate            time.Time         `gorm:"index;not null" json:"order_date"`                          // 下单日期
	ExpectedDeliveryDate *time.Time        `gorm:"index" json:"expected_delivery_date,omitempty"`             // 预计送达日期
	BillingStatus        string            `gorm:"index;not null" json:"billing_status"`                      // 账务状态（由开票方推进）
	FulfillmentStatus    FulfillmentStatus `gorm:"index;not null;default:0" json:"fulfillment_status"`        // 履约状态
	Notes                string            `gorm:"type:text" json:"notes,omitempty"`                          // 备注
	CustomerID           uint              `gorm:"index;not null" json:"customer_id"`                         // 客户ID
	RiderID              *uint             `gorm:"index" json:"rider_id,omitempty"`                           // 骑手ID
	AssignedAt           *time.Time        `gorm:"index" json:"assigned_at,omitempty"`                        // 派单时间
	TotalAmount          Money             `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额（含税）
	CreatedAt            time.Time         `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt            time.Time         `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt            gorm.DeletedAt    `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	// 关联
	Customer    *Customer          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`  // 客户
	Rider       *Rider             `gorm:"foreignKey:RiderID" json:"rider,omitempty"`        // 骑手
	Delivery    *DeliveryRecord    `gorm:"foreignKey:OrderID" json:"delivery,omitempty"`     // 交付记录
	StockReturn *StockReturnRecord `gorm:"foreignKey:OrderID" json:"stock_return,omitempty"` // 回库记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
