package models

import (
	"time"
)

// StockLevel 门店库存表
type StockLevel struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                          // 主键
	StoreID        uint      `gorm:"uniqueIndex:idx_stock_store_product;not null" json:"store_id"`  // 门店ID
	ProductID      uint      `gorm:"uniqueIndex:idx_stock_store_product;not null" json:"product_id"` // 商品ID
	QuantityOnHand int       `gorm:"not null;default:0" json:"quantity_on_hand"`                    // 在库数量
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt      time.Time `gorm:"index" json:"updated_at"`                                       // 更新时间
}

// TableName 指定表名
func (StockLevel) TableName() string {
	return "stock_levels"
}

// StockTransaction 库存流水表
type StockTransaction struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                    // 主键
	StoreID       uint      `gorm:"index;not null" json:"store_id"`                          // 门店ID
	ProductID     uint      `gorm:"index;not null" json:"product_id"`                        // 商品ID
	Quantity      int       `gorm:"not null" json:"quantity"`                                // 数量（正入负出）
	UnitCost      Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"`  // 单位成本
	Type          string    `gorm:"index;not null" json:"type"`                              // 流水类型
	ReferenceType string    `gorm:"index;not null" json:"reference_type"`                    // 业务来源
	OrderID       *uint     `gorm:"index" json:"order_id,omitempty"`                         // 关联订单ID
	CreatedBy     uint      `gorm:"index" json:"created_by"`                                 // 操作管理员ID
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                 // 创建时间
}

// TableName 指定表名
func (StockTransaction) TableName() string {
	return "stock_transactions"
}
