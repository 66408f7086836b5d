package models

import (
	"time"

	"gorm.io/gorm"
)

// StockReturnRecord 回库记录表（取消订单的逆向物流）
type StockReturnRecord struct {
	ID         uint           `gorm:"primarykey" json:"id"`                 // 主键
	OrderID    uint           `gorm:"uniqueIndex;not null" json:"order_id"` // 订单ID
	StoreID    uint           `gorm:"index;not null" json:"store_id"`       // 回库门店ID
	Notes      string         `gorm:"type:text" json:"notes,omitempty"`     // 备注
	ReceivedBy uint           `gorm:"index;not null" json:"received_by"`    // 收货管理员ID
	ReturnedAt time.Time      `gorm:"index;not null" json:"returned_at"`    // 回库时间
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间

	Items []StockReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"` // 回库明细
}

// TableName 指定表名
func (StockReturnRecord) TableName() string {
	return "stock_return_records"
}

// StockReturnItem 回库明细表
type StockReturnItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                    // 主键
	ReturnID  uint      `gorm:"index;not null" json:"return_id"`                         // 回库记录ID
	ProductID uint      `gorm:"index;not null" json:"product_id"`                        // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                // 回库数量
	UnitCost  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"`  // 单位成本
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                 // 创建时间
}

// TableName 指定表名
func (StockReturnItem) TableName() string {
	return "stock_return_items"
}
