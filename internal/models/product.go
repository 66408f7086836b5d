package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品目录表
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                        // 主键
	Code            string         `gorm:"uniqueIndex;not null" json:"code"`                            // 商品编码
	Name            string         `gorm:"index;not null" json:"name"`                                  // 商品名称
	SellingPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"selling_price"`  // 销售价（含税约定见订单项）
	CostPrice       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost_price"`     // 成本价
	DefaultTaxClass string         `gorm:"not null" json:"default_tax_class"`                           // 默认税类
	IsActive        bool           `gorm:"not null;default:true;index" json:"is_active"`                // 是否上架
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
