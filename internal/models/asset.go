package models

import (
	"time"

	"gorm.io/gorm"
)

// Asset 固定资产表
type Asset struct {
	ID           uint           `gorm:"primarykey" json:"id"`                            // 主键
	AssetTag     string         `gorm:"uniqueIndex;not null" json:"asset_tag"`           // 资产编号
	Name         string         `gorm:"index;not null" json:"name"`                      // 资产名称
	Category     string         `gorm:"index" json:"category"`                           // 资产类别
	SerialNumber string         `json:"serial_number,omitempty"`                         // 序列号
	PurchaseCost Money          `gorm:"type:decimal(20,2);not null;default:0" json:"purchase_cost"` // 采购成本
	PurchasedAt  *time.Time     `json:"purchased_at,omitempty"`                          // 采购日期
	StoreID      *uint          `gorm:"index" json:"store_id,omitempty"`                 // 所在门店ID
	AssignedTo   *uint          `gorm:"index" json:"assigned_to,omitempty"`              // 领用员工ID
	Status       string         `gorm:"index;not null;default:in_service" json:"status"` // 状态（in_service/under_repair/disposed）
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`                // 备注
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                         // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间
}

// TableName 指定表名
func (Asset) TableName() string {
	return "assets"
}
