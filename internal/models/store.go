package models

import (
	"time"

	"gorm.io/gorm"
)

// Store 门店/仓库表
type Store struct {
	ID        uint           `gorm:"primarykey" json:"id"`                         // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`             // 门店名称
	Location  string         `json:"location"`                                     // 门店地址
	Phone     string         `json:"phone"`                                        // 联系电话
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"` // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                      // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
