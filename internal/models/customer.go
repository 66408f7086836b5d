package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 客户表
type Customer struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Name      string         `gorm:"index;not null" json:"name"`       // 客户名称
	Phone     string         `gorm:"index" json:"phone"`               // 联系电话
	Email     string         `gorm:"index" json:"email"`               // 邮箱
	Address   string         `gorm:"type:text" json:"address"`         // 收货地址
	KRAPin    string         `json:"kra_pin,omitempty"`                // 税务登记号
	Notes     string         `gorm:"type:text" json:"notes,omitempty"` // 备注
	CreatedAt time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`          // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
