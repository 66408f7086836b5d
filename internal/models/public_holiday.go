package models

import (
	"time"

	"gorm.io/gorm"
)

// PublicHoliday 公共假期表
type PublicHoliday struct {
	ID        uint           `gorm:"primarykey" json:"id"`                  // 主键
	Name      string         `gorm:"not null" json:"name"`                  // 假期名称
	Date      time.Time      `gorm:"uniqueIndex;not null" json:"date"`      // 假期日期
	Recurring bool           `gorm:"not null;default:false" json:"recurring"` // 是否每年重复
	CreatedAt time.Time      `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`               // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                        // 软删除时间
}

// TableName 指定表名
func (PublicHoliday) TableName() string {
	return "public_holidays"
}
