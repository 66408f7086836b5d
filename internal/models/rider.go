package models

import (
	"time"

	"gorm.io/gorm"
)

// Rider 骑手表
type Rider struct {
	ID            uint           `gorm:"primarykey" json:"id"`                        // 主键
	Name          string         `gorm:"index;not null" json:"name"`                  // 骑手姓名
	Phone         string         `gorm:"uniqueIndex;not null" json:"phone"`           // 联系电话
	NationalID    string         `gorm:"index" json:"national_id"`                    // 身份证号
	VehicleRegNo  string         `json:"vehicle_reg_no,omitempty"`                    // 车辆牌照
	LicenseNumber string         `json:"license_number,omitempty"`                    // 驾照号
	Status        string         `gorm:"index;not null;default:active" json:"status"` // 状态（active/inactive）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                     // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间
}

// TableName 指定表名
func (Rider) TableName() string {
	return "riders"
}
