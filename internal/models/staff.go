package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff 员工表
type Staff struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // 主键
	StaffNo      string         `gorm:"uniqueIndex;not null" json:"staff_no"` // 员工编号
	Name         string         `gorm:"index;not null" json:"name"`           // 姓名
	Phone        string         `gorm:"index" json:"phone"`                   // 联系电话
	Email        string         `gorm:"index" json:"email"`                   // 邮箱
	NationalID   string         `gorm:"index" json:"national_id"`             // 身份证号
	Position     string         `gorm:"index" json:"position"`                // 岗位
	Department   string         `gorm:"index" json:"department"`              // 部门
	StoreID      *uint          `gorm:"index" json:"store_id,omitempty"`      // 所属门店ID
	BaseSalary   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_salary"` // 基本工资
	HiredAt      *time.Time     `json:"hired_at,omitempty"`                   // 入职日期
	TerminatedAt *time.Time     `json:"terminated_at,omitempty"`              // 离职日期
	IsActive     bool           `gorm:"not null;default:true;index" json:"is_active"` // 是否在职
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (Staff) TableName() string {
	return "staff"
}
