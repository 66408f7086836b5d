package models

import (
	"time"

	"gorm.io/gorm"
)

// AttendanceRecord 考勤记录表
type AttendanceRecord struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                            // 主键
	StaffID    uint           `gorm:"uniqueIndex:idx_attendance_staff_date;not null" json:"staff_id"`  // 员工ID
	WorkDate   time.Time      `gorm:"uniqueIndex:idx_attendance_staff_date;not null" json:"work_date"` // 考勤日期
	CheckInAt  *time.Time     `json:"check_in_at,omitempty"`                                           // 签到时间
	CheckOutAt *time.Time     `json:"check_out_at,omitempty"`                                          // 签退时间
	Status     string         `gorm:"index;not null" json:"status"`                                    // 状态（present/absent/late/on_leave/holiday）
	Notes      string         `gorm:"type:text" json:"notes,omitempty"`                                // 备注
	RecordedBy uint           `gorm:"index" json:"recorded_by"`                                        // 录入管理员ID
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                         // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间
}

// TableName 指定表名
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
