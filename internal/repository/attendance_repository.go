package repository

import (
	"errors"
	"time"

	"github.com/duka-admin/internal/models"

	"gorm.io/gorm"
)

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	Create(record *models.AttendanceRecord) error
	GetByID(id uint) (*models.AttendanceRecord, error)
	GetByStaffAndDate(staffID uint, workDate time.Time) (*models.AttendanceRecord, error)
	List(filter AttendanceListFilter) ([]models.AttendanceRecord, int64, error)
	Updates(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

// GormAttendanceRepository GORM 实现
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository 创建考勤仓库
func NewAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// Create 创建考勤记录
func (r *GormAttendanceRepository) Create(record *models.AttendanceRecord) error {
	return r.db.Create(record).Error
}

// GetByID 根据 ID 获取考勤记录
func (r *GormAttendanceRepository) GetByID(id uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := r.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetByStaffAndDate 获取员工指定日期的考勤记录
func (r *GormAttendanceRepository) GetByStaffAndDate(staffID uint, workDate time.Time) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := r.db.Where("staff_id = ? AND work_date = ?", staffID, workDate).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// List 考勤记录列表
func (r *GormAttendanceRepository) List(filter AttendanceListFilter) ([]models.AttendanceRecord, int64, error) {
	var records []models.AttendanceRecord
	query := r.db.Model(&models.AttendanceRecord{})

	if filter.StaffID != 0 {
		query = query.Where("staff_id = ?", filter.StaffID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("work_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("work_date <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("work_date desc, id desc").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Updates 更新考勤记录字段
func (r *GormAttendanceRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.AttendanceRecord{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除考勤记录（软删除）
func (r *GormAttendanceRepository) Delete(id uint) error {
	return r.db.Delete(&models.AttendanceRecord{}, id).Error
}
