package repository

import (
	"errors"

	"github.com/duka-admin/internal/models"

	"gorm.io/gorm"
)

// LeaveRepository 请假数据访问接口
type LeaveRepository interface {
	Create(request *models.LeaveRequest) error
	GetByID(id uint) (*models.LeaveRequest, error)
	List(filter LeaveListFilter) ([]models.LeaveRequest, int64, error)
	Updates(id uint, updates map[string]interface{}) error
	// UpdateStatusGuarded 仅在当前审批状态等于 expected 时更新，返回受影响行数。
	UpdateStatusGuarded(id uint, expected, next string, updates map[string]interface{}) (int64, error)
	Delete(id uint) error
}

// GormLeaveRepository GORM 实现
type GormLeaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository 创建请假仓库
func NewLeaveRepository(db *gorm.DB) *GormLeaveRepository {
	return &GormLeaveRepository{db: db}
}

// Create 创建请假申请
func (r *GormLeaveRepository) Create(request *models.LeaveRequest) error {
	return r.db.Create(request).Error
}

// GetByID 根据 ID 获取请假申请
func (r *GormLeaveRepository) GetByID(id uint) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// List 请假申请列表
func (r *GormLeaveRepository) List(filter LeaveListFilter) ([]models.LeaveRequest, int64, error) {
	var requests []models.LeaveRequest
	query := r.db.Model(&models.LeaveRequest{})

	if filter.StaffID != 0 {
		query = query.Where("staff_id = ?", filter.StaffID)
	}
	if filter.LeaveType != "" {
		query = query.Where("leave_type = ?", filter.LeaveType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("end_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("start_date <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// Updates 更新请假申请字段
func (r *GormLeaveRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.LeaveRequest{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateStatusGuarded 带前置状态条件的审批状态更新
func (r *GormLeaveRepository) UpdateStatusGuarded(id uint, expected, next string, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = next
	result := r.db.Model(&models.LeaveRequest{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete 删除请假申请（软删除）
func (r *GormLeaveRepository) Delete(id uint) error {
	return r.db.Delete(&models.LeaveRequest{}, id).Error
}
