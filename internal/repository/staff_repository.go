package repository

import (
	"errors"

	"github.com/duka-admin/internal/models"

	"gorm.io/gorm"
)

// StaffRepository 员工数据访问接口
type StaffRepository interface {
	Create(staff *models.Staff) error
	GetByID(id uint) (*models.Staff, error)
	GetByStaffNo(staffNo string) (*models.Staff, error)
	List(filter StaffListFilter) ([]models.Staff, int64, error)
	Updates(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

// GormStaffRepository GORM 实现
type GormStaffRepository struct {
	db *gorm.DB
}

// NewStaffRepository 创建员工仓库
func NewStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// Create 创建员工
func (r *GormStaffRepository) Create(staff *models.Staff) error {
	return r.db.Create(staff).Error
}

// GetByID 根据 ID 获取员工
func (r *GormStaffRepository) GetByID(id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// GetByStaffNo 根据员工编号获取员工
func (r *GormStaffRepository) GetByStaffNo(staffNo string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.Where("staff_no = ?", staffNo).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// List 员工列表
func (r *GormStaffRepository) List(filter StaffListFilter) ([]models.Staff, int64, error) {
	var staff []models.Staff
	query := r.db.Model(&models.Staff{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR staff_no LIKE ? OR phone LIKE ?", like, like, like)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&staff).Error; err != nil {
		return nil, 0, err
	}
	return staff, total, nil
}

// Updates 更新员工字段
func (r *GormStaffRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Staff{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除员工（软删除）
func (r *GormStaffRepository) Delete(id uint) error {
	return r.db.Delete(&models.Staff{}, id).Error
}
