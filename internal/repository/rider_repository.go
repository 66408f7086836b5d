package repository

import (
	"errors"

	"github.com/duka-admin/internal/models"

	"gorm.io/gorm"
)

// RiderRepository 骑手数据访问接口
type RiderRepository interface {
	Create(rider *models.Rider) error
	GetByID(id uint) (*models.Rider, error)
	List(filter RiderListFilter) ([]models.Rider, int64, error)
	Updates(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

// GormRiderRepository GORM 实现
type GormRiderRepository struct {
	db *gorm.DB
}

// NewRiderRepository 创建骑手仓库
func NewRiderRepository(db *gorm.DB) *GormRiderRepository {
	return &GormRiderRepository{db: db}
}

// Create 创建骑手
func (r *GormRiderRepository) Create(rider *models.Rider) error {
	return r.db.Create(rider).Error
}

// GetByID 根据 ID 获取骑手
func (r *GormRiderRepository) GetByID(id uint) (*models.Rider, error) {
	var rider models.Rider
	if err := r.db.First(&rider, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rider, nil
}

// List 骑手列表
func (r *GormRiderRepository) List(filter RiderListFilter) ([]models.Rider, int64, error) {
	var riders []models.Rider
	query := r.db.Model(&models.Rider{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&riders).Error; err != nil {
		return nil, 0, err
	}
	return riders, total, nil
}

// Updates 更新骑手字段
func (r *GormRiderRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Rider{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除骑手（软删除）
func (r *GormRiderRepository) Delete(id uint) error {
	return r.db.Delete(&models.Rider{}, id).Error
}
