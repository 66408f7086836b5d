package repository

import (
	"errors"

	"github.com/duka-admin/internal/models"

	"gorm.io/gorm"
)

// DeliveryRepository 交付记录数据访问接口
type DeliveryRepository interface {
	Create(record *models.DeliveryRecord) error
	GetByOrderID(orderID uint) (*models.DeliveryRecord, error)
	WithTx(tx *gorm.DB) *GormDeliveryRepository
}

// GormDeliveryRepository GORM 实现
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository 创建交付记录仓库
func NewDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDeliveryRepository) WithTx(tx *gorm.DB) *GormDeliveryRepository {
	if tx == nil {
		return r
	}
	return &GormDeliveryRepository{db: tx}
}

// Create 创建交付记录
func (r *GormDeliveryRepository) Create(record *models.DeliveryRecord) error {
	return r.db.Create(record).Error
}

// GetByOrderID 根据订单 ID 获取交付记录
func (r *GormDeliveryRepository) GetByOrderID(orderID uint) (*models.DeliveryRecord, error) {
	var record models.DeliveryRecord
	if err := r.db.Where("order_id = ?", orderID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
