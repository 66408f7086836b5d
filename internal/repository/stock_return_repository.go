package repository

import (
	"errors"

	"github.com/duka-admin/internal/models"

	"gorm.io/gorm"
)

// StockReturnRepository 回库记录数据访问接口
type StockReturnRepository interface {
	Create(record *models.StockReturnRecord, items []models.StockReturnItem) error
	GetByOrderID(orderID uint) (*models.StockReturnRecord, error)
	WithTx(tx *gorm.DB) *GormStockReturnRepository
}

// GormStockReturnRepository GORM 实现
type GormStockReturnRepository struct {
	db *gorm.DB
}

// NewStockReturnRepository 创建回库记录仓库
func NewStockReturnRepository(db *gorm.DB) *GormStockReturnRepository {
	return &GormStockReturnRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStockReturnRepository) WithTx(tx *gorm.DB) *GormStockReturnRepository {
	if tx == nil {
		return r
	}
	return &GormStockReturnRepository{db: tx}
}

// Create 创建回库记录与明细
func (r *GormStockReturnRepository) Create(record *models.StockReturnRecord, items []models.StockReturnItem) error {
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ReturnID = record.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByOrderID 根据订单 ID 获取回库记录
func (r *GormStockReturnRepository) GetByOrderID(orderID uint) (*models.StockReturnRecord, error) {
	var record models.StockReturnRecord
	if err := r.db.Preload("Items").Where("order_id = ?", orderID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
