package repository

import (
	"errors"

	"github.com/duka-admin/internal/models"

	"gorm.io/gorm"
)

// StockRepository 库存数据访问接口
type StockRepository interface {
	GetLevel(storeID, productID uint) (*models.StockLevel, error)
	ListLevelsByStore(storeID uint) ([]models.StockLevel, error)
	AdjustOnHand(storeID, productID uint, delta int) error
	RecordTransaction(txn *models.StockTransaction) error
	ListTransactions(filter StockTxnListFilter) ([]models.StockTransaction, int64, error)
	WithTx(tx *gorm.DB) *GormStockRepository
}

// GormStockRepository GORM 实现
type GormStockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建库存仓库
func NewStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStockRepository) WithTx(tx *gorm.DB) *GormStockRepository {
	if tx == nil {
		return r
	}
	return &GormStockRepository{db: tx}
}

// GetLevel 获取门店商品库存
func (r *GormStockRepository) GetLevel(storeID, productID uint) (*models.StockLevel, error) {
	var level models.StockLevel
	if err := r.db.Where("store_id = ? AND product_id = ?", storeID, productID).First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

// ListLevelsByStore 获取门店全部库存
func (r *GormStockRepository) ListLevelsByStore(storeID uint) ([]models.StockLevel, error) {
	var levels []models.StockLevel
	if err := r.db.Where("store_id = ?", storeID).Order("product_id asc").Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// AdjustOnHand 调整在库数量（delta 正入负出，行不存在时按 delta 初始化）
func (r *GormStockRepository) AdjustOnHand(storeID, productID uint, delta int) error {
	result := r.db.Model(&models.StockLevel{}).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		Update("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	return r.db.Create(&models.StockLevel{
		StoreID:        storeID,
		ProductID:      productID,
		QuantityOnHand: delta,
	}).Error
}

// RecordTransaction 写入库存流水
func (r *GormStockRepository) RecordTransaction(txn *models.StockTransaction) error {
	return r.db.Create(txn).Error
}

// ListTransactions 查询库存流水
func (r *GormStockRepository) ListTransactions(filter StockTxnListFilter) ([]models.StockTransaction, int64, error) {
	var txns []models.StockTransaction
	query := r.db.Model(&models.StockTransaction{})

	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
