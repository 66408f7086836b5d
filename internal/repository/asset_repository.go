package repository

import (
	"errors"

	"github.com/duka-admin/internal/models"

	"gorm.io/gorm"
)

// AssetRepository 固定资产数据访问接口
type AssetRepository interface {
	Create(asset *models.Asset) error
	GetByID(id uint) (*models.Asset, error)
	GetByAssetTag(tag string) (*models.Asset, error)
	List(filter AssetListFilter) ([]models.Asset, int64, error)
	Updates(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

// GormAssetRepository GORM 实现
type GormAssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository 创建固定资产仓库
func NewAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// Create 创建资产
func (r *GormAssetRepository) Create(asset *models.Asset) error {
	return r.db.Create(asset).Error
}

// GetByID 根据 ID 获取资产
func (r *GormAssetRepository) GetByID(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

// GetByAssetTag 根据资产编号获取资产
func (r *GormAssetRepository) GetByAssetTag(tag string) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.Where("asset_tag = ?", tag).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

// List 资产列表
func (r *GormAssetRepository) List(filter AssetListFilter) ([]models.Asset, int64, error) {
	var assets []models.Asset
	query := r.db.Model(&models.Asset{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR asset_tag LIKE ? OR serial_number LIKE ?", like, like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

// Updates 更新资产字段
func (r *GormAssetRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Asset{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除资产（软删除）
func (r *GormAssetRepository) Delete(id uint) error {
	return r.db.Delete(&models.Asset{}, id).Error
}
