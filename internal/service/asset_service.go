package service

import (
	"strings"
	"time"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"
)

// AssetService 固定资产服务
type AssetService struct {
	assetRepo repository.AssetRepository
	staffRepo repository.StaffRepository
	storeRepo repository.StoreRepository
}

// NewAssetService 创建固定资产服务
func NewAssetService(assetRepo repository.AssetRepository, staffRepo repository.StaffRepository, storeRepo repository.StoreRepository) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		staffRepo: staffRepo,
		storeRepo: storeRepo,
	}
}

// CreateAssetInput 创建资产输入
type CreateAssetInput struct {
	AssetTag     string
	Name         string
	Category     string
	SerialNumber string
	PurchaseCost models.Money
	PurchasedAt  *time.Time
	StoreID      *uint
	Notes        string
}

// CreateAsset 创建资产
func (s *AssetService) CreateAsset(actor Actor, input CreateAssetInput) (*models.Asset, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.AssetTag) == "" {
		return nil, &ValidationError{Field: "asset_tag", Reason: "required"}
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	existing, err := s.assetRepo.GetByAssetTag(input.AssetTag)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRecord
	}

	asset := &models.Asset{
		AssetTag:     strings.TrimSpace(input.AssetTag),
		Name:         strings.TrimSpace(input.Name),
		Category:     input.Category,
		SerialNumber: input.SerialNumber,
		PurchaseCost: input.PurchaseCost,
		PurchasedAt:  input.PurchasedAt,
		StoreID:      input.StoreID,
		Status:       constants.AssetStatusInService,
		Notes:        input.Notes,
	}
	if err := s.assetRepo.Create(asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// AssignAsset 将资产分配给员工
func (s *AssetService) AssignAsset(actor Actor, assetID, staffID uint) (*models.Asset, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	asset, err := s.assetRepo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrNotFound
	}
	if asset.Status == constants.AssetStatusDisposed {
		return nil, &StateTransitionError{
			Current:  asset.Status,
			Required: constants.AssetStatusInService,
		}
	}
	staff, err := s.staffRepo.GetByID(staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, &ValidationError{Field: "staff_id", Reason: "staff not found"}
	}
	if err := s.assetRepo.Updates(assetID, map[string]interface{}{
		"assigned_to": staffID,
	}); err != nil {
		return nil, err
	}
	return s.assetRepo.GetByID(assetID)
}

// ListAssets 资产列表
func (s *AssetService) ListAssets(filter repository.AssetListFilter) ([]models.Asset, int64, error) {
	return s.assetRepo.List(filter)
}

// GetAsset 获取资产详情
func (s *AssetService) GetAsset(id uint) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrNotFound
	}
	return asset, nil
}

// UpdateAsset 更新资产字段
func (s *AssetService) UpdateAsset(actor Actor, id uint, updates map[string]interface{}) (*models.Asset, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	asset, err := s.assetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrNotFound
	}
	if err := s.assetRepo.Updates(id, updates); err != nil {
		return nil, err
	}
	return s.assetRepo.GetByID(id)
}

// DeleteAsset 删除资产
func (s *AssetService) DeleteAsset(actor Actor, id uint) error {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return err
	}
	return s.assetRepo.Delete(id)
}
