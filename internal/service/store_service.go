package service

import (
	"strings"

	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"
)

// StoreService 门店与库存查询服务
type StoreService struct {
	storeRepo repository.StoreRepository
	stockRepo repository.StockRepository
}

// NewStoreService 创建门店服务
func NewStoreService(storeRepo repository.StoreRepository, stockRepo repository.StockRepository) *StoreService {
	return &StoreService{
		storeRepo: storeRepo,
		stockRepo: stockRepo,
	}
}

// CreateStore 创建门店
func (s *StoreService) CreateStore(actor Actor, name, location, phone string) (*models.Store, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	store := &models.Store{
		Name:     strings.TrimSpace(name),
		Location: location,
		Phone:    phone,
		IsActive: true,
	}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// ListStores 门店列表
func (s *StoreService) ListStores(filter repository.StoreListFilter) ([]models.Store, int64, error) {
	return s.storeRepo.List(filter)
}

// GetStore 获取门店详情
func (s *StoreService) GetStore(id uint) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	return store, nil
}

// UpdateStore 更新门店字段
func (s *StoreService) UpdateStore(actor Actor, id uint, updates map[string]interface{}) (*models.Store, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	if err := s.storeRepo.Updates(id, updates); err != nil {
		return nil, err
	}
	return s.storeRepo.GetByID(id)
}

// ListStockLevels 门店库存水平列表
func (s *StoreService) ListStockLevels(storeID uint) ([]models.StockLevel, error) {
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	return s.stockRepo.ListLevelsByStore(storeID)
}

// ListStockTransactions 库存流水列表
func (s *StoreService) ListStockTransactions(filter repository.StockTxnListFilter) ([]models.StockTransaction, int64, error) {
	return s.stockRepo.ListTransactions(filter)
}
