package service

import (
	"strings"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"
)

// ProductService 商品目录服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品目录服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	Code            string
	Name            string
	SellingPrice    models.Money
	CostPrice       models.Money
	DefaultTaxClass string
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(actor Actor, input CreateProductInput) (*models.Product, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Code) == "" {
		return nil, &ValidationError{Field: "code", Reason: "required"}
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	taxClass := input.DefaultTaxClass
	if taxClass == "" {
		taxClass = constants.TaxClassStandard16
	}
	switch taxClass {
	case constants.TaxClassStandard16, constants.TaxClassZeroRated, constants.TaxClassExempted:
	default:
		return nil, &ValidationError{Field: "default_tax_class", Reason: "unknown tax class"}
	}
	existing, err := s.productRepo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRecord
	}

	product := &models.Product{
		Code:            strings.TrimSpace(input.Code),
		Name:            strings.TrimSpace(input.Name),
		SellingPrice:    input.SellingPrice,
		CostPrice:       input.CostPrice,
		DefaultTaxClass: taxClass,
		IsActive:        true,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts 商品列表
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProduct 获取商品详情
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// UpdateProduct 更新商品字段
func (s *ProductService) UpdateProduct(actor Actor, id uint, updates map[string]interface{}) (*models.Product, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if err := s.productRepo.Updates(id, updates); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(id)
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(actor Actor, id uint) error {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}
