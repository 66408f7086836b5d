package service

import (
	"strings"

	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"
)

// CustomerService 客户档案服务
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService 创建客户档案服务
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput 创建客户输入
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	KRAPin  string
	Notes   string
}

// CreateCustomer 创建客户
func (s *CustomerService) CreateCustomer(actor Actor, input CreateCustomerInput) (*models.Customer, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	customer := &models.Customer{
		Name:    strings.TrimSpace(input.Name),
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		KRAPin:  input.KRAPin,
		Notes:   input.Notes,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers 客户列表
func (s *CustomerService) ListCustomers(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	return s.customerRepo.List(filter)
}

// GetCustomer 获取客户详情
func (s *CustomerService) GetCustomer(id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return customer, nil
}

// UpdateCustomer 更新客户字段
func (s *CustomerService) UpdateCustomer(actor Actor, id uint, updates map[string]interface{}) (*models.Customer, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	if err := s.customerRepo.Updates(id, updates); err != nil {
		return nil, err
	}
	return s.customerRepo.GetByID(id)
}

// DeleteCustomer 删除客户
func (s *CustomerService) DeleteCustomer(actor Actor, id uint) error {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return err
	}
	return s.customerRepo.Delete(id)
}
