package service

import (
	"strings"
	"time"

	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"
)

// StaffService 员工档案服务
type StaffService struct {
	staffRepo repository.StaffRepository
	storeRepo repository.StoreRepository
}

// NewStaffService 创建员工档案服务
func NewStaffService(staffRepo repository.StaffRepository, storeRepo repository.StoreRepository) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		storeRepo: storeRepo,
	}
}

// CreateStaffInput 创建员工输入
type CreateStaffInput struct {
	StaffNo    string
	Name       string
	Phone      string
	Email      string
	NationalID string
	Position   string
	Department string
	StoreID    *uint
	BaseSalary models.Money
	HiredAt    *time.Time
}

// CreateStaff 创建员工
func (s *StaffService) CreateStaff(actor Actor, input CreateStaffInput) (*models.Staff, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.StaffNo) == "" {
		return nil, &ValidationError{Field: "staff_no", Reason: "required"}
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	existing, err := s.staffRepo.GetByStaffNo(input.StaffNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRecord
	}
	if input.StoreID != nil {
		store, err := s.storeRepo.GetByID(*input.StoreID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, &ValidationError{Field: "store_id", Reason: "store not found"}
		}
	}

	staff := &models.Staff{
		StaffNo:    strings.TrimSpace(input.StaffNo),
		Name:       strings.TrimSpace(input.Name),
		Phone:      input.Phone,
		Email:      input.Email,
		NationalID: input.NationalID,
		Position:   input.Position,
		Department: input.Department,
		StoreID:    input.StoreID,
		BaseSalary: input.BaseSalary,
		HiredAt:    input.HiredAt,
		IsActive:   true,
	}
	if err := s.staffRepo.Create(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// GetStaff 获取员工详情
func (s *StaffService) GetStaff(id uint) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrNotFound
	}
	return staff, nil
}

// ListStaff 员工列表
func (s *StaffService) ListStaff(filter repository.StaffListFilter) ([]models.Staff, int64, error) {
	return s.staffRepo.List(filter)
}

// UpdateStaff 更新员工字段
func (s *StaffService) UpdateStaff(actor Actor, id uint, updates map[string]interface{}) (*models.Staff, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrNotFound
	}
	if err := s.staffRepo.Updates(id, updates); err != nil {
		return nil, err
	}
	return s.staffRepo.GetByID(id)
}

// TerminateStaff 办理员工离职
func (s *StaffService) TerminateStaff(actor Actor, id uint, at time.Time) error {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return err
	}
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return err
	}
	if staff == nil {
		return ErrNotFound
	}
	return s.staffRepo.Updates(id, map[string]interface{}{
		"is_active":     false,
		"terminated_at": at,
	})
}

// DeleteStaff 删除员工
func (s *StaffService) DeleteStaff(actor Actor, id uint) error {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return err
	}
	return s.staffRepo.Delete(id)
}
