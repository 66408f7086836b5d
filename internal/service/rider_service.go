package service

import (
	"strings"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"
)

// RiderService 骑手名录服务
type RiderService struct {
	riderRepo repository.RiderRepository
}

// NewRiderService 创建骑手名录服务
func NewRiderService(riderRepo repository.RiderRepository) *RiderService {
	return &RiderService{riderRepo: riderRepo}
}

// CreateRiderInput 创建骑手输入
type CreateRiderInput struct {
	Name          string
	Phone         string
	NationalID    string
	VehicleRegNo  string
	LicenseNumber string
}

// CreateRider 创建骑手
func (s *RiderService) CreateRider(actor Actor, input CreateRiderInput) (*models.Rider, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, &ValidationError{Field: "phone", Reason: "required"}
	}

	rider := &models.Rider{
		Name:          strings.TrimSpace(input.Name),
		Phone:         strings.TrimSpace(input.Phone),
		NationalID:    input.NationalID,
		VehicleRegNo:  input.VehicleRegNo,
		LicenseNumber: input.LicenseNumber,
		Status:        constants.RiderStatusActive,
	}
	if err := s.riderRepo.Create(rider); err != nil {
		return nil, err
	}
	return rider, nil
}

// ListRiders 骑手列表
func (s *RiderService) ListRiders(filter repository.RiderListFilter) ([]models.Rider, int64, error) {
	return s.riderRepo.List(filter)
}

// GetRider 获取骑手详情
func (s *RiderService) GetRider(id uint) (*models.Rider, error) {
	rider, err := s.riderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rider == nil {
		return nil, ErrNotFound
	}
	return rider, nil
}

// UpdateRider 更新骑手字段
func (s *RiderService) UpdateRider(actor Actor, id uint, updates map[string]interface{}) (*models.Rider, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	rider, err := s.riderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rider == nil {
		return nil, ErrNotFound
	}
	if err := s.riderRepo.Updates(id, updates); err != nil {
		return nil, err
	}
	return s.riderRepo.GetByID(id)
}

// DeleteRider 删除骑手
func (s *RiderService) DeleteRider(actor Actor, id uint) error {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return err
	}
	return s.riderRepo.Delete(id)
}
