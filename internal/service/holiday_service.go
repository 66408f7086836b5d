package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/duka-admin/internal/cache"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"
)

const holidayCacheTTL = time.Hour

// HolidayService 公共假期服务
type HolidayService struct {
	holidayRepo repository.HolidayRepository
}

// NewHolidayService 创建公共假期服务
func NewHolidayService(holidayRepo repository.HolidayRepository) *HolidayService {
	return &HolidayService{holidayRepo: holidayRepo}
}

func holidayYearCacheKey(year int) string {
	return fmt.Sprintf("holiday:year:%d", year)
}

// CreateHoliday 创建公共假期
func (s *HolidayService) CreateHoliday(actor Actor, name string, date time.Time, recurring bool) (*models.PublicHoliday, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if date.IsZero() {
		return nil, &ValidationError{Field: "date", Reason: "required"}
	}
	day := truncateToDay(date)
	existing, err := s.holidayRepo.GetByDate(day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRecord
	}

	holiday := &models.PublicHoliday{
		Name:      strings.TrimSpace(name),
		Date:      day,
		Recurring: recurring,
	}
	if err := s.holidayRepo.Create(holiday); err != nil {
		return nil, err
	}
	_ = cache.Del(context.Background(), holidayYearCacheKey(day.Year()))
	return holiday, nil
}

// ListHolidays 公共假期列表（按年缓存）
func (s *HolidayService) ListHolidays(filter repository.HolidayListFilter) ([]models.PublicHoliday, int64, error) {
	// 全年无分页查询才走缓存
	if filter.Year > 0 && filter.PageSize <= 0 {
		var cached []models.PublicHoliday
		hit, err := cache.GetJSON(context.Background(), holidayYearCacheKey(filter.Year), &cached)
		if err == nil && hit {
			return cached, int64(len(cached)), nil
		}
	}
	holidays, total, err := s.holidayRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	if filter.Year > 0 && filter.PageSize <= 0 {
		_ = cache.SetJSON(context.Background(), holidayYearCacheKey(filter.Year), holidays, holidayCacheTTL)
	}
	return holidays, total, nil
}

// UpdateHoliday 更新公共假期
func (s *HolidayService) UpdateHoliday(actor Actor, id uint, updates map[string]interface{}) (*models.PublicHoliday, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	holiday, err := s.holidayRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if holiday == nil {
		return nil, ErrNotFound
	}
	if err := s.holidayRepo.Updates(id, updates); err != nil {
		return nil, err
	}
	_ = cache.Del(context.Background(), holidayYearCacheKey(holiday.Date.Year()))
	return s.holidayRepo.GetByID(id)
}

// DeleteHoliday 删除公共假期
func (s *HolidayService) DeleteHoliday(actor Actor, id uint) error {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return err
	}
	holiday, err := s.holidayRepo.GetByID(id)
	if err != nil {
		return err
	}
	if holiday == nil {
		return ErrNotFound
	}
	if err := s.holidayRepo.Delete(id); err != nil {
		return err
	}
	_ = cache.Del(context.Background(), holidayYearCacheKey(holiday.Date.Year()))
	return nil
}
