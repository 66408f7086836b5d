package repository

import (
	"errors"
	"time"

	"github.com/duka-admin/internal/models"

	"gorm.io/gorm"
)

// HolidayRepository 公共假期数据访问接口
type HolidayRepository interface {
	Create(holiday *models.PublicHoliday) error
	GetByID(id uint) (*models.PublicHoliday, error)
	GetByDate(date time.Time) (*models.PublicHoliday, error)
	List(filter HolidayListFilter) ([]models.PublicHoliday, int64, error)
	Updates(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

// GormHolidayRepository GORM 实现
type GormHolidayRepository struct {
	db *gorm.DB
}

// NewHolidayRepository 创建公共假期仓库
func NewHolidayRepository(db *gorm.DB) *GormHolidayRepository {
	return &GormHolidayRepository{db: db}
}

// Create 创建公共假期
func (r *GormHolidayRepository) Create(holiday *models.PublicHoliday) error {
	return r.db.Create(holiday).Error
}

// GetByID 根据 ID 获取公共假期
func (r *GormHolidayRepository) GetByID(id uint) (*models.PublicHoliday, error) {
	var holiday models.PublicHoliday
	if err := r.db.First(&holiday, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &holiday, nil
}

// GetByDate 根据日期获取公共假期
func (r *GormHolidayRepository) GetByDate(date time.Time) (*models.PublicHoliday, error) {
	var holiday models.PublicHoliday
	if err := r.db.Where("date = ?", date).First(&holiday).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &holiday, nil
}

// List 公共假期列表
func (r *GormHolidayRepository) List(filter HolidayListFilter) ([]models.PublicHoliday, int64, error) {
	var holidays []models.PublicHoliday
	query := r.db.Model(&models.PublicHoliday{})

	if filter.Year > 0 {
		from := time.Date(filter.Year, 1, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(1, 0, 0)
		query = query.Where("date >= ? AND date < ?", from, to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("date asc").Find(&holidays).Error; err != nil {
		return nil, 0, err
	}
	return holidays, total, nil
}

// Updates 更新公共假期字段
func (r *GormHolidayRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.PublicHoliday{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除公共假期（软删除）
func (r *GormHolidayRepository) Delete(id uint) error {
	return r.db.Delete(&models.PublicHoliday{}, id).Error
}
