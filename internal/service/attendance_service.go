package service

import (
	"time"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"
)

// AttendanceService 考勤服务
type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	staffRepo      repository.StaffRepository
	holidayRepo    repository.HolidayRepository
}

// NewAttendanceService 创建考勤服务
func NewAttendanceService(attendanceRepo repository.AttendanceRepository, staffRepo repository.StaffRepository, holidayRepo repository.HolidayRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		staffRepo:      staffRepo,
		holidayRepo:    holidayRepo,
	}
}

// RecordAttendanceInput 录入考勤输入
type RecordAttendanceInput struct {
	StaffID    uint
	WorkDate   time.Time
	CheckInAt  *time.Time
	CheckOutAt *time.Time
	Status     string
	Notes      string
}

var validAttendanceStatuses = map[string]bool{
	constants.AttendanceStatusPresent: true,
	constants.AttendanceStatusLate:    true,
	constants.AttendanceStatusAbsent:  true,
	constants.AttendanceStatusOnLeave: true,
	constants.AttendanceStatusHoliday: true,
}

// RecordAttendance 录入考勤记录。
// 同员工同日期唯一；落在公共假期的日期状态强制为 holiday。
func (s *AttendanceService) RecordAttendance(actor Actor, input RecordAttendanceInput) (*models.AttendanceRecord, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	if input.StaffID == 0 {
		return nil, &ValidationError{Field: "staff_id", Reason: "required"}
	}
	if input.WorkDate.IsZero() {
		return nil, &ValidationError{Field: "work_date", Reason: "required"}
	}
	if !validAttendanceStatuses[input.Status] {
		return nil, &ValidationError{Field: "status", Reason: "unknown status value"}
	}
	staff, err := s.staffRepo.GetByID(input.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, &ValidationError{Field: "staff_id", Reason: "staff not found"}
	}

	workDate := truncateToDay(input.WorkDate)
	existing, err := s.attendanceRepo.GetByStaffAndDate(input.StaffID, workDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRecord
	}

	status := input.Status
	holiday, err := s.holidayRepo.GetByDate(workDate)
	if err != nil {
		return nil, err
	}
	if holiday != nil {
		status = constants.AttendanceStatusHoliday
	}

	record := &models.AttendanceRecord{
		StaffID:    input.StaffID,
		WorkDate:   workDate,
		CheckInAt:  input.CheckInAt,
		CheckOutAt: input.CheckOutAt,
		Status:     status,
		Notes:      input.Notes,
		RecordedBy: actor.AdminID,
	}
	if err := s.attendanceRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// CorrectAttendance 修正已有考勤记录
func (s *AttendanceService) CorrectAttendance(actor Actor, id uint, updates map[string]interface{}) (*models.AttendanceRecord, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	record, err := s.attendanceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	if status, ok := updates["status"].(string); ok && !validAttendanceStatuses[status] {
		return nil, &ValidationError{Field: "status", Reason: "unknown status value"}
	}
	if err := s.attendanceRepo.Updates(id, updates); err != nil {
		return nil, err
	}
	return s.attendanceRepo.GetByID(id)
}

// ListAttendance 考勤记录列表
func (s *AttendanceService) ListAttendance(filter repository.AttendanceListFilter) ([]models.AttendanceRecord, int64, error) {
	return s.attendanceRepo.List(filter)
}

// DeleteAttendance 删除考勤记录
func (s *AttendanceService) DeleteAttendance(actor Actor, id uint) error {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return err
	}
	return s.attendanceRepo.Delete(id)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
