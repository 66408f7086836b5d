package service

import (
	"strings"
	"time"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/logger"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/queue"
	"github.com/duka-admin/internal/repository"
)

// LeaveService 请假审批服务
type LeaveService struct {
	leaveRepo   repository.LeaveRepository
	staffRepo   repository.StaffRepository
	holidayRepo repository.HolidayRepository
	queueClient *queue.Client
}

// NewLeaveService 创建请假审批服务
func NewLeaveService(leaveRepo repository.LeaveRepository, staffRepo repository.StaffRepository, holidayRepo repository.HolidayRepository, queueClient *queue.Client) *LeaveService {
	return &LeaveService{
		leaveRepo:   leaveRepo,
		staffRepo:   staffRepo,
		holidayRepo: holidayRepo,
		queueClient: queueClient,
	}
}

// SubmitLeaveInput 提交请假申请输入
type SubmitLeaveInput struct {
	StaffID   uint
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

var validLeaveTypes = map[string]bool{
	constants.LeaveTypeAnnual:    true,
	constants.LeaveTypeSick:      true,
	constants.LeaveTypeMaternity: true,
	constants.LeaveTypePaternity: true,
	constants.LeaveTypeUnpaid:    true,
}

// SubmitLeave 提交请假申请，天数按自然日计算并扣除公共假期。
func (s *LeaveService) SubmitLeave(actor Actor, input SubmitLeaveInput) (*models.LeaveRequest, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	if input.StaffID == 0 {
		return nil, &ValidationError{Field: "staff_id", Reason: "required"}
	}
	if !validLeaveTypes[input.LeaveType] {
		return nil, &ValidationError{Field: "leave_type", Reason: "unknown leave type"}
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, &ValidationError{Field: "start_date", Reason: "start and end dates are required"}
	}
	start := truncateToDay(input.StartDate)
	end := truncateToDay(input.EndDate)
	if end.Before(start) {
		return nil, &ValidationError{Field: "end_date", Reason: "must not be before start date"}
	}
	staff, err := s.staffRepo.GetByID(input.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, &ValidationError{Field: "staff_id", Reason: "staff not found"}
	}

	days, err := s.countLeaveDays(start, end)
	if err != nil {
		return nil, err
	}

	request := &models.LeaveRequest{
		StaffID:   input.StaffID,
		LeaveType: input.LeaveType,
		StartDate: start,
		EndDate:   end,
		Days:      days,
		Reason:    strings.TrimSpace(input.Reason),
		Status:    constants.LeaveStatusPending,
	}
	if err := s.leaveRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

// ReviewLeave 审批请假申请（approve/reject）。
// 前置状态必须为 pending，以守卫更新做并发仲裁。
func (s *LeaveService) ReviewLeave(actor Actor, id uint, approve bool, note string) (*models.LeaveRequest, error) {
	if err := requireCapability(actor, CapabilityAdmin); err != nil {
		return nil, err
	}
	request, err := s.leaveRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}
	if request.Status != constants.LeaveStatusPending {
		return nil, &StateTransitionError{
			Current:  request.Status,
			Required: constants.LeaveStatusPending,
		}
	}

	decision := constants.LeaveStatusRejected
	if approve {
		decision = constants.LeaveStatusApproved
	}
	now := time.Now()
	affected, err := s.leaveRepo.UpdateStatusGuarded(id, constants.LeaveStatusPending, decision, map[string]interface{}{
		"reviewed_by": actor.AdminID,
		"reviewed_at": now,
		"review_note": note,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, &StateTransitionError{
			Current:  "changed concurrently",
			Required: constants.LeaveStatusPending,
		}
	}

	if err := s.queueClient.EnqueueLeaveDecisionEmail(queue.LeaveDecisionEmailPayload{
		LeaveID:  id,
		Decision: decision,
	}); err != nil {
		logger.Warnw("leave_decision_email_enqueue_failed", "leave_id", id, "decision", decision, "error", err)
	}
	return s.leaveRepo.GetByID(id)
}

// ListLeaves 请假申请列表
func (s *LeaveService) ListLeaves(filter repository.LeaveListFilter) ([]models.LeaveRequest, int64, error) {
	return s.leaveRepo.List(filter)
}

// GetLeave 获取请假申请详情
func (s *LeaveService) GetLeave(id uint) (*models.LeaveRequest, error) {
	request, err := s.leaveRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}
	return request, nil
}

// countLeaveDays 统计起止区间内的请假天数，公共假期不计入。
func (s *LeaveService) countLeaveDays(start, end time.Time) (int, error) {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		holiday, err := s.holidayRepo.GetByDate(d)
		if err != nil {
			return 0, err
		}
		if holiday == nil {
			days++
		}
	}
	return days, nil
}
