package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newLeaveTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Staff{},
		&models.LeaveRequest{},
		&models.PublicHoliday{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newLeaveServiceForTest(db *gorm.DB) *LeaveService {
	return NewLeaveService(
		repository.NewLeaveRepository(db),
		repository.NewStaffRepository(db),
		repository.NewHolidayRepository(db),
		nil,
	)
}

func seedStaff(t *testing.T, db *gorm.DB, staffNo string) models.Staff {
	t.Helper()
	staff := models.Staff{StaffNo: staffNo, Name: "Staff " + staffNo, Position: "Cashier", IsActive: true}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("create staff failed: %v", err)
	}
	return staff
}

func TestSubmitLeaveCountsDaysExcludingHolidays(t *testing.T) {
	db := newLeaveTestDB(t, "leave_submit")
	staff := seedStaff(t, db, "EMP-001")

	// 2026-06-01 为假期，区间共 5 天，计 4 天
	holiday := models.PublicHoliday{
		Name: "Madaraka Day",
		Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&holiday).Error; err != nil {
		t.Fatalf("create holiday failed: %v", err)
	}

	svc := newLeaveServiceForTest(db)
	request, err := svc.SubmitLeave(adminActor(), SubmitLeaveInput{
		StaffID:   staff.ID,
		LeaveType: constants.LeaveTypeAnnual,
		StartDate: time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 5, 17, 0, 0, 0, time.UTC),
		Reason:    "family visit upcountry",
	})
	if err != nil {
		t.Fatalf("SubmitLeave failed: %v", err)
	}
	if request.Status != constants.LeaveStatusPending {
		t.Fatalf("expected pending, got %s", request.Status)
	}
	if request.Days != 4 {
		t.Fatalf("expected 4 leave days, got %d", request.Days)
	}
	if !request.StartDate.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected start date truncated to day, got %s", request.StartDate)
	}
}

func TestSubmitLeaveValidation(t *testing.T) {
	db := newLeaveTestDB(t, "leave_validation")
	staff := seedStaff(t, db, "EMP-002")
	svc := newLeaveServiceForTest(db)

	start := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	if _, err := svc.SubmitLeave(adminActor(), SubmitLeaveInput{
		StaffID: 9999, LeaveType: constants.LeaveTypeSick, StartDate: start, EndDate: end,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown staff, got: %v", err)
	}

	if _, err := svc.SubmitLeave(adminActor(), SubmitLeaveInput{
		StaffID: staff.ID, LeaveType: "sabbatical", StartDate: start, EndDate: end,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown leave type, got: %v", err)
	}

	if _, err := svc.SubmitLeave(adminActor(), SubmitLeaveInput{
		StaffID: staff.ID, LeaveType: constants.LeaveTypeAnnual, StartDate: end, EndDate: start,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for inverted range, got: %v", err)
	}

	if _, err := svc.SubmitLeave(Actor{AdminID: 4, Role: constants.RoleStock}, SubmitLeaveInput{
		StaffID: staff.ID, LeaveType: constants.LeaveTypeAnnual, StartDate: start, EndDate: end,
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for stock role, got: %v", err)
	}
}

func TestReviewLeaveDecisionGuard(t *testing.T) {
	db := newLeaveTestDB(t, "leave_review")
	staff := seedStaff(t, db, "EMP-003")
	svc := newLeaveServiceForTest(db)

	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	request, err := svc.SubmitLeave(adminActor(), SubmitLeaveInput{
		StaffID:   staff.ID,
		LeaveType: constants.LeaveTypeAnnual,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("SubmitLeave failed: %v", err)
	}

	reviewed, err := svc.ReviewLeave(adminActor(), request.ID, true, "approved for August")
	if err != nil {
		t.Fatalf("ReviewLeave failed: %v", err)
	}
	if reviewed.Status != constants.LeaveStatusApproved {
		t.Fatalf("expected approved, got %s", reviewed.Status)
	}
	if reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != 1 {
		t.Fatalf("expected reviewed_by 1, got: %+v", reviewed.ReviewedBy)
	}
	if reviewed.ReviewNote != "approved for August" {
		t.Fatalf("unexpected review note: %s", reviewed.ReviewNote)
	}

	// 已审批的申请不可再次审批
	if _, err := svc.ReviewLeave(adminActor(), request.ID, false, "changed my mind"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected invalid state transition on re-review, got: %v", err)
	}
}

func TestReviewLeaveReject(t *testing.T) {
	db := newLeaveTestDB(t, "leave_reject")
	staff := seedStaff(t, db, "EMP-004")
	svc := newLeaveServiceForTest(db)

	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	request, err := svc.SubmitLeave(adminActor(), SubmitLeaveInput{
		StaffID:   staff.ID,
		LeaveType: constants.LeaveTypeUnpaid,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 4),
	})
	if err != nil {
		t.Fatalf("SubmitLeave failed: %v", err)
	}

	reviewed, err := svc.ReviewLeave(adminActor(), request.ID, false, "short-staffed that week")
	if err != nil {
		t.Fatalf("ReviewLeave failed: %v", err)
	}
	if reviewed.Status != constants.LeaveStatusRejected {
		t.Fatalf("expected rejected, got %s", reviewed.Status)
	}
}
