package authz

import (
	"fmt"
	"testing"
	"time"

	"github.com/duka-admin/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newServiceForTest(t *testing.T, name string) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("create authz service failed: %v", err)
	}
	if err := BootstrapBuiltinRoles(svc); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	return svc
}

func TestStaffRoleCanCompleteDelivery(t *testing.T) {
	svc := newServiceForTest(t, "authz_staff")
	if err := svc.SetAdminRoles(9, []string{constants.RoleStaff}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	cases := []struct {
		obj   string
		act   string
		allow bool
	}{
		{"/api/v1/admin/orders/42/complete-delivery", "POST", true},
		{"/api/v1/admin/orders/42", "GET", true},
		{"/api/v1/admin/orders", "GET", true},
		{"/api/v1/admin/upload", "POST", true},
		{"/api/v1/admin/orders", "POST", false},
		{"/api/v1/admin/orders/42/assign-rider", "POST", false},
		{"/api/v1/admin/orders/42/receive-to-stock", "POST", false},
		{"/api/v1/admin/staff", "GET", false},
	}
	for _, tc := range cases {
		got, err := svc.EnforceAdmin(9, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.act, tc.obj, err)
		}
		if got != tc.allow {
			t.Fatalf("%s %s: expected allow=%v, got %v", tc.act, tc.obj, tc.allow, got)
		}
	}
}

func TestStockRoleCoversDispatchAndReturns(t *testing.T) {
	svc := newServiceForTest(t, "authz_stock")
	if err := svc.SetAdminRoles(7, []string{constants.RoleStock}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	cases := []struct {
		obj   string
		act   string
		allow bool
	}{
		{"/api/v1/admin/orders/42/assign-rider", "POST", true},
		{"/api/v1/admin/orders/42/receive-to-stock", "POST", true},
		{"/api/v1/admin/orders/42/return-plan", "GET", true},
		{"/api/v1/admin/stock-transactions", "GET", true},
		{"/api/v1/admin/orders", "POST", false},
		{"/api/v1/admin/orders/42/convert-to-invoice", "POST", false},
		{"/api/v1/admin/staff", "GET", false},
	}
	for _, tc := range cases {
		got, err := svc.EnforceAdmin(7, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.act, tc.obj, err)
		}
		if got != tc.allow {
			t.Fatalf("%s %s: expected allow=%v, got %v", tc.act, tc.obj, tc.allow, got)
		}
	}
}
