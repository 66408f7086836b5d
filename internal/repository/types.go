package repository

import (
	"time"

	"github.com/duka-admin/internal/models"
)

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page              int
	PageSize          int
	CustomerID        uint
	RiderID           uint
	FulfillmentStatus *models.FulfillmentStatus
	BillingStatus     string
	OrderNo           string
	OrderDateFrom     *time.Time
	OrderDateTo       *time.Time
	CreatedFrom       *time.Time
	CreatedTo         *time.Time
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Search     string
	TaxClass   string
	OnlyActive bool
}

// CustomerListFilter 查询客户列表的过滤条件
type CustomerListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// RiderListFilter 查询骑手列表的过滤条件
type RiderListFilter struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

// StoreListFilter 查询门店列表的过滤条件
type StoreListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// StaffListFilter 查询员工列表的过滤条件
type StaffListFilter struct {
	Page       int
	PageSize   int
	Search     string
	Department string
	StoreID    uint
	OnlyActive bool
}

// AttendanceListFilter 查询考勤记录列表的过滤条件
type AttendanceListFilter struct {
	Page     int
	PageSize int
	StaffID  uint
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// LeaveListFilter 查询请假申请列表的过滤条件
type LeaveListFilter struct {
	Page      int
	PageSize  int
	StaffID   uint
	LeaveType string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// HolidayListFilter 查询公共假期列表的过滤条件
type HolidayListFilter struct {
	Page     int
	PageSize int
	Year     int
}

// AssetListFilter 查询固定资产列表的过滤条件
type AssetListFilter struct {
	Page     int
	PageSize int
	Search   string
	Category string
	Status   string
	StoreID  uint
}

// InvoiceListFilter 查询发票列表的过滤条件
type InvoiceListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	Status      string
	InvoiceNo   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// StockTxnListFilter 查询库存流水列表的过滤条件
type StockTxnListFilter struct {
	Page        int
	PageSize    int
	StoreID     uint
	ProductID   uint
	Type        string
	OrderID     uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
