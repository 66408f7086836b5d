package constants

// 账务状态常量（由下游开票协作方推进）
const (
	BillingStatusDraft     = "draft"
	BillingStatusConfirmed = "confirmed"
	BillingStatusShipped   = "shipped"
	BillingStatusDelivered = "delivered"
	BillingStatusInPayment = "in_payment"
	BillingStatusPaid      = "paid"
)

// 税类常量
const (
	TaxClassStandard16 = "standard16"
	TaxClassZeroRated  = "zero_rated"
	TaxClassExempted   = "exempted"
)

// 管理员角色常量
const (
	RoleAdmin = "admin"
	RoleStock = "stock"
	RoleStaff = "staff"
)

// 库存流水类型常量
const (
	StockTxnTypeAdjustment = "adjustment"
)

// 库存流水业务来源常量
const (
	StockTxnRefSalesOrderDispatch = "sales_order_dispatch"
	StockTxnRefSalesOrderReturn   = "sales_order_return"
)

// 考勤状态常量
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusLate    = "late"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusOnLeave = "on_leave"
	AttendanceStatusHoliday = "holiday"
)

// 请假状态常量
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// 请假类型常量
const (
	LeaveTypeAnnual    = "annual"
	LeaveTypeSick      = "sick"
	LeaveTypeMaternity = "maternity"
	LeaveTypePaternity = "paternity"
	LeaveTypeUnpaid    = "unpaid"
)

// 资产状态常量
const (
	AssetStatusInService   = "in_service"
	AssetStatusUnderRepair = "under_repair"
	AssetStatusDisposed    = "disposed"
)

// 骑手状态常量
const (
	RiderStatusActive   = "active"
	RiderStatusInactive = "inactive"
)

// 发票状态常量
const (
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
	InvoiceStatusVoid   = "void"
)

// 队列常量
const (
	QueueDefault           = "default"
	TaskOrderStatusEmail   = "order:status_email"
	TaskLeaveDecisionEmail = "leave:decision_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "dk"
)

// 币种常量
const (
	SiteCurrencyDefault = "KES"
)
