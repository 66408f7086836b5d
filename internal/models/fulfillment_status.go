package models

// FulfillmentStatus 履约状态（数值持久化，顺序不可变更）
type FulfillmentStatus int

const (
	FulfillmentNew             FulfillmentStatus = iota // 0 新建
	FulfillmentApproved                                 // 1 已审核
	FulfillmentInTransit                                // 2 配送中
	FulfillmentComplete                                 // 3 已完成
	FulfillmentCancelled                                // 4 已取消
	FulfillmentDeclined                                 // 5 已拒绝
	FulfillmentReturnedToStock                          // 6 已回库
)

var fulfillmentStatusNames = map[FulfillmentStatus]string{
	FulfillmentNew:             "new",
	FulfillmentApproved:        "approved",
	FulfillmentInTransit:       "in_transit",
	FulfillmentComplete:        "complete",
	FulfillmentCancelled:       "cancelled",
	FulfillmentDeclined:        "declined",
	FulfillmentReturnedToStock: "returned_to_stock",
}

// String 返回状态名称
func (s FulfillmentStatus) String() string {
	if name, ok := fulfillmentStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid 判断是否为合法状态值
func (s FulfillmentStatus) Valid() bool {
	_, ok := fulfillmentStatusNames[s]
	return ok
}

// Terminal 判断是否为终态（终态不再开放任何流转）
func (s FulfillmentStatus) Terminal() bool {
	switch s {
	case FulfillmentComplete, FulfillmentDeclined, FulfillmentReturnedToStock:
		return true
	}
	return false
}
