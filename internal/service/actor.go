package service

import "github.com/duka-admin/internal/constants"

// Actor 当前操作人（从认证中间件注入）
type Actor struct {
	AdminID uint
	Role    string
	IsSuper bool
}

// 能力标识
const (
	CapabilityAdmin = "admin"
	CapabilityStock = "stock"
)

// HasCapability 判断操作人是否具备指定能力。
// admin 角色具备全部能力；stock 角色仅具备库存能力。
func (a Actor) HasCapability(capability string) bool {
	if a.IsSuper {
		return true
	}
	switch a.Role {
	case constants.RoleAdmin:
		return true
	case constants.RoleStock:
		return capability == CapabilityStock
	}
	return false
}

// requireCapability 校验能力，不满足时返回 ErrUnauthorized。
func requireCapability(actor Actor, capability string) error {
	if !actor.HasCapability(capability) {
		return ErrUnauthorized
	}
	return nil
}
