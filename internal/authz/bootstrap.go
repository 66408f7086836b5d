package authz

import (
	"fmt"

	"github.com/duka-admin/internal/constants"
)

// RoleSeed 内置角色种子
type RoleSeed struct {
	Name     string
	Policies []Policy
}

// BuiltinRoleSeeds 返回系统内置角色及其默认策略
// admin 拥有全部后台权限,stock 仅覆盖发货与退货入库链路,staff 为只读加交付签收
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Name: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
		{
			Name: constants.RoleStock,
			Policies: []Policy{
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/orders/:id/assign-rider", Action: "POST"},
				{Object: "/admin/orders/:id/complete-delivery", Action: "POST"},
				{Object: "/admin/orders/:id/return-plan", Action: "GET"},
				{Object: "/admin/orders/:id/receive-to-stock", Action: "POST"},
				{Object: "/admin/stores", Action: "GET"},
				{Object: "/admin/stores/:id", Action: "GET"},
				{Object: "/admin/stores/:id/stock-levels", Action: "GET"},
				{Object: "/admin/stock-transactions", Action: "GET"},
				{Object: "/admin/riders", Action: "GET"},
				{Object: "/admin/riders/:id", Action: "GET"},
				{Object: "/admin/products", Action: "GET"},
				{Object: "/admin/products/:id", Action: "GET"},
			},
		},
		{
			Name: constants.RoleStaff,
			Policies: []Policy{
				{Object: "/admin/profile", Action: "GET"},
				{Object: "/admin/holidays", Action: "GET"},
				{Object: "/admin/attendance", Action: "GET"},
				{Object: "/admin/leaves", Action: "GET"},
				{Object: "/admin/leaves", Action: "POST"},
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/orders/:id/complete-delivery", Action: "POST"},
				{Object: "/admin/upload", Action: "POST"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化内置角色及策略
// 幂等执行,重复策略由 casbin 自动去重
func BootstrapBuiltinRoles(svc *Service) error {
	if svc == nil {
		return fmt.Errorf("authz service is nil")
	}
	for _, seed := range BuiltinRoleSeeds() {
		if _, err := svc.EnsureRole(seed.Name); err != nil {
			return fmt.Errorf("ensure role %s failed: %w", seed.Name, err)
		}
		for _, policy := range seed.Policies {
			if err := svc.GrantRolePolicy(seed.Name, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("grant policy for role %s failed: %w", seed.Name, err)
			}
		}
	}
	return nil
}
