package repository

import "gorm.io/gorm"

// applyPagination 应用分页参数。pageSize<=0 表示不分页，页码从 1 起。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
