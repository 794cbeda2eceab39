package repository

import "gorm.io/gorm"

// paginate 分页 scope，pageSize <= 0 表示不分页
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		return db.Limit(pageSize).Offset((max(page, 1) - 1) * pageSize)
	}
}
