package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page        int
	PageSize    int
	Category    string
	Search      string
	OnlyInStock bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	OrderNo     string
	IsPaid      *bool
	IsDelivered *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
	IsAdmin  *bool
}

// AdminAuditLogListFilter 查询后台审计日志的过滤条件
type AdminAuditLogListFilter struct {
	Page           int
	PageSize       int
	OperatorUserID uint
	Action         string
	TargetType     string
	TargetID       uint
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}
