package models

import "time"

// AdminAuditLog 后台操作审计日志
// 说明：记录管理端对用户、角色、订单、商品的变更，支持按操作人、动作与时间范围检索。
type AdminAuditLog struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	OperatorUserID uint      `gorm:"index;not null" json:"operator_user_id"`
	Action         string    `gorm:"type:varchar(100);index;not null" json:"action"`
	TargetType     string    `gorm:"type:varchar(40);index;not null;default:''" json:"target_type"`
	TargetID       uint      `gorm:"index;not null;default:0" json:"target_id"`
	RequestID      string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	DetailJSON     JSON      `gorm:"type:json" json:"detail"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
