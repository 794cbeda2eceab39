package service

import (
	"strings"
	"time"

	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
)

// 审计目标类型
const (
	AuditTargetUser    = "user"
	AuditTargetOrder   = "order"
	AuditTargetProduct = "product"
)

// AdminAuditRecordInput 审计记录输入
type AdminAuditRecordInput struct {
	OperatorUserID uint
	Action         string
	TargetType     string
	TargetID       uint
	RequestID      string
	Detail         models.JSON
}

// AdminAuditService 后台操作审计服务
type AdminAuditService struct {
	repo repository.AdminAuditLogRepository
}

// NewAdminAuditService 创建审计服务
func NewAdminAuditService(repo repository.AdminAuditLogRepository) *AdminAuditService {
	return &AdminAuditService{repo: repo}
}

// Record 写入审计日志，操作人或动作为空时忽略
func (s *AdminAuditService) Record(input AdminAuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	action := strings.TrimSpace(input.Action)
	if input.OperatorUserID == 0 || action == "" {
		return nil
	}
	return s.repo.Create(&models.AdminAuditLog{
		OperatorUserID: input.OperatorUserID,
		Action:         action,
		TargetType:     strings.TrimSpace(input.TargetType),
		TargetID:       input.TargetID,
		RequestID:      strings.TrimSpace(input.RequestID),
		DetailJSON:     input.Detail,
		CreatedAt:      time.Now(),
	})
}

// List 管理端查询审计日志
func (s *AdminAuditService) List(filter repository.AdminAuditLogListFilter) ([]models.AdminAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AdminAuditLog{}, 0, nil
	}
	return s.repo.List(filter)
}
