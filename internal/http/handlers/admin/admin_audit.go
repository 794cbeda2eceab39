package admin

import (
	"strconv"
	"strings"

	"github.com/furniro/storefront/internal/http/handlers/shared"
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// recordAudit 写入后台审计日志，失败只记日志不影响业务响应
func (h *Handler) recordAudit(c *gin.Context, action, targetType string, targetID uint, detail models.JSON) {
	if h.AuditService == nil {
		return
	}
	operatorID := c.GetUint("user_id")
	if err := h.AuditService.Record(service.AdminAuditRecordInput{
		OperatorUserID: operatorID,
		Action:         action,
		TargetType:     targetType,
		TargetID:       targetID,
		RequestID:      c.GetString("request_id"),
		Detail:         detail,
	}); err != nil {
		requestLog(c).Warnw("admin_audit_record_failed",
			"action", action,
			"target_type", targetType,
			"target_id", targetID,
			"error", err,
		)
	}
}

// ListAuditLogs 查询后台审计日志
func (h *Handler) ListAuditLogs(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	operatorID, err := parseUintQuery(c, "operator_user_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	targetID, err := parseUintQuery(c, "target_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	logs, total, err := h.AuditService.List(repository.AdminAuditLogListFilter{
		Page:           page,
		PageSize:       pageSize,
		OperatorUserID: operatorID,
		Action:         strings.TrimSpace(c.Query("action")),
		TargetType:     strings.TrimSpace(c.Query("target_type")),
		TargetID:       targetID,
		CreatedFrom:    createdFrom,
		CreatedTo:      createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.audit_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, shared.BuildPagination(page, pageSize, total))
}

func parseUintQuery(c *gin.Context, key string) (uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
